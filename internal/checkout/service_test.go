package checkout

import (
	"context"
	"fmt"
	"io"
	"sync/atomic"
	"testing"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/brewthree/brewpos-backend/internal/cart"
	"github.com/brewthree/brewpos-backend/internal/orders"
	"github.com/brewthree/brewpos-backend/pkg/db"
	"github.com/brewthree/brewpos-backend/pkg/db/models"
	"github.com/brewthree/brewpos-backend/pkg/enums"
	"github.com/brewthree/brewpos-backend/pkg/errors"
	"github.com/brewthree/brewpos-backend/pkg/logger"
)

var testDBSeq atomic.Int64

func openTestDB(t *testing.T) *db.Client {
	t.Helper()

	dsn := fmt.Sprintf("file:checkout_test_%d?mode=memory&cache=shared", testDBSeq.Add(1))
	gdb, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		t.Fatalf("opening sqlite: %v", err)
	}

	stmts := []string{
		`CREATE TABLE orders (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			order_number TEXT NOT NULL UNIQUE,
			user_id INTEGER NOT NULL,
			status TEXT NOT NULL DEFAULT 'NEW',
			total NUMERIC NOT NULL,
			is_takeaway BOOLEAN NOT NULL DEFAULT 0,
			created_at DATETIME,
			updated_at DATETIME
		)`,
		`CREATE TABLE order_items (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			order_id INTEGER NOT NULL,
			product_id INTEGER NOT NULL,
			quantity INTEGER NOT NULL,
			unit_price NUMERIC NOT NULL
		)`,
	}
	for _, stmt := range stmts {
		if err := gdb.Exec(stmt).Error; err != nil {
			t.Fatalf("creating schema: %v", err)
		}
	}

	return db.NewFromGorm(gdb)
}

func quietLogger() *logger.Logger {
	return logger.New(logger.Options{ServiceName: "test", Output: io.Discard})
}

func product(id int64, name, price string) models.Product {
	return models.Product{
		ID:          id,
		Name:        name,
		Price:       decimal.RequireFromString(price),
		IsAvailable: true,
	}
}

func newTestService(t *testing.T, client *db.Client, sessions *cart.Sessions, suffixes ...string) Service {
	t.Helper()

	var idx int
	newSuffix := func() string {
		if len(suffixes) == 0 {
			return fmt.Sprintf("%08d", idx)
		}
		s := suffixes[idx%len(suffixes)]
		idx++
		return s
	}

	svc, err := NewService(Params{
		DB:              client,
		Sessions:        sessions,
		Log:             quietLogger(),
		Now:             func() time.Time { return time.Date(2025, time.June, 1, 10, 0, 0, 0, time.UTC) },
		NewNumberSuffix: newSuffix,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	return svc
}

func TestCommitEmptyCart(t *testing.T) {
	client := openTestDB(t)
	sessions := cart.NewSessions()
	svc := newTestService(t, client, sessions)

	_, err := svc.Commit(context.Background(), 1, CommitOptions{})
	typed := errors.As(err)
	if typed == nil || typed.Code() != errors.CodeEmptyCart {
		t.Fatalf("expected empty cart error, got %v", err)
	}
}

func TestCommitPersistsOrderAndClearsCart(t *testing.T) {
	client := openTestDB(t)
	sessions := cart.NewSessions()
	svc := newTestService(t, client, sessions, "AB12CD34")

	userCart := sessions.For(7)
	if err := userCart.Add(product(1, "Americano", "5.00"), 2); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := userCart.Add(product(2, "Muffin", "3.50"), 1); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !userCart.Total().Equal(decimal.RequireFromString("13.50")) {
		t.Fatalf("expected cart total 13.50, got %s", userCart.Total())
	}

	order, err := svc.Commit(context.Background(), 7, CommitOptions{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if order.OrderNumber != "ORD-20250601-AB12CD34" {
		t.Fatalf("unexpected order number: %s", order.OrderNumber)
	}
	if order.Status != enums.OrderStatusNew {
		t.Fatalf("expected NEW status, got %s", order.Status)
	}
	if !order.Total.Equal(decimal.RequireFromString("13.50")) {
		t.Fatalf("expected total 13.50, got %s", order.Total)
	}
	if len(order.Items) != 2 {
		t.Fatalf("expected two items, got %d", len(order.Items))
	}
	if order.Items[0].Quantity != 2 || order.Items[1].Quantity != 1 {
		t.Fatalf("unexpected item quantities: %+v", order.Items)
	}

	if userCart.Len() != 0 {
		t.Fatal("expected cart to be cleared after commit")
	}

	var count int64
	if err := client.DB(context.Background()).Model(&models.OrderItem{}).Count(&count).Error; err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if count != 2 {
		t.Fatalf("expected two persisted items, got %d", count)
	}

	// One advancement moves the fresh order to IN_PROGRESS.
	moved, err := orders.NewRepository(client).AdvanceStatus(
		context.Background(), order.ID, enums.OrderStatusNew, enums.OrderStatusInProgress)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !moved {
		t.Fatal("expected the new order to advance")
	}
}

func TestCommitRetriesCollidingOrderNumber(t *testing.T) {
	client := openTestDB(t)
	sessions := cart.NewSessions()
	svc := newTestService(t, client, sessions, "SAMESAME", "FRESH001")

	existing := models.Order{
		OrderNumber: "ORD-20250601-SAMESAME",
		UserID:      99,
		Status:      enums.OrderStatusNew,
		Total:       decimal.Zero,
	}
	if err := client.DB(context.Background()).Create(&existing).Error; err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if err := sessions.For(1).Add(product(1, "Latte", "4.50"), 1); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	order, err := svc.Commit(context.Background(), 1, CommitOptions{})
	if err != nil {
		t.Fatalf("expected retry to succeed, got %v", err)
	}
	if order.OrderNumber != "ORD-20250601-FRESH001" {
		t.Fatalf("expected retried number, got %s", order.OrderNumber)
	}
}

func TestCommitExhaustedRetriesLeavesCartIntact(t *testing.T) {
	client := openTestDB(t)
	sessions := cart.NewSessions()
	svc := newTestService(t, client, sessions, "TAKEN001")

	existing := models.Order{
		OrderNumber: "ORD-20250601-TAKEN001",
		UserID:      99,
		Status:      enums.OrderStatusNew,
		Total:       decimal.Zero,
	}
	if err := client.DB(context.Background()).Create(&existing).Error; err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	userCart := sessions.For(1)
	if err := userCart.Add(product(1, "Latte", "4.50"), 2); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	_, err := svc.Commit(context.Background(), 1, CommitOptions{})
	typed := errors.As(err)
	if typed == nil || typed.Code() != errors.CodeDuplicateOrderNumber {
		t.Fatalf("expected duplicate order number error, got %v", err)
	}

	if userCart.Len() != 1 {
		t.Fatal("expected cart to survive a failed commit")
	}

	var orderCount int64
	if err := client.DB(context.Background()).Model(&models.Order{}).Count(&orderCount).Error; err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if orderCount != 1 {
		t.Fatalf("expected only the pre-existing order, got %d rows", orderCount)
	}

	var itemCount int64
	if err := client.DB(context.Background()).Model(&models.OrderItem{}).Count(&itemCount).Error; err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if itemCount != 0 {
		t.Fatalf("expected no orphaned items, got %d", itemCount)
	}
}

func TestCommitFreezesTotalAgainstLaterPriceChange(t *testing.T) {
	client := openTestDB(t)
	sessions := cart.NewSessions()
	svc := newTestService(t, client, sessions, "FREEZE01")

	p := product(1, "Latte", "4.50")
	userCart := sessions.For(1)
	if err := userCart.Add(p, 2); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	p.Price = decimal.RequireFromString("8.00")
	if err := userCart.Add(p, 1); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	order, err := svc.Commit(context.Background(), 1, CommitOptions{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !order.Total.Equal(decimal.RequireFromString("13.50")) {
		t.Fatalf("expected frozen total 13.50, got %s", order.Total)
	}
}

func TestCommitRollsBackWhenItemWriteFails(t *testing.T) {
	client := openTestDB(t)
	sessions := cart.NewSessions()
	svc := newTestService(t, client, sessions, "ROLLBACK")

	// The order row insert succeeds but the item insert cannot.
	if err := client.DB(context.Background()).Exec("DROP TABLE order_items").Error; err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	userCart := sessions.For(1)
	if err := userCart.Add(product(1, "Latte", "4.50"), 2); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	_, err := svc.Commit(context.Background(), 1, CommitOptions{})
	typed := errors.As(err)
	if typed == nil || typed.Code() != errors.CodeDependency {
		t.Fatalf("expected dependency error, got %v", err)
	}

	var orderCount int64
	if err := client.DB(context.Background()).Model(&models.Order{}).Count(&orderCount).Error; err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if orderCount != 0 {
		t.Fatalf("expected the order row rolled back, got %d rows", orderCount)
	}

	if userCart.Len() != 1 {
		t.Fatal("expected cart to survive the failed commit")
	}
}

func TestCommitRecordsTakeawayFlag(t *testing.T) {
	client := openTestDB(t)
	sessions := cart.NewSessions()
	svc := newTestService(t, client, sessions, "TAKEAWAY", "EATIN001")

	if err := sessions.For(1).Add(product(1, "Latte", "4.50"), 1); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	order, err := svc.Commit(context.Background(), 1, CommitOptions{Takeaway: true})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !order.IsTakeaway {
		t.Fatal("expected takeaway flag set")
	}

	var stored models.Order
	if err := client.DB(context.Background()).First(&stored, order.ID).Error; err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !stored.IsTakeaway {
		t.Fatal("expected takeaway flag persisted")
	}

	if err := sessions.For(2).Add(product(1, "Latte", "4.50"), 1); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	eatIn, err := svc.Commit(context.Background(), 2, CommitOptions{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if eatIn.IsTakeaway {
		t.Fatal("expected default commit to be eat-in")
	}
}
