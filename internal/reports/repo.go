package reports

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/brewthree/brewpos-backend/pkg/db"
	"github.com/brewthree/brewpos-backend/pkg/errors"
)

// ProductSales is one product's aggregated sales inside a window.
type ProductSales struct {
	ProductID    int64           `json:"product_id"`
	ProductName  string          `json:"product_name"`
	QuantitySold int64           `json:"quantity_sold"`
	Revenue      decimal.Decimal `json:"revenue"`
}

// Repository runs the aggregate queries behind sales reports.
type Repository interface {
	CountOrdersSince(ctx context.Context, since time.Time) (int64, error)
	RevenueSince(ctx context.Context, since time.Time) (decimal.Decimal, error)
	TopProductsSince(ctx context.Context, since time.Time, limit int) ([]ProductSales, error)
	CountOrdersByStatusSince(ctx context.Context, since time.Time) (map[string]int64, error)
	CountUsers(ctx context.Context) (int64, error)
}

type repository struct {
	client *db.Client
}

func NewRepository(client *db.Client) Repository {
	return &repository{client: client}
}

func (r *repository) ordersSince(ctx context.Context, since time.Time) *gorm.DB {
	query := r.client.DB(ctx).Table("orders")
	if !since.IsZero() {
		query = query.Where("orders.created_at >= ?", since)
	}
	return query
}

func (r *repository) CountOrdersSince(ctx context.Context, since time.Time) (int64, error) {
	var n int64
	if err := r.ordersSince(ctx, since).Count(&n).Error; err != nil {
		return 0, errors.Wrap(errors.CodeDependency, err, "counting orders")
	}
	return n, nil
}

// RevenueSince sums quantity times the current catalog price over every item
// sold in the window. Items whose product left the catalog contribute
// nothing.
func (r *repository) RevenueSince(ctx context.Context, since time.Time) (decimal.Decimal, error) {
	var row struct {
		Revenue decimal.Decimal
	}
	query := r.client.DB(ctx).
		Table("order_items").
		Select("COALESCE(SUM(order_items.quantity * products.price), 0) as revenue").
		Joins("JOIN orders ON orders.id = order_items.order_id").
		Joins("JOIN products ON products.id = order_items.product_id")
	if !since.IsZero() {
		query = query.Where("orders.created_at >= ?", since)
	}
	if err := query.Scan(&row).Error; err != nil {
		return decimal.Zero, errors.Wrap(errors.CodeDependency, err, "summing revenue")
	}
	return row.Revenue, nil
}

// TopProductsSince ranks products by quantity sold, ties broken by the lower
// product id.
func (r *repository) TopProductsSince(ctx context.Context, since time.Time, limit int) ([]ProductSales, error) {
	query := r.client.DB(ctx).
		Table("order_items").
		Select(`products.id as product_id,
			products.name as product_name,
			SUM(order_items.quantity) as quantity_sold,
			SUM(order_items.quantity * products.price) as revenue`).
		Joins("JOIN orders ON orders.id = order_items.order_id").
		Joins("JOIN products ON products.id = order_items.product_id").
		Group("products.id, products.name").
		Order("quantity_sold DESC, product_id ASC").
		Limit(limit)
	if !since.IsZero() {
		query = query.Where("orders.created_at >= ?", since)
	}

	var rows []ProductSales
	if err := query.Scan(&rows).Error; err != nil {
		return nil, errors.Wrap(errors.CodeDependency, err, "ranking products")
	}
	return rows, nil
}

func (r *repository) CountOrdersByStatusSince(ctx context.Context, since time.Time) (map[string]int64, error) {
	type row struct {
		Status string
		N      int64
	}
	var rows []row
	err := r.ordersSince(ctx, since).
		Select("status, count(*) as n").
		Group("status").
		Scan(&rows).Error
	if err != nil {
		return nil, errors.Wrap(errors.CodeDependency, err, "counting orders by status")
	}

	counts := make(map[string]int64, len(rows))
	for _, r := range rows {
		counts[r.Status] = r.N
	}
	return counts, nil
}

func (r *repository) CountUsers(ctx context.Context) (int64, error) {
	var n int64
	if err := r.client.DB(ctx).Table("users").Count(&n).Error; err != nil {
		return 0, errors.Wrap(errors.CodeDependency, err, "counting users")
	}
	return n, nil
}
