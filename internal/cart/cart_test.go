package cart

import (
	"sync"
	"testing"

	"github.com/shopspring/decimal"

	"github.com/brewthree/brewpos-backend/pkg/db/models"
	"github.com/brewthree/brewpos-backend/pkg/errors"
)

func latte() models.Product {
	return models.Product{
		ID:          1,
		Name:        "Latte",
		Price:       decimal.RequireFromString("4.50"),
		IsAvailable: true,
	}
}

func croissant() models.Product {
	return models.Product{
		ID:          2,
		Name:        "Croissant",
		Price:       decimal.RequireFromString("3.00"),
		IsAvailable: true,
	}
}

func TestAddMergesQuantities(t *testing.T) {
	c := New()

	if err := c.Add(latte(), 2); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := c.Add(latte(), 1); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	lines := c.Lines()
	if len(lines) != 1 {
		t.Fatalf("expected one merged line, got %d", len(lines))
	}
	if lines[0].Quantity != 3 {
		t.Fatalf("expected quantity 3, got %d", lines[0].Quantity)
	}
}

func TestAddCapturesPriceAtFirstAdd(t *testing.T) {
	c := New()
	p := latte()

	if err := c.Add(p, 1); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	p.Price = decimal.RequireFromString("9.99")
	if err := c.Add(p, 1); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	lines := c.Lines()
	if !lines[0].UnitPrice.Equal(decimal.RequireFromString("4.50")) {
		t.Fatalf("expected captured price 4.50, got %s", lines[0].UnitPrice)
	}
}

func TestAddRejectsInvalidInput(t *testing.T) {
	c := New()

	err := c.Add(latte(), 0)
	if typed := errors.As(err); typed == nil || typed.Code() != errors.CodeValidation {
		t.Fatalf("expected validation error for zero quantity, got %v", err)
	}

	unavailable := latte()
	unavailable.IsAvailable = false
	err = c.Add(unavailable, 1)
	if typed := errors.As(err); typed == nil || typed.Code() != errors.CodeValidation {
		t.Fatalf("expected validation error for unavailable product, got %v", err)
	}
}

func TestTotal(t *testing.T) {
	c := New()
	if err := c.Add(latte(), 3); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := c.Add(croissant(), 2); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	want := decimal.RequireFromString("19.50")
	if !c.Total().Equal(want) {
		t.Fatalf("expected total %s, got %s", want, c.Total())
	}
}

func TestSetQuantity(t *testing.T) {
	c := New()
	if err := c.Add(latte(), 2); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	c.SetQuantity(1, 5)
	if c.Lines()[0].Quantity != 5 {
		t.Fatalf("expected quantity 5, got %d", c.Lines()[0].Quantity)
	}

	c.SetQuantity(1, 0)
	if c.Len() != 0 {
		t.Fatal("expected zero quantity to remove the line")
	}
}

func TestSetQuantityAbsentProductIsNoOp(t *testing.T) {
	c := New()
	if err := c.Add(latte(), 2); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	c.SetQuantity(99, 3)

	lines := c.Lines()
	if len(lines) != 1 || lines[0].ProductID != 1 || lines[0].Quantity != 2 {
		t.Fatalf("expected cart untouched, got %+v", lines)
	}

	empty := New()
	empty.SetQuantity(1, 5)
	if empty.Len() != 0 {
		t.Fatal("expected empty cart to stay empty")
	}
}

func TestRemoveAndClear(t *testing.T) {
	c := New()
	if err := c.Add(latte(), 1); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := c.Add(croissant(), 1); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	c.Remove(1)
	if c.Len() != 1 {
		t.Fatalf("expected one line after remove, got %d", c.Len())
	}

	c.Remove(99)

	c.Clear()
	if c.Len() != 0 || !c.Total().IsZero() {
		t.Fatal("expected empty cart after clear")
	}
}

func TestConcurrentAdds(t *testing.T) {
	c := New()
	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_ = c.Add(latte(), 1)
		}()
	}
	wg.Wait()

	if got := c.Lines()[0].Quantity; got != 50 {
		t.Fatalf("expected quantity 50, got %d", got)
	}
}

func TestSessionsIsolateUsers(t *testing.T) {
	s := NewSessions()

	if err := s.For(1).Add(latte(), 1); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if s.For(2).Len() != 0 {
		t.Fatal("expected user 2 cart to start empty")
	}
	if s.For(1).Len() != 1 {
		t.Fatal("expected user 1 cart to keep its line")
	}

	s.DropFor(1)
	if s.For(1).Len() != 0 {
		t.Fatal("expected dropped cart to be recreated empty")
	}
}
