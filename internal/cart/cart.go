package cart

import (
	"sort"
	"sync"

	"github.com/shopspring/decimal"

	"github.com/brewthree/brewpos-backend/pkg/db/models"
	"github.com/brewthree/brewpos-backend/pkg/errors"
)

// Line is one product entry in a cart. UnitPrice is the catalog price at the
// moment the line was first added and does not change if the catalog does.
type Line struct {
	ProductID   int64           `json:"product_id"`
	ProductName string          `json:"product_name"`
	UnitPrice   decimal.Decimal `json:"unit_price"`
	Quantity    int             `json:"quantity"`
}

// Total returns quantity times the captured unit price.
func (l Line) Total() decimal.Decimal {
	return l.UnitPrice.Mul(decimal.NewFromInt(int64(l.Quantity)))
}

// Cart holds one user's pending selection. Safe for concurrent use.
type Cart struct {
	mu    sync.Mutex
	lines map[int64]*Line
}

func New() *Cart {
	return &Cart{lines: make(map[int64]*Line)}
}

// Add merges quantity into an existing line for the product or creates a new
// one, capturing the product's current price on first add.
func (c *Cart) Add(product models.Product, quantity int) error {
	if quantity <= 0 {
		return errors.New(errors.CodeValidation, "quantity must be positive")
	}
	if !product.IsAvailable {
		return errors.New(errors.CodeValidation, "product is not available")
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if line, ok := c.lines[product.ID]; ok {
		line.Quantity += quantity
		return nil
	}
	c.lines[product.ID] = &Line{
		ProductID:   product.ID,
		ProductName: product.Name,
		UnitPrice:   product.Price,
		Quantity:    quantity,
	}
	return nil
}

// SetQuantity replaces the quantity of an existing line. A quantity of zero
// or less removes the line. An absent product id is a silent no-op, like
// Remove on an absent id.
func (c *Cart) SetQuantity(productID int64, quantity int) {
	c.mu.Lock()
	defer c.mu.Unlock()

	line, ok := c.lines[productID]
	if !ok {
		return
	}
	if quantity <= 0 {
		delete(c.lines, productID)
		return
	}
	line.Quantity = quantity
}

// Remove drops the line for productID. Removing an absent product is a no-op.
func (c *Cart) Remove(productID int64) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.lines, productID)
}

// Clear empties the cart.
func (c *Cart) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.lines = make(map[int64]*Line)
}

// Lines returns a copy of the cart contents ordered by product id.
func (c *Cart) Lines() []Line {
	c.mu.Lock()
	defer c.mu.Unlock()

	out := make([]Line, 0, len(c.lines))
	for _, line := range c.lines {
		out = append(out, *line)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ProductID < out[j].ProductID })
	return out
}

// Total sums every line total.
func (c *Cart) Total() decimal.Decimal {
	c.mu.Lock()
	defer c.mu.Unlock()

	total := decimal.Zero
	for _, line := range c.lines {
		total = total.Add(line.Total())
	}
	return total
}

// Len returns the number of distinct product lines.
func (c *Cart) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.lines)
}
