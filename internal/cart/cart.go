// Package cart holds a customer's in-progress menu selection before it is
// submitted as an order.
//
// A Cart is owned by a single session and is not safe for concurrent use.
package cart

import (
	"restaurant-ordering/internal/model"

	"github.com/shopspring/decimal"
)

// Snapshot is the display copy of a menu item taken when it is added to the cart.
type Snapshot struct {
	ID       string
	Name     string
	Price    float64
	ImageURL *string
}

// Line is one distinct menu item in the cart.
type Line struct {
	Snapshot
	Quantity int
}

// Cart aggregates selected menu items by identifier.
type Cart struct {
	lines []Line
	index map[string]int
}

// New returns an empty cart.
func New() *Cart {
	return &Cart{index: make(map[string]int)}
}

// SnapshotOf copies the display fields of a catalog item.
func SnapshotOf(item model.MenuItem) Snapshot {
	return Snapshot{
		ID:       item.ID,
		Name:     item.Name,
		Price:    item.Price,
		ImageURL: item.ImageURL,
	}
}

// AddItem adds one unit of the item, creating its line on first add.
func (c *Cart) AddItem(item Snapshot) {
	if i, ok := c.index[item.ID]; ok {
		c.lines[i].Quantity++
		return
	}
	c.index[item.ID] = len(c.lines)
	c.lines = append(c.lines, Line{Snapshot: item, Quantity: 1})
}

// RemoveItem deletes the line for id. Unknown ids are ignored.
func (c *Cart) RemoveItem(id string) {
	i, ok := c.index[id]
	if !ok {
		return
	}
	c.lines = append(c.lines[:i], c.lines[i+1:]...)
	delete(c.index, id)
	for j := i; j < len(c.lines); j++ {
		c.index[c.lines[j].ID] = j
	}
}

// UpdateQuantity sets the quantity of the line for id. Quantities below 1 are
// raised to 1; use RemoveItem to drop a line. Unknown ids are ignored.
func (c *Cart) UpdateQuantity(id string, quantity int) {
	i, ok := c.index[id]
	if !ok {
		return
	}
	if quantity < 1 {
		quantity = 1
	}
	c.lines[i].Quantity = quantity
}

// Clear empties the cart.
func (c *Cart) Clear() {
	c.lines = nil
	c.index = make(map[string]int)
}

// Lines returns a copy of the cart lines in insertion order.
func (c *Cart) Lines() []Line {
	out := make([]Line, len(c.lines))
	copy(out, c.lines)
	return out
}

// Len returns the number of distinct items in the cart.
func (c *Cart) Len() int {
	return len(c.lines)
}

// IsEmpty reports whether the cart has no lines.
func (c *Cart) IsEmpty() bool {
	return len(c.lines) == 0
}

// TotalQuantity returns the sum of all line quantities.
func (c *Cart) TotalQuantity() int {
	total := 0
	for _, line := range c.lines {
		total += line.Quantity
	}
	return total
}

// TotalPrice returns the sum of unit price times quantity over all lines.
func (c *Cart) TotalPrice() decimal.Decimal {
	total := decimal.Zero
	for _, line := range c.lines {
		total = total.Add(decimal.NewFromFloat(line.Price).Mul(decimal.NewFromInt(int64(line.Quantity))))
	}
	return total
}

// OrderLines returns the identifier and quantity of every line. Prices and
// names are left out: the server snapshots them from the catalog.
func (c *Cart) OrderLines() []model.OrderLineRequest {
	out := make([]model.OrderLineRequest, len(c.lines))
	for i, line := range c.lines {
		out[i] = model.OrderLineRequest{MenuItemID: line.ID, Quantity: line.Quantity}
	}
	return out
}
