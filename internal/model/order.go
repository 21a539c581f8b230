package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Order is an append-only receipt of a placed pickup order.
type Order struct {
	ID             uuid.UUID   `json:"id"`
	UserID         string      `json:"userId"`
	RecipientName  string      `json:"recipientName"`
	RecipientPhone string      `json:"recipientPhone"`
	CreatedAt      time.Time   `json:"createdAt"`
	OrderItems     []OrderItem `json:"orderItems"`
}

// OrderItem is a line of an order. Name and Price are snapshots taken from the
// catalog when the order was placed; MenuItemID is kept for traceability only.
type OrderItem struct {
	ID         uuid.UUID `json:"-"`
	OrderID    uuid.UUID `json:"-"`
	MenuItemID string    `json:"menuItemId"`
	Name       string    `json:"name"`
	Price      float64   `json:"price"`
	Quantity   int       `json:"quantity"`
}

// Total returns the sum of price times quantity over all order items.
func (o *Order) Total() decimal.Decimal {
	total := decimal.Zero
	for _, item := range o.OrderItems {
		total = total.Add(decimal.NewFromFloat(item.Price).Mul(decimal.NewFromInt(int64(item.Quantity))))
	}
	return total
}

// CreateOrderRequest represents the request payload for creating an order.
// Only menu item identifiers and quantities are accepted from the client.
type CreateOrderRequest struct {
	MenuItems      []OrderLineRequest `json:"menuItems" validate:"required,min=1,dive"`
	RecipientName  string             `json:"recipientName" validate:"nonblank"`
	RecipientPhone string             `json:"recipientPhone" validate:"len=10,number"`
}

// MaxLineQuantity bounds the quantity of one menu item in an order, before
// and after duplicate lines are merged. It must match the max tag below.
const MaxLineQuantity = 1000

// OrderLineRequest represents a single line in an order request.
type OrderLineRequest struct {
	MenuItemID string `json:"menuItemId" validate:"nonblank"`
	Quantity   int    `json:"quantity" validate:"min=1,max=1000"`
}

// OrderDraft is a validated order request. Lines hold one entry per distinct
// menu item in first-seen order.
type OrderDraft struct {
	RecipientName  string
	RecipientPhone string
	Lines          []OrderLineRequest
}

// MenuItemIDs returns the distinct menu item identifiers referenced by the draft.
func (d *OrderDraft) MenuItemIDs() []string {
	ids := make([]string, len(d.Lines))
	for i, line := range d.Lines {
		ids[i] = line.MenuItemID
	}
	return ids
}

// OrderResponse wraps a single order.
type OrderResponse struct {
	Order *Order `json:"order"`
}

// OrderListResponse wraps the orders of a user.
type OrderListResponse struct {
	Orders []Order `json:"orders"`
}
