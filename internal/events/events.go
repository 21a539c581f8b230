// Package events publishes domain events about placed orders.
package events

import (
	"context"
	"time"

	"restaurant-ordering/internal/model"

	"github.com/google/uuid"
)

// RoutingKeyOrderPlaced is the routing key of OrderPlaced messages.
const RoutingKeyOrderPlaced = "order.placed"

// OrderPlaced is emitted once an order has been committed to the ledger.
type OrderPlaced struct {
	OrderID        uuid.UUID         `json:"orderId"`
	UserID         string            `json:"userId"`
	RecipientName  string            `json:"recipientName"`
	RecipientPhone string            `json:"recipientPhone"`
	Items          []OrderPlacedItem `json:"items"`
	Total          string            `json:"total"`
	PlacedAt       time.Time         `json:"placedAt"`
}

// OrderPlacedItem is a line of an OrderPlaced event.
type OrderPlacedItem struct {
	MenuItemID string  `json:"menuItemId"`
	Name       string  `json:"name"`
	Price      float64 `json:"price"`
	Quantity   int     `json:"quantity"`
}

// NewOrderPlaced builds the event for order.
func NewOrderPlaced(order *model.Order) OrderPlaced {
	items := make([]OrderPlacedItem, len(order.OrderItems))
	for i, it := range order.OrderItems {
		items[i] = OrderPlacedItem{
			MenuItemID: it.MenuItemID,
			Name:       it.Name,
			Price:      it.Price,
			Quantity:   it.Quantity,
		}
	}

	return OrderPlaced{
		OrderID:        order.ID,
		UserID:         order.UserID,
		RecipientName:  order.RecipientName,
		RecipientPhone: order.RecipientPhone,
		Items:          items,
		Total:          order.Total().StringFixed(2),
		PlacedAt:       order.CreatedAt,
	}
}

// Publisher sends order events to downstream consumers.
type Publisher interface {
	PublishOrderPlaced(ctx context.Context, order *model.Order) error
	Close() error
}

type noopPublisher struct{}

// NewNoopPublisher returns a Publisher that discards every event.
func NewNoopPublisher() Publisher {
	return noopPublisher{}
}

func (noopPublisher) PublishOrderPlaced(context.Context, *model.Order) error { return nil }

func (noopPublisher) Close() error { return nil }
