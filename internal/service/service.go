package service

import (
	"context"

	"restaurant-ordering/internal/model"

	"github.com/google/uuid"
)

// MenuService defines operations on the menu catalog.
type MenuService interface {
	// List returns the full menu, served from the cache when possible.
	List(ctx context.Context) ([]model.MenuItem, error)

	// GetByID returns a single menu item.
	GetByID(ctx context.Context, id string) (*model.MenuItem, error)

	// Create validates and stores a new menu item.
	Create(ctx context.Context, req *model.CreateMenuItemRequest) (*model.MenuItem, error)

	// Update applies a partial update to a menu item.
	Update(ctx context.Context, id string, req *model.UpdateMenuItemRequest) (*model.MenuItem, error)

	// Delete removes a menu item.
	Delete(ctx context.Context, id string) error
}

// OrderService defines operations on the order ledger.
type OrderService interface {
	// CreateOrder reconciles a client order request against the catalog and
	// records it for userID. Prices and names are taken from the catalog,
	// never from the request.
	CreateOrder(ctx context.Context, userID string, req *model.CreateOrderRequest) (*model.Order, error)

	// GetByID retrieves an order owned by userID.
	GetByID(ctx context.Context, userID string, id uuid.UUID) (*model.Order, error)

	// List retrieves all orders of userID, newest first.
	List(ctx context.Context, userID string) ([]model.Order, error)
}
