package repository

import (
	"context"

	"restaurant-ordering/internal/model"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

// OrderRepository defines the interface for order ledger access.
type OrderRepository interface {
	// BeginTx starts a new database transaction.
	BeginTx(ctx context.Context) (pgx.Tx, error)

	// CreateOrder inserts the order header within the provided transaction.
	CreateOrder(ctx context.Context, tx pgx.Tx, order *model.Order) error

	// CreateOrderItems inserts the order lines within the provided
	// transaction. Slice order is preserved on read.
	CreateOrderItems(ctx context.Context, tx pgx.Tx, items []model.OrderItem) error

	// GetByID retrieves an order with its items. It returns nil when the
	// order does not exist or belongs to another user.
	GetByID(ctx context.Context, userID string, id uuid.UUID) (*model.Order, error)

	// ListByUser retrieves all orders of a user with their items, newest first.
	ListByUser(ctx context.Context, userID string) ([]model.Order, error)
}

// UserRepository defines the interface for local user records.
type UserRepository interface {
	// GetByID retrieves a user, or nil when none exists.
	GetByID(ctx context.Context, id string) (*model.User, error)

	// CreateIfAbsent inserts the user unless a record with the same id
	// exists, and returns the stored record either way.
	CreateIfAbsent(ctx context.Context, user *model.User) (*model.User, error)
}
