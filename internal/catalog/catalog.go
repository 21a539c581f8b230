// Package catalog provides the menu catalog: the document store holding menu
// items, a read-through cache for the full menu and the seed loaders used to
// populate an empty catalog.
package catalog

import (
	"context"

	"restaurant-ordering/internal/model"
)

// Store defines data access for menu items.
type Store interface {
	// List returns every menu item, oldest first.
	List(ctx context.Context) ([]model.MenuItem, error)

	// FindByID returns the item with the given id, or nil when it does not
	// exist. Malformed ids are treated as absent.
	FindByID(ctx context.Context, id string) (*model.MenuItem, error)

	// FindByIDs returns the items whose ids are in ids. Ids that do not
	// resolve are silently omitted, so callers compare lengths to detect
	// missing items.
	FindByIDs(ctx context.Context, ids []string) ([]model.MenuItem, error)

	// Create stores a new item and returns it with its assigned id.
	Create(ctx context.Context, in *model.MenuItemInput) (*model.MenuItem, error)

	// Update applies the non-nil fields of req. It returns nil when the item
	// does not exist.
	Update(ctx context.Context, id string, req *model.UpdateMenuItemRequest) (*model.MenuItem, error)

	// Delete removes the item and reports whether it existed.
	Delete(ctx context.Context, id string) (bool, error)

	// Count returns the number of stored items.
	Count(ctx context.Context) (int64, error)

	// InsertMany stores all items and returns how many were written.
	InsertMany(ctx context.Context, items []model.MenuItemInput) (int, error)
}

// Cache holds a copy of the full menu.
type Cache interface {
	// GetMenu returns the cached menu and whether it was present.
	GetMenu(ctx context.Context) ([]model.MenuItem, bool, error)

	// SetMenu replaces the cached menu.
	SetMenu(ctx context.Context, items []model.MenuItem) error

	// Invalidate drops the cached menu.
	Invalidate(ctx context.Context) error
}
