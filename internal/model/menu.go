package model

import "time"

// MenuItem represents a purchasable item in the restaurant catalog.
type MenuItem struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	Category    string    `json:"category"`
	Price       float64   `json:"price"`
	ImageURL    *string   `json:"imageUrl,omitempty"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// CreateMenuItemRequest represents the payload for adding a menu item. The
// price bound matches the NUMERIC(10,2) column order lines are stored in.
type CreateMenuItemRequest struct {
	Name        string   `json:"name" validate:"nonblank"`
	Description string   `json:"description"`
	Price       *float64 `json:"price" validate:"required,gte=0,lte=99999999.99"`
	Category    string   `json:"category" validate:"nonblank"`
	ImageURL    *string  `json:"imageUrl,omitempty"`
}

// UpdateMenuItemRequest represents a partial update of a menu item.
type UpdateMenuItemRequest struct {
	Name        *string  `json:"name,omitempty" validate:"omitempty,nonblank"`
	Description *string  `json:"description,omitempty"`
	Price       *float64 `json:"price,omitempty" validate:"omitempty,gte=0,lte=99999999.99"`
	Category    *string  `json:"category,omitempty" validate:"omitempty,nonblank"`
	ImageURL    *string  `json:"imageUrl,omitempty"`
}

// IsEmpty reports whether the update carries no fields.
func (r *UpdateMenuItemRequest) IsEmpty() bool {
	return r.Name == nil && r.Description == nil && r.Price == nil && r.Category == nil && r.ImageURL == nil
}

// MenuItemInput is a validated menu item ready to be stored.
type MenuItemInput struct {
	Name        string  `json:"name"`
	Description string  `json:"description"`
	Category    string  `json:"category"`
	Price       float64 `json:"price"`
	ImageURL    *string `json:"imageUrl,omitempty"`
}

// MenuResponse wraps the full menu.
type MenuResponse struct {
	MenuItems []MenuItem `json:"menuItems"`
}

// MenuItemResponse wraps a single menu item.
type MenuItemResponse struct {
	MenuItem *MenuItem `json:"menuItem"`
}
