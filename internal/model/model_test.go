package model

import (
	"errors"
	"fmt"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestCodeOf(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		expected string
	}{
		{name: "Domain error", err: ErrMenuItemsNotFound, expected: ErrCodeMenuItemNotFound},
		{name: "Wrapped domain error", err: fmt.Errorf("create order: %w", ErrUnauthenticated), expected: ErrCodeUnauthenticated},
		{name: "Invalid input", err: NewInvalidInput("recipientPhone: must be exactly 10 characters"), expected: ErrCodeInvalidInput},
		{name: "Plain error", err: errors.New("connection refused"), expected: ErrCodeInternalError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, CodeOf(tt.err))
		})
	}
}

func TestOrder_Total(t *testing.T) {
	order := &Order{
		OrderItems: []OrderItem{
			{MenuItemID: "m1", Name: "Burger", Price: 5.00, Quantity: 2},
			{MenuItemID: "m2", Name: "Fries", Price: 2.50, Quantity: 1},
		},
	}

	assert.True(t, decimal.RequireFromString("12.50").Equal(order.Total()))
	assert.True(t, (&Order{}).Total().IsZero())
}

func TestUpdateMenuItemRequest_IsEmpty(t *testing.T) {
	price := 1.0
	assert.True(t, (&UpdateMenuItemRequest{}).IsEmpty())
	assert.False(t, (&UpdateMenuItemRequest{Price: &price}).IsEmpty())
}
