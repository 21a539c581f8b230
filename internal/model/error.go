package model

import "errors"

// ErrorResponse is the body of every non-2xx API response.
type ErrorResponse struct {
	Error string `json:"error"`
}

// Standard error codes for API responses
const (
	ErrCodeUnauthenticated  = "UNAUTHENTICATED"
	ErrCodeForbidden        = "FORBIDDEN"
	ErrCodeInvalidInput     = "INVALID_INPUT"
	ErrCodeMenuItemNotFound = "MENU_ITEM_NOT_FOUND"
	ErrCodeOrderNotFound    = "ORDER_NOT_FOUND"
	ErrCodeInternalError    = "INTERNAL_ERROR"
)

// Domain errors for business logic
type DomainError struct {
	Code    string
	Message string
}

func (e *DomainError) Error() string {
	return e.Message
}

// NewDomainError creates a new domain error
func NewDomainError(code, message string) *DomainError {
	return &DomainError{
		Code:    code,
		Message: message,
	}
}

// NewInvalidInput creates an INVALID_INPUT error carrying a description of the rejected field.
func NewInvalidInput(message string) *DomainError {
	return NewDomainError(ErrCodeInvalidInput, message)
}

// Common domain errors
var (
	ErrUnauthenticated   = NewDomainError(ErrCodeUnauthenticated, "Unauthorized")
	ErrForbidden         = NewDomainError(ErrCodeForbidden, "Forbidden")
	ErrMenuItemsNotFound = NewDomainError(ErrCodeMenuItemNotFound, "One or more menu items not found")
	ErrMenuItemNotFound  = NewDomainError(ErrCodeMenuItemNotFound, "Menu item not found")
	ErrOrderNotFound     = NewDomainError(ErrCodeOrderNotFound, "Order not found")
)

// CodeOf returns the domain error code carried by err, or ErrCodeInternalError
// when err is not a domain error.
func CodeOf(err error) string {
	var de *DomainError
	if errors.As(err, &de) {
		return de.Code
	}
	return ErrCodeInternalError
}
