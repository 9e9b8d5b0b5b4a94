package model

import "fmt"

// ErrorResponse represents a standardised error response.
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}

// Standard error codes for API responses
const (
	ErrCodeInvalidJSON         = "INVALID_JSON"
	ErrCodeInvalidStatus       = "INVALID_STATUS"
	ErrCodeNotFound            = "NOT_FOUND"
	ErrCodeEmptyCart           = "EMPTY_CART"
	ErrCodeInsufficientStock   = "INSUFFICIENT_STOCK"
	ErrCodeProductUnavailable  = "PRODUCT_UNAVAILABLE"
	ErrCodeConstraintViolation = "CONSTRAINT_VIOLATION"
	ErrCodeInvalidCredentials  = "INVALID_CREDENTIALS"
	ErrCodeForbidden           = "FORBIDDEN"
	ErrCodeInternalError       = "INTERNAL_ERROR"
)

// DomainError is a business-rule failure carried up to the HTTP layer,
// where its code is mapped to a status. Services return DomainError for
// expected failures; infrastructure errors are wrapped with %w instead.
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

// Common domain errors
var (
	ErrEmptyCart          = NewDomainError(ErrCodeEmptyCart, "Cart is empty")
	ErrInvalidCredentials = NewDomainError(ErrCodeInvalidCredentials, "Invalid credentials")
	ErrInvalidRefresh     = NewDomainError(ErrCodeInvalidCredentials, "Invalid refresh token")
)

// NewNotFound reports an absent (or soft-deleted) resource, e.g. "Product not found".
func NewNotFound(resource string) *DomainError {
	return NewDomainError(ErrCodeNotFound, fmt.Sprintf("%s not found", resource))
}

// NewInsufficientStock reports that a product's stock cannot cover the
// requested quantity.
func NewInsufficientStock(productName string) *DomainError {
	return NewDomainError(ErrCodeInsufficientStock, fmt.Sprintf("Insufficient stock for %s", productName))
}

// NewProductUnavailable reports a product that vanished or was soft-deleted
// between cart-add and checkout.
func NewProductUnavailable(productName string) *DomainError {
	return NewDomainError(ErrCodeProductUnavailable, fmt.Sprintf("Product %s is no longer available", productName))
}

// NewInvalidStatus reports an order status outside the allowed set.
func NewInvalidStatus(status string) *DomainError {
	return NewDomainError(ErrCodeInvalidStatus, fmt.Sprintf("Invalid order status: %s", status))
}

// NewConstraintViolation reports a uniqueness conflict, e.g. a duplicate email.
func NewConstraintViolation(message string) *DomainError {
	return NewDomainError(ErrCodeConstraintViolation, message)
}
