package models

import (
	"errors"
	"fmt"
)

var (
	ErrEmptyCart       = errors.New("cart is empty")
	ErrInvalidQuantity = errors.New("quantity must be a positive integer")
	ErrLineNotFound    = errors.New("product is not in the cart")
	ErrProductNotFound = errors.New("product not found")
	ErrOrderNotFound   = errors.New("order not found")
	ErrUserNotFound    = errors.New("user not found")
	ErrEmailTaken      = errors.New("email is already registered")
	ErrBadCredentials  = errors.New("invalid email or password")
	ErrForbidden       = errors.New("not allowed to access this resource")
)

// InsufficientStockError names the offending product so the checkout response
// can tell the customer exactly which line failed. Order creation with this
// error leaves no partial writes behind.
type InsufficientStockError struct {
	ProductID   uint
	ProductName string
	Requested   int
	Available   int
}

func (e *InsufficientStockError) Error() string {
	if e.ProductName != "" {
		return fmt.Sprintf("insufficient stock for %q: requested %d, available %d", e.ProductName, e.Requested, e.Available)
	}
	return fmt.Sprintf("insufficient stock for product %d", e.ProductID)
}

// UnavailableProductError fails order creation when a cart line's product has
// been deleted or deactivated since it was added. A catalog lookup miss is a
// 404, but here the customer's cart names the product, so handlers surface
// this as a business-rule 400 instead.
type UnavailableProductError struct {
	ProductID   uint
	ProductName string
}

func (e *UnavailableProductError) Error() string {
	if e.ProductName != "" {
		return fmt.Sprintf("product %q is no longer available", e.ProductName)
	}
	return fmt.Sprintf("product %d is no longer available", e.ProductID)
}

// ValidationError carries per-field messages for malformed input; handlers
// surface it as 422.
type ValidationError struct {
	Fields map[string]string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation failed for %d field(s)", len(e.Fields))
}
