package domain

import "fmt"

// ValidationError reports a malformed or missing field. It is always raised
// before any mutation is attempted; retrying after correction is safe.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %v: %v", e.Field, e.Reason)
}

func NewValidationError(field, format string, args ...any) *ValidationError {
	return &ValidationError{Field: field, Reason: fmt.Sprintf(format, args...)}
}

// ConflictError reports a state collision: a reservation overlap, an illegal
// status transition, or a duplicate unique value.
type ConflictError struct {
	Entity string
	Reason string
}

func (e *ConflictError) Error() string {
	return fmt.Sprintf("%v conflict: %v", e.Entity, e.Reason)
}

// InsufficientStockError reports that a mutation would drive a stock-tracked
// product's quantity below zero. The store is left unchanged.
type InsufficientStockError struct {
	ProductID uint
	Requested float64
	Available float64
}

func (e *InsufficientStockError) Error() string {
	return fmt.Sprintf("insufficient stock for product %v: requested %v, available %v",
		e.ProductID, e.Requested, e.Available)
}
