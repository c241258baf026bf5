package core

import (
	"errors"
	"fmt"
)

// Domain errors - centralized error definitions
var (
	// Not found errors
	ErrNotFound          = errors.New("resource not found")
	ErrOrderNotFound     = fmt.Errorf("%w: order", ErrNotFound)
	ErrDatasetNotFound   = fmt.Errorf("%w: dataset", ErrNotFound)
	ErrInventoryNotFound = fmt.Errorf("%w: inventory item", ErrNotFound)

	// Request rejection errors
	ErrInvalidInput      = errors.New("invalid input")
	ErrOwnershipMismatch = errors.New("resource belongs to a different owner or organization")
	ErrStateConflict     = errors.New("resource is not in a usable state")
	ErrInsufficientStock = errors.New("insufficient stock")

	// Storage errors
	ErrSchemaMismatch      = errors.New("storage schema mismatch")
	ErrConstraintViolation = errors.New("storage constraint violation")
	ErrPermissionDenied    = errors.New("storage permission denied")

	// ErrInventoryNotDebited marks a sale that was persisted while the final
	// inventory debit failed. Records are partially committed and must be
	// reconciled manually; never swallow this error.
	ErrInventoryNotDebited = errors.New("sale recorded but inventory was not updated")
)

// Error constructors with context
func NewNotFoundError(resource string, id string) error {
	return fmt.Errorf("%w: %s with id %s", ErrNotFound, resource, id)
}

func NewValidationError(field string, reason string) error {
	return fmt.Errorf("%w: %s: %s", ErrInvalidInput, field, reason)
}

func NewInsufficientStockError(requested int, available float64) error {
	return fmt.Errorf("%w: requested %d, %g remaining", ErrInsufficientStock, requested, available)
}

// Error checking helpers
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}

func IsRejection(err error) bool {
	return errors.Is(err, ErrInvalidInput) ||
		errors.Is(err, ErrOwnershipMismatch) ||
		errors.Is(err, ErrStateConflict) ||
		errors.Is(err, ErrInsufficientStock)
}

func IsSchemaMismatch(err error) bool {
	return errors.Is(err, ErrSchemaMismatch)
}

func IsPartialSuccess(err error) bool {
	return errors.Is(err, ErrInventoryNotDebited)
}
