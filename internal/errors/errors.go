package errors

import (
	"fmt"
)

// AppError represents a structured application error
type AppError struct {
	Code    string
	Message string
	Cause   error
}

func (e *AppError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Cause)
	}
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Cause
}

// New creates a new AppError
func New(code, message string) *AppError {
	return &AppError{
		Code:    code,
		Message: message,
	}
}

// Wrap wraps an error with additional context, keeping the original code
func Wrap(err error, message string) error {
	if err == nil {
		return nil
	}
	if appErr, ok := err.(*AppError); ok {
		return &AppError{
			Code:    appErr.Code,
			Message: message,
			Cause:   appErr,
		}
	}
	return &AppError{
		Code:    CodeInternalError,
		Message: message,
		Cause:   err,
	}
}

// Wrapf wraps an error with formatted additional context
func Wrapf(err error, format string, args ...interface{}) error {
	if err == nil {
		return nil
	}
	return Wrap(err, fmt.Sprintf(format, args...))
}

// WithCode attaches an error code to an existing error
func WithCode(code string, err error) error {
	if err == nil {
		return nil
	}
	return &AppError{
		Code:    code,
		Message: err.Error(),
		Cause:   err,
	}
}

// GetCode returns the error code if it's an AppError, otherwise "UNKNOWN"
func GetCode(err error) string {
	if appErr, ok := err.(*AppError); ok {
		return appErr.Code
	}
	return "UNKNOWN"
}

// Error taxonomy: kind of failure → caller-visible classification
const (
	CodeValidation        = "VALIDATION_ERROR"
	CodeNotFound          = "NOT_FOUND"
	CodeOwnershipMismatch = "OWNERSHIP_MISMATCH"
	CodeStateConflict     = "STATE_CONFLICT"
	CodeInsufficientStock = "INSUFFICIENT_STOCK"
	CodeSchemaMismatch    = "SCHEMA_MISMATCH"
	CodeConstraint        = "CONSTRAINT_VIOLATION"
	CodePermissionDenied  = "PERMISSION_DENIED"
	CodeInternalError     = "INTERNAL_ERROR"
	// CodePartialSuccess marks the saga's inconsistency window: the sale was
	// recorded but the inventory debit failed.
	CodePartialSuccess = "PARTIAL_SUCCESS"
)

// Common error constructors
func Validation(message string) *AppError {
	return New(CodeValidation, message)
}

func NotFound(resource string) *AppError {
	return New(CodeNotFound, fmt.Sprintf("%s not found", resource))
}

func OwnershipMismatch(resource string) *AppError {
	return New(CodeOwnershipMismatch, fmt.Sprintf("%s belongs to a different owner or organization", resource))
}

func StateConflict(message string) *AppError {
	return New(CodeStateConflict, message)
}

func InsufficientStock(message string) *AppError {
	return New(CodeInsufficientStock, message)
}

func Internal(message string) *AppError {
	return New(CodeInternalError, message)
}

func PartialSuccess(message string, cause error) *AppError {
	return &AppError{Code: CodePartialSuccess, Message: message, Cause: cause}
}
