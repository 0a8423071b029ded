// Package errors provides custom error types for the cashflow API.
// All service-layer errors should use AppError to ensure consistent,
// secure error responses that never leak internal details to clients.
package errors

import "net/http"

// AppError represents a structured application error with an error code,
// human-readable message, HTTP status code, and optional internal error.
type AppError struct {
	Code       string `json:"code"`
	Message    string `json:"message"`
	StatusCode int    `json:"-"`
	Internal   error  `json:"-"`
}

// Error implements the error interface.
func (e *AppError) Error() string { return e.Message }

// Unwrap returns the internal error for use with errors.Is/As.
func (e *AppError) Unwrap() error { return e.Internal }

// Is matches any AppError carrying the same code, so wrapped copies of a
// sentinel compare equal to it.
func (e *AppError) Is(target error) bool {
	t, ok := target.(*AppError)
	return ok && t.Code == e.Code
}

// Wrap creates a new AppError with the same code/message/status but wraps an internal error.
func Wrap(sentinel *AppError, internal error) *AppError {
	return &AppError{
		Code:       sentinel.Code,
		Message:    sentinel.Message,
		StatusCode: sentinel.StatusCode,
		Internal:   internal,
	}
}

// WithMessage creates a new AppError with a custom message.
func WithMessage(sentinel *AppError, message string) *AppError {
	return &AppError{
		Code:       sentinel.Code,
		Message:    message,
		StatusCode: sentinel.StatusCode,
		Internal:   sentinel.Internal,
	}
}

// Authentication errors.
var (
	ErrUnauthorized = &AppError{Code: "UNAUTHORIZED", Message: "Authentication required", StatusCode: http.StatusUnauthorized}
)

// General errors.
var (
	ErrInvalidInput   = &AppError{Code: "INVALID_INPUT", Message: "Invalid input", StatusCode: http.StatusBadRequest}
	ErrValidation     = &AppError{Code: "VALIDATION_ERROR", Message: "Validation failed", StatusCode: http.StatusBadRequest}
	ErrNotFound       = &AppError{Code: "NOT_FOUND", Message: "Resource not found", StatusCode: http.StatusNotFound}
	ErrInternalServer = &AppError{Code: "INTERNAL_ERROR", Message: "An internal error occurred", StatusCode: http.StatusInternalServerError}
)

// Store errors.
var (
	ErrStoreWrite      = &AppError{Code: "STORE_WRITE_FAILURE", Message: "Failed to save changes", StatusCode: http.StatusInternalServerError}
	ErrStoreRead       = &AppError{Code: "STORE_READ_FAILURE", Message: "Failed to load data", StatusCode: http.StatusInternalServerError}
	ErrVersionConflict = &AppError{Code: "VERSION_CONFLICT", Message: "The transaction was changed by someone else; reload and try again", StatusCode: http.StatusConflict}
)

// Transaction errors.
var (
	ErrTransactionNotFound = &AppError{Code: "TRANSACTION_NOT_FOUND", Message: "Transaction not found", StatusCode: http.StatusNotFound}
)

// Transaction type errors.
var (
	ErrTransactionTypeNotFound = &AppError{Code: "TRANSACTION_TYPE_NOT_FOUND", Message: "Transaction type not found", StatusCode: http.StatusNotFound}
	ErrTypeDirectionMismatch   = &AppError{Code: "TYPE_DIRECTION_MISMATCH", Message: "Transaction type category does not match the transaction direction", StatusCode: http.StatusBadRequest}
	ErrTransactionTypeInUse    = &AppError{Code: "TRANSACTION_TYPE_IN_USE", Message: "Transaction type is used by transactions and cannot change category", StatusCode: http.StatusConflict}
)
