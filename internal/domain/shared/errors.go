package shared

import "fmt"

// DomainError represents a domain-level error
type DomainError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// Error implements the error interface
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

// Error codes used across the billing domain
const (
	CodeNotFound       = "NOT_FOUND"
	CodeValidation     = "VALIDATION_ERROR"
	CodeConflict       = "CONFLICT"
	CodeInvalidState   = "INVALID_STATE"
	CodeNoActiveTariff = "NO_ACTIVE_TARIFF"
	CodeTransaction    = "TRANSACTION_ERROR"
)

// Common domain errors
var (
	ErrNotFound       = NewDomainError(CodeNotFound, "Resource not found")
	ErrConflict       = NewDomainError(CodeConflict, "Resource already exists")
	ErrInvalidInput   = NewDomainError(CodeValidation, "Invalid input provided")
	ErrInvalidState   = NewDomainError(CodeInvalidState, "Operation not allowed in current state")
	ErrNoActiveTariff = NewDomainError(CodeNoActiveTariff, "No active tariff plan is configured")
)

// NewNotFoundError creates a NOT_FOUND error naming the missing resource
func NewNotFoundError(resource string) *DomainError {
	return NewDomainError(CodeNotFound, resource+" not found")
}

// NewValidationError creates a VALIDATION_ERROR with a formatted message
func NewValidationError(format string, args ...any) *DomainError {
	return NewDomainError(CodeValidation, fmt.Sprintf(format, args...))
}

// NewConflictError creates a CONFLICT error with a formatted message
func NewConflictError(format string, args ...any) *DomainError {
	return NewDomainError(CodeConflict, fmt.Sprintf(format, args...))
}

// NewStateError creates an INVALID_STATE error with a formatted message
func NewStateError(format string, args ...any) *DomainError {
	return NewDomainError(CodeInvalidState, fmt.Sprintf(format, args...))
}

// NewTransactionError wraps a storage-layer failure. The caller may retry;
// no partial effect of the aborted unit of work is observable.
func NewTransactionError(err error) *DomainError {
	return NewDomainError(CodeTransaction, "Storage transaction aborted: "+err.Error())
}
