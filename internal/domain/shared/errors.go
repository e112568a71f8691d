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

// NewDomainErrorf creates a new domain error with a formatted message.
// Messages should carry the identifying key of the failing entity
// (document barcode, product id) so operators can locate it.
func NewDomainErrorf(code, format string, args ...any) *DomainError {
	return &DomainError{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
	}
}

// Common domain errors
var (
	ErrNotFound            = NewDomainError("NOT_FOUND", "Resource not found")
	ErrValidation          = NewDomainError("VALIDATION_ERROR", "Invalid input provided")
	ErrUnauthorized        = NewDomainError("UNAUTHORIZED", "Not authorized to perform this action")
	ErrInvalidTransition   = NewDomainError("INVALID_TRANSITION", "Status transition not allowed")
	ErrOrphanLineItem      = NewDomainError("ORPHAN_LINE_ITEM", "Line item has no matching order line")
	ErrConcurrencyConflict = NewDomainError("CONCURRENCY_CONFLICT", "Resource was modified by another process")
	ErrMissingDefaultCell  = NewDomainError("MISSING_DEFAULT_CELL", "Department has no default cell configured")
	ErrAlreadyPosted       = NewDomainError("ALREADY_POSTED", "Document inventory effects were already applied")
	ErrAlreadyExists       = NewDomainError("ALREADY_EXISTS", "Resource already exists")
)
