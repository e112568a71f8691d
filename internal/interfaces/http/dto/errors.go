package dto

import "net/http"

// Error codes shared between the domain layer and the HTTP surface.
// Domain errors carry these codes verbatim; the map below decides the
// HTTP status they translate to.
const (
	ErrCodeInternal     = "INTERNAL_ERROR"
	ErrCodeBadRequest   = "BAD_REQUEST"
	ErrCodeValidation   = "VALIDATION_ERROR"
	ErrCodeUnauthorized = "UNAUTHORIZED"
	ErrCodeForbidden    = "FORBIDDEN"
	ErrCodeNotFound     = "NOT_FOUND"

	ErrCodeAlreadyExists       = "ALREADY_EXISTS"
	ErrCodeConcurrencyConflict = "CONCURRENCY_CONFLICT"

	ErrCodeInvalidTransition  = "INVALID_TRANSITION"
	ErrCodeOrphanLineItem     = "ORPHAN_LINE_ITEM"
	ErrCodeAlreadyPosted      = "ALREADY_POSTED"
	ErrCodeMissingDefaultCell = "MISSING_DEFAULT_CELL"
	ErrCodeInsufficientStock  = "INSUFFICIENT_STOCK"
)

// ErrorCodeHTTPStatus maps error codes to HTTP status codes.
var ErrorCodeHTTPStatus = map[string]int{
	ErrCodeInternal:     http.StatusInternalServerError,
	ErrCodeBadRequest:   http.StatusBadRequest,
	ErrCodeValidation:   http.StatusBadRequest,
	ErrCodeUnauthorized: http.StatusUnauthorized,
	ErrCodeForbidden:    http.StatusForbidden,
	ErrCodeNotFound:     http.StatusNotFound,

	ErrCodeAlreadyExists:       http.StatusConflict,
	ErrCodeConcurrencyConflict: http.StatusConflict,

	// Business rule violations -> 422 Unprocessable Entity
	ErrCodeInvalidTransition:  http.StatusUnprocessableEntity,
	ErrCodeOrphanLineItem:     http.StatusUnprocessableEntity,
	ErrCodeAlreadyPosted:      http.StatusUnprocessableEntity,
	ErrCodeMissingDefaultCell: http.StatusUnprocessableEntity,
	ErrCodeInsufficientStock:  http.StatusUnprocessableEntity,
}

// GetHTTPStatus returns the HTTP status code for an error code.
// Unknown codes fall back to 500 Internal Server Error.
func GetHTTPStatus(code string) int {
	if status, ok := ErrorCodeHTTPStatus[code]; ok {
		return status
	}
	return http.StatusInternalServerError
}
