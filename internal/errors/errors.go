package errors

import (
	"fmt"
	"net/http"
)

// ErrorType represents different categories of errors
type ErrorType string

const (
	ErrorTypeConfiguration     ErrorType = "configuration"
	ErrorTypeModelUnavailable  ErrorType = "model_unavailable"
	ErrorTypeEmptyResponse     ErrorType = "empty_response"
	ErrorTypeMalformedResponse ErrorType = "malformed_response"
	ErrorTypeInvalidStructure  ErrorType = "invalid_structure"
	ErrorTypeValidation        ErrorType = "validation"
	ErrorTypeNetwork           ErrorType = "network"
	ErrorTypeTimeout           ErrorType = "timeout"
	ErrorTypeNotFound          ErrorType = "not_found"
	ErrorTypeInternal          ErrorType = "internal"
)

// MalformedKind distinguishes the two failure heuristics of the response
// parser. The classification is best-effort, not proof.
type MalformedKind string

const (
	MalformedTruncated MalformedKind = "truncated"
	MalformedGarbled   MalformedKind = "garbled"
)

// AppError represents a structured application error
type AppError struct {
	Type       ErrorType `json:"type"`
	Message    string    `json:"message"`
	Details    string    `json:"details,omitempty"`
	StatusCode int       `json:"status_code"`
	Cause      error     `json:"-"`
}

// Error implements the error interface
func (e *AppError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s (caused by: %v)", e.Type, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Type, e.Message)
}

// Unwrap returns the underlying error
func (e *AppError) Unwrap() error {
	return e.Cause
}

// NewConfigurationError creates an error for missing or invalid credentials.
// Configuration failures are fatal and must never be retried.
func NewConfigurationError(message string, cause error) *AppError {
	return &AppError{
		Type:       ErrorTypeConfiguration,
		Message:    message,
		Details:    "check configuration",
		StatusCode: http.StatusInternalServerError,
		Cause:      cause,
	}
}

// NewModelUnavailableError wraps the last underlying failure after the
// retrying invoker has exhausted its attempts.
func NewModelUnavailableError(message string, cause error) *AppError {
	return &AppError{
		Type:       ErrorTypeModelUnavailable,
		Message:    message,
		Details:    "try again",
		StatusCode: http.StatusBadGateway,
		Cause:      cause,
	}
}

// NewEmptyResponseError reports a model reply with no content at all.
func NewEmptyResponseError() *AppError {
	return &AppError{
		Type:       ErrorTypeEmptyResponse,
		Message:    "the model returned an empty response",
		Details:    "try again",
		StatusCode: http.StatusBadGateway,
	}
}

// NewMalformedResponseError reports text that is not valid JSON, with a
// heuristic kind of truncated or garbled.
func NewMalformedResponseError(kind MalformedKind, cause error) *AppError {
	message := "the model response could not be parsed"
	details := "try again"
	if kind == MalformedTruncated {
		message = "the model response appears to be cut off"
		details = "try a simpler image"
	}
	return &AppError{
		Type:       ErrorTypeMalformedResponse,
		Message:    fmt.Sprintf("%s (%s)", message, kind),
		Details:    details,
		StatusCode: http.StatusBadGateway,
		Cause:      cause,
	}
}

// NewInvalidStructureError reports JSON that parsed but whose top-level shape
// is wrong (for example "patterns" is not an array). This is the only schema
// deviation allowed to propagate instead of being repaired in place.
func NewInvalidStructureError(message string) *AppError {
	return &AppError{
		Type:       ErrorTypeInvalidStructure,
		Message:    message,
		Details:    "try a simpler image",
		StatusCode: http.StatusBadGateway,
	}
}

// NewValidationError creates a new validation error
func NewValidationError(message string, cause error) *AppError {
	return &AppError{
		Type:       ErrorTypeValidation,
		Message:    message,
		StatusCode: http.StatusBadRequest,
		Cause:      cause,
	}
}

// NewNetworkError creates a new network error
func NewNetworkError(message string, cause error) *AppError {
	return &AppError{
		Type:       ErrorTypeNetwork,
		Message:    message,
		StatusCode: http.StatusBadGateway,
		Cause:      cause,
	}
}

// NewTimeoutError creates a new timeout error
func NewTimeoutError(message string, cause error) *AppError {
	return &AppError{
		Type:       ErrorTypeTimeout,
		Message:    message,
		StatusCode: http.StatusGatewayTimeout,
		Cause:      cause,
	}
}

// NewNotFoundError creates a new not found error
func NewNotFoundError(message string, cause error) *AppError {
	return &AppError{
		Type:       ErrorTypeNotFound,
		Message:    message,
		StatusCode: http.StatusNotFound,
		Cause:      cause,
	}
}

// NewInternalError creates a new internal error
func NewInternalError(message string, cause error) *AppError {
	return &AppError{
		Type:       ErrorTypeInternal,
		Message:    message,
		StatusCode: http.StatusInternalServerError,
		Cause:      cause,
	}
}

// IsType checks if the error is of a specific type
func IsType(err error, errorType ErrorType) bool {
	if appErr, ok := err.(*AppError); ok {
		return appErr.Type == errorType
	}
	return false
}

// GetStatusCode extracts the HTTP status code from an error
func GetStatusCode(err error) int {
	if appErr, ok := err.(*AppError); ok {
		return appErr.StatusCode
	}
	return http.StatusInternalServerError
}
