package errors

import (
	"net/http"
)

// Error codes carried by APIError
const (
	CodeInvalidRequest   = "INVALID_REQUEST"
	CodeValidationFailed = "VALIDATION_FAILED"
)

// APIError describes a malformed request caught by the transport layer
// before it reaches a service
type APIError struct {
	StatusCode int         `json:"status_code"`
	ErrorCode  string      `json:"error_code"`
	Message    string      `json:"message"`
	Details    interface{} `json:"details,omitempty"`
}

func (e *APIError) Error() string {
	return e.Message
}

// ValidationError names one failing request field
type ValidationError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// ValidationErrors is the details payload for multi-field failures
type ValidationErrors struct {
	Errors []ValidationError `json:"errors"`
}

// InvalidRequestWithError wraps a body decoding failure
func InvalidRequestWithError(err error) *APIError {
	return &APIError{
		StatusCode: http.StatusBadRequest,
		ErrorCode:  CodeInvalidRequest,
		Message:    "Invalid request format",
		Details:    err.Error(),
	}
}

// ErrValidation reports a single invalid field
func ErrValidation(field, message string) *APIError {
	return &APIError{
		StatusCode: http.StatusBadRequest,
		ErrorCode:  CodeValidationFailed,
		Message:    "Request validation failed",
		Details:    ValidationError{Field: field, Message: message},
	}
}

// NewValidationErrors reports every invalid field of a request
func NewValidationErrors(errs []ValidationError) *APIError {
	return &APIError{
		StatusCode: http.StatusBadRequest,
		ErrorCode:  CodeValidationFailed,
		Message:    "Request validation failed",
		Details:    ValidationErrors{Errors: errs},
	}
}
