package errors

import (
	"fmt"
	"strings"
)

// ErrorType classifies an AppError. The error handler maps each type to a
// problem type and status.
type ErrorType string

const (
	// ErrTypeParsing marks a dataset that was read but could not be understood
	ErrTypeParsing ErrorType = "PARSING"
	// ErrTypeStorage marks a filesystem or encoder failure
	ErrTypeStorage ErrorType = "STORAGE"
	// ErrTypeValidation marks caller input that fails a precondition
	ErrTypeValidation ErrorType = "VALIDATION"
	// ErrTypeNotFound marks a missing file, sheet or report
	ErrTypeNotFound ErrorType = "NOT_FOUND"
)

// Sentinels for errors.Is. They match any AppError of the same type.
var (
	ErrParsing  = &AppError{Type: ErrTypeParsing}
	ErrStorage  = &AppError{Type: ErrTypeStorage}
	ErrInvalid  = &AppError{Type: ErrTypeValidation}
	ErrNotFound = &AppError{Type: ErrTypeNotFound}
)

// AppError is raised by the loader, the services and the exporters.
// Context entries are surfaced to API clients as problem extensions.
type AppError struct {
	Type    ErrorType
	Message string
	Cause   error
	Context map[string]interface{}
}

func (e *AppError) Error() string {
	var b strings.Builder
	fmt.Fprintf(&b, "[%s] %s", e.Type, e.Message)
	if e.Cause != nil {
		fmt.Fprintf(&b, ": %v", e.Cause)
	}
	return b.String()
}

func (e *AppError) Unwrap() error {
	return e.Cause
}

// Is reports whether target is the sentinel for e's type
func (e *AppError) Is(target error) bool {
	t, ok := target.(*AppError)
	return ok && t.Message == "" && t.Cause == nil && t.Type == e.Type
}

// WithContext attaches a key/value pair and returns e for chaining
func (e *AppError) WithContext(key string, value interface{}) *AppError {
	if e.Context == nil {
		e.Context = make(map[string]interface{})
	}
	e.Context[key] = value
	return e
}

func newAppError(errType ErrorType, message string, cause error) *AppError {
	return &AppError{Type: errType, Message: message, Cause: cause}
}

// NewParsingError reports an unreadable dataset layout or value
func NewParsingError(message string, cause error) *AppError {
	return newAppError(ErrTypeParsing, message, cause)
}

// NewStorageError reports a failed read or write
func NewStorageError(message string, cause error) *AppError {
	return newAppError(ErrTypeStorage, message, cause)
}

// NewAppValidationError reports invalid caller input
func NewAppValidationError(message string) *AppError {
	return newAppError(ErrTypeValidation, message, nil)
}

// NewNotFoundError reports a missing resource by name
func NewNotFoundError(resource string) *AppError {
	return newAppError(ErrTypeNotFound, resource+" not found", nil)
}
