package errors

import (
	stderrors "errors"
	"fmt"
	"io/fs"
	"syscall"
)

// SnipError is the structured error type for snipkit.
type SnipError struct {
	// Code is the unique error code (e.g., "ERR_201_FILE_NOT_FOUND").
	Code string

	// Message is the human-readable error message.
	Message string

	Category Category
	Severity Severity

	// Details contains additional context as key-value pairs.
	Details map[string]string

	// Cause is the underlying error that caused this error.
	Cause error

	// Retryable indicates if the operation can be retried.
	Retryable bool

	// Suggestion is an actionable suggestion for the user.
	Suggestion string
}

// Error implements the error interface.
func (e *SnipError) Error() string {
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

// Unwrap returns the underlying cause for error chain support.
func (e *SnipError) Unwrap() error {
	return e.Cause
}

// Is matches another SnipError by code, so errors.Is works against
// sentinel values built with New.
func (e *SnipError) Is(target error) bool {
	if t, ok := target.(*SnipError); ok {
		return e.Code == t.Code
	}
	return false
}

// WithDetail adds a key-value detail to the error.
// Returns the error for method chaining.
func (e *SnipError) WithDetail(key, value string) *SnipError {
	if e.Details == nil {
		e.Details = make(map[string]string)
	}
	e.Details[key] = value
	return e
}

// WithSuggestion adds an actionable suggestion for the user.
func (e *SnipError) WithSuggestion(suggestion string) *SnipError {
	e.Suggestion = suggestion
	return e
}

// New creates a new SnipError with the given code and message.
// Category, severity, and retryable flag are derived from the code.
func New(code string, message string, cause error) *SnipError {
	return &SnipError{
		Code:      code,
		Message:   message,
		Category:  categoryFromCode(code),
		Severity:  severityFromCode(code),
		Cause:     cause,
		Retryable: isRetryableCode(code),
	}
}

// Wrap creates a SnipError from an existing error.
// The error's message becomes the SnipError message.
func Wrap(code string, err error) *SnipError {
	if err == nil {
		return nil
	}
	return New(code, err.Error(), err)
}

// ConfigError creates a configuration-related error.
func ConfigError(message string, cause error) *SnipError {
	return New(ErrCodeConfigInvalid, message, cause)
}

// IOError creates an I/O error, picking the code from the cause: a missing
// file maps to ERR_201, a permission failure to ERR_202, a full disk to
// ERR_203, and a directory where a file was expected to ERR_406. Anything
// else is reported as ERR_202.
func IOError(message string, cause error) *SnipError {
	code := ErrCodeFilePermission
	switch {
	case stderrors.Is(cause, fs.ErrNotExist):
		code = ErrCodeFileNotFound
	case stderrors.Is(cause, syscall.ENOSPC):
		code = ErrCodeDiskFull
	case stderrors.Is(cause, syscall.EISDIR):
		code = ErrCodeInvalidPath
	}
	return New(code, message, cause)
}

// ValidationError creates a validation-related error.
func ValidationError(message string, cause error) *SnipError {
	return New(ErrCodeInvalidInput, message, cause)
}

// InternalError creates an internal error.
func InternalError(message string, cause error) *SnipError {
	return New(ErrCodeInternal, message, cause)
}

// IsRetryable reports whether err is a SnipError with the Retryable flag set.
func IsRetryable(err error) bool {
	var se *SnipError
	if stderrors.As(err, &se) {
		return se.Retryable
	}
	return false
}

// IsFatal checks if an error has fatal severity.
func IsFatal(err error) bool {
	var se *SnipError
	if stderrors.As(err, &se) {
		return se.Severity == SeverityFatal
	}
	return false
}

// GetCode extracts the error code from a SnipError in the chain.
// Returns empty string if there is none.
func GetCode(err error) string {
	var se *SnipError
	if stderrors.As(err, &se) {
		return se.Code
	}
	return ""
}

// GetCategory extracts the category from a SnipError in the chain.
func GetCategory(err error) Category {
	var se *SnipError
	if stderrors.As(err, &se) {
		return se.Category
	}
	return ""
}

// asSnipError returns the first SnipError in err's chain, wrapping err as an
// internal error when there is none.
func asSnipError(err error) *SnipError {
	var se *SnipError
	if stderrors.As(err, &se) {
		return se
	}
	return Wrap(ErrCodeInternal, err)
}
