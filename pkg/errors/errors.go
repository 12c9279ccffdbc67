package errors

import (
	"errors"
	"fmt"
)

// ErrorCode represents a unique error code for stable testing
type ErrorCode string

// Error codes for different error categories
const (
	// General errors
	ErrUnknown      ErrorCode = "UNKNOWN"
	ErrInternal     ErrorCode = "INTERNAL"
	ErrInvalidInput ErrorCode = "INVALID_INPUT"
	ErrNotConfirmed ErrorCode = "NOT_CONFIRMED"

	// Run preconditions. These are the only run-fatal errors.
	ErrDirectoryNotFound ErrorCode = "DIRECTORY_NOT_FOUND"
	ErrNotADirectory     ErrorCode = "NOT_A_DIRECTORY"

	// Per-entry errors
	ErrClassification ErrorCode = "CLASSIFICATION"
	ErrConflict       ErrorCode = "CONFLICT"
	ErrMutation       ErrorCode = "MUTATION"
	ErrScan           ErrorCode = "SCAN"

	// Configuration errors
	ErrConfigLoad  ErrorCode = "CONFIG_LOAD"
	ErrConfigValid ErrorCode = "CONFIG_INVALID"

	// Collaborator errors
	ErrTagRead          ErrorCode = "TAG_READ"
	ErrTagWrite         ErrorCode = "TAG_WRITE"
	ErrTransform        ErrorCode = "TRANSFORM"
	ErrTransformTimeout ErrorCode = "TRANSFORM_TIMEOUT"
)

// CurateError represents a structured error with code and details
type CurateError struct {
	Code    ErrorCode
	Message string
	Details map[string]interface{}
	Wrapped error
}

// Error implements the error interface
func (e *CurateError) Error() string {
	if e.Wrapped != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Code, e.Message, e.Wrapped)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

// Unwrap implements the errors.Unwrap interface
func (e *CurateError) Unwrap() error {
	return e.Wrapped
}

// Is implements errors.Is interface
func (e *CurateError) Is(target error) bool {
	var targetErr *CurateError
	if errors.As(target, &targetErr) {
		return e.Code == targetErr.Code
	}
	return false
}

// New creates a new CurateError with the given code and message
func New(code ErrorCode, message string) *CurateError {
	return &CurateError{
		Code:    code,
		Message: message,
		Details: make(map[string]interface{}),
	}
}

// Newf creates a new CurateError with a formatted message
func Newf(code ErrorCode, format string, args ...interface{}) *CurateError {
	return &CurateError{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
		Details: make(map[string]interface{}),
	}
}

// Wrap wraps an existing error with a CurateError
func Wrap(err error, code ErrorCode, message string) *CurateError {
	if err == nil {
		return nil
	}
	return &CurateError{
		Code:    code,
		Message: message,
		Details: make(map[string]interface{}),
		Wrapped: err,
	}
}

// Wrapf wraps an existing error with a formatted message
func Wrapf(err error, code ErrorCode, format string, args ...interface{}) *CurateError {
	if err == nil {
		return nil
	}
	return &CurateError{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
		Details: make(map[string]interface{}),
		Wrapped: err,
	}
}

// WithDetail adds a detail to the error
func (e *CurateError) WithDetail(key string, value interface{}) *CurateError {
	if e.Details == nil {
		e.Details = make(map[string]interface{})
	}
	e.Details[key] = value
	return e
}

// IsErrorCode checks if an error has a specific error code
func IsErrorCode(err error, code ErrorCode) bool {
	var curateErr *CurateError
	if errors.As(err, &curateErr) {
		return curateErr.Code == code
	}
	return false
}

// GetErrorCode returns the error code from an error, or ErrUnknown if not a CurateError
func GetErrorCode(err error) ErrorCode {
	var curateErr *CurateError
	if errors.As(err, &curateErr) {
		return curateErr.Code
	}
	return ErrUnknown
}

// Reason returns the innermost human readable cause of err, without codes.
// Report lines use it so operators see "file exists" rather than the full chain.
func Reason(err error) string {
	if err == nil {
		return ""
	}
	for {
		next := errors.Unwrap(err)
		if next == nil {
			var curateErr *CurateError
			if errors.As(err, &curateErr) {
				return curateErr.Message
			}
			return err.Error()
		}
		err = next
	}
}
