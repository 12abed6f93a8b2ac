package errors

import (
	"errors"
	"fmt"
)

// ErrorType classifies an application error for transport mapping
type ErrorType string

const (
	// ErrorTypeNotFound indicates a clip or media record does not exist
	ErrorTypeNotFound ErrorType = "NOT_FOUND"
	// ErrorTypeBadRequest indicates invalid user input
	ErrorTypeBadRequest ErrorType = "BAD_REQUEST"
	// ErrorTypeConflict indicates the request clashes with current editor state
	ErrorTypeConflict ErrorType = "CONFLICT"
	// ErrorTypeUnavailable indicates a backing dependency cannot be reached
	ErrorTypeUnavailable ErrorType = "UNAVAILABLE"
	// ErrorTypeInternal indicates an unexpected failure
	ErrorTypeInternal ErrorType = "INTERNAL"
)

// AppError represents an application error
type AppError struct {
	Type    ErrorType
	Message string
	// Fields carries per-field validation messages, keyed by input name
	Fields map[string]string
	Err    error
}

// Error returns the error message
func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Type, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Type, e.Message)
}

// Unwrap returns the wrapped error
func (e *AppError) Unwrap() error {
	return e.Err
}

// New creates a new application error
func New(errorType ErrorType, message string) error {
	return &AppError{
		Type:    errorType,
		Message: message,
	}
}

// Wrap wraps an error with an application error
func Wrap(errorType ErrorType, message string, err error) error {
	return &AppError{
		Type:    errorType,
		Message: message,
		Err:     err,
	}
}

// NotFound creates a not found error
func NotFound(message string) error {
	return New(ErrorTypeNotFound, message)
}

// Invalid creates a bad request error carrying field-level messages
func Invalid(message string, fields map[string]string, err error) error {
	return &AppError{
		Type:    ErrorTypeBadRequest,
		Message: message,
		Fields:  fields,
		Err:     err,
	}
}

// Conflict creates a conflict error
func Conflict(message string) error {
	return New(ErrorTypeConflict, message)
}

// FieldsOf returns the field messages attached to err, if any
func FieldsOf(err error) map[string]string {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Fields
	}
	return nil
}

func isType(err error, t ErrorType) bool {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Type == t
	}
	return false
}

// IsNotFound checks if an error is a not found error
func IsNotFound(err error) bool {
	return isType(err, ErrorTypeNotFound)
}

// IsBadRequest checks if an error is a bad request error
func IsBadRequest(err error) bool {
	return isType(err, ErrorTypeBadRequest)
}

// IsConflict checks if an error is a conflict error
func IsConflict(err error) bool {
	return isType(err, ErrorTypeConflict)
}

// IsUnavailable checks if an error is an unavailable error
func IsUnavailable(err error) bool {
	return isType(err, ErrorTypeUnavailable)
}
