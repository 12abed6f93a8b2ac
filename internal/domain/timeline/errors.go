package timeline

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

var (
	// ErrClipNotFound is returned when a clip id is not on the timeline
	ErrClipNotFound = errors.New("clip not found")

	// ErrClipNotTrimmable is returned when trimming a clip whose source is a still image
	ErrClipNotTrimmable = errors.New("clip cannot be trimmed")

	// ErrInvalidPosition is returned when a proposed position is not a finite number
	ErrInvalidPosition = errors.New("invalid position")
)

// ValidationError represents a validation error
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation error: %s: %s", e.Field, e.Message)
}

// NewValidationError creates a new validation error
func NewValidationError(field, message string) error {
	return &ValidationError{
		Field:   field,
		Message: message,
	}
}

// TrimErrors holds the per-field messages produced by trim input validation.
type TrimErrors struct {
	Start string
	End   string
}

// Empty reports whether no field failed.
func (e TrimErrors) Empty() bool {
	return e.Start == "" && e.End == ""
}

// Fields returns the failing fields keyed by input name.
func (e TrimErrors) Fields() map[string]string {
	fields := make(map[string]string, 2)
	if e.Start != "" {
		fields[FieldTrimStart] = e.Start
	}
	if e.End != "" {
		fields[FieldTrimEnd] = e.End
	}
	return fields
}

func (e *TrimErrors) Error() string {
	fields := e.Fields()
	keys := make([]string, 0, len(fields))
	for k := range fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, k+": "+fields[k])
	}
	return "invalid trim: " + strings.Join(parts, "; ")
}
