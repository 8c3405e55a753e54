package repository

import (
	"errors"
	"fmt"
)

var (
	// ErrNotFound is returned when the addressed record does not exist.
	ErrNotFound = errors.New("not found")
	// ErrDuplicateEmail is returned when the unique email constraint rejects a write.
	ErrDuplicateEmail = errors.New("duplicate email")
)

// FieldError is a single store-level schema violation.
type FieldError struct {
	Field   string
	Message string
}

// ValidationError carries store-level schema violations, one per field.
type ValidationError struct {
	Fields []FieldError
}

func (e *ValidationError) Error() string {
	if len(e.Fields) == 0 {
		return "validation failed"
	}
	return fmt.Sprintf("validation failed: %s %s", e.Fields[0].Field, e.Fields[0].Message)
}
