// Package errors defines the typed failure vocabulary shared by the
// customer command handlers and their callers.
package errors

import (
	"fmt"
)

var (
	ErrNotFound            = fmt.Errorf("customer not found")
	ErrDuplicateDocument   = fmt.Errorf("duplicate document")
	ErrDuplicateEmail      = fmt.Errorf("duplicate email")
	ErrInvalidInput        = fmt.Errorf("invalid input")
	ErrConstraintViolation = fmt.Errorf("constraint violation")
)

// FieldError names a single violated validation rule.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// ValidationError carries the complete set of rules a payload violated.
// It unwraps to ErrInvalidInput so callers can dispatch with errors.Is.
type ValidationError struct {
	Fields []FieldError
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%v: %d field(s) rejected", ErrInvalidInput, len(e.Fields))
}

func (e *ValidationError) Unwrap() error {
	return ErrInvalidInput
}
