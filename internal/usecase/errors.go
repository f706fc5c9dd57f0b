package usecase

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrInvalidInput          = errors.New("invalid input")
	ErrNotFound              = errors.New("resource not found")
	ErrDependencyUnavailable = errors.New("dependency unavailable")
)

// FieldViolation names one offending input value.
type FieldViolation struct {
	Field   string
	Value   string
	Message string
}

// ValidationError carries per-field details of a rejected write. It matches
// ErrInvalidInput and unwraps to its domain cause when one is set.
type ValidationError struct {
	Message string
	Details []FieldViolation
	Cause   error
}

func (e *ValidationError) Error() string {
	if len(e.Details) == 0 {
		return e.Message
	}
	parts := make([]string, 0, len(e.Details))
	for _, d := range e.Details {
		parts = append(parts, fmt.Sprintf("%s: %s", d.Field, d.Message))
	}
	return e.Message + ": " + strings.Join(parts, "; ")
}

func (e *ValidationError) Is(target error) bool {
	return target == ErrInvalidInput
}

func (e *ValidationError) Unwrap() error {
	return e.Cause
}

func newValidationError(message string, details []FieldViolation) error {
	return &ValidationError{Message: message, Details: details}
}
