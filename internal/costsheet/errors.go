package costsheet

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidInput marks a post that fails input validation.
	ErrInvalidInput = errors.New("invalid service input")
	// ErrInvalidConfiguration marks global parameters the cascade cannot price meaningfully.
	ErrInvalidConfiguration = errors.New("invalid configuration")
	ErrUnknownRegime        = errors.New("unknown tax regime")
	ErrUnknownRate          = errors.New("unknown rate key")
)

// FieldError describes one rejected field.
type FieldError struct {
	Field  string
	Reason string
	kind   error
}

// NewFieldError returns a field error matching kind with errors.Is.
func NewFieldError(kind error, field, reason string) *FieldError {
	return &FieldError{Field: field, Reason: reason, kind: kind}
}

func (e *FieldError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Reason)
}

func (e *FieldError) Unwrap() error {
	return e.kind
}

// FieldErrors flattens a validation error into its field errors.
func FieldErrors(err error) []*FieldError {
	switch e := err.(type) {
	case nil:
		return nil
	case *FieldError:
		return []*FieldError{e}
	case interface{ Unwrap() []error }:
		var out []*FieldError
		for _, inner := range e.Unwrap() {
			out = append(out, FieldErrors(inner)...)
		}
		return out
	case interface{ Unwrap() error }:
		return FieldErrors(e.Unwrap())
	}
	return nil
}
