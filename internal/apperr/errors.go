// Package apperr defines the error taxonomy shared by every layer.
// Repositories and services wrap these sentinels; the HTTP layer maps
// them to status codes in one place.
package apperr

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrNotFound         = errors.New("not found")
	ErrAlreadyExists    = errors.New("already exists")
	ErrValidation       = errors.New("validation error")
	ErrUnauthorized     = errors.New("unauthorized")
	ErrForbidden        = errors.New("forbidden")
	ErrInvalidState     = errors.New("invalid state")
	ErrInvalidReference = errors.New("invalid reference")
)

// FieldError describes a single invalid input field.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// ValidationError carries one or more field-level failures.
// errors.Is(err, ErrValidation) holds for it.
type ValidationError struct {
	Errors []FieldError
}

func (e *ValidationError) Error() string {
	if len(e.Errors) == 1 {
		return fmt.Sprintf("validation: %s: %s", e.Errors[0].Field, e.Errors[0].Message)
	}
	msgs := make([]string, len(e.Errors))
	for i, fe := range e.Errors {
		msgs[i] = fe.Field + ": " + fe.Message
	}
	return "validation: " + strings.Join(msgs, "; ")
}

func (e *ValidationError) Unwrap() error {
	return ErrValidation
}

func NewValidationError(field, message string) *ValidationError {
	return &ValidationError{Errors: []FieldError{{Field: field, Message: message}}}
}

func NewValidationErrors(errs []FieldError) *ValidationError {
	return &ValidationError{Errors: errs}
}

// StateError is a business-rule rejection with a user-facing message,
// e.g. "Cannot delete paid invoices". It unwraps to ErrInvalidState.
type StateError struct {
	Message string
}

func (e *StateError) Error() string { return e.Message }

func (e *StateError) Unwrap() error { return ErrInvalidState }

func InvalidState(format string, args ...any) error {
	return &StateError{Message: fmt.Sprintf(format, args...)}
}

// NotFound wraps ErrNotFound with the entity name so the HTTP layer can
// answer "Invoice not found".
func NotFound(entity string) error {
	return &reasonError{sentinel: ErrNotFound, reason: entity + " not found"}
}

// AlreadyExists wraps ErrAlreadyExists with a user-facing reason.
func AlreadyExists(reason string) error {
	return &reasonError{sentinel: ErrAlreadyExists, reason: reason}
}

// Invalid wraps ErrValidation with a message that names no single field,
// e.g. "No valid fields to update".
func Invalid(reason string) error {
	return &reasonError{sentinel: ErrValidation, reason: reason}
}

// Forbidden wraps ErrForbidden with a user-facing reason.
func Forbidden(reason string) error {
	return &reasonError{sentinel: ErrForbidden, reason: reason}
}

// Unauthorized wraps ErrUnauthorized with a user-facing reason.
func Unauthorized(reason string) error {
	return &reasonError{sentinel: ErrUnauthorized, reason: reason}
}

type reasonError struct {
	sentinel error
	reason   string
}

func (e *reasonError) Error() string { return e.reason }

func (e *reasonError) Unwrap() error { return e.sentinel }

// UserMessage returns the user-facing text carried by err, if any. Errors
// built from bare sentinels carry none.
func UserMessage(err error) (string, bool) {
	var se *StateError
	if errors.As(err, &se) {
		return se.Message, true
	}
	var re *reasonError
	if errors.As(err, &re) {
		return re.reason, true
	}
	return "", false
}
