package apperr

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidationError_UnwrapsToSentinel(t *testing.T) {
	t.Parallel()

	err := fmt.Errorf("create client: %w", NewValidationError("email", "Valid email is required"))

	assert.True(t, errors.Is(err, ErrValidation))

	var ve *ValidationError
	assert.True(t, errors.As(err, &ve))
	assert.Equal(t, []FieldError{{Field: "email", Message: "Valid email is required"}}, ve.Errors)
}

func TestValidationError_Message(t *testing.T) {
	t.Parallel()

	single := NewValidationError("title", "required")
	assert.Equal(t, "validation: title: required", single.Error())

	multi := NewValidationErrors([]FieldError{
		{Field: "title", Message: "required"},
		{Field: "due_date", Message: "invalid date"},
	})
	assert.Equal(t, "validation: title: required; due_date: invalid date", multi.Error())
}

func TestReasonErrors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		err      error
		sentinel error
		message  string
	}{
		{"state", InvalidState("Cannot delete %s invoices", "paid"), ErrInvalidState, "Cannot delete paid invoices"},
		{"forbidden", Forbidden("Can only update your own time entries"), ErrForbidden, "Can only update your own time entries"},
		{"unauthorized", Unauthorized("Account is deactivated"), ErrUnauthorized, "Account is deactivated"},
		{"not found", NotFound("Invoice"), ErrNotFound, "Invoice not found"},
		{"invalid", Invalid("No valid fields to update"), ErrValidation, "No valid fields to update"},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			wrapped := fmt.Errorf("op: %w", tt.err)
			assert.True(t, errors.Is(wrapped, tt.sentinel))
			assert.Equal(t, tt.message, tt.err.Error())
		})
	}
}

func TestUserMessage(t *testing.T) {
	t.Parallel()

	msg, ok := UserMessage(fmt.Errorf("delete client: %w", InvalidState("Cannot delete client with existing matters")))
	assert.True(t, ok)
	assert.Equal(t, "Cannot delete client with existing matters", msg)

	msg, ok = UserMessage(fmt.Errorf("get: %w", NotFound("Task")))
	assert.True(t, ok)
	assert.Equal(t, "Task not found", msg)

	_, ok = UserMessage(fmt.Errorf("get client: %w", ErrNotFound))
	assert.False(t, ok)
}
