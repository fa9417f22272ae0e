package models

import (
	"github.com/lalith-99/lawdesk/internal/apperr"
	"github.com/shopspring/decimal"
)

// Validator is implemented by payloads with rules that struct tags cannot express.
type Validator interface {
	Validate() error
}

type fieldErrors []apperr.FieldError

func (e *fieldErrors) add(field, message string) {
	*e = append(*e, apperr.FieldError{Field: field, Message: message})
}

func (e *fieldErrors) nonNegative(field string, d decimal.NullDecimal) {
	if d.Valid && d.Decimal.IsNegative() {
		e.add(field, "Must be a positive number")
	}
}

func (e fieldErrors) err() error {
	if len(e) == 0 {
		return nil
	}
	return apperr.NewValidationErrors(e)
}
