package postgres

import (
	"context"
	"errors"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"

	"github.com/lalith-99/lawdesk/internal/apperr"
)

func TestMapError(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want error
	}{
		{"no rows", pgx.ErrNoRows, apperr.ErrNotFound},
		{"unique violation", &pgconn.PgError{Code: "23505"}, apperr.ErrAlreadyExists},
		{"foreign key violation", &pgconn.PgError{Code: "23503"}, apperr.ErrInvalidReference},
		{"check violation", &pgconn.PgError{Code: "23514"}, apperr.ErrValidation},
		{"bad text representation", &pgconn.PgError{Code: "22P02"}, apperr.ErrValidation},
		{"deadline passes through", context.DeadlineExceeded, context.DeadlineExceeded},
		{"canceled passes through", context.Canceled, context.Canceled},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := mapError("op", tt.err)
			assert.ErrorIs(t, err, tt.want)
			assert.Contains(t, err.Error(), "op: ")
		})
	}
}

func TestMapError_Nil(t *testing.T) {
	assert.NoError(t, mapError("op", nil))
}

func TestMapError_UnknownIsWrapped(t *testing.T) {
	boom := errors.New("boom")
	err := mapError("list things", boom)
	assert.ErrorIs(t, err, boom)
	assert.False(t, errors.Is(err, apperr.ErrNotFound))
	assert.Equal(t, "list things: boom", err.Error())
}
