// Package service holds the use cases behind the HTTP handlers: business
// rules, transactions and the activity trail. Services talk to storage only
// through the repository interfaces.
package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/lalith-99/lawdesk/internal/apperr"
	"github.com/lalith-99/lawdesk/internal/models"
)

// TxManager runs fn inside one database transaction.
type TxManager interface {
	RunInTx(ctx context.Context, fn func(ctx context.Context) error) error
}

var errNoFields = apperr.Invalid("No valid fields to update")

// notFound replaces a bare ErrNotFound from storage with one that names
// the entity. Other errors are wrapped with op.
func notFound(op, entity string, err error) error {
	if errors.Is(err, apperr.ErrNotFound) {
		return apperr.NotFound(entity)
	}
	return fmt.Errorf("%s: %w", op, err)
}

func page[T any](items []T, total int, p models.Page) models.List[T] {
	if items == nil {
		items = []T{}
	}
	return models.List[T]{Items: items, Pagination: models.NewPagination(p, total)}
}
