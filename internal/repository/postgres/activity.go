package postgres

import (
	"context"

	"github.com/Masterminds/squirrel"

	"github.com/lalith-99/lawdesk/internal/models"
)

var activityColumns = []string{
	"a.id", "a.user_id", "a.action", "a.entity_type", "a.entity_id", "a.description",
	"a.metadata", "a.created_at",
	fullName("u") + " AS user_name",
}

// ActivityStore is append-only: there is no update or delete.
type ActivityStore struct {
	db DB
}

func NewActivityStore(db DB) *ActivityStore {
	return &ActivityStore{db: db}
}

func activityFrom() squirrel.SelectBuilder {
	return psql.Select().
		From("activities a").
		LeftJoin("users u ON a.user_id = u.id")
}

func (s *ActivityStore) Insert(ctx context.Context, userID *int64, in models.ActivityInput) (*models.Activity, error) {
	var metadata any
	if len(in.Metadata) > 0 {
		metadata = in.Metadata
	}
	var description *string
	if in.Description != "" {
		description = &in.Description
	}

	q := QuerierFromCtx(ctx, s.db)
	id, err := insertID(ctx, q, psql.Insert("activities").SetMap(map[string]any{
		"user_id":     userID,
		"action":      in.Action,
		"entity_type": in.EntityType,
		"entity_id":   in.EntityID,
		"description": description,
		"metadata":    metadata,
	}))
	if err != nil {
		return nil, mapError("insert activity", err)
	}

	a, err := selectOne[models.Activity](ctx, q,
		activityFrom().Columns(activityColumns...).Where(squirrel.Eq{"a.id": id}))
	if err != nil {
		return nil, mapError("get activity", err)
	}
	return a, nil
}

func (s *ActivityStore) List(ctx context.Context, f models.ActivityFilter, p models.Page) ([]models.Activity, int, error) {
	where := conj(
		eq("a.user_id", f.UserID),
		eq("a.entity_type", f.EntityType),
		eq("a.action", f.Action),
	)
	items, total, err := selectPage[models.Activity](ctx, QuerierFromCtx(ctx, s.db),
		activityFrom(), activityColumns, where, p, "a.created_at DESC", "a.id DESC")
	if err != nil {
		return nil, 0, mapError("list activities", err)
	}
	return items, total, nil
}

func (s *ActivityStore) Recent(ctx context.Context, limit int) ([]models.Activity, error) {
	items, err := selectAll[models.Activity](ctx, QuerierFromCtx(ctx, s.db),
		activityFrom().Columns(activityColumns...).
			OrderBy("a.created_at DESC", "a.id DESC").
			Limit(uint64(limit)))
	if err != nil {
		return nil, mapError("recent activities", err)
	}
	return items, nil
}
