package service

import (
	"context"
	"fmt"

	"github.com/lalith-99/lawdesk/internal/models"
	"github.com/lalith-99/lawdesk/internal/repository"
)

const (
	DefaultRecentActivities = 10
	MaxRecentActivities     = 100
)

// ActivityService reads the activity log and accepts manual entries.
type ActivityService struct {
	activities repository.ActivityRepository
}

func NewActivityService(activities repository.ActivityRepository) *ActivityService {
	return &ActivityService{activities: activities}
}

func (s *ActivityService) List(ctx context.Context, f models.ActivityFilter, p models.Page) (models.List[models.Activity], error) {
	items, total, err := s.activities.List(ctx, f, p)
	if err != nil {
		return models.List[models.Activity]{}, fmt.Errorf("list activities: %w", err)
	}
	return page(items, total, p), nil
}

// Recent returns the newest entries. limit is clamped to [1, 100] and
// defaults to 10.
func (s *ActivityService) Recent(ctx context.Context, limit int) ([]models.Activity, error) {
	switch {
	case limit <= 0:
		limit = DefaultRecentActivities
	case limit > MaxRecentActivities:
		limit = MaxRecentActivities
	}
	items, err := s.activities.Recent(ctx, limit)
	if err != nil {
		return nil, fmt.Errorf("recent activities: %w", err)
	}
	return items, nil
}

// Log appends a manual entry attributed to actor. Unlike Recorder it
// reports failure to the caller.
func (s *ActivityService) Log(ctx context.Context, actor models.Actor, in models.ActivityInput) (*models.Activity, error) {
	a, err := s.activities.Insert(ctx, &actor.ID, in)
	if err != nil {
		return nil, fmt.Errorf("log activity: %w", err)
	}
	return a, nil
}
