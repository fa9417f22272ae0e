package service

import (
	"context"
	"encoding/json"

	"go.uber.org/zap"

	"github.com/lalith-99/lawdesk/internal/models"
	"github.com/lalith-99/lawdesk/internal/repository"
)

// Event is one entry for the activity log.
type Event struct {
	Action      string
	EntityType  string
	EntityID    int64
	Description string
	Metadata    any
}

type activityFailures interface {
	ActivityWriteFailed()
}

// Recorder appends to the activity log after the primary write committed.
// A failed append is logged and counted but never fails the request.
type Recorder struct {
	repo    repository.ActivityRepository
	metrics activityFailures
	logger  *zap.Logger
}

func NewRecorder(repo repository.ActivityRepository, metrics activityFailures, logger *zap.Logger) *Recorder {
	return &Recorder{repo: repo, metrics: metrics, logger: logger.Named("activity")}
}

func (r *Recorder) Record(ctx context.Context, actor models.Actor, ev Event) {
	in := models.ActivityInput{
		Action:      ev.Action,
		EntityType:  ev.EntityType,
		Description: ev.Description,
	}
	if ev.EntityID > 0 {
		in.EntityID = &ev.EntityID
	}
	if ev.Metadata != nil {
		raw, err := json.Marshal(ev.Metadata)
		if err != nil {
			r.fail(ev, err)
			return
		}
		in.Metadata = raw
	}

	var userID *int64
	if actor.ID > 0 {
		userID = &actor.ID
	}

	// The write outlives a client that hung up after its change committed.
	if _, err := r.repo.Insert(context.WithoutCancel(ctx), userID, in); err != nil {
		r.fail(ev, err)
	}
}

func (r *Recorder) fail(ev Event, err error) {
	r.metrics.ActivityWriteFailed()
	r.logger.Warn("failed to record activity",
		zap.String("action", ev.Action),
		zap.String("entity_type", ev.EntityType),
		zap.Int64("entity_id", ev.EntityID),
		zap.Error(err),
	)
}
