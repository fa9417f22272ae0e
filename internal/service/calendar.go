package service

import (
	"context"
	"fmt"

	"github.com/lalith-99/lawdesk/internal/apperr"
	"github.com/lalith-99/lawdesk/internal/models"
	"github.com/lalith-99/lawdesk/internal/repository"
)

type CalendarService struct {
	events repository.CalendarRepository
	rec    *Recorder
}

func NewCalendarService(events repository.CalendarRepository, rec *Recorder) *CalendarService {
	return &CalendarService{events: events, rec: rec}
}

func (s *CalendarService) List(ctx context.Context, f models.CalendarFilter, p models.Page) (models.List[models.CalendarEvent], error) {
	items, total, err := s.events.List(ctx, f, p)
	if err != nil {
		return models.List[models.CalendarEvent]{}, fmt.Errorf("list calendar events: %w", err)
	}
	return page(items, total, p), nil
}

func (s *CalendarService) Get(ctx context.Context, id int64) (*models.CalendarEvent, error) {
	e, err := s.events.Get(ctx, id)
	if err != nil {
		return nil, notFound("get calendar event", "Event", err)
	}
	return e, nil
}

// Today lists events that start during the current day.
func (s *CalendarService) Today(ctx context.Context) ([]models.CalendarEvent, error) {
	today := models.Today()
	items, err := s.events.Between(ctx, today, today.AddDays(1))
	if err != nil {
		return nil, fmt.Errorf("today events: %w", err)
	}
	return items, nil
}

func (s *CalendarService) Create(ctx context.Context, actor models.Actor, in models.CalendarEventInput) (*models.CalendarEvent, error) {
	in.ApplyDefaults()
	e, err := s.events.Create(ctx, in, actor.ID)
	if err != nil {
		return nil, fmt.Errorf("create calendar event: %w", err)
	}
	s.rec.Record(ctx, actor, Event{
		Action:      models.ActionCreate,
		EntityType:  models.EntityCalendarEvent,
		EntityID:    e.ID,
		Description: "Created event: " + e.Title,
	})
	return e, nil
}

// Update checks the resulting time window against the stored row when only
// one end moves.
func (s *CalendarService) Update(ctx context.Context, actor models.Actor, id int64, u models.CalendarEventUpdate) (*models.CalendarEvent, error) {
	if u.IsEmpty() {
		return nil, errNoFields
	}
	if (u.StartTime == nil) != (u.EndTime == nil) {
		current, err := s.events.Get(ctx, id)
		if err != nil {
			return nil, notFound("update calendar event", "Event", err)
		}
		start, end := current.StartTime, current.EndTime
		if u.StartTime != nil {
			start = *u.StartTime
		}
		if u.EndTime != nil {
			end = *u.EndTime
		}
		if end.Before(start) {
			return nil, apperr.NewValidationError("end_time", "End time must be after start time")
		}
	}

	e, err := s.events.Update(ctx, id, u)
	if err != nil {
		return nil, notFound("update calendar event", "Event", err)
	}
	s.rec.Record(ctx, actor, Event{
		Action:      models.ActionUpdate,
		EntityType:  models.EntityCalendarEvent,
		EntityID:    id,
		Description: "Updated event: " + e.Title,
	})
	return e, nil
}

func (s *CalendarService) Delete(ctx context.Context, actor models.Actor, id int64) error {
	e, err := s.events.Get(ctx, id)
	if err != nil {
		return notFound("delete calendar event", "Event", err)
	}
	if err := s.events.Delete(ctx, id); err != nil {
		return notFound("delete calendar event", "Event", err)
	}
	s.rec.Record(ctx, actor, Event{
		Action:      models.ActionDelete,
		EntityType:  models.EntityCalendarEvent,
		EntityID:    id,
		Description: "Deleted event: " + e.Title,
	})
	return nil
}
