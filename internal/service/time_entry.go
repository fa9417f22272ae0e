package service

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/lalith-99/lawdesk/internal/apperr"
	"github.com/lalith-99/lawdesk/internal/models"
	"github.com/lalith-99/lawdesk/internal/repository"
)

// TimeEntryService records billable time. Entries belong to the user who
// logged them; only that user or an admin may change or remove one.
type TimeEntryService struct {
	entries repository.TimeEntryRepository
	users   repository.UserRepository
	rec     *Recorder
}

func NewTimeEntryService(entries repository.TimeEntryRepository, users repository.UserRepository, rec *Recorder) *TimeEntryService {
	return &TimeEntryService{entries: entries, users: users, rec: rec}
}

func (s *TimeEntryService) List(ctx context.Context, f models.TimeEntryFilter, p models.Page) (models.List[models.TimeEntry], error) {
	items, total, err := s.entries.List(ctx, f, p)
	if err != nil {
		return models.List[models.TimeEntry]{}, fmt.Errorf("list time entries: %w", err)
	}
	return page(items, total, p), nil
}

func (s *TimeEntryService) Get(ctx context.Context, id int64) (*models.TimeEntry, error) {
	e, err := s.entries.Get(ctx, id)
	if err != nil {
		return nil, notFound("get time entry", "Time entry", err)
	}
	return e, nil
}

// Create bills at the given rate, or at the actor's own hourly rate when
// none is given.
func (s *TimeEntryService) Create(ctx context.Context, actor models.Actor, in models.TimeEntryInput) (*models.TimeEntry, error) {
	rate := in.HourlyRate.Decimal
	if !in.HourlyRate.Valid {
		u, err := s.users.Get(ctx, actor.ID)
		if err != nil {
			return nil, notFound("create time entry", "User", err)
		}
		rate = u.HourlyRate
	}

	date := in.Date
	if date.IsZero() {
		date = models.Today()
	}
	billable := true
	if in.IsBillable != nil {
		billable = *in.IsBillable
	}

	e, err := s.entries.Create(ctx, models.NewTimeEntry{
		MatterID:        in.MatterID,
		UserID:          actor.ID,
		Description:     in.Description,
		DurationMinutes: in.DurationMinutes,
		Date:            date,
		HourlyRate:      rate,
		TotalValue:      models.TimeValue(in.DurationMinutes, rate),
		IsBillable:      billable,
	})
	if err != nil {
		return nil, fmt.Errorf("create time entry: %w", err)
	}
	s.rec.Record(ctx, actor, Event{
		Action:      models.ActionCreate,
		EntityType:  models.EntityTimeEntry,
		EntityID:    e.ID,
		Description: fmt.Sprintf("Logged %d minutes: %s", e.DurationMinutes, e.Description),
	})
	return e, nil
}

// Update recomputes total_value whenever the duration or rate changes.
func (s *TimeEntryService) Update(ctx context.Context, actor models.Actor, id int64, u models.TimeEntryUpdate) (*models.TimeEntry, error) {
	if u.IsEmpty() {
		return nil, errNoFields
	}
	current, err := s.entries.Get(ctx, id)
	if err != nil {
		return nil, notFound("update time entry", "Time entry", err)
	}
	if !actor.CanModify(current.UserID) {
		return nil, apperr.Forbidden("Can only update your own time entries")
	}

	var total decimal.NullDecimal
	if u.ChangesValue() {
		minutes := current.DurationMinutes
		if u.DurationMinutes != nil {
			minutes = *u.DurationMinutes
		}
		rate := current.HourlyRate
		if u.HourlyRate.Valid {
			rate = u.HourlyRate.Decimal
		}
		total = decimal.NewNullDecimal(models.TimeValue(minutes, rate))
	}

	e, err := s.entries.Update(ctx, id, u, total)
	if err != nil {
		return nil, notFound("update time entry", "Time entry", err)
	}
	s.rec.Record(ctx, actor, Event{
		Action:      models.ActionUpdate,
		EntityType:  models.EntityTimeEntry,
		EntityID:    id,
		Description: "Updated time entry: " + e.Description,
	})
	return e, nil
}

func (s *TimeEntryService) Delete(ctx context.Context, actor models.Actor, id int64) error {
	current, err := s.entries.Get(ctx, id)
	if err != nil {
		return notFound("delete time entry", "Time entry", err)
	}
	if !actor.CanModify(current.UserID) {
		return apperr.Forbidden("Can only delete your own time entries")
	}
	if err := s.entries.Delete(ctx, id); err != nil {
		return notFound("delete time entry", "Time entry", err)
	}
	s.rec.Record(ctx, actor, Event{
		Action:      models.ActionDelete,
		EntityType:  models.EntityTimeEntry,
		EntityID:    id,
		Description: "Deleted time entry: " + current.Description,
	})
	return nil
}

// Summary totals userID's time in rng; userID 0 means the actor.
func (s *TimeEntryService) Summary(ctx context.Context, actor models.Actor, userID int64, rng models.ReportRange) (*models.TimeSummary, error) {
	if userID == 0 {
		userID = actor.ID
	}
	sum, err := s.entries.Summary(ctx, userID, rng)
	if err != nil {
		return nil, fmt.Errorf("time summary: %w", err)
	}
	if sum.ByMatter == nil {
		sum.ByMatter = []models.MatterTimeSummary{}
	}
	return sum, nil
}
