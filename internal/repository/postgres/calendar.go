package postgres

import (
	"context"
	"time"

	"github.com/Masterminds/squirrel"

	"github.com/lalith-99/lawdesk/internal/models"
)

var calendarColumns = []string{
	"e.id", "e.title", "e.description", "e.start_time", "e.end_time", "e.location", "e.matter_id",
	"e.attendees", "e.event_type", "e.is_all_day", "e.reminder_minutes", "e.recurrence_rule",
	"e.created_by", "e.created_at", "e.updated_at",
	"m.title AS matter_title",
	fullName("u") + " AS created_by_name",
}

type CalendarStore struct {
	db DB
}

func NewCalendarStore(db DB) *CalendarStore {
	return &CalendarStore{db: db}
}

func calendarFrom() squirrel.SelectBuilder {
	return psql.Select().
		From("calendar_events e").
		LeftJoin("matters m ON e.matter_id = m.id").
		LeftJoin("users u ON e.created_by = u.id")
}

func (s *CalendarStore) List(ctx context.Context, f models.CalendarFilter, p models.Page) ([]models.CalendarEvent, int, error) {
	where := conj(
		cmp(f.StartAfter, func(t time.Time) squirrel.Sqlizer { return squirrel.GtOrEq{"e.start_time": t} }),
		cmp(f.EndBefore, func(t time.Time) squirrel.Sqlizer { return squirrel.LtOrEq{"e.end_time": t} }),
		eq("e.matter_id", f.MatterID),
	)
	items, total, err := selectPage[models.CalendarEvent](ctx, QuerierFromCtx(ctx, s.db),
		calendarFrom(), calendarColumns, where, p, "e.start_time ASC", "e.id ASC")
	if err != nil {
		return nil, 0, mapError("list calendar events", err)
	}
	return items, total, nil
}

func (s *CalendarStore) Get(ctx context.Context, id int64) (*models.CalendarEvent, error) {
	e, err := selectOne[models.CalendarEvent](ctx, QuerierFromCtx(ctx, s.db),
		calendarFrom().Columns(calendarColumns...).Where(squirrel.Eq{"e.id": id}))
	if err != nil {
		return nil, mapError("get calendar event", err)
	}
	return e, nil
}

func (s *CalendarStore) Create(ctx context.Context, in models.CalendarEventInput, createdBy int64) (*models.CalendarEvent, error) {
	id, err := insertID(ctx, QuerierFromCtx(ctx, s.db), psql.Insert("calendar_events").SetMap(map[string]any{
		"title":            in.Title,
		"description":      in.Description,
		"start_time":       in.StartTime,
		"end_time":         in.EndTime,
		"location":         in.Location,
		"matter_id":        in.MatterID,
		"attendees":        in.Attendees,
		"event_type":       in.EventType,
		"is_all_day":       in.IsAllDay,
		"reminder_minutes": in.ReminderMinutes,
		"recurrence_rule":  in.RecurrenceRule,
		"created_by":       createdBy,
	}))
	if err != nil {
		return nil, mapError("insert calendar event", err)
	}
	return s.Get(ctx, id)
}

func (s *CalendarStore) Update(ctx context.Context, id int64, u models.CalendarEventUpdate) (*models.CalendarEvent, error) {
	set := setter{}
	setIf(set, "title", u.Title)
	setIf(set, "description", u.Description)
	setIf(set, "start_time", u.StartTime)
	setIf(set, "end_time", u.EndTime)
	setIf(set, "location", u.Location)
	setIf(set, "matter_id", u.MatterID)
	setIf(set, "event_type", u.EventType)
	setIf(set, "is_all_day", u.IsAllDay)
	setIf(set, "reminder_minutes", u.ReminderMinutes)
	setIf(set, "recurrence_rule", u.RecurrenceRule)
	if len(u.Attendees) > 0 {
		set["attendees"] = u.Attendees
	}

	// end_time >= start_time is enforced by a CHECK constraint, which also
	// covers updates that move only one end.
	if err := updateByID(ctx, QuerierFromCtx(ctx, s.db), "calendar_events", id, set); err != nil {
		return nil, mapError("update calendar event", err)
	}
	return s.Get(ctx, id)
}

func (s *CalendarStore) Delete(ctx context.Context, id int64) error {
	if err := deleteByID(ctx, QuerierFromCtx(ctx, s.db), "calendar_events", id); err != nil {
		return mapError("delete calendar event", err)
	}
	return nil
}

func (s *CalendarStore) Between(ctx context.Context, from, to models.Date) ([]models.CalendarEvent, error) {
	where := squirrel.And{
		squirrel.GtOrEq{"e.start_time": from.Time},
		squirrel.Lt{"e.start_time": to.Time},
	}
	items, err := selectAll[models.CalendarEvent](ctx, QuerierFromCtx(ctx, s.db),
		calendarFrom().Columns(calendarColumns...).Where(where).OrderBy("e.start_time ASC", "e.id ASC"))
	if err != nil {
		return nil, mapError("calendar events between", err)
	}
	return items, nil
}
