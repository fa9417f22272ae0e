package models

import (
	"encoding/json"
	"time"
)

type CalendarEvent struct {
	ID              int64           `json:"id" db:"id"`
	Title           string          `json:"title" db:"title"`
	Description     *string         `json:"description" db:"description"`
	StartTime       time.Time       `json:"start_time" db:"start_time"`
	EndTime         time.Time       `json:"end_time" db:"end_time"`
	Location        *string         `json:"location" db:"location"`
	MatterID        *int64          `json:"matter_id" db:"matter_id"`
	Attendees       json.RawMessage `json:"attendees" db:"attendees"`
	EventType       string          `json:"event_type" db:"event_type"`
	IsAllDay        bool            `json:"is_all_day" db:"is_all_day"`
	ReminderMinutes int             `json:"reminder_minutes" db:"reminder_minutes"`
	RecurrenceRule  *string         `json:"recurrence_rule" db:"recurrence_rule"`
	CreatedBy       *int64          `json:"created_by" db:"created_by"`
	CreatedAt       time.Time       `json:"created_at" db:"created_at"`
	UpdatedAt       time.Time       `json:"updated_at" db:"updated_at"`

	MatterTitle   *string `json:"matter_title,omitempty" db:"matter_title"`
	CreatedByName *string `json:"created_by_name,omitempty" db:"created_by_name"`
}

type CalendarEventInput struct {
	Title           string          `json:"title" binding:"required,max=255"`
	Description     *string         `json:"description"`
	StartTime       time.Time       `json:"start_time" binding:"required"`
	EndTime         time.Time       `json:"end_time" binding:"required"`
	Location        *string         `json:"location"`
	MatterID        *int64          `json:"matter_id" binding:"omitempty,gt=0"`
	Attendees       json.RawMessage `json:"attendees"`
	EventType       string          `json:"event_type" binding:"omitempty,max=50"`
	IsAllDay        bool            `json:"is_all_day"`
	ReminderMinutes *int            `json:"reminder_minutes" binding:"omitempty,min=0"`
	RecurrenceRule  *string         `json:"recurrence_rule"`
}

func (in *CalendarEventInput) ApplyDefaults() {
	if in.EventType == "" {
		in.EventType = "meeting"
	}
	if in.ReminderMinutes == nil {
		fifteen := 15
		in.ReminderMinutes = &fifteen
	}
	if len(in.Attendees) == 0 {
		in.Attendees = json.RawMessage("[]")
	}
}

func (in CalendarEventInput) Validate() error {
	var errs fieldErrors
	if in.EndTime.Before(in.StartTime) {
		errs.add("end_time", "End time must be after start time")
	}
	if len(in.Attendees) > 0 && !json.Valid(in.Attendees) {
		errs.add("attendees", "Attendees must be valid JSON")
	}
	return errs.err()
}

// CalendarEventUpdate lists the event columns a caller may change.
type CalendarEventUpdate struct {
	Title           *string         `json:"title" binding:"omitempty,min=1,max=255"`
	Description     *string         `json:"description"`
	StartTime       *time.Time      `json:"start_time"`
	EndTime         *time.Time      `json:"end_time"`
	Location        *string         `json:"location"`
	MatterID        *int64          `json:"matter_id" binding:"omitempty,gt=0"`
	Attendees       json.RawMessage `json:"attendees"`
	EventType       *string         `json:"event_type" binding:"omitempty,max=50"`
	IsAllDay        *bool           `json:"is_all_day"`
	ReminderMinutes *int            `json:"reminder_minutes" binding:"omitempty,min=0"`
	RecurrenceRule  *string         `json:"recurrence_rule"`
}

func (u CalendarEventUpdate) IsEmpty() bool {
	return u.Title == nil && u.Description == nil && u.StartTime == nil && u.EndTime == nil &&
		u.Location == nil && u.MatterID == nil && len(u.Attendees) == 0 && u.EventType == nil &&
		u.IsAllDay == nil && u.ReminderMinutes == nil && u.RecurrenceRule == nil
}

func (u CalendarEventUpdate) Validate() error {
	var errs fieldErrors
	if u.StartTime != nil && u.EndTime != nil && u.EndTime.Before(*u.StartTime) {
		errs.add("end_time", "End time must be after start time")
	}
	if len(u.Attendees) > 0 && !json.Valid(u.Attendees) {
		errs.add("attendees", "Attendees must be valid JSON")
	}
	return errs.err()
}

type CalendarFilter struct {
	StartAfter *time.Time
	EndBefore  *time.Time
	MatterID   *int64
}
