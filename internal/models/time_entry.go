package models

import (
	"time"

	"github.com/shopspring/decimal"
)

type TimeEntry struct {
	ID              int64           `json:"id" db:"id"`
	MatterID        int64           `json:"matter_id" db:"matter_id"`
	UserID          int64           `json:"user_id" db:"user_id"`
	Description     string          `json:"description" db:"description"`
	DurationMinutes int             `json:"duration_minutes" db:"duration_minutes"`
	Date            Date            `json:"date" db:"date"`
	HourlyRate      decimal.Decimal `json:"hourly_rate" db:"hourly_rate"`
	TotalValue      decimal.Decimal `json:"total_value" db:"total_value"`
	IsBillable      bool            `json:"is_billable" db:"is_billable"`
	CreatedAt       time.Time       `json:"created_at" db:"created_at"`
	UpdatedAt       time.Time       `json:"updated_at" db:"updated_at"`

	MatterTitle *string `json:"matter_title,omitempty" db:"matter_title"`
	ClientName  *string `json:"client_name,omitempty" db:"client_name"`
	UserName    *string `json:"user_name,omitempty" db:"user_name"`
}

// TimeValue is (minutes / 60) × rate, rounded to cents.
func TimeValue(minutes int, rate decimal.Decimal) decimal.Decimal {
	return rate.Mul(decimal.NewFromInt(int64(minutes))).Div(decimal.NewFromInt(60)).Round(2)
}

type TimeEntryInput struct {
	MatterID        int64               `json:"matter_id" binding:"required,gt=0"`
	Description     string              `json:"description" binding:"required"`
	DurationMinutes int                 `json:"duration_minutes" binding:"required,min=1"`
	Date            Date                `json:"date"`
	HourlyRate      decimal.NullDecimal `json:"hourly_rate"`
	IsBillable      *bool               `json:"is_billable"`
}

func (in TimeEntryInput) Validate() error {
	var errs fieldErrors
	errs.nonNegative("hourly_rate", in.HourlyRate)
	return errs.err()
}

// TimeEntryUpdate lists the time entry columns a caller may change.
type TimeEntryUpdate struct {
	Description     *string             `json:"description" binding:"omitempty,min=1"`
	DurationMinutes *int                `json:"duration_minutes" binding:"omitempty,min=1"`
	Date            *Date               `json:"date"`
	HourlyRate      decimal.NullDecimal `json:"hourly_rate"`
	IsBillable      *bool               `json:"is_billable"`
}

func (u TimeEntryUpdate) IsEmpty() bool {
	return u.Description == nil && u.DurationMinutes == nil && u.Date == nil &&
		!u.HourlyRate.Valid && u.IsBillable == nil
}

func (u TimeEntryUpdate) Validate() error {
	var errs fieldErrors
	errs.nonNegative("hourly_rate", u.HourlyRate)
	return errs.err()
}

// ChangesValue reports whether the update touches an input of total_value.
func (u TimeEntryUpdate) ChangesValue() bool {
	return u.DurationMinutes != nil || u.HourlyRate.Valid
}

// NewTimeEntry is what the time entry store persists. Rate and value are
// resolved by the caller.
type NewTimeEntry struct {
	MatterID        int64
	UserID          int64
	Description     string
	DurationMinutes int
	Date            Date
	HourlyRate      decimal.Decimal
	TotalValue      decimal.Decimal
	IsBillable      bool
}

type TimeEntryFilter struct {
	MatterID  *int64
	UserID    *int64
	StartDate *Date
	EndDate   *Date
	Billable  *bool
}

// TimeSummary aggregates one user's time over a date range.
type TimeSummary struct {
	TotalMinutes    int64           `json:"-" db:"total_minutes"`
	BillableMinutes int64           `json:"-" db:"billable_minutes"`
	BillableValue   decimal.Decimal `json:"billable_value" db:"billable_value"`

	TotalHours       float64             `json:"total_hours" db:"-"`
	BillableHours    float64             `json:"billable_hours" db:"-"`
	NonBillableHours float64             `json:"non_billable_hours" db:"-"`
	UtilizationRate  float64             `json:"utilization_rate" db:"-"`
	ByMatter         []MatterTimeSummary `json:"by_matter" db:"-"`
}

type MatterTimeSummary struct {
	MatterID     int64           `json:"matter_id" db:"matter_id"`
	MatterTitle  string          `json:"matter_title" db:"matter_title"`
	TotalMinutes int64           `json:"-" db:"total_minutes"`
	TotalHours   float64         `json:"total_hours" db:"-"`
	TotalValue   decimal.Decimal `json:"total_value" db:"total_value"`
}

// Finalize derives the hour and rate fields from the raw minute sums.
func (s *TimeSummary) Finalize() {
	s.TotalHours = RoundHours(s.TotalMinutes)
	s.BillableHours = RoundHours(s.BillableMinutes)
	s.NonBillableHours = RoundHours(s.TotalMinutes - s.BillableMinutes)
	s.UtilizationRate = UtilizationRate(s.BillableMinutes, s.TotalMinutes)
	for i := range s.ByMatter {
		s.ByMatter[i].TotalHours = RoundHours(s.ByMatter[i].TotalMinutes)
	}
}
