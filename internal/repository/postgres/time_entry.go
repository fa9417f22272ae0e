package postgres

import (
	"context"

	"github.com/Masterminds/squirrel"
	"github.com/shopspring/decimal"

	"github.com/lalith-99/lawdesk/internal/models"
)

var timeEntryColumns = []string{
	"t.id", "t.matter_id", "t.user_id", "t.description", "t.duration_minutes", "t.date",
	"t.hourly_rate", "t.total_value", "t.is_billable", "t.created_at", "t.updated_at",
	"m.title AS matter_title",
	fullName("c") + " AS client_name",
	fullName("u") + " AS user_name",
}

type TimeEntryStore struct {
	db DB
}

func NewTimeEntryStore(db DB) *TimeEntryStore {
	return &TimeEntryStore{db: db}
}

func timeEntryFrom() squirrel.SelectBuilder {
	return psql.Select().
		From("time_entries t").
		LeftJoin("matters m ON t.matter_id = m.id").
		LeftJoin("clients c ON m.client_id = c.id").
		LeftJoin("users u ON t.user_id = u.id")
}

// dateRange bounds col by rng, inclusive on both ends.
func dateRange(col string, rng models.ReportRange) squirrel.Sqlizer {
	return conj(
		cmp(rng.StartDate, func(d models.Date) squirrel.Sqlizer { return squirrel.GtOrEq{col: d} }),
		cmp(rng.EndDate, func(d models.Date) squirrel.Sqlizer { return squirrel.LtOrEq{col: d} }),
	)
}

func (s *TimeEntryStore) List(ctx context.Context, f models.TimeEntryFilter, p models.Page) ([]models.TimeEntry, int, error) {
	where := conj(
		eq("t.matter_id", f.MatterID),
		eq("t.user_id", f.UserID),
		eq("t.is_billable", f.Billable),
		dateRange("t.date", models.ReportRange{StartDate: f.StartDate, EndDate: f.EndDate}),
	)
	items, total, err := selectPage[models.TimeEntry](ctx, QuerierFromCtx(ctx, s.db),
		timeEntryFrom(), timeEntryColumns, where, p, "t.date DESC", "t.created_at DESC", "t.id DESC")
	if err != nil {
		return nil, 0, mapError("list time entries", err)
	}
	return items, total, nil
}

func (s *TimeEntryStore) Get(ctx context.Context, id int64) (*models.TimeEntry, error) {
	e, err := selectOne[models.TimeEntry](ctx, QuerierFromCtx(ctx, s.db),
		timeEntryFrom().Columns(timeEntryColumns...).Where(squirrel.Eq{"t.id": id}))
	if err != nil {
		return nil, mapError("get time entry", err)
	}
	return e, nil
}

func (s *TimeEntryStore) Create(ctx context.Context, e models.NewTimeEntry) (*models.TimeEntry, error) {
	id, err := insertID(ctx, QuerierFromCtx(ctx, s.db), psql.Insert("time_entries").SetMap(map[string]any{
		"matter_id":        e.MatterID,
		"user_id":          e.UserID,
		"description":      e.Description,
		"duration_minutes": e.DurationMinutes,
		"date":             e.Date,
		"hourly_rate":      e.HourlyRate,
		"total_value":      e.TotalValue,
		"is_billable":      e.IsBillable,
	}))
	if err != nil {
		return nil, mapError("insert time entry", err)
	}
	return s.Get(ctx, id)
}

func (s *TimeEntryStore) Update(ctx context.Context, id int64, u models.TimeEntryUpdate, totalValue decimal.NullDecimal) (*models.TimeEntry, error) {
	set := setter{}
	setIf(set, "description", u.Description)
	setIf(set, "duration_minutes", u.DurationMinutes)
	setIf(set, "date", u.Date)
	setIf(set, "is_billable", u.IsBillable)
	if u.HourlyRate.Valid {
		set["hourly_rate"] = u.HourlyRate.Decimal
	}
	if totalValue.Valid {
		set["total_value"] = totalValue.Decimal
	}

	if err := updateByID(ctx, QuerierFromCtx(ctx, s.db), "time_entries", id, set); err != nil {
		return nil, mapError("update time entry", err)
	}
	return s.Get(ctx, id)
}

func (s *TimeEntryStore) Delete(ctx context.Context, id int64) error {
	if err := deleteByID(ctx, QuerierFromCtx(ctx, s.db), "time_entries", id); err != nil {
		return mapError("delete time entry", err)
	}
	return nil
}

func (s *TimeEntryStore) Summary(ctx context.Context, userID int64, rng models.ReportRange) (*models.TimeSummary, error) {
	q := QuerierFromCtx(ctx, s.db)
	where := conj(squirrel.Eq{"t.user_id": userID}, dateRange("t.date", rng))

	summary, err := selectOne[models.TimeSummary](ctx, q, psql.Select(
		"COALESCE(SUM(t.duration_minutes), 0) AS total_minutes",
		"COALESCE(SUM(t.duration_minutes) FILTER (WHERE t.is_billable), 0) AS billable_minutes",
		"COALESCE(SUM(t.total_value) FILTER (WHERE t.is_billable), 0) AS billable_value",
	).From("time_entries t").Where(where))
	if err != nil {
		return nil, mapError("time summary", err)
	}

	summary.ByMatter, err = selectAll[models.MatterTimeSummary](ctx, q, psql.Select(
		"t.matter_id",
		"m.title AS matter_title",
		"COALESCE(SUM(t.duration_minutes), 0) AS total_minutes",
		"COALESCE(SUM(t.total_value), 0) AS total_value",
	).From("time_entries t").
		Join("matters m ON t.matter_id = m.id").
		Where(where).
		GroupBy("t.matter_id", "m.title").
		OrderBy("total_minutes DESC", "t.matter_id"))
	if err != nil {
		return nil, mapError("time summary by matter", err)
	}

	summary.Finalize()
	return summary, nil
}
