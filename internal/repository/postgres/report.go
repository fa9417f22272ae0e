package postgres

import (
	"context"

	"github.com/Masterminds/squirrel"

	"github.com/lalith-99/lawdesk/internal/models"
)

// billedStatuses are the invoice statuses that count as revenue.
var billedStatuses = []string{
	models.InvoiceStatusSent, models.InvoiceStatusPaid, models.InvoiceStatusOverdue,
}

type ReportStore struct {
	db DB
}

func NewReportStore(db DB) *ReportStore {
	return &ReportStore{db: db}
}

func (s *ReportStore) Revenue(ctx context.Context, rng models.ReportRange) (*models.RevenueReport, error) {
	q := QuerierFromCtx(ctx, s.db)
	where := conj(squirrel.Eq{"i.status": billedStatuses}, dateRange("i.issue_date", rng))

	summary, err := selectOne[models.RevenueSummary](ctx, q, psql.Select(
		"COUNT(*) AS total_invoices",
		"COALESCE(SUM(i.total_amount), 0) AS total_billed",
		"COALESCE(SUM(i.total_amount) FILTER (WHERE i.status = 'paid'), 0) AS total_collected",
		"COALESCE(SUM(i.total_amount) FILTER (WHERE i.status IN ('sent', 'overdue')), 0) AS total_outstanding",
	).From("invoices i").Where(where))
	if err != nil {
		return nil, mapError("revenue summary", err)
	}

	byArea, err := selectAll[models.PracticeAreaRevenue](ctx, q, psql.Select(
		"COALESCE(m.practice_area, 'Unassigned') AS practice_area",
		"COUNT(i.id) AS invoice_count",
		"COALESCE(SUM(i.total_amount), 0) AS total_revenue",
		"COALESCE(SUM(i.total_amount) FILTER (WHERE i.status = 'paid'), 0) AS collected_revenue",
	).From("invoices i").
		LeftJoin("matters m ON i.matter_id = m.id").
		Where(where).
		GroupBy("COALESCE(m.practice_area, 'Unassigned')").
		OrderBy("total_revenue DESC", "practice_area"))
	if err != nil {
		return nil, mapError("revenue by practice area", err)
	}

	byClient, err := selectAll[models.ClientRevenue](ctx, q, psql.Select(
		"c.id",
		fullName("c")+" AS client_name",
		"c.company_name",
		"COUNT(i.id) AS invoice_count",
		"COALESCE(SUM(i.total_amount), 0) AS total_revenue",
		"COALESCE(SUM(i.total_amount) FILTER (WHERE i.status = 'paid'), 0) AS collected_revenue",
	).From("invoices i").
		Join("clients c ON i.client_id = c.id").
		Where(where).
		GroupBy("c.id", "c.first_name", "c.last_name", "c.company_name").
		OrderBy("total_revenue DESC", "c.id").
		Limit(20))
	if err != nil {
		return nil, mapError("revenue by client", err)
	}

	return &models.RevenueReport{Summary: *summary, ByPracticeArea: byArea, ByClient: byClient}, nil
}

// Utilization returns one row per active timekeeper, including those with
// no time in range, plus firm-wide totals over every entry in range.
func (s *ReportStore) Utilization(ctx context.Context, rng models.ReportRange) ([]models.UserUtilization, models.TimeTotals, error) {
	q := QuerierFromCtx(ctx, s.db)

	joinSQL, joinArgs, err := conjOrTrue(dateRange("t.date", rng)).ToSql()
	if err != nil {
		return nil, models.TimeTotals{}, mapError("build utilization range", err)
	}

	users, err := selectAll[models.UserUtilization](ctx, q, psql.Select(
		"u.id",
		fullName("u")+" AS user_name",
		"u.title",
		"COALESCE(SUM(t.duration_minutes), 0) AS total_minutes",
		"COALESCE(SUM(t.duration_minutes) FILTER (WHERE t.is_billable), 0) AS billable_minutes",
		"COALESCE(SUM(t.total_value) FILTER (WHERE t.is_billable), 0) AS billable_value",
		"COUNT(DISTINCT t.matter_id) AS matters_worked",
	).From("users u").
		JoinClause("LEFT JOIN time_entries t ON t.user_id = u.id AND "+joinSQL, joinArgs...).
		Where(squirrel.Eq{
			"u.is_active": true,
			"u.role":      []string{models.RoleAttorney, models.RoleParalegal, models.RolePartner},
		}).
		GroupBy("u.id", "u.first_name", "u.last_name", "u.title").
		OrderBy("total_minutes DESC", "u.id"))
	if err != nil {
		return nil, models.TimeTotals{}, mapError("utilization by user", err)
	}

	totals, err := selectOne[models.TimeTotals](ctx, q, psql.Select(
		"COALESCE(SUM(t.duration_minutes), 0) AS total_minutes",
		"COALESCE(SUM(t.duration_minutes) FILTER (WHERE t.is_billable), 0) AS billable_minutes",
		"COALESCE(SUM(t.total_value) FILTER (WHERE t.is_billable), 0) AS billable_value",
	).From("time_entries t").Where(dateRange("t.date", rng)))
	if err != nil {
		return nil, models.TimeTotals{}, mapError("utilization totals", err)
	}
	return users, *totals, nil
}

func (s *ReportStore) OutstandingInvoices(ctx context.Context) ([]models.OutstandingInvoice, error) {
	items, err := selectAll[models.OutstandingInvoice](ctx, QuerierFromCtx(ctx, s.db), psql.Select(
		"i.id", "i.client_id",
		fullName("c")+" AS client_name",
		"c.company_name",
		"c.email AS client_email",
		"i.due_date", "i.total_amount",
	).From("invoices i").
		Join("clients c ON i.client_id = c.id").
		Where(squirrel.Eq{"i.status": []string{models.InvoiceStatusSent, models.InvoiceStatusOverdue}}).
		OrderBy("i.due_date ASC NULLS LAST", "i.id"))
	if err != nil {
		return nil, mapError("outstanding invoices", err)
	}
	return items, nil
}

// conjOrTrue is conj for places that need a predicate even when the filter
// is empty, such as a JOIN condition.
func conjOrTrue(preds ...squirrel.Sqlizer) squirrel.Sqlizer {
	if p := conj(preds...); p != nil {
		return p
	}
	return squirrel.Expr("TRUE")
}
