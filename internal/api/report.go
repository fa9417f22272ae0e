package api

import (
	"context"
	"encoding/csv"
	"fmt"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/lalith-99/lawdesk/internal/middleware"
	"github.com/lalith-99/lawdesk/internal/models"
)

type reportService interface {
	Revenue(ctx context.Context, rng models.ReportRange) (*models.RevenueReport, error)
	Utilization(ctx context.Context, rng models.ReportRange) (*models.UtilizationReport, error)
	Aging(ctx context.Context, asOf *models.Date) (*models.AgingReport, error)
}

// ReportHandler serves the firm reports as JSON, or with ?format=csv as a
// CSV download of each report's main breakdown.
type ReportHandler struct {
	reports reportService
	logger  *zap.Logger
}

func NewReportHandler(reports reportService, logger *zap.Logger) *ReportHandler {
	return &ReportHandler{reports: reports, logger: logger}
}

// Revenue handles GET /api/reports/revenue
func (h *ReportHandler) Revenue(c *gin.Context) {
	q := newQuery(c)
	rng := q.reportRange()
	csvOut := wantCSV(q)
	if err := q.err(); err != nil {
		respondError(c, h.logger, err)
		return
	}

	r, err := h.reports.Revenue(c.Request.Context(), rng)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	if !csvOut {
		respond(c, http.StatusOK, r, "")
		return
	}

	rows := [][]string{{"client_id", "client_name", "company_name", "invoice_count", "total_revenue", "collected_revenue"}}
	for _, cr := range r.ByClient {
		rows = append(rows, []string{
			strconv.FormatInt(cr.ClientID, 10),
			cr.ClientName,
			deref(cr.CompanyName),
			strconv.FormatInt(cr.InvoiceCount, 10),
			cr.TotalRevenue.StringFixed(2),
			cr.CollectedRevenue.StringFixed(2),
		})
	}
	h.writeCSV(c, "revenue.csv", rows)
}

// Utilization handles GET /api/reports/utilization
func (h *ReportHandler) Utilization(c *gin.Context) {
	q := newQuery(c)
	rng := q.reportRange()
	csvOut := wantCSV(q)
	if err := q.err(); err != nil {
		respondError(c, h.logger, err)
		return
	}

	r, err := h.reports.Utilization(c.Request.Context(), rng)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	if !csvOut {
		respond(c, http.StatusOK, r, "")
		return
	}

	rows := [][]string{{"user_id", "user_name", "total_hours", "billable_hours", "billable_value", "matters_worked", "utilization_rate"}}
	for _, u := range r.ByUser {
		rows = append(rows, []string{
			strconv.FormatInt(u.UserID, 10),
			u.UserName,
			formatFloat(u.TotalHours),
			formatFloat(u.BillableHours),
			u.BillableValue.StringFixed(2),
			strconv.FormatInt(u.MattersWorked, 10),
			formatFloat(u.UtilizationRate),
		})
	}
	h.writeCSV(c, "utilization.csv", rows)
}

// Aging handles GET /api/reports/aging
func (h *ReportHandler) Aging(c *gin.Context) {
	q := newQuery(c)
	asOf := q.date("as_of_date")
	csvOut := wantCSV(q)
	if err := q.err(); err != nil {
		respondError(c, h.logger, err)
		return
	}

	r, err := h.reports.Aging(c.Request.Context(), asOf)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	if !csvOut {
		respond(c, http.StatusOK, r, "")
		return
	}

	rows := [][]string{{"client_id", "client_name", "invoice_count", "current_0_30", "overdue_31_60", "overdue_61_90", "overdue_90_plus", "total_outstanding"}}
	for _, ca := range r.ClientBreakdown {
		rows = append(rows, []string{
			strconv.FormatInt(ca.ClientID, 10),
			ca.ClientName,
			strconv.FormatInt(ca.InvoiceCount, 10),
			ca.Current0To30.StringFixed(2),
			ca.Overdue31To60.StringFixed(2),
			ca.Overdue61To90.StringFixed(2),
			ca.Overdue90Plus.StringFixed(2),
			ca.TotalOutstanding.StringFixed(2),
		})
	}
	h.writeCSV(c, fmt.Sprintf("aging-%s.csv", r.AsOfDate), rows)
}

func wantCSV(q *query) bool {
	f := q.str("format")
	if f == nil || *f == "json" {
		return false
	}
	if *f != "csv" {
		q.fail("format", "Format must be one of: json, csv")
		return false
	}
	return true
}

func (h *ReportHandler) writeCSV(c *gin.Context, filename string, rows [][]string) {
	c.Header("Content-Type", "text/csv; charset=utf-8")
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	c.Status(http.StatusOK)

	w := csv.NewWriter(c.Writer)
	if err := w.WriteAll(rows); err != nil {
		// Headers are already out; all that is left is to log.
		h.logger.Error("write csv report",
			zap.String("file", filename),
			zap.String("request_id", middleware.GetRequestID(c)),
			zap.Error(err),
		)
	}
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

func formatFloat(f float64) string {
	return strconv.FormatFloat(f, 'f', 2, 64)
}
