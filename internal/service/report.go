package service

import (
	"context"
	"fmt"

	"github.com/lalith-99/lawdesk/internal/models"
	"github.com/lalith-99/lawdesk/internal/repository"
)

// ReportService computes the read-only firm reports on demand.
type ReportService struct {
	reports repository.ReportRepository
}

func NewReportService(reports repository.ReportRepository) *ReportService {
	return &ReportService{reports: reports}
}

// Revenue covers every invoice issued in rng that is neither draft nor
// cancelled.
func (s *ReportService) Revenue(ctx context.Context, rng models.ReportRange) (*models.RevenueReport, error) {
	r, err := s.reports.Revenue(ctx, rng)
	if err != nil {
		return nil, fmt.Errorf("revenue report: %w", err)
	}
	if r.ByPracticeArea == nil {
		r.ByPracticeArea = []models.PracticeAreaRevenue{}
	}
	if r.ByClient == nil {
		r.ByClient = []models.ClientRevenue{}
	}
	return r, nil
}

func (s *ReportService) Utilization(ctx context.Context, rng models.ReportRange) (*models.UtilizationReport, error) {
	users, totals, err := s.reports.Utilization(ctx, rng)
	if err != nil {
		return nil, fmt.Errorf("utilization report: %w", err)
	}
	r := models.BuildUtilizationReport(users, totals)
	return &r, nil
}

// Aging buckets outstanding invoices by days past due as of asOf, or as
// of today when asOf is nil.
func (s *ReportService) Aging(ctx context.Context, asOf *models.Date) (*models.AgingReport, error) {
	day := models.Today()
	if asOf != nil && !asOf.IsZero() {
		day = *asOf
	}
	invoices, err := s.reports.OutstandingInvoices(ctx)
	if err != nil {
		return nil, fmt.Errorf("aging report: %w", err)
	}
	r := models.BuildAgingReport(invoices, day)
	return &r, nil
}
