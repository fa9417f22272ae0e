package service

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/lalith-99/lawdesk/internal/apperr"
	"github.com/lalith-99/lawdesk/internal/models"
)

func TestReportUtilization(t *testing.T) {
	t.Parallel()

	reports := &reportRepoMock{
		UtilizationFunc: func(context.Context, models.ReportRange) ([]models.UserUtilization, models.TimeTotals, error) {
			return []models.UserUtilization{
					{UserID: 1, UserName: "Idle Ivan"},
					{UserID: 2, UserName: "Busy Bea", TotalMinutes: 480, BillableMinutes: 360, BillableValue: decimal.NewFromInt(1800)},
				}, models.TimeTotals{
					TotalMinutes:    480,
					BillableMinutes: 360,
					BillableValue:   decimal.NewFromInt(1800),
				}, nil
		},
	}
	svc := NewReportService(reports)

	r, err := svc.Utilization(context.Background(), models.ReportRange{})
	require.NoError(t, err)

	require.Len(t, r.ByUser, 2)
	assert.Zero(t, r.ByUser[0].UtilizationRate, "no time logged means 0%")
	assert.Equal(t, 75.0, r.ByUser[1].UtilizationRate)
	assert.Equal(t, 8.0, r.ByUser[1].TotalHours)
	assert.Equal(t, 6.0, r.ByUser[1].BillableHours)
	assert.Equal(t, 75.0, r.Summary.OverallUtilization)
	assert.Equal(t, 8.0, r.Summary.TotalHours)
}

func TestReportUtilization_NoUsers(t *testing.T) {
	t.Parallel()

	reports := &reportRepoMock{
		UtilizationFunc: func(context.Context, models.ReportRange) ([]models.UserUtilization, models.TimeTotals, error) {
			return nil, models.TimeTotals{}, nil
		},
	}
	r, err := NewReportService(reports).Utilization(context.Background(), models.ReportRange{})
	require.NoError(t, err)
	assert.NotNil(t, r.ByUser)
	assert.Zero(t, r.Summary.OverallUtilization)
}

func TestReportRevenue_EmptySlices(t *testing.T) {
	t.Parallel()

	reports := &reportRepoMock{
		RevenueFunc: func(context.Context, models.ReportRange) (*models.RevenueReport, error) {
			return &models.RevenueReport{}, nil
		},
	}
	r, err := NewReportService(reports).Revenue(context.Background(), models.ReportRange{})
	require.NoError(t, err)
	assert.NotNil(t, r.ByPracticeArea)
	assert.NotNil(t, r.ByClient)
}

func TestReportAging(t *testing.T) {
	t.Parallel()

	due := func(s string) *models.Date {
		d := mustParseDate(t, s)
		return &d
	}
	reports := &reportRepoMock{
		OutstandingInvoicesFunc: func(context.Context) ([]models.OutstandingInvoice, error) {
			return []models.OutstandingInvoice{
				{InvoiceID: 1, ClientID: 1, ClientName: "Ada Acme", DueDate: due("2026-03-01"), TotalAmount: decimal.NewFromInt(100)},
				{InvoiceID: 2, ClientID: 1, ClientName: "Ada Acme", DueDate: due("2026-01-15"), TotalAmount: decimal.NewFromInt(200)},
				{InvoiceID: 3, ClientID: 2, ClientName: "Bob Brief", DueDate: due("2025-10-01"), TotalAmount: decimal.NewFromInt(900)},
				{InvoiceID: 4, ClientID: 2, ClientName: "Bob Brief", TotalAmount: decimal.NewFromInt(50)},
			}, nil
		},
	}
	asOf := mustParseDate(t, "2026-03-20")

	r, err := NewReportService(reports).Aging(context.Background(), &asOf)
	require.NoError(t, err)

	assert.Equal(t, asOf, r.AsOfDate)
	assert.Equal(t, int64(4), r.Summary.InvoiceCount)
	assert.True(t, decimal.NewFromInt(1250).Equal(r.Summary.TotalOutstanding))
	assert.True(t, decimal.NewFromInt(150).Equal(r.Summary.Current0To30), "due 19 days ago plus undated")
	assert.True(t, decimal.NewFromInt(200).Equal(r.Summary.Overdue61To90), "due 64 days ago")
	assert.True(t, decimal.NewFromInt(900).Equal(r.Summary.Overdue90Plus))

	require.Len(t, r.ClientBreakdown, 2)
	assert.Equal(t, "Bob Brief", r.ClientBreakdown[0].ClientName, "largest balance first")
}

func TestConflictCheck(t *testing.T) {
	t.Parallel()

	var recorded models.ConflictLogInput
	conflicts := &conflictRepoMock{
		SearchFunc: func(_ context.Context, name string) ([]models.ConflictMatch, error) {
			assert.Equal(t, "Acme", name)
			return []models.ConflictMatch{{ID: 3, EntityType: "client", Name: "Ada Acme"}}, nil
		},
		RecordFunc: func(_ context.Context, in models.ConflictLogInput, checkedBy int64) (*models.ConflictCheck, error) {
			recorded = in
			return &models.ConflictCheck{ID: 77, SearchName: in.SearchName, CheckedBy: &checkedBy}, nil
		},
	}
	rec := NewRecorder(&activityRepoMock{}, &metricsMock{}, zap.NewNop())
	svc := NewConflictService(conflicts, nil, rec)

	res, err := svc.Check(context.Background(), attorney, "  Acme ")
	require.NoError(t, err)

	assert.True(t, res.HasConflict)
	assert.Equal(t, 1, res.MatchCount)
	assert.Equal(t, int64(77), res.CheckID)
	assert.Equal(t, "Acme", recorded.SearchName)
	assert.JSONEq(t, `[{"id":3,"entity_type":"client","name":"Ada Acme"}]`, string(recorded.Results))
}

func TestConflictCheck_BlankName(t *testing.T) {
	t.Parallel()

	svc := NewConflictService(&conflictRepoMock{}, nil, NewRecorder(&activityRepoMock{}, &metricsMock{}, zap.NewNop()))
	_, err := svc.Check(context.Background(), attorney, "   ")
	require.ErrorIs(t, err, apperr.ErrValidation)
}

func TestConflictCheck_NoMatches(t *testing.T) {
	t.Parallel()

	conflicts := &conflictRepoMock{
		SearchFunc: func(context.Context, string) ([]models.ConflictMatch, error) { return []models.ConflictMatch{}, nil },
		RecordFunc: func(_ context.Context, in models.ConflictLogInput, _ int64) (*models.ConflictCheck, error) {
			assert.False(t, in.HasConflict)
			assert.JSONEq(t, `[]`, string(in.Results))
			return &models.ConflictCheck{ID: 1}, nil
		},
	}
	svc := NewConflictService(conflicts, nil, NewRecorder(&activityRepoMock{}, &metricsMock{}, zap.NewNop()))

	res, err := svc.Check(context.Background(), attorney, "Nobody")
	require.NoError(t, err)
	assert.False(t, res.HasConflict)
	assert.Zero(t, res.MatchCount)
}

func TestActivityRecent_ClampsLimit(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in, want int
	}{
		{in: 0, want: 10},
		{in: -5, want: 10},
		{in: 25, want: 25},
		{in: 500, want: 100},
	}
	for _, tt := range tests {
		var got int
		activities := &activityRepoMock{
			RecentFunc: func(_ context.Context, limit int) ([]models.Activity, error) {
				got = limit
				return []models.Activity{}, nil
			},
		}
		_, err := NewActivityService(activities).Recent(context.Background(), tt.in)
		require.NoError(t, err)
		assert.Equal(t, tt.want, got, "limit %d", tt.in)
	}
}
