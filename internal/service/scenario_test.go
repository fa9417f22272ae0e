package service

import (
	"context"
	"regexp"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/lalith-99/lawdesk/internal/apperr"
	"github.com/lalith-99/lawdesk/internal/models"
)

// TestBillingScenario walks one client from intake to a paid invoice.
func TestBillingScenario(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	activities := &activityRepoMock{}
	metrics := &metricsMock{}
	rec := NewRecorder(activities, metrics, zap.NewNop())

	clients := NewClientService(&clientRepoMock{
		CreateFunc: func(_ context.Context, in models.ClientInput, createdBy int64) (*models.Client, error) {
			return &models.Client{ID: 1, FirstName: in.FirstName, LastName: in.LastName, ClientType: in.ClientType, Status: in.Status, CreatedBy: &createdBy}, nil
		},
	}, &invoiceRepoMock{}, rec)
	matters := NewMatterService(&matterRepoMock{
		CreateFunc: func(_ context.Context, in models.MatterInput, _ int64) (*models.Matter, error) {
			return &models.Matter{ID: 1, Title: in.Title, ClientID: in.ClientID, Status: in.Status}, nil
		},
	}, rec)
	entries := NewTimeEntryService(&timeEntryRepoMock{
		CreateFunc: func(_ context.Context, e models.NewTimeEntry) (*models.TimeEntry, error) {
			return &models.TimeEntry{
				ID:              1,
				MatterID:        e.MatterID,
				UserID:          e.UserID,
				Description:     e.Description,
				DurationMinutes: e.DurationMinutes,
				Date:            e.Date,
				HourlyRate:      e.HourlyRate,
				TotalValue:      e.TotalValue,
				IsBillable:      e.IsBillable,
			}, nil
		},
	}, &userRepoMock{}, rec)
	invoices := NewInvoiceService(newInvoiceMemStore(), &txManagerMock{}, rec, metrics)

	client, err := clients.Create(ctx, attorney, models.ClientInput{FirstName: "John", LastName: "Smith"})
	require.NoError(t, err)
	assert.Equal(t, "John Smith", client.FullName())

	matter, err := matters.Create(ctx, attorney, models.MatterInput{Title: "Smith v. Jones", ClientID: client.ID})
	require.NoError(t, err)

	entry, err := entries.Create(ctx, attorney, models.TimeEntryInput{
		MatterID:        matter.ID,
		Description:     "Initial consultation",
		DurationMinutes: 90,
		HourlyRate:      decimal.NewNullDecimal(decimal.NewFromInt(200)),
	})
	require.NoError(t, err)
	assert.Equal(t, "300.00", entry.TotalValue.StringFixed(2))

	inv, err := invoices.Create(ctx, attorney, models.InvoiceInput{
		ClientID: client.ID,
		MatterID: &matter.ID,
		LineItems: []models.LineItemInput{
			{Description: "Initial consultation", Quantity: decimal.NewFromInt(1), Rate: decimal.NewFromInt(300)},
		},
	})
	require.NoError(t, err)
	assert.Regexp(t, regexp.MustCompile(`^INV-\d{4}-00001$`), inv.InvoiceNumber)
	assert.True(t, decimal.NewFromInt(300).Equal(inv.TotalAmount))

	inv, err = invoices.Send(ctx, attorney, inv.ID)
	require.NoError(t, err)
	assert.Equal(t, models.InvoiceStatusSent, inv.Status)

	inv, err = invoices.Pay(ctx, attorney, inv.ID, models.PaymentInput{})
	require.NoError(t, err)
	assert.Equal(t, models.InvoiceStatusPaid, inv.Status)

	err = invoices.Delete(ctx, attorney, inv.ID)
	require.ErrorIs(t, err, apperr.ErrInvalidState)

	var actions []string
	for _, a := range activities.recorded() {
		actions = append(actions, a.EntityType+":"+a.Action)
	}
	assert.Equal(t, []string{
		"client:create",
		"matter:create",
		"time_entry:create",
		"invoice:create",
		"invoice:send",
		"invoice:pay",
	}, actions)
}
