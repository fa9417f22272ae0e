package api

import (
	"context"
	"errors"

	"github.com/lalith-99/lawdesk/internal/models"
)

// Each fake embeds the handler's service interface so only the methods a
// test sets need bodies. Calling an unset method panics, which the
// recovery middleware turns into a 500.

type fakeClients struct {
	clientService
	ListFunc    func(ctx context.Context, f models.ClientFilter, p models.Page) (models.List[models.Client], error)
	GetFunc     func(ctx context.Context, id int64) (*models.Client, error)
	CreateFunc  func(ctx context.Context, actor models.Actor, in models.ClientInput) (*models.Client, error)
	UpdateFunc  func(ctx context.Context, actor models.Actor, id int64, u models.ClientUpdate) (*models.Client, error)
	DeleteFunc  func(ctx context.Context, actor models.Actor, id int64) error
	BillingFunc func(ctx context.Context, id int64) (*models.ClientBilling, error)
}

func (f *fakeClients) List(ctx context.Context, fl models.ClientFilter, p models.Page) (models.List[models.Client], error) {
	return f.ListFunc(ctx, fl, p)
}

func (f *fakeClients) Get(ctx context.Context, id int64) (*models.Client, error) {
	return f.GetFunc(ctx, id)
}

func (f *fakeClients) Create(ctx context.Context, actor models.Actor, in models.ClientInput) (*models.Client, error) {
	return f.CreateFunc(ctx, actor, in)
}

func (f *fakeClients) Update(ctx context.Context, actor models.Actor, id int64, u models.ClientUpdate) (*models.Client, error) {
	return f.UpdateFunc(ctx, actor, id, u)
}

func (f *fakeClients) Delete(ctx context.Context, actor models.Actor, id int64) error {
	return f.DeleteFunc(ctx, actor, id)
}

func (f *fakeClients) Billing(ctx context.Context, id int64) (*models.ClientBilling, error) {
	return f.BillingFunc(ctx, id)
}

type fakeMatters struct {
	matterService
	ListFunc func(ctx context.Context, f models.MatterFilter, p models.Page) (models.List[models.Matter], error)
}

func (f *fakeMatters) List(ctx context.Context, fl models.MatterFilter, p models.Page) (models.List[models.Matter], error) {
	return f.ListFunc(ctx, fl, p)
}

type fakeInvoices struct {
	invoiceService
	CreateFunc func(ctx context.Context, actor models.Actor, in models.InvoiceInput) (*models.Invoice, error)
	SendFunc   func(ctx context.Context, actor models.Actor, id int64) (*models.Invoice, error)
	PayFunc    func(ctx context.Context, actor models.Actor, id int64, in models.PaymentInput) (*models.Invoice, error)
}

func (f *fakeInvoices) Create(ctx context.Context, actor models.Actor, in models.InvoiceInput) (*models.Invoice, error) {
	return f.CreateFunc(ctx, actor, in)
}

func (f *fakeInvoices) Send(ctx context.Context, actor models.Actor, id int64) (*models.Invoice, error) {
	return f.SendFunc(ctx, actor, id)
}

func (f *fakeInvoices) Pay(ctx context.Context, actor models.Actor, id int64, in models.PaymentInput) (*models.Invoice, error) {
	return f.PayFunc(ctx, actor, id, in)
}

type fakeTimeEntries struct {
	timeEntryService
	SummaryFunc func(ctx context.Context, actor models.Actor, userID int64, rng models.ReportRange) (*models.TimeSummary, error)
}

func (f *fakeTimeEntries) Summary(ctx context.Context, actor models.Actor, userID int64, rng models.ReportRange) (*models.TimeSummary, error) {
	return f.SummaryFunc(ctx, actor, userID, rng)
}

type fakeReports struct {
	reportService
	AgingFunc func(ctx context.Context, asOf *models.Date) (*models.AgingReport, error)
}

func (f *fakeReports) Aging(ctx context.Context, asOf *models.Date) (*models.AgingReport, error) {
	return f.AgingFunc(ctx, asOf)
}

type fakeAuth struct {
	authService
	LoginFunc func(ctx context.Context, in models.LoginInput) (*models.AuthResult, error)
}

func (f *fakeAuth) Login(ctx context.Context, in models.LoginInput) (*models.AuthResult, error) {
	return f.LoginFunc(ctx, in)
}

type fakePinger struct {
	err error
}

func (p fakePinger) Health(context.Context) error { return p.err }

var errDown = errors.New("connection refused")
