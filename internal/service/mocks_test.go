package service

import (
	"context"
	"sync"

	"github.com/shopspring/decimal"

	"github.com/lalith-99/lawdesk/internal/models"
	"github.com/lalith-99/lawdesk/internal/repository"
)

// The mocks below embed the repository interface they stand in for, so a
// test only wires the methods it expects to be called. Calling anything
// else panics on the nil embedded value and fails the test loudly.

type txManagerMock struct {
	mu    sync.Mutex
	calls int
}

func (m *txManagerMock) RunInTx(ctx context.Context, fn func(ctx context.Context) error) error {
	m.mu.Lock()
	m.calls++
	m.mu.Unlock()
	return fn(ctx)
}

type metricsMock struct {
	mu             sync.Mutex
	invoiceEvents  []string
	activityFailed int
}

func (m *metricsMock) InvoiceEvent(event string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.invoiceEvents = append(m.invoiceEvents, event)
}

func (m *metricsMock) ActivityWriteFailed() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.activityFailed++
}

type activityRepoMock struct {
	repository.ActivityRepository

	InsertFunc func(ctx context.Context, userID *int64, in models.ActivityInput) (*models.Activity, error)
	RecentFunc func(ctx context.Context, limit int) ([]models.Activity, error)

	mu      sync.Mutex
	inserts []models.ActivityInput
}

func (m *activityRepoMock) Insert(ctx context.Context, userID *int64, in models.ActivityInput) (*models.Activity, error) {
	m.mu.Lock()
	m.inserts = append(m.inserts, in)
	m.mu.Unlock()
	if m.InsertFunc != nil {
		return m.InsertFunc(ctx, userID, in)
	}
	return &models.Activity{ID: int64(len(m.inserts)), UserID: userID, Action: in.Action, EntityType: in.EntityType}, nil
}

func (m *activityRepoMock) Recent(ctx context.Context, limit int) ([]models.Activity, error) {
	return m.RecentFunc(ctx, limit)
}

func (m *activityRepoMock) recorded() []models.ActivityInput {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]models.ActivityInput(nil), m.inserts...)
}

type clientRepoMock struct {
	repository.ClientRepository

	GetFunc        func(ctx context.Context, id int64) (*models.Client, error)
	CreateFunc     func(ctx context.Context, in models.ClientInput, createdBy int64) (*models.Client, error)
	UpdateFunc     func(ctx context.Context, id int64, u models.ClientUpdate) (*models.Client, error)
	DeleteFunc     func(ctx context.Context, id int64) error
	HasMattersFunc func(ctx context.Context, id int64) (bool, error)
	BillingFunc    func(ctx context.Context, id int64) (*models.ClientBilling, error)

	deleteCalls int
}

func (m *clientRepoMock) Get(ctx context.Context, id int64) (*models.Client, error) {
	return m.GetFunc(ctx, id)
}

func (m *clientRepoMock) Create(ctx context.Context, in models.ClientInput, createdBy int64) (*models.Client, error) {
	return m.CreateFunc(ctx, in, createdBy)
}

func (m *clientRepoMock) Update(ctx context.Context, id int64, u models.ClientUpdate) (*models.Client, error) {
	return m.UpdateFunc(ctx, id, u)
}

func (m *clientRepoMock) Delete(ctx context.Context, id int64) error {
	m.deleteCalls++
	return m.DeleteFunc(ctx, id)
}

func (m *clientRepoMock) HasMatters(ctx context.Context, id int64) (bool, error) {
	return m.HasMattersFunc(ctx, id)
}

func (m *clientRepoMock) Billing(ctx context.Context, id int64) (*models.ClientBilling, error) {
	return m.BillingFunc(ctx, id)
}

type invoiceRepoMock struct {
	repository.InvoiceRepository

	ListFunc func(ctx context.Context, f models.InvoiceFilter, p models.Page) ([]models.Invoice, int, error)
}

func (m *invoiceRepoMock) List(ctx context.Context, f models.InvoiceFilter, p models.Page) ([]models.Invoice, int, error) {
	return m.ListFunc(ctx, f, p)
}

type timeEntryRepoMock struct {
	repository.TimeEntryRepository

	GetFunc     func(ctx context.Context, id int64) (*models.TimeEntry, error)
	CreateFunc  func(ctx context.Context, e models.NewTimeEntry) (*models.TimeEntry, error)
	UpdateFunc  func(ctx context.Context, id int64, u models.TimeEntryUpdate, total decimal.NullDecimal) (*models.TimeEntry, error)
	DeleteFunc  func(ctx context.Context, id int64) error
	SummaryFunc func(ctx context.Context, userID int64, rng models.ReportRange) (*models.TimeSummary, error)
}

func (m *timeEntryRepoMock) Get(ctx context.Context, id int64) (*models.TimeEntry, error) {
	return m.GetFunc(ctx, id)
}

func (m *timeEntryRepoMock) Create(ctx context.Context, e models.NewTimeEntry) (*models.TimeEntry, error) {
	return m.CreateFunc(ctx, e)
}

func (m *timeEntryRepoMock) Update(ctx context.Context, id int64, u models.TimeEntryUpdate, total decimal.NullDecimal) (*models.TimeEntry, error) {
	return m.UpdateFunc(ctx, id, u, total)
}

func (m *timeEntryRepoMock) Delete(ctx context.Context, id int64) error {
	return m.DeleteFunc(ctx, id)
}

func (m *timeEntryRepoMock) Summary(ctx context.Context, userID int64, rng models.ReportRange) (*models.TimeSummary, error) {
	return m.SummaryFunc(ctx, userID, rng)
}

type userRepoMock struct {
	repository.UserRepository

	GetFunc             func(ctx context.Context, id int64) (*models.User, error)
	GetByEmailFunc      func(ctx context.Context, email string) (*models.User, error)
	CreateFunc          func(ctx context.Context, u models.NewUser) (*models.User, error)
	UpdateFunc          func(ctx context.Context, id int64, u models.UserUpdate) (*models.User, error)
	UpdateLastLoginFunc func(ctx context.Context, id int64) error
	SetPasswordFunc     func(ctx context.Context, id int64, hash string) error
}

func (m *userRepoMock) Get(ctx context.Context, id int64) (*models.User, error) {
	return m.GetFunc(ctx, id)
}

func (m *userRepoMock) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	return m.GetByEmailFunc(ctx, email)
}

func (m *userRepoMock) Create(ctx context.Context, u models.NewUser) (*models.User, error) {
	return m.CreateFunc(ctx, u)
}

func (m *userRepoMock) Update(ctx context.Context, id int64, u models.UserUpdate) (*models.User, error) {
	return m.UpdateFunc(ctx, id, u)
}

func (m *userRepoMock) UpdateLastLogin(ctx context.Context, id int64) error {
	return m.UpdateLastLoginFunc(ctx, id)
}

func (m *userRepoMock) SetPassword(ctx context.Context, id int64, hash string) error {
	return m.SetPasswordFunc(ctx, id, hash)
}

type reportRepoMock struct {
	repository.ReportRepository

	RevenueFunc             func(ctx context.Context, rng models.ReportRange) (*models.RevenueReport, error)
	UtilizationFunc         func(ctx context.Context, rng models.ReportRange) ([]models.UserUtilization, models.TimeTotals, error)
	OutstandingInvoicesFunc func(ctx context.Context) ([]models.OutstandingInvoice, error)
}

func (m *reportRepoMock) Revenue(ctx context.Context, rng models.ReportRange) (*models.RevenueReport, error) {
	return m.RevenueFunc(ctx, rng)
}

func (m *reportRepoMock) Utilization(ctx context.Context, rng models.ReportRange) ([]models.UserUtilization, models.TimeTotals, error) {
	return m.UtilizationFunc(ctx, rng)
}

func (m *reportRepoMock) OutstandingInvoices(ctx context.Context) ([]models.OutstandingInvoice, error) {
	return m.OutstandingInvoicesFunc(ctx)
}

type conflictRepoMock struct {
	repository.ConflictRepository

	SearchFunc func(ctx context.Context, name string) ([]models.ConflictMatch, error)
	RecordFunc func(ctx context.Context, in models.ConflictLogInput, checkedBy int64) (*models.ConflictCheck, error)
}

func (m *conflictRepoMock) Search(ctx context.Context, name string) ([]models.ConflictMatch, error) {
	return m.SearchFunc(ctx, name)
}

func (m *conflictRepoMock) Record(ctx context.Context, in models.ConflictLogInput, checkedBy int64) (*models.ConflictCheck, error) {
	return m.RecordFunc(ctx, in, checkedBy)
}

type matterRepoMock struct {
	repository.MatterRepository

	GetFunc    func(ctx context.Context, id int64) (*models.Matter, error)
	CreateFunc func(ctx context.Context, in models.MatterInput, createdBy int64) (*models.Matter, error)
	UpdateFunc func(ctx context.Context, id int64, u models.MatterUpdate) (*models.Matter, error)
	DeleteFunc func(ctx context.Context, id int64) error
}

func (m *matterRepoMock) Get(ctx context.Context, id int64) (*models.Matter, error) {
	return m.GetFunc(ctx, id)
}

func (m *matterRepoMock) Create(ctx context.Context, in models.MatterInput, createdBy int64) (*models.Matter, error) {
	return m.CreateFunc(ctx, in, createdBy)
}

func (m *matterRepoMock) Update(ctx context.Context, id int64, u models.MatterUpdate) (*models.Matter, error) {
	return m.UpdateFunc(ctx, id, u)
}

func (m *matterRepoMock) Delete(ctx context.Context, id int64) error {
	return m.DeleteFunc(ctx, id)
}

type taskRepoMock struct {
	repository.TaskRepository

	GetFunc    func(ctx context.Context, id int64) (*models.Task, error)
	UpdateFunc func(ctx context.Context, id int64, u models.TaskUpdate) (*models.Task, error)
	DeleteFunc func(ctx context.Context, id int64) error
}

func (m *taskRepoMock) Get(ctx context.Context, id int64) (*models.Task, error) {
	return m.GetFunc(ctx, id)
}

func (m *taskRepoMock) Update(ctx context.Context, id int64, u models.TaskUpdate) (*models.Task, error) {
	return m.UpdateFunc(ctx, id, u)
}

func (m *taskRepoMock) Delete(ctx context.Context, id int64) error {
	return m.DeleteFunc(ctx, id)
}
