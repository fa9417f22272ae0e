// Package repository declares the persistence contracts the services depend on.
//
// Every method takes ctx first. When ctx carries a transaction opened by
// postgres.TxManager the implementation joins it.
//
// Lookups of a missing row return an error wrapping apperr.ErrNotFound,
// never (nil, nil). List methods return the page plus the total row count
// for the same filter, and an empty slice rather than nil.
package repository

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/lalith-99/lawdesk/internal/models"
)

// ClientRepository persists clients.
type ClientRepository interface {
	List(ctx context.Context, f models.ClientFilter, p models.Page) ([]models.Client, int, error)
	Get(ctx context.Context, id int64) (*models.Client, error)
	Create(ctx context.Context, in models.ClientInput, createdBy int64) (*models.Client, error)
	Update(ctx context.Context, id int64, u models.ClientUpdate) (*models.Client, error)
	Delete(ctx context.Context, id int64) error

	// HasMatters reports whether any matter references the client.
	HasMatters(ctx context.Context, id int64) (bool, error)

	// Billing sums the client's invoices. RecentInvoices is left empty.
	Billing(ctx context.Context, id int64) (*models.ClientBilling, error)
}

// MatterRepository persists matters. Get and List join the client and
// responsible attorney names.
type MatterRepository interface {
	List(ctx context.Context, f models.MatterFilter, p models.Page) ([]models.Matter, int, error)
	Get(ctx context.Context, id int64) (*models.Matter, error)
	Create(ctx context.Context, in models.MatterInput, createdBy int64) (*models.Matter, error)
	Update(ctx context.Context, id int64, u models.MatterUpdate) (*models.Matter, error)
	Delete(ctx context.Context, id int64) error
}

// InvoiceRepository persists invoices and their line items. Multi-step
// writes are expected to run inside one transaction.
type InvoiceRepository interface {
	List(ctx context.Context, f models.InvoiceFilter, p models.Page) ([]models.Invoice, int, error)

	// Get returns the invoice without line items.
	Get(ctx context.Context, id int64) (*models.Invoice, error)
	LineItems(ctx context.Context, invoiceID int64) ([]models.LineItem, error)

	// NextSequence bumps and returns the invoice counter for year.
	// The first call for a year returns 1.
	NextSequence(ctx context.Context, year int) (int, error)

	// Insert stores the invoice header with total_amount = in.Total().
	Insert(ctx context.Context, in models.InvoiceInput, number string, createdBy int64) (int64, error)
	InsertLineItems(ctx context.Context, invoiceID int64, items []models.LineItemInput) error

	Update(ctx context.Context, id int64, u models.InvoiceUpdate) error

	// MarkSent moves a draft to sent. It reports false when no draft
	// invoice with that id exists.
	MarkSent(ctx context.Context, id int64) (bool, error)

	// MarkPaid moves a sent or overdue invoice to paid. It reports false
	// when no payable invoice with that id exists.
	MarkPaid(ctx context.Context, id int64, method *string, paidOn models.Date) (bool, error)

	// Delete removes the line items and then the invoice.
	Delete(ctx context.Context, id int64) error
}

// TimeEntryRepository persists time entries.
type TimeEntryRepository interface {
	List(ctx context.Context, f models.TimeEntryFilter, p models.Page) ([]models.TimeEntry, int, error)
	Get(ctx context.Context, id int64) (*models.TimeEntry, error)
	Create(ctx context.Context, e models.NewTimeEntry) (*models.TimeEntry, error)

	// Update applies u. A valid totalValue replaces total_value.
	Update(ctx context.Context, id int64, u models.TimeEntryUpdate, totalValue decimal.NullDecimal) (*models.TimeEntry, error)
	Delete(ctx context.Context, id int64) error

	// Summary aggregates one user's entries inside rng.
	Summary(ctx context.Context, userID int64, rng models.ReportRange) (*models.TimeSummary, error)
}

// TaskRepository persists tasks.
type TaskRepository interface {
	List(ctx context.Context, f models.TaskFilter, p models.Page) ([]models.Task, int, error)
	Get(ctx context.Context, id int64) (*models.Task, error)
	Create(ctx context.Context, in models.TaskInput, createdBy int64) (*models.Task, error)
	Update(ctx context.Context, id int64, u models.TaskUpdate) (*models.Task, error)
	Delete(ctx context.Context, id int64) error

	// Today lists the user's open tasks due on or before today, plus the
	// undated ones.
	Today(ctx context.Context, userID int64, today models.Date) ([]models.Task, error)
}

// DocumentRepository persists document metadata.
type DocumentRepository interface {
	List(ctx context.Context, f models.DocumentFilter, p models.Page) ([]models.Document, int, error)
	Get(ctx context.Context, id int64) (*models.Document, error)
	Create(ctx context.Context, in models.DocumentInput, uploadedBy int64) (*models.Document, error)
	Delete(ctx context.Context, id int64) error
}

// CommunicationRepository persists the communication log.
type CommunicationRepository interface {
	List(ctx context.Context, f models.CommunicationFilter, p models.Page) ([]models.Communication, int, error)
	Get(ctx context.Context, id int64) (*models.Communication, error)
	Create(ctx context.Context, in models.CommunicationInput, createdBy int64) (*models.Communication, error)
	Update(ctx context.Context, id int64, u models.CommunicationUpdate) (*models.Communication, error)
	Delete(ctx context.Context, id int64) error
}

// CalendarRepository persists calendar events.
type CalendarRepository interface {
	List(ctx context.Context, f models.CalendarFilter, p models.Page) ([]models.CalendarEvent, int, error)
	Get(ctx context.Context, id int64) (*models.CalendarEvent, error)
	Create(ctx context.Context, in models.CalendarEventInput, createdBy int64) (*models.CalendarEvent, error)
	Update(ctx context.Context, id int64, u models.CalendarEventUpdate) (*models.CalendarEvent, error)
	Delete(ctx context.Context, id int64) error

	// Between lists events starting in [from, to).
	Between(ctx context.Context, from, to models.Date) ([]models.CalendarEvent, error)
}

// ActivityRepository appends to and reads the audit log.
type ActivityRepository interface {
	Insert(ctx context.Context, userID *int64, in models.ActivityInput) (*models.Activity, error)
	List(ctx context.Context, f models.ActivityFilter, p models.Page) ([]models.Activity, int, error)
	Recent(ctx context.Context, limit int) ([]models.Activity, error)
}

// ConflictRepository searches the conflict sources and keeps the check history.
type ConflictRepository interface {
	// Search matches name against clients, adverse parties and contacts.
	Search(ctx context.Context, name string) ([]models.ConflictMatch, error)
	Record(ctx context.Context, in models.ConflictLogInput, checkedBy int64) (*models.ConflictCheck, error)
	List(ctx context.Context, p models.Page) ([]models.ConflictCheck, int, error)
}

// PartyRepository maintains the adverse parties and contacts that feed
// conflict searches.
type PartyRepository interface {
	ListAdverseParties(ctx context.Context, f models.PartyFilter, p models.Page) ([]models.AdverseParty, int, error)
	GetAdverseParty(ctx context.Context, id int64) (*models.AdverseParty, error)
	CreateAdverseParty(ctx context.Context, in models.AdversePartyInput, createdBy int64) (*models.AdverseParty, error)
	DeleteAdverseParty(ctx context.Context, id int64) error

	ListContacts(ctx context.Context, f models.PartyFilter, p models.Page) ([]models.Contact, int, error)
	GetContact(ctx context.Context, id int64) (*models.Contact, error)
	CreateContact(ctx context.Context, in models.ContactInput, createdBy int64) (*models.Contact, error)
	DeleteContact(ctx context.Context, id int64) error
}

// UserRepository handles user accounts.
type UserRepository interface {
	List(ctx context.Context, f models.UserFilter, p models.Page) ([]models.User, int, error)
	Get(ctx context.Context, id int64) (*models.User, error)

	// GetByEmail is used for login. Emails are matched case-insensitively.
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	Create(ctx context.Context, u models.NewUser) (*models.User, error)
	Update(ctx context.Context, id int64, u models.UserUpdate) (*models.User, error)
	UpdateLastLogin(ctx context.Context, id int64) error
	SetPassword(ctx context.Context, id int64, hash string) error
}

// ReportRepository runs the read-only aggregate queries behind the reports.
type ReportRepository interface {
	Revenue(ctx context.Context, rng models.ReportRange) (*models.RevenueReport, error)
	Utilization(ctx context.Context, rng models.ReportRange) ([]models.UserUtilization, models.TimeTotals, error)

	// OutstandingInvoices lists sent and overdue invoices with their clients.
	OutstandingInvoices(ctx context.Context) ([]models.OutstandingInvoice, error)
}
