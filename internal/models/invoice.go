package models

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

const (
	InvoiceStatusDraft     = "draft"
	InvoiceStatusSent      = "sent"
	InvoiceStatusPaid      = "paid"
	InvoiceStatusOverdue   = "overdue"
	InvoiceStatusCancelled = "cancelled"
)

// InvoiceNumber formats the yearly sequence value as INV-<year>-<5 digits>.
func InvoiceNumber(year, seq int) string {
	return fmt.Sprintf("INV-%d-%05d", year, seq)
}

// IsTerminal reports whether an invoice in this status can no longer be
// edited or deleted.
func IsTerminalInvoiceStatus(status string) bool {
	return status == InvoiceStatusPaid || status == InvoiceStatusCancelled
}

type Invoice struct {
	ID            int64           `json:"id" db:"id"`
	InvoiceNumber string          `json:"invoice_number" db:"invoice_number"`
	ClientID      int64           `json:"client_id" db:"client_id"`
	MatterID      *int64          `json:"matter_id" db:"matter_id"`
	Status        string          `json:"status" db:"status"`
	TotalAmount   decimal.Decimal `json:"total_amount" db:"total_amount"`
	IssueDate     Date            `json:"issue_date" db:"issue_date"`
	DueDate       *Date           `json:"due_date" db:"due_date"`
	SentDate      *time.Time      `json:"sent_date" db:"sent_date"`
	PaidDate      *Date           `json:"paid_date" db:"paid_date"`
	PaymentMethod *string         `json:"payment_method" db:"payment_method"`
	Notes         *string         `json:"notes" db:"notes"`
	Terms         *string         `json:"terms" db:"terms"`
	CreatedBy     *int64          `json:"created_by" db:"created_by"`
	CreatedAt     time.Time       `json:"created_at" db:"created_at"`
	UpdatedAt     time.Time       `json:"updated_at" db:"updated_at"`

	ClientName    *string `json:"client_name,omitempty" db:"client_name"`
	ClientEmail   *string `json:"client_email,omitempty" db:"client_email"`
	ClientAddress *string `json:"client_address,omitempty" db:"client_address"`
	MatterTitle   *string `json:"matter_title,omitempty" db:"matter_title"`

	LineItems []LineItem `json:"line_items,omitempty" db:"-"`
}

type LineItem struct {
	ID          int64           `json:"id" db:"id"`
	InvoiceID   int64           `json:"invoice_id" db:"invoice_id"`
	Description string          `json:"description" db:"description"`
	Quantity    decimal.Decimal `json:"quantity" db:"quantity"`
	Rate        decimal.Decimal `json:"rate" db:"rate"`
	Amount      decimal.Decimal `json:"amount" db:"amount"`
	CreatedAt   time.Time       `json:"created_at" db:"created_at"`
}

type LineItemInput struct {
	Description string          `json:"description" binding:"required"`
	Quantity    decimal.Decimal `json:"quantity"`
	Rate        decimal.Decimal `json:"rate"`
}

func (li LineItemInput) Amount() decimal.Decimal {
	return LineTotal(li.Quantity, li.Rate)
}

type InvoiceInput struct {
	ClientID  int64           `json:"client_id" binding:"required,gt=0"`
	MatterID  *int64          `json:"matter_id" binding:"omitempty,gt=0"`
	IssueDate Date            `json:"issue_date"`
	DueDate   *Date           `json:"due_date"`
	LineItems []LineItemInput `json:"line_items" binding:"omitempty,dive"`
	Notes     *string         `json:"notes"`
	Terms     *string         `json:"terms"`
}

func (in *InvoiceInput) ApplyDefaults() {
	if in.IssueDate.IsZero() {
		in.IssueDate = Today()
	}
}

func (in InvoiceInput) Validate() error {
	var errs fieldErrors
	for i, li := range in.LineItems {
		if !li.Quantity.IsPositive() {
			errs.add(fmt.Sprintf("line_items[%d].quantity", i), "Quantity must be greater than 0")
		}
		if li.Rate.IsNegative() {
			errs.add(fmt.Sprintf("line_items[%d].rate", i), "Rate must be a positive number")
		}
	}
	if in.DueDate != nil && !in.IssueDate.IsZero() && in.DueDate.Before(in.IssueDate.Time) {
		errs.add("due_date", "Due date cannot be before issue date")
	}
	return errs.err()
}

// Total is Σ quantity × rate over the line items, computed exactly.
func (in InvoiceInput) Total() decimal.Decimal {
	total := decimal.Zero
	for _, li := range in.LineItems {
		total = total.Add(li.Amount())
	}
	return total
}

// InvoiceUpdate lists the invoice columns a caller may change.
type InvoiceUpdate struct {
	DueDate *Date   `json:"due_date"`
	Notes   *string `json:"notes"`
	Terms   *string `json:"terms"`
}

func (u InvoiceUpdate) IsEmpty() bool {
	return u.DueDate == nil && u.Notes == nil && u.Terms == nil
}

type PaymentInput struct {
	PaymentMethod *string `json:"payment_method" binding:"omitempty,max=50"`
	PaymentDate   *Date   `json:"payment_date"`
}

type InvoiceFilter struct {
	Status   *string
	ClientID *int64
	MatterID *int64
}
