package service

import (
	"context"
	"fmt"
	"time"

	"github.com/lalith-99/lawdesk/internal/apperr"
	"github.com/lalith-99/lawdesk/internal/models"
	"github.com/lalith-99/lawdesk/internal/repository"
)

type invoiceEvents interface {
	InvoiceEvent(event string)
}

// InvoiceService drives the invoice lifecycle:
//
//	draft -> sent -> paid
//	overdue -> paid
//
// paid and cancelled are terminal.
type InvoiceService struct {
	invoices repository.InvoiceRepository
	tx       TxManager
	rec      *Recorder
	metrics  invoiceEvents
	now      func() time.Time
}

func NewInvoiceService(invoices repository.InvoiceRepository, tx TxManager, rec *Recorder, metrics invoiceEvents) *InvoiceService {
	return &InvoiceService{invoices: invoices, tx: tx, rec: rec, metrics: metrics, now: time.Now}
}

func (s *InvoiceService) List(ctx context.Context, f models.InvoiceFilter, p models.Page) (models.List[models.Invoice], error) {
	items, total, err := s.invoices.List(ctx, f, p)
	if err != nil {
		return models.List[models.Invoice]{}, fmt.Errorf("list invoices: %w", err)
	}
	return page(items, total, p), nil
}

// Get returns the invoice with its line items in insertion order.
func (s *InvoiceService) Get(ctx context.Context, id int64) (*models.Invoice, error) {
	inv, err := s.invoices.Get(ctx, id)
	if err != nil {
		return nil, notFound("get invoice", "Invoice", err)
	}
	items, err := s.invoices.LineItems(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get invoice: %w", err)
	}
	inv.LineItems = items
	return inv, nil
}

// Create numbers the invoice and stores it with its line items in one
// transaction. Nothing is left behind when any step fails.
func (s *InvoiceService) Create(ctx context.Context, actor models.Actor, in models.InvoiceInput) (*models.Invoice, error) {
	in.ApplyDefaults()
	year := s.now().Year()

	var id int64
	err := s.tx.RunInTx(ctx, func(ctx context.Context) error {
		seq, err := s.invoices.NextSequence(ctx, year)
		if err != nil {
			return err
		}
		id, err = s.invoices.Insert(ctx, in, models.InvoiceNumber(year, seq), actor.ID)
		if err != nil {
			return err
		}
		return s.invoices.InsertLineItems(ctx, id, in.LineItems)
	})
	if err != nil {
		return nil, fmt.Errorf("create invoice: %w", err)
	}

	inv, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	s.metrics.InvoiceEvent("created")
	s.rec.Record(ctx, actor, Event{
		Action:      models.ActionCreate,
		EntityType:  models.EntityInvoice,
		EntityID:    inv.ID,
		Description: "Created invoice: " + inv.InvoiceNumber,
		Metadata:    map[string]any{"total_amount": inv.TotalAmount},
	})
	return inv, nil
}

func (s *InvoiceService) Update(ctx context.Context, actor models.Actor, id int64, u models.InvoiceUpdate) (*models.Invoice, error) {
	if u.IsEmpty() {
		return nil, errNoFields
	}
	current, err := s.invoices.Get(ctx, id)
	if err != nil {
		return nil, notFound("update invoice", "Invoice", err)
	}
	if models.IsTerminalInvoiceStatus(current.Status) {
		return nil, apperr.InvalidState("Cannot update paid or cancelled invoices")
	}
	if u.DueDate != nil && u.DueDate.Before(current.IssueDate.Time) {
		return nil, apperr.NewValidationError("due_date", "Due date cannot be before issue date")
	}

	if err := s.invoices.Update(ctx, id, u); err != nil {
		return nil, notFound("update invoice", "Invoice", err)
	}
	inv, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	s.rec.Record(ctx, actor, Event{
		Action:      models.ActionUpdate,
		EntityType:  models.EntityInvoice,
		EntityID:    id,
		Description: "Updated invoice: " + inv.InvoiceNumber,
	})
	return inv, nil
}

// Send moves a draft invoice to sent. The status check and the write are a
// single conditional update.
func (s *InvoiceService) Send(ctx context.Context, actor models.Actor, id int64) (*models.Invoice, error) {
	ok, err := s.invoices.MarkSent(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("send invoice: %w", err)
	}
	if !ok {
		return nil, s.transitionError(ctx, id, "Only draft invoices can be sent")
	}

	inv, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	s.metrics.InvoiceEvent("sent")
	s.rec.Record(ctx, actor, Event{
		Action:      models.ActionSend,
		EntityType:  models.EntityInvoice,
		EntityID:    id,
		Description: "Sent invoice: " + inv.InvoiceNumber,
	})
	return inv, nil
}

// Pay records payment of a sent or overdue invoice. The payment date
// defaults to today.
func (s *InvoiceService) Pay(ctx context.Context, actor models.Actor, id int64, in models.PaymentInput) (*models.Invoice, error) {
	paidOn := models.NewDate(s.now())
	if in.PaymentDate != nil && !in.PaymentDate.IsZero() {
		paidOn = *in.PaymentDate
	}

	ok, err := s.invoices.MarkPaid(ctx, id, in.PaymentMethod, paidOn)
	if err != nil {
		return nil, fmt.Errorf("pay invoice: %w", err)
	}
	if !ok {
		return nil, s.transitionError(ctx, id, "Only sent or overdue invoices can be marked as paid")
	}

	inv, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	s.metrics.InvoiceEvent("paid")
	s.rec.Record(ctx, actor, Event{
		Action:      models.ActionPay,
		EntityType:  models.EntityInvoice,
		EntityID:    id,
		Description: "Invoice paid: " + inv.InvoiceNumber,
		Metadata:    map[string]any{"payment_method": in.PaymentMethod, "paid_date": paidOn},
	})
	return inv, nil
}

// transitionError explains why a conditional status update matched no row.
func (s *InvoiceService) transitionError(ctx context.Context, id int64, wrongStatus string) error {
	inv, err := s.invoices.Get(ctx, id)
	if err != nil {
		return notFound("invoice transition", "Invoice", err)
	}
	return apperr.InvalidState("%s (invoice is %s)", wrongStatus, inv.Status)
}

func (s *InvoiceService) Delete(ctx context.Context, actor models.Actor, id int64) error {
	inv, err := s.invoices.Get(ctx, id)
	if err != nil {
		return notFound("delete invoice", "Invoice", err)
	}
	if models.IsTerminalInvoiceStatus(inv.Status) {
		return apperr.InvalidState("Cannot delete %s invoices", inv.Status)
	}

	err = s.tx.RunInTx(ctx, func(ctx context.Context) error {
		return s.invoices.Delete(ctx, id)
	})
	if err != nil {
		return notFound("delete invoice", "Invoice", err)
	}

	s.metrics.InvoiceEvent("deleted")
	s.rec.Record(ctx, actor, Event{
		Action:      models.ActionDelete,
		EntityType:  models.EntityInvoice,
		EntityID:    id,
		Description: "Deleted invoice: " + inv.InvoiceNumber,
	})
	return nil
}
