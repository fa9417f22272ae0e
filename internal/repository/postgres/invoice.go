package postgres

import (
	"context"
	"fmt"

	"github.com/Masterminds/squirrel"

	"github.com/lalith-99/lawdesk/internal/models"
)

var invoiceColumns = []string{
	"i.id", "i.invoice_number", "i.client_id", "i.matter_id", "i.status", "i.total_amount",
	"i.issue_date", "i.due_date", "i.sent_date", "i.paid_date", "i.payment_method", "i.notes",
	"i.terms", "i.created_by", "i.created_at", "i.updated_at",
	fullName("c") + " AS client_name",
	"c.email AS client_email",
	"c.address AS client_address",
	"m.title AS matter_title",
}

var lineItemColumns = []string{"id", "invoice_id", "description", "quantity", "rate", "amount", "created_at"}

type InvoiceStore struct {
	db DB
}

func NewInvoiceStore(db DB) *InvoiceStore {
	return &InvoiceStore{db: db}
}

func invoiceFrom() squirrel.SelectBuilder {
	return psql.Select().
		From("invoices i").
		LeftJoin("clients c ON i.client_id = c.id").
		LeftJoin("matters m ON i.matter_id = m.id")
}

func (s *InvoiceStore) List(ctx context.Context, f models.InvoiceFilter, p models.Page) ([]models.Invoice, int, error) {
	where := conj(
		eq("i.status", f.Status),
		eq("i.client_id", f.ClientID),
		eq("i.matter_id", f.MatterID),
	)
	items, total, err := selectPage[models.Invoice](ctx, QuerierFromCtx(ctx, s.db),
		invoiceFrom(), invoiceColumns, where, p, "i.created_at DESC", "i.id DESC")
	if err != nil {
		return nil, 0, mapError("list invoices", err)
	}
	return items, total, nil
}

func (s *InvoiceStore) Get(ctx context.Context, id int64) (*models.Invoice, error) {
	inv, err := selectOne[models.Invoice](ctx, QuerierFromCtx(ctx, s.db),
		invoiceFrom().Columns(invoiceColumns...).Where(squirrel.Eq{"i.id": id}))
	if err != nil {
		return nil, mapError("get invoice", err)
	}
	return inv, nil
}

func (s *InvoiceStore) LineItems(ctx context.Context, invoiceID int64) ([]models.LineItem, error) {
	items, err := selectAll[models.LineItem](ctx, QuerierFromCtx(ctx, s.db),
		psql.Select(lineItemColumns...).
			From("invoice_line_items").
			Where(squirrel.Eq{"invoice_id": invoiceID}).
			OrderBy("id"))
	if err != nil {
		return nil, mapError("list line items", err)
	}
	return items, nil
}

// NextSequence is an upsert on the per-year counter row, so two concurrent
// creates serialize on that row and never draw the same value.
func (s *InvoiceStore) NextSequence(ctx context.Context, year int) (int, error) {
	const query = `
		INSERT INTO invoice_number_sequences (year, last_value)
		VALUES ($1, 1)
		ON CONFLICT (year) DO UPDATE SET last_value = invoice_number_sequences.last_value + 1
		RETURNING last_value`

	var seq int
	if err := QuerierFromCtx(ctx, s.db).QueryRow(ctx, query, year).Scan(&seq); err != nil {
		return 0, mapError("next invoice sequence", err)
	}
	return seq, nil
}

func (s *InvoiceStore) Insert(ctx context.Context, in models.InvoiceInput, number string, createdBy int64) (int64, error) {
	id, err := insertID(ctx, QuerierFromCtx(ctx, s.db), psql.Insert("invoices").SetMap(map[string]any{
		"invoice_number": number,
		"client_id":      in.ClientID,
		"matter_id":      in.MatterID,
		"status":         models.InvoiceStatusDraft,
		"total_amount":   in.Total(),
		"issue_date":     in.IssueDate,
		"due_date":       in.DueDate,
		"notes":          in.Notes,
		"terms":          in.Terms,
		"created_by":     createdBy,
	}))
	if err != nil {
		return 0, mapError("insert invoice", err)
	}
	return id, nil
}

func (s *InvoiceStore) InsertLineItems(ctx context.Context, invoiceID int64, items []models.LineItemInput) error {
	if len(items) == 0 {
		return nil
	}
	b := psql.Insert("invoice_line_items").Columns("invoice_id", "description", "quantity", "rate", "amount")
	for _, li := range items {
		b = b.Values(invoiceID, li.Description, li.Quantity, li.Rate, li.Amount())
	}
	sql, args, err := b.ToSql()
	if err != nil {
		return fmt.Errorf("build line items insert: %w", err)
	}
	if _, err := QuerierFromCtx(ctx, s.db).Exec(ctx, sql, args...); err != nil {
		return mapError("insert line items", err)
	}
	return nil
}

func (s *InvoiceStore) Update(ctx context.Context, id int64, u models.InvoiceUpdate) error {
	set := setter{}
	setIf(set, "due_date", u.DueDate)
	setIf(set, "notes", u.Notes)
	setIf(set, "terms", u.Terms)
	if err := updateByID(ctx, QuerierFromCtx(ctx, s.db), "invoices", id, set); err != nil {
		return mapError("update invoice", err)
	}
	return nil
}

func (s *InvoiceStore) MarkSent(ctx context.Context, id int64) (bool, error) {
	const query = `
		UPDATE invoices
		SET status = 'sent', sent_date = now(), updated_at = now()
		WHERE id = $1 AND status = 'draft'`

	tag, err := QuerierFromCtx(ctx, s.db).Exec(ctx, query, id)
	if err != nil {
		return false, mapError("send invoice", err)
	}
	return tag.RowsAffected() == 1, nil
}

func (s *InvoiceStore) MarkPaid(ctx context.Context, id int64, method *string, paidOn models.Date) (bool, error) {
	const query = `
		UPDATE invoices
		SET status = 'paid', paid_date = $2, payment_method = $3, updated_at = now()
		WHERE id = $1 AND status IN ('sent', 'overdue')`

	tag, err := QuerierFromCtx(ctx, s.db).Exec(ctx, query, id, paidOn, method)
	if err != nil {
		return false, mapError("pay invoice", err)
	}
	return tag.RowsAffected() == 1, nil
}

func (s *InvoiceStore) Delete(ctx context.Context, id int64) error {
	q := QuerierFromCtx(ctx, s.db)
	if _, err := q.Exec(ctx, `DELETE FROM invoice_line_items WHERE invoice_id = $1`, id); err != nil {
		return mapError("delete line items", err)
	}
	if err := deleteByID(ctx, q, "invoices", id); err != nil {
		return mapError("delete invoice", err)
	}
	return nil
}
