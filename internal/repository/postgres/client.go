package postgres

import (
	"context"

	"github.com/Masterminds/squirrel"

	"github.com/lalith-99/lawdesk/internal/models"
)

var clientColumns = []string{
	"id", "first_name", "last_name", "email", "phone", "address", "city", "state", "zip",
	"company_name", "client_type", "status", "notes", "created_by", "created_at", "updated_at",
}

type ClientStore struct {
	db DB
}

func NewClientStore(db DB) *ClientStore {
	return &ClientStore{db: db}
}

func clientWhere(f models.ClientFilter) squirrel.Sqlizer {
	return conj(
		ilikeAny(f.Search, "first_name", "last_name", "email", "company_name"),
		eq("client_type", f.ClientType),
		eq("status", f.Status),
	)
}

func (s *ClientStore) List(ctx context.Context, f models.ClientFilter, p models.Page) ([]models.Client, int, error) {
	items, total, err := selectPage[models.Client](ctx, QuerierFromCtx(ctx, s.db),
		psql.Select().From("clients"), clientColumns, clientWhere(f), p,
		"created_at DESC", "id DESC")
	if err != nil {
		return nil, 0, mapError("list clients", err)
	}
	return items, total, nil
}

func (s *ClientStore) Get(ctx context.Context, id int64) (*models.Client, error) {
	c, err := selectOne[models.Client](ctx, QuerierFromCtx(ctx, s.db),
		psql.Select(clientColumns...).From("clients").Where(squirrel.Eq{"id": id}))
	if err != nil {
		return nil, mapError("get client", err)
	}
	return c, nil
}

func (s *ClientStore) Create(ctx context.Context, in models.ClientInput, createdBy int64) (*models.Client, error) {
	id, err := insertID(ctx, QuerierFromCtx(ctx, s.db), psql.Insert("clients").SetMap(map[string]any{
		"first_name":   in.FirstName,
		"last_name":    in.LastName,
		"email":        in.Email,
		"phone":        in.Phone,
		"address":      in.Address,
		"city":         in.City,
		"state":        in.State,
		"zip":          in.Zip,
		"company_name": in.CompanyName,
		"client_type":  in.ClientType,
		"status":       in.Status,
		"notes":        in.Notes,
		"created_by":   createdBy,
	}))
	if err != nil {
		return nil, mapError("insert client", err)
	}
	return s.Get(ctx, id)
}

func (s *ClientStore) Update(ctx context.Context, id int64, u models.ClientUpdate) (*models.Client, error) {
	set := setter{}
	setIf(set, "first_name", u.FirstName)
	setIf(set, "last_name", u.LastName)
	setIf(set, "email", u.Email)
	setIf(set, "phone", u.Phone)
	setIf(set, "address", u.Address)
	setIf(set, "city", u.City)
	setIf(set, "state", u.State)
	setIf(set, "zip", u.Zip)
	setIf(set, "company_name", u.CompanyName)
	setIf(set, "client_type", u.ClientType)
	setIf(set, "status", u.Status)
	setIf(set, "notes", u.Notes)

	if err := updateByID(ctx, QuerierFromCtx(ctx, s.db), "clients", id, set); err != nil {
		return nil, mapError("update client", err)
	}
	return s.Get(ctx, id)
}

func (s *ClientStore) Delete(ctx context.Context, id int64) error {
	if err := deleteByID(ctx, QuerierFromCtx(ctx, s.db), "clients", id); err != nil {
		return mapError("delete client", err)
	}
	return nil
}

func (s *ClientStore) HasMatters(ctx context.Context, id int64) (bool, error) {
	var exists bool
	err := QuerierFromCtx(ctx, s.db).QueryRow(ctx,
		`SELECT EXISTS (SELECT 1 FROM matters WHERE client_id = $1)`, id).Scan(&exists)
	if err != nil {
		return false, mapError("check client matters", err)
	}
	return exists, nil
}

// Billing counts every non-draft invoice as billed and sent or overdue
// ones as outstanding.
func (s *ClientStore) Billing(ctx context.Context, id int64) (*models.ClientBilling, error) {
	const query = `
		SELECT
			COALESCE(SUM(total_amount) FILTER (WHERE status <> 'draft'), 0)              AS total_billed,
			COALESCE(SUM(total_amount) FILTER (WHERE status = 'paid'), 0)                AS total_paid,
			COALESCE(SUM(total_amount) FILTER (WHERE status IN ('sent', 'overdue')), 0) AS total_outstanding
		FROM invoices
		WHERE client_id = $1`

	var b models.ClientBilling
	err := QuerierFromCtx(ctx, s.db).QueryRow(ctx, query, id).Scan(&b.TotalBilled, &b.TotalPaid, &b.TotalOutstanding)
	if err != nil {
		return nil, mapError("client billing", err)
	}
	b.RecentInvoices = []models.Invoice{}
	return &b, nil
}
