package postgres

import (
	"context"

	"github.com/Masterminds/squirrel"

	"github.com/lalith-99/lawdesk/internal/models"
)

var (
	adversePartyColumns = []string{"id", "name", "email", "matter_id", "notes", "created_by", "created_at"}
	contactColumns      = []string{
		"id", "name", "email", "phone", "relationship_type", "client_id", "matter_id",
		"created_by", "created_at",
	}
)

// PartyStore keeps adverse parties and contacts, the non-client sources
// searched by conflict checks.
type PartyStore struct {
	db DB
}

func NewPartyStore(db DB) *PartyStore {
	return &PartyStore{db: db}
}

func (s *PartyStore) ListAdverseParties(ctx context.Context, f models.PartyFilter, p models.Page) ([]models.AdverseParty, int, error) {
	where := conj(eq("matter_id", f.MatterID), ilikeAny(f.Search, "name", "email"))
	items, total, err := selectPage[models.AdverseParty](ctx, QuerierFromCtx(ctx, s.db),
		psql.Select().From("adverse_parties"), adversePartyColumns, where, p, "created_at DESC", "id DESC")
	if err != nil {
		return nil, 0, mapError("list adverse parties", err)
	}
	return items, total, nil
}

func (s *PartyStore) GetAdverseParty(ctx context.Context, id int64) (*models.AdverseParty, error) {
	ap, err := selectOne[models.AdverseParty](ctx, QuerierFromCtx(ctx, s.db),
		psql.Select(adversePartyColumns...).From("adverse_parties").Where(squirrel.Eq{"id": id}))
	if err != nil {
		return nil, mapError("get adverse party", err)
	}
	return ap, nil
}

func (s *PartyStore) CreateAdverseParty(ctx context.Context, in models.AdversePartyInput, createdBy int64) (*models.AdverseParty, error) {
	id, err := insertID(ctx, QuerierFromCtx(ctx, s.db), psql.Insert("adverse_parties").SetMap(map[string]any{
		"name":       in.Name,
		"email":      in.Email,
		"matter_id":  in.MatterID,
		"notes":      in.Notes,
		"created_by": createdBy,
	}))
	if err != nil {
		return nil, mapError("insert adverse party", err)
	}
	return s.GetAdverseParty(ctx, id)
}

func (s *PartyStore) DeleteAdverseParty(ctx context.Context, id int64) error {
	if err := deleteByID(ctx, QuerierFromCtx(ctx, s.db), "adverse_parties", id); err != nil {
		return mapError("delete adverse party", err)
	}
	return nil
}

func (s *PartyStore) ListContacts(ctx context.Context, f models.PartyFilter, p models.Page) ([]models.Contact, int, error) {
	where := conj(
		eq("matter_id", f.MatterID),
		eq("client_id", f.ClientID),
		ilikeAny(f.Search, "name", "email"),
	)
	items, total, err := selectPage[models.Contact](ctx, QuerierFromCtx(ctx, s.db),
		psql.Select().From("contacts"), contactColumns, where, p, "created_at DESC", "id DESC")
	if err != nil {
		return nil, 0, mapError("list contacts", err)
	}
	return items, total, nil
}

func (s *PartyStore) GetContact(ctx context.Context, id int64) (*models.Contact, error) {
	c, err := selectOne[models.Contact](ctx, QuerierFromCtx(ctx, s.db),
		psql.Select(contactColumns...).From("contacts").Where(squirrel.Eq{"id": id}))
	if err != nil {
		return nil, mapError("get contact", err)
	}
	return c, nil
}

func (s *PartyStore) CreateContact(ctx context.Context, in models.ContactInput, createdBy int64) (*models.Contact, error) {
	id, err := insertID(ctx, QuerierFromCtx(ctx, s.db), psql.Insert("contacts").SetMap(map[string]any{
		"name":              in.Name,
		"email":             in.Email,
		"phone":             in.Phone,
		"relationship_type": in.RelationshipType,
		"client_id":         in.ClientID,
		"matter_id":         in.MatterID,
		"created_by":        createdBy,
	}))
	if err != nil {
		return nil, mapError("insert contact", err)
	}
	return s.GetContact(ctx, id)
}

func (s *PartyStore) DeleteContact(ctx context.Context, id int64) error {
	if err := deleteByID(ctx, QuerierFromCtx(ctx, s.db), "contacts", id); err != nil {
		return mapError("delete contact", err)
	}
	return nil
}
