package postgres

import (
	"context"

	"github.com/Masterminds/squirrel"

	"github.com/lalith-99/lawdesk/internal/models"
)

var communicationColumns = []string{
	"cm.id", "cm.type", "cm.client_id", "cm.matter_id", "cm.contact_name", "cm.contact_email",
	"cm.contact_phone", "cm.subject", "cm.content", "cm.communication_date", "cm.direction",
	"cm.follow_up_date", "cm.is_confidential", "cm.created_by", "cm.created_at", "cm.updated_at",
	fullName("c") + " AS client_name",
	"m.title AS matter_title",
	fullName("u") + " AS created_by_name",
}

type CommunicationStore struct {
	db DB
}

func NewCommunicationStore(db DB) *CommunicationStore {
	return &CommunicationStore{db: db}
}

func communicationFrom() squirrel.SelectBuilder {
	return psql.Select().
		From("communications cm").
		LeftJoin("clients c ON cm.client_id = c.id").
		LeftJoin("matters m ON cm.matter_id = m.id").
		LeftJoin("users u ON cm.created_by = u.id")
}

func (s *CommunicationStore) List(ctx context.Context, f models.CommunicationFilter, p models.Page) ([]models.Communication, int, error) {
	where := conj(
		eq("cm.type", f.Type),
		eq("cm.client_id", f.ClientID),
		eq("cm.matter_id", f.MatterID),
	)
	items, total, err := selectPage[models.Communication](ctx, QuerierFromCtx(ctx, s.db),
		communicationFrom(), communicationColumns, where, p,
		"cm.communication_date DESC", "cm.id DESC")
	if err != nil {
		return nil, 0, mapError("list communications", err)
	}
	return items, total, nil
}

func (s *CommunicationStore) Get(ctx context.Context, id int64) (*models.Communication, error) {
	c, err := selectOne[models.Communication](ctx, QuerierFromCtx(ctx, s.db),
		communicationFrom().Columns(communicationColumns...).Where(squirrel.Eq{"cm.id": id}))
	if err != nil {
		return nil, mapError("get communication", err)
	}
	return c, nil
}

func (s *CommunicationStore) Create(ctx context.Context, in models.CommunicationInput, createdBy int64) (*models.Communication, error) {
	id, err := insertID(ctx, QuerierFromCtx(ctx, s.db), psql.Insert("communications").SetMap(map[string]any{
		"type":               in.Type,
		"client_id":          in.ClientID,
		"matter_id":          in.MatterID,
		"contact_name":       in.ContactName,
		"contact_email":      in.ContactEmail,
		"contact_phone":      in.ContactPhone,
		"subject":            in.Subject,
		"content":            in.Content,
		"communication_date": in.CommunicationDate,
		"direction":          in.Direction,
		"follow_up_date":     in.FollowUpDate,
		"is_confidential":    in.IsConfidential,
		"created_by":         createdBy,
	}))
	if err != nil {
		return nil, mapError("insert communication", err)
	}
	return s.Get(ctx, id)
}

func (s *CommunicationStore) Update(ctx context.Context, id int64, u models.CommunicationUpdate) (*models.Communication, error) {
	set := setter{}
	setIf(set, "type", u.Type)
	setIf(set, "contact_name", u.ContactName)
	setIf(set, "contact_email", u.ContactEmail)
	setIf(set, "contact_phone", u.ContactPhone)
	setIf(set, "subject", u.Subject)
	setIf(set, "content", u.Content)
	setIf(set, "communication_date", u.CommunicationDate)
	setIf(set, "direction", u.Direction)
	setIf(set, "follow_up_date", u.FollowUpDate)
	setIf(set, "is_confidential", u.IsConfidential)

	if err := updateByID(ctx, QuerierFromCtx(ctx, s.db), "communications", id, set); err != nil {
		return nil, mapError("update communication", err)
	}
	return s.Get(ctx, id)
}

func (s *CommunicationStore) Delete(ctx context.Context, id int64) error {
	if err := deleteByID(ctx, QuerierFromCtx(ctx, s.db), "communications", id); err != nil {
		return mapError("delete communication", err)
	}
	return nil
}
