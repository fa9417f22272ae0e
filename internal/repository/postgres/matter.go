package postgres

import (
	"context"

	"github.com/Masterminds/squirrel"

	"github.com/lalith-99/lawdesk/internal/models"
)

var matterColumns = []string{
	"m.id", "m.title", "m.description", "m.client_id", "m.practice_area", "m.status",
	"m.responsible_attorney_id", "m.open_date", "m.close_date", "m.contingency_fee", "m.flat_fee",
	"m.referral_source", "m.notes", "m.created_by", "m.created_at", "m.updated_at",
	fullName("c") + " AS client_name",
	"c.company_name AS client_company",
	fullName("u") + " AS responsible_attorney_name",
}

type MatterStore struct {
	db DB
}

func NewMatterStore(db DB) *MatterStore {
	return &MatterStore{db: db}
}

func matterFrom() squirrel.SelectBuilder {
	return psql.Select().
		From("matters m").
		LeftJoin("clients c ON m.client_id = c.id").
		LeftJoin("users u ON m.responsible_attorney_id = u.id")
}

func (s *MatterStore) List(ctx context.Context, f models.MatterFilter, p models.Page) ([]models.Matter, int, error) {
	where := conj(
		eq("m.practice_area", f.PracticeArea),
		eq("m.status", f.Status),
		eq("m.client_id", f.ClientID),
		eq("m.responsible_attorney_id", f.AttorneyID),
		ilikeAny(f.Search, "m.title"),
	)
	items, total, err := selectPage[models.Matter](ctx, QuerierFromCtx(ctx, s.db),
		matterFrom(), matterColumns, where, p, "m.created_at DESC", "m.id DESC")
	if err != nil {
		return nil, 0, mapError("list matters", err)
	}
	return items, total, nil
}

func (s *MatterStore) Get(ctx context.Context, id int64) (*models.Matter, error) {
	m, err := selectOne[models.Matter](ctx, QuerierFromCtx(ctx, s.db),
		matterFrom().Columns(matterColumns...).Where(squirrel.Eq{"m.id": id}))
	if err != nil {
		return nil, mapError("get matter", err)
	}
	return m, nil
}

func (s *MatterStore) Create(ctx context.Context, in models.MatterInput, createdBy int64) (*models.Matter, error) {
	id, err := insertID(ctx, QuerierFromCtx(ctx, s.db), psql.Insert("matters").SetMap(map[string]any{
		"title":                   in.Title,
		"description":             in.Description,
		"client_id":               in.ClientID,
		"practice_area":           in.PracticeArea,
		"status":                  in.Status,
		"responsible_attorney_id": in.ResponsibleAttorneyID,
		"open_date":               in.OpenDate,
		"close_date":              in.CloseDate,
		"contingency_fee":         in.ContingencyFee,
		"flat_fee":                in.FlatFee,
		"referral_source":         in.ReferralSource,
		"notes":                   in.Notes,
		"created_by":              createdBy,
	}))
	if err != nil {
		return nil, mapError("insert matter", err)
	}
	return s.Get(ctx, id)
}

func (s *MatterStore) Update(ctx context.Context, id int64, u models.MatterUpdate) (*models.Matter, error) {
	set := setter{}
	setIf(set, "title", u.Title)
	setIf(set, "description", u.Description)
	setIf(set, "practice_area", u.PracticeArea)
	setIf(set, "status", u.Status)
	setIf(set, "responsible_attorney_id", u.ResponsibleAttorneyID)
	setIf(set, "open_date", u.OpenDate)
	setIf(set, "close_date", u.CloseDate)
	setIf(set, "referral_source", u.ReferralSource)
	setIf(set, "notes", u.Notes)
	if u.ContingencyFee.Valid {
		set["contingency_fee"] = u.ContingencyFee.Decimal
	}
	if u.FlatFee.Valid {
		set["flat_fee"] = u.FlatFee.Decimal
	}

	if err := updateByID(ctx, QuerierFromCtx(ctx, s.db), "matters", id, set); err != nil {
		return nil, mapError("update matter", err)
	}
	return s.Get(ctx, id)
}

func (s *MatterStore) Delete(ctx context.Context, id int64) error {
	if err := deleteByID(ctx, QuerierFromCtx(ctx, s.db), "matters", id); err != nil {
		return mapError("delete matter", err)
	}
	return nil
}
