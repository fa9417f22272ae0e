package postgres

import (
	"context"

	"github.com/Masterminds/squirrel"

	"github.com/lalith-99/lawdesk/internal/models"
)

var documentColumns = []string{
	"d.id", "d.title", "d.description", "d.file_path", "d.file_size", "d.file_type",
	"d.matter_id", "d.client_id", "d.category", "d.tags", "d.is_confidential", "d.uploaded_by",
	"d.created_at", "d.updated_at",
	"m.title AS matter_title",
	fullName("c") + " AS client_name",
	fullName("u") + " AS uploaded_by_name",
}

type DocumentStore struct {
	db DB
}

func NewDocumentStore(db DB) *DocumentStore {
	return &DocumentStore{db: db}
}

func documentFrom() squirrel.SelectBuilder {
	return psql.Select().
		From("documents d").
		LeftJoin("matters m ON d.matter_id = m.id").
		LeftJoin("clients c ON d.client_id = c.id").
		LeftJoin("users u ON d.uploaded_by = u.id")
}

func (s *DocumentStore) List(ctx context.Context, f models.DocumentFilter, p models.Page) ([]models.Document, int, error) {
	where := conj(
		eq("d.matter_id", f.MatterID),
		eq("d.client_id", f.ClientID),
		eq("d.category", f.Category),
	)
	items, total, err := selectPage[models.Document](ctx, QuerierFromCtx(ctx, s.db),
		documentFrom(), documentColumns, where, p, "d.created_at DESC", "d.id DESC")
	if err != nil {
		return nil, 0, mapError("list documents", err)
	}
	return items, total, nil
}

func (s *DocumentStore) Get(ctx context.Context, id int64) (*models.Document, error) {
	d, err := selectOne[models.Document](ctx, QuerierFromCtx(ctx, s.db),
		documentFrom().Columns(documentColumns...).Where(squirrel.Eq{"d.id": id}))
	if err != nil {
		return nil, mapError("get document", err)
	}
	return d, nil
}

func (s *DocumentStore) Create(ctx context.Context, in models.DocumentInput, uploadedBy int64) (*models.Document, error) {
	tags := in.Tags
	if tags == nil {
		tags = []string{}
	}
	id, err := insertID(ctx, QuerierFromCtx(ctx, s.db), psql.Insert("documents").SetMap(map[string]any{
		"title":           in.Title,
		"description":     in.Description,
		"file_path":       in.FilePath,
		"file_size":       in.FileSize,
		"file_type":       in.FileType,
		"matter_id":       in.MatterID,
		"client_id":       in.ClientID,
		"category":        in.Category,
		"tags":            tags,
		"is_confidential": in.IsConfidential,
		"uploaded_by":     uploadedBy,
	}))
	if err != nil {
		return nil, mapError("insert document", err)
	}
	return s.Get(ctx, id)
}

func (s *DocumentStore) Delete(ctx context.Context, id int64) error {
	if err := deleteByID(ctx, QuerierFromCtx(ctx, s.db), "documents", id); err != nil {
		return mapError("delete document", err)
	}
	return nil
}
