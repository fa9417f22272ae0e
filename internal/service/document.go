package service

import (
	"context"
	"fmt"

	"github.com/lalith-99/lawdesk/internal/models"
	"github.com/lalith-99/lawdesk/internal/repository"
)

// DocumentService keeps document metadata. File bytes live wherever
// file_path points; nothing here reads or writes them.
type DocumentService struct {
	documents repository.DocumentRepository
	rec       *Recorder
}

func NewDocumentService(documents repository.DocumentRepository, rec *Recorder) *DocumentService {
	return &DocumentService{documents: documents, rec: rec}
}

func (s *DocumentService) List(ctx context.Context, f models.DocumentFilter, p models.Page) (models.List[models.Document], error) {
	items, total, err := s.documents.List(ctx, f, p)
	if err != nil {
		return models.List[models.Document]{}, fmt.Errorf("list documents: %w", err)
	}
	return page(items, total, p), nil
}

func (s *DocumentService) Get(ctx context.Context, id int64) (*models.Document, error) {
	d, err := s.documents.Get(ctx, id)
	if err != nil {
		return nil, notFound("get document", "Document", err)
	}
	return d, nil
}

func (s *DocumentService) Create(ctx context.Context, actor models.Actor, in models.DocumentInput) (*models.Document, error) {
	d, err := s.documents.Create(ctx, in, actor.ID)
	if err != nil {
		return nil, fmt.Errorf("create document: %w", err)
	}
	s.rec.Record(ctx, actor, Event{
		Action:      models.ActionUpload,
		EntityType:  models.EntityDocument,
		EntityID:    d.ID,
		Description: "Uploaded document: " + d.Title,
	})
	return d, nil
}

func (s *DocumentService) Delete(ctx context.Context, actor models.Actor, id int64) error {
	d, err := s.documents.Get(ctx, id)
	if err != nil {
		return notFound("delete document", "Document", err)
	}
	if err := s.documents.Delete(ctx, id); err != nil {
		return notFound("delete document", "Document", err)
	}
	s.rec.Record(ctx, actor, Event{
		Action:      models.ActionDelete,
		EntityType:  models.EntityDocument,
		EntityID:    id,
		Description: "Deleted document: " + d.Title,
	})
	return nil
}
