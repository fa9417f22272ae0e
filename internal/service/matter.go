package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/lalith-99/lawdesk/internal/apperr"
	"github.com/lalith-99/lawdesk/internal/models"
	"github.com/lalith-99/lawdesk/internal/repository"
)

type MatterService struct {
	matters repository.MatterRepository
	rec     *Recorder
}

func NewMatterService(matters repository.MatterRepository, rec *Recorder) *MatterService {
	return &MatterService{matters: matters, rec: rec}
}

func (s *MatterService) List(ctx context.Context, f models.MatterFilter, p models.Page) (models.List[models.Matter], error) {
	items, total, err := s.matters.List(ctx, f, p)
	if err != nil {
		return models.List[models.Matter]{}, fmt.Errorf("list matters: %w", err)
	}
	return page(items, total, p), nil
}

func (s *MatterService) Get(ctx context.Context, id int64) (*models.Matter, error) {
	m, err := s.matters.Get(ctx, id)
	if err != nil {
		return nil, notFound("get matter", "Matter", err)
	}
	return m, nil
}

func (s *MatterService) Create(ctx context.Context, actor models.Actor, in models.MatterInput) (*models.Matter, error) {
	in.ApplyDefaults()
	m, err := s.matters.Create(ctx, in, actor.ID)
	if err != nil {
		return nil, fmt.Errorf("create matter: %w", err)
	}
	s.rec.Record(ctx, actor, Event{
		Action:      models.ActionCreate,
		EntityType:  models.EntityMatter,
		EntityID:    m.ID,
		Description: "Created matter: " + m.Title,
	})
	return m, nil
}

func (s *MatterService) Update(ctx context.Context, actor models.Actor, id int64, u models.MatterUpdate) (*models.Matter, error) {
	if u.IsEmpty() {
		return nil, errNoFields
	}
	m, err := s.matters.Update(ctx, id, u)
	if err != nil {
		return nil, notFound("update matter", "Matter", err)
	}
	s.rec.Record(ctx, actor, Event{
		Action:      models.ActionUpdate,
		EntityType:  models.EntityMatter,
		EntityID:    m.ID,
		Description: "Updated matter: " + m.Title,
	})
	return m, nil
}

func (s *MatterService) Delete(ctx context.Context, actor models.Actor, id int64) error {
	m, err := s.matters.Get(ctx, id)
	if err != nil {
		return notFound("delete matter", "Matter", err)
	}
	if err := s.matters.Delete(ctx, id); err != nil {
		if errors.Is(err, apperr.ErrInvalidReference) {
			return apperr.InvalidState("Cannot delete matter with existing invoices or time entries")
		}
		return notFound("delete matter", "Matter", err)
	}
	s.rec.Record(ctx, actor, Event{
		Action:      models.ActionDelete,
		EntityType:  models.EntityMatter,
		EntityID:    id,
		Description: "Deleted matter: " + m.Title,
	})
	return nil
}
