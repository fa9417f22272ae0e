package service

import (
	"context"
	"fmt"

	"github.com/lalith-99/lawdesk/internal/models"
	"github.com/lalith-99/lawdesk/internal/repository"
)

type CommunicationService struct {
	communications repository.CommunicationRepository
	rec            *Recorder
}

func NewCommunicationService(communications repository.CommunicationRepository, rec *Recorder) *CommunicationService {
	return &CommunicationService{communications: communications, rec: rec}
}

func (s *CommunicationService) List(ctx context.Context, f models.CommunicationFilter, p models.Page) (models.List[models.Communication], error) {
	items, total, err := s.communications.List(ctx, f, p)
	if err != nil {
		return models.List[models.Communication]{}, fmt.Errorf("list communications: %w", err)
	}
	return page(items, total, p), nil
}

func (s *CommunicationService) Get(ctx context.Context, id int64) (*models.Communication, error) {
	c, err := s.communications.Get(ctx, id)
	if err != nil {
		return nil, notFound("get communication", "Communication", err)
	}
	return c, nil
}

func (s *CommunicationService) Create(ctx context.Context, actor models.Actor, in models.CommunicationInput) (*models.Communication, error) {
	in.ApplyDefaults()
	c, err := s.communications.Create(ctx, in, actor.ID)
	if err != nil {
		return nil, fmt.Errorf("create communication: %w", err)
	}
	s.rec.Record(ctx, actor, Event{
		Action:      models.ActionCreate,
		EntityType:  models.EntityCommunication,
		EntityID:    c.ID,
		Description: fmt.Sprintf("Logged %s: %s", c.Type, c.Subject),
	})
	return c, nil
}

func (s *CommunicationService) Update(ctx context.Context, actor models.Actor, id int64, u models.CommunicationUpdate) (*models.Communication, error) {
	if u.IsEmpty() {
		return nil, errNoFields
	}
	c, err := s.communications.Update(ctx, id, u)
	if err != nil {
		return nil, notFound("update communication", "Communication", err)
	}
	s.rec.Record(ctx, actor, Event{
		Action:      models.ActionUpdate,
		EntityType:  models.EntityCommunication,
		EntityID:    id,
		Description: "Updated communication: " + c.Subject,
	})
	return c, nil
}

func (s *CommunicationService) Delete(ctx context.Context, actor models.Actor, id int64) error {
	c, err := s.communications.Get(ctx, id)
	if err != nil {
		return notFound("delete communication", "Communication", err)
	}
	if err := s.communications.Delete(ctx, id); err != nil {
		return notFound("delete communication", "Communication", err)
	}
	s.rec.Record(ctx, actor, Event{
		Action:      models.ActionDelete,
		EntityType:  models.EntityCommunication,
		EntityID:    id,
		Description: "Deleted communication: " + c.Subject,
	})
	return nil
}
