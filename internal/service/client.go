package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/lalith-99/lawdesk/internal/apperr"
	"github.com/lalith-99/lawdesk/internal/models"
	"github.com/lalith-99/lawdesk/internal/repository"
)

const recentInvoiceCount = 10

type ClientService struct {
	clients  repository.ClientRepository
	invoices repository.InvoiceRepository
	rec      *Recorder
}

func NewClientService(clients repository.ClientRepository, invoices repository.InvoiceRepository, rec *Recorder) *ClientService {
	return &ClientService{clients: clients, invoices: invoices, rec: rec}
}

func (s *ClientService) List(ctx context.Context, f models.ClientFilter, p models.Page) (models.List[models.Client], error) {
	items, total, err := s.clients.List(ctx, f, p)
	if err != nil {
		return models.List[models.Client]{}, fmt.Errorf("list clients: %w", err)
	}
	return page(items, total, p), nil
}

func (s *ClientService) Get(ctx context.Context, id int64) (*models.Client, error) {
	c, err := s.clients.Get(ctx, id)
	if err != nil {
		return nil, notFound("get client", "Client", err)
	}
	return c, nil
}

func (s *ClientService) Create(ctx context.Context, actor models.Actor, in models.ClientInput) (*models.Client, error) {
	in.ApplyDefaults()
	c, err := s.clients.Create(ctx, in, actor.ID)
	if err != nil {
		return nil, fmt.Errorf("create client: %w", err)
	}
	s.rec.Record(ctx, actor, Event{
		Action:      models.ActionCreate,
		EntityType:  models.EntityClient,
		EntityID:    c.ID,
		Description: "Created client: " + c.FullName(),
	})
	return c, nil
}

func (s *ClientService) Update(ctx context.Context, actor models.Actor, id int64, u models.ClientUpdate) (*models.Client, error) {
	if u.IsEmpty() {
		return nil, errNoFields
	}
	c, err := s.clients.Update(ctx, id, u)
	if err != nil {
		return nil, notFound("update client", "Client", err)
	}
	s.rec.Record(ctx, actor, Event{
		Action:      models.ActionUpdate,
		EntityType:  models.EntityClient,
		EntityID:    c.ID,
		Description: "Updated client: " + c.FullName(),
	})
	return c, nil
}

// Delete refuses clients that still own matters.
func (s *ClientService) Delete(ctx context.Context, actor models.Actor, id int64) error {
	c, err := s.clients.Get(ctx, id)
	if err != nil {
		return notFound("delete client", "Client", err)
	}

	hasMatters, err := s.clients.HasMatters(ctx, id)
	if err != nil {
		return fmt.Errorf("delete client: %w", err)
	}
	if hasMatters {
		return apperr.InvalidState("Cannot delete client with existing matters")
	}

	if err := s.clients.Delete(ctx, id); err != nil {
		// A matter created since the check trips the foreign key.
		if errors.Is(err, apperr.ErrInvalidReference) {
			return apperr.InvalidState("Cannot delete client with existing matters")
		}
		return notFound("delete client", "Client", err)
	}

	s.rec.Record(ctx, actor, Event{
		Action:      models.ActionDelete,
		EntityType:  models.EntityClient,
		EntityID:    id,
		Description: "Deleted client: " + c.FullName(),
	})
	return nil
}

// Billing totals the client's invoices and lists the most recent ones.
func (s *ClientService) Billing(ctx context.Context, id int64) (*models.ClientBilling, error) {
	if _, err := s.clients.Get(ctx, id); err != nil {
		return nil, notFound("client billing", "Client", err)
	}

	b, err := s.clients.Billing(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("client billing: %w", err)
	}
	recent, _, err := s.invoices.List(ctx, models.InvoiceFilter{ClientID: &id},
		models.Page{Page: 1, Limit: recentInvoiceCount})
	if err != nil {
		return nil, fmt.Errorf("client billing: recent invoices: %w", err)
	}
	b.RecentInvoices = recent
	return b, nil
}
