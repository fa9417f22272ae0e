package service

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/lalith-99/lawdesk/internal/apperr"
	"github.com/lalith-99/lawdesk/internal/models"
	"github.com/lalith-99/lawdesk/internal/repository"
)

// ConflictService runs conflict-of-interest searches and keeps their
// history, together with the adverse parties and contacts searched.
type ConflictService struct {
	conflicts repository.ConflictRepository
	parties   repository.PartyRepository
	rec       *Recorder
}

func NewConflictService(conflicts repository.ConflictRepository, parties repository.PartyRepository, rec *Recorder) *ConflictService {
	return &ConflictService{conflicts: conflicts, parties: parties, rec: rec}
}

// Check searches every source for name and stores a snapshot of the hits.
func (s *ConflictService) Check(ctx context.Context, actor models.Actor, name string) (*models.ConflictResult, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, apperr.NewValidationError("search_name", "Search name is required")
	}

	matches, err := s.conflicts.Search(ctx, name)
	if err != nil {
		return nil, fmt.Errorf("conflict check: %w", err)
	}
	snapshot, err := json.Marshal(matches)
	if err != nil {
		return nil, fmt.Errorf("conflict check: encode results: %w", err)
	}

	check, err := s.conflicts.Record(ctx, models.ConflictLogInput{
		SearchName:  name,
		HasConflict: len(matches) > 0,
		Results:     snapshot,
	}, actor.ID)
	if err != nil {
		return nil, fmt.Errorf("conflict check: %w", err)
	}

	s.rec.Record(ctx, actor, Event{
		Action:      models.ActionCheck,
		EntityType:  models.EntityConflictCheck,
		EntityID:    check.ID,
		Description: fmt.Sprintf("Conflict check for %q: %d matches", name, len(matches)),
	})
	return &models.ConflictResult{
		SearchName:  name,
		HasConflict: len(matches) > 0,
		Matches:     matches,
		MatchCount:  len(matches),
		CheckID:     check.ID,
	}, nil
}

// Log stores a check performed outside the system.
func (s *ConflictService) Log(ctx context.Context, actor models.Actor, in models.ConflictLogInput) (*models.ConflictCheck, error) {
	check, err := s.conflicts.Record(ctx, in, actor.ID)
	if err != nil {
		return nil, fmt.Errorf("log conflict check: %w", err)
	}
	s.rec.Record(ctx, actor, Event{
		Action:      models.ActionCreate,
		EntityType:  models.EntityConflictCheck,
		EntityID:    check.ID,
		Description: "Logged conflict check: " + in.SearchName,
	})
	return check, nil
}

func (s *ConflictService) History(ctx context.Context, p models.Page) (models.List[models.ConflictCheck], error) {
	items, total, err := s.conflicts.List(ctx, p)
	if err != nil {
		return models.List[models.ConflictCheck]{}, fmt.Errorf("list conflict checks: %w", err)
	}
	return page(items, total, p), nil
}

func (s *ConflictService) ListAdverseParties(ctx context.Context, f models.PartyFilter, p models.Page) (models.List[models.AdverseParty], error) {
	items, total, err := s.parties.ListAdverseParties(ctx, f, p)
	if err != nil {
		return models.List[models.AdverseParty]{}, fmt.Errorf("list adverse parties: %w", err)
	}
	return page(items, total, p), nil
}

func (s *ConflictService) CreateAdverseParty(ctx context.Context, actor models.Actor, in models.AdversePartyInput) (*models.AdverseParty, error) {
	ap, err := s.parties.CreateAdverseParty(ctx, in, actor.ID)
	if err != nil {
		return nil, fmt.Errorf("create adverse party: %w", err)
	}
	s.rec.Record(ctx, actor, Event{
		Action:      models.ActionCreate,
		EntityType:  models.EntityAdverseParty,
		EntityID:    ap.ID,
		Description: "Added adverse party: " + ap.Name,
	})
	return ap, nil
}

func (s *ConflictService) DeleteAdverseParty(ctx context.Context, actor models.Actor, id int64) error {
	ap, err := s.parties.GetAdverseParty(ctx, id)
	if err != nil {
		return notFound("delete adverse party", "Adverse party", err)
	}
	if err := s.parties.DeleteAdverseParty(ctx, id); err != nil {
		return notFound("delete adverse party", "Adverse party", err)
	}
	s.rec.Record(ctx, actor, Event{
		Action:      models.ActionDelete,
		EntityType:  models.EntityAdverseParty,
		EntityID:    id,
		Description: "Removed adverse party: " + ap.Name,
	})
	return nil
}

func (s *ConflictService) ListContacts(ctx context.Context, f models.PartyFilter, p models.Page) (models.List[models.Contact], error) {
	items, total, err := s.parties.ListContacts(ctx, f, p)
	if err != nil {
		return models.List[models.Contact]{}, fmt.Errorf("list contacts: %w", err)
	}
	return page(items, total, p), nil
}

func (s *ConflictService) CreateContact(ctx context.Context, actor models.Actor, in models.ContactInput) (*models.Contact, error) {
	c, err := s.parties.CreateContact(ctx, in, actor.ID)
	if err != nil {
		return nil, fmt.Errorf("create contact: %w", err)
	}
	s.rec.Record(ctx, actor, Event{
		Action:      models.ActionCreate,
		EntityType:  models.EntityContact,
		EntityID:    c.ID,
		Description: "Added contact: " + c.Name,
	})
	return c, nil
}

func (s *ConflictService) DeleteContact(ctx context.Context, actor models.Actor, id int64) error {
	c, err := s.parties.GetContact(ctx, id)
	if err != nil {
		return notFound("delete contact", "Contact", err)
	}
	if err := s.parties.DeleteContact(ctx, id); err != nil {
		return notFound("delete contact", "Contact", err)
	}
	s.rec.Record(ctx, actor, Event{
		Action:      models.ActionDelete,
		EntityType:  models.EntityContact,
		EntityID:    id,
		Description: "Removed contact: " + c.Name,
	})
	return nil
}
