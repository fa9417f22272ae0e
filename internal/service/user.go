package service

import (
	"context"
	"fmt"

	"github.com/lalith-99/lawdesk/internal/apperr"
	"github.com/lalith-99/lawdesk/internal/auth"
	"github.com/lalith-99/lawdesk/internal/models"
	"github.com/lalith-99/lawdesk/internal/repository"
)

// UserService manages profiles. Users edit themselves; admins edit anyone
// and alone may change roles and deactivate accounts.
type UserService struct {
	users repository.UserRepository
	rec   *Recorder
}

func NewUserService(users repository.UserRepository, rec *Recorder) *UserService {
	return &UserService{users: users, rec: rec}
}

func (s *UserService) List(ctx context.Context, f models.UserFilter, p models.Page) (models.List[models.User], error) {
	items, total, err := s.users.List(ctx, f, p)
	if err != nil {
		return models.List[models.User]{}, fmt.Errorf("list users: %w", err)
	}
	return page(items, total, p), nil
}

func (s *UserService) Get(ctx context.Context, id int64) (*models.User, error) {
	u, err := s.users.Get(ctx, id)
	if err != nil {
		return nil, notFound("get user", "User", err)
	}
	return u, nil
}

func (s *UserService) Update(ctx context.Context, actor models.Actor, id int64, u models.UserUpdate) (*models.User, error) {
	if !actor.CanModify(id) {
		return nil, apperr.Forbidden("Can only update your own profile")
	}
	if u.TouchesAdminFields() && !actor.IsAdmin() {
		return nil, apperr.Forbidden("Only admins can change role or active status")
	}
	if u.IsEmpty() {
		return nil, errNoFields
	}

	updated, err := s.users.Update(ctx, id, u)
	if err != nil {
		return nil, notFound("update user", "User", err)
	}
	s.rec.Record(ctx, actor, Event{
		Action:      models.ActionUpdate,
		EntityType:  models.EntityUser,
		EntityID:    id,
		Description: "Updated user: " + updated.Email,
	})
	return updated, nil
}

// ChangePassword requires the current password when users change their
// own. Admins resetting someone else's password skip that check.
func (s *UserService) ChangePassword(ctx context.Context, actor models.Actor, id int64, in models.PasswordChangeInput) error {
	if !actor.CanModify(id) {
		return apperr.Forbidden("Can only change your own password")
	}
	u, err := s.users.Get(ctx, id)
	if err != nil {
		return notFound("change password", "User", err)
	}

	if actor.ID == id {
		if in.CurrentPassword == "" {
			return apperr.NewValidationError("current_password", "Current password is required")
		}
		ok, err := auth.CheckPassword(u.PasswordHash, in.CurrentPassword)
		if err != nil {
			return fmt.Errorf("change password: %w", err)
		}
		if !ok {
			return apperr.Unauthorized("Current password is incorrect")
		}
	}

	hash, err := auth.HashPassword(in.NewPassword)
	if err != nil {
		return fmt.Errorf("change password: %w", err)
	}
	if err := s.users.SetPassword(ctx, id, hash); err != nil {
		return notFound("change password", "User", err)
	}
	s.rec.Record(ctx, actor, Event{
		Action:      models.ActionUpdate,
		EntityType:  models.EntityUser,
		EntityID:    id,
		Description: "Changed password for " + u.Email,
	})
	return nil
}
