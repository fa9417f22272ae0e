package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/lalith-99/lawdesk/internal/apperr"
	"github.com/lalith-99/lawdesk/internal/auth"
	"github.com/lalith-99/lawdesk/internal/models"
	"github.com/lalith-99/lawdesk/internal/repository"
)

var errBadCredentials = apperr.Unauthorized("Invalid email or password")

// AuthService registers users and exchanges credentials for tokens.
type AuthService struct {
	users    repository.UserRepository
	rec      *Recorder
	secret   string
	tokenTTL time.Duration
	logger   *zap.Logger
}

func NewAuthService(users repository.UserRepository, rec *Recorder, secret string, tokenTTL time.Duration, logger *zap.Logger) *AuthService {
	return &AuthService{users: users, rec: rec, secret: secret, tokenTTL: tokenTTL, logger: logger}
}

func (s *AuthService) Register(ctx context.Context, in models.RegisterInput) (*models.AuthResult, error) {
	hash, err := auth.HashPassword(in.Password)
	if err != nil {
		return nil, fmt.Errorf("register: %w", err)
	}
	role := in.Role
	if role == "" {
		role = models.RoleAttorney
	}
	rate := decimal.Zero
	if in.HourlyRate.Valid {
		rate = in.HourlyRate.Decimal
	}

	u, err := s.users.Create(ctx, models.NewUser{
		Email:        strings.ToLower(strings.TrimSpace(in.Email)),
		PasswordHash: hash,
		FirstName:    in.FirstName,
		LastName:     in.LastName,
		Role:         role,
		Phone:        in.Phone,
		Title:        in.Title,
		HourlyRate:   rate,
	})
	if err != nil {
		if errors.Is(err, apperr.ErrAlreadyExists) {
			return nil, apperr.AlreadyExists("User with this email already exists")
		}
		return nil, fmt.Errorf("register: %w", err)
	}

	token, err := auth.GenerateToken(u, s.secret, s.tokenTTL)
	if err != nil {
		return nil, fmt.Errorf("register: %w", err)
	}
	s.rec.Record(ctx, u.Actor(), Event{
		Action:      models.ActionRegister,
		EntityType:  models.EntityUser,
		EntityID:    u.ID,
		Description: "New user registered: " + u.Email,
	})
	return &models.AuthResult{User: u, Token: token}, nil
}

// Login answers the same 401 for an unknown email and a wrong password.
func (s *AuthService) Login(ctx context.Context, in models.LoginInput) (*models.AuthResult, error) {
	u, err := s.users.GetByEmail(ctx, strings.TrimSpace(in.Email))
	if err != nil {
		if errors.Is(err, apperr.ErrNotFound) {
			return nil, errBadCredentials
		}
		return nil, fmt.Errorf("login: %w", err)
	}

	ok, err := auth.CheckPassword(u.PasswordHash, in.Password)
	if err != nil {
		return nil, fmt.Errorf("login: %w", err)
	}
	if !ok {
		return nil, errBadCredentials
	}
	if !u.IsActive {
		return nil, apperr.Unauthorized("Account is deactivated")
	}

	if err := s.users.UpdateLastLogin(ctx, u.ID); err != nil {
		s.logger.Warn("failed to update last login", zap.Int64("user_id", u.ID), zap.Error(err))
	} else {
		now := time.Now()
		u.LastLogin = &now
	}

	token, err := auth.GenerateToken(u, s.secret, s.tokenTTL)
	if err != nil {
		return nil, fmt.Errorf("login: %w", err)
	}
	s.rec.Record(ctx, u.Actor(), Event{
		Action:      models.ActionLogin,
		EntityType:  models.EntityUser,
		EntityID:    u.ID,
		Description: "User logged in",
	})
	return &models.AuthResult{User: u, Token: token}, nil
}

func (s *AuthService) Me(ctx context.Context, actor models.Actor) (*models.User, error) {
	u, err := s.users.Get(ctx, actor.ID)
	if err != nil {
		return nil, notFound("current user", "User", err)
	}
	return u, nil
}
