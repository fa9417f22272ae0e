package postgres

import (
	"context"
	"strings"

	"github.com/Masterminds/squirrel"
	"github.com/georgysavva/scany/v2/pgxscan"

	"github.com/lalith-99/lawdesk/internal/models"
)

var userColumns = []string{
	"id", "email", "password_hash", "first_name", "last_name", "role", "phone", "title",
	"hourly_rate", "is_active", "last_login", "created_at", "updated_at",
}

type UserStore struct {
	db DB
}

func NewUserStore(db DB) *UserStore {
	return &UserStore{db: db}
}

func (s *UserStore) List(ctx context.Context, f models.UserFilter, p models.Page) ([]models.User, int, error) {
	where := conj(eq("role", f.Role), eq("is_active", f.IsActive))
	items, total, err := selectPage[models.User](ctx, QuerierFromCtx(ctx, s.db),
		psql.Select().From("users"), userColumns, where, p, "created_at DESC", "id DESC")
	if err != nil {
		return nil, 0, mapError("list users", err)
	}
	return items, total, nil
}

func (s *UserStore) Get(ctx context.Context, id int64) (*models.User, error) {
	u, err := selectOne[models.User](ctx, QuerierFromCtx(ctx, s.db),
		psql.Select(userColumns...).From("users").Where(squirrel.Eq{"id": id}))
	if err != nil {
		return nil, mapError("get user", err)
	}
	return u, nil
}

// GetByEmail looks a user up for login.
func (s *UserStore) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	query := `
		SELECT ` + strings.Join(userColumns, ", ") + `
		FROM users
		WHERE lower(email) = lower($1)`

	var u models.User
	if err := pgxscan.Get(ctx, QuerierFromCtx(ctx, s.db), &u, query, email); err != nil {
		return nil, mapError("get user by email", err)
	}
	return &u, nil
}

// Create inserts a new user row. Postgres generates the id and timestamps.
func (s *UserStore) Create(ctx context.Context, nu models.NewUser) (*models.User, error) {
	id, err := insertID(ctx, QuerierFromCtx(ctx, s.db), psql.Insert("users").SetMap(map[string]any{
		"email":         strings.ToLower(nu.Email),
		"password_hash": nu.PasswordHash,
		"first_name":    nu.FirstName,
		"last_name":     nu.LastName,
		"role":          nu.Role,
		"phone":         nu.Phone,
		"title":         nu.Title,
		"hourly_rate":   nu.HourlyRate,
	}))
	if err != nil {
		return nil, mapError("insert user", err)
	}
	return s.Get(ctx, id)
}

func (s *UserStore) Update(ctx context.Context, id int64, u models.UserUpdate) (*models.User, error) {
	set := setter{}
	setIf(set, "first_name", u.FirstName)
	setIf(set, "last_name", u.LastName)
	setIf(set, "phone", u.Phone)
	setIf(set, "title", u.Title)
	setIf(set, "role", u.Role)
	setIf(set, "is_active", u.IsActive)
	if u.HourlyRate.Valid {
		set["hourly_rate"] = u.HourlyRate.Decimal
	}

	if err := updateByID(ctx, QuerierFromCtx(ctx, s.db), "users", id, set); err != nil {
		return nil, mapError("update user", err)
	}
	return s.Get(ctx, id)
}

func (s *UserStore) UpdateLastLogin(ctx context.Context, id int64) error {
	if _, err := QuerierFromCtx(ctx, s.db).Exec(ctx,
		`UPDATE users SET last_login = now() WHERE id = $1`, id); err != nil {
		return mapError("update last login", err)
	}
	return nil
}

func (s *UserStore) SetPassword(ctx context.Context, id int64, hash string) error {
	if err := updateByID(ctx, QuerierFromCtx(ctx, s.db), "users", id, setter{"password_hash": hash}); err != nil {
		return mapError("set password", err)
	}
	return nil
}
