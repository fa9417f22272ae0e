package models

import (
	"time"

	"github.com/shopspring/decimal"
)

type User struct {
	ID           int64           `json:"id" db:"id"`
	Email        string          `json:"email" db:"email"`
	PasswordHash string          `json:"-" db:"password_hash"`
	FirstName    string          `json:"first_name" db:"first_name"`
	LastName     string          `json:"last_name" db:"last_name"`
	Role         string          `json:"role" db:"role"`
	Phone        *string         `json:"phone" db:"phone"`
	Title        *string         `json:"title" db:"title"`
	HourlyRate   decimal.Decimal `json:"hourly_rate" db:"hourly_rate"`
	IsActive     bool            `json:"is_active" db:"is_active"`
	LastLogin    *time.Time      `json:"last_login" db:"last_login"`
	CreatedAt    time.Time       `json:"created_at" db:"created_at"`
	UpdatedAt    time.Time       `json:"updated_at" db:"updated_at"`
}

func (u User) FullName() string {
	return u.FirstName + " " + u.LastName
}

func (u User) Actor() Actor {
	return Actor{ID: u.ID, Email: u.Email, Role: u.Role}
}

type RegisterInput struct {
	Email      string              `json:"email" binding:"required,email"`
	Password   string              `json:"password" binding:"required,min=8,max=72"`
	FirstName  string              `json:"first_name" binding:"required,max=100"`
	LastName   string              `json:"last_name" binding:"required,max=100"`
	Role       string              `json:"role" binding:"omitempty,oneof=admin partner attorney paralegal staff"`
	Phone      *string             `json:"phone"`
	Title      *string             `json:"title"`
	HourlyRate decimal.NullDecimal `json:"hourly_rate"`
}

func (in RegisterInput) Validate() error {
	var errs fieldErrors
	errs.nonNegative("hourly_rate", in.HourlyRate)
	return errs.err()
}

type LoginInput struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// NewUser is what the user store persists on registration.
type NewUser struct {
	Email        string
	PasswordHash string
	FirstName    string
	LastName     string
	Role         string
	Phone        *string
	Title        *string
	HourlyRate   decimal.Decimal
}

// UserUpdate lists the profile columns a caller may change. Role and
// IsActive are reserved for admins.
type UserUpdate struct {
	FirstName  *string             `json:"first_name" binding:"omitempty,min=1,max=100"`
	LastName   *string             `json:"last_name" binding:"omitempty,min=1,max=100"`
	Phone      *string             `json:"phone"`
	Title      *string             `json:"title"`
	HourlyRate decimal.NullDecimal `json:"hourly_rate"`
	Role       *string             `json:"role" binding:"omitempty,oneof=admin partner attorney paralegal staff"`
	IsActive   *bool               `json:"is_active"`
}

func (u UserUpdate) IsEmpty() bool {
	return u.FirstName == nil && u.LastName == nil && u.Phone == nil && u.Title == nil &&
		!u.HourlyRate.Valid && u.Role == nil && u.IsActive == nil
}

func (u UserUpdate) TouchesAdminFields() bool {
	return u.Role != nil || u.IsActive != nil
}

func (u UserUpdate) Validate() error {
	var errs fieldErrors
	errs.nonNegative("hourly_rate", u.HourlyRate)
	return errs.err()
}

type PasswordChangeInput struct {
	CurrentPassword string `json:"current_password"`
	NewPassword     string `json:"new_password" binding:"required,min=8,max=72"`
}

type UserFilter struct {
	Role     *string
	IsActive *bool
}

// AuthResult is returned by login and registration.
type AuthResult struct {
	User  *User  `json:"user"`
	Token string `json:"token"`
}
