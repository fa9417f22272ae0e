package models

import (
	"time"

	"github.com/shopspring/decimal"
)

const (
	ClientTypeIndividual = "individual"
	ClientTypeCorporate  = "corporate"

	ClientStatusActive   = "active"
	ClientStatusInactive = "inactive"
)

type Client struct {
	ID          int64     `json:"id" db:"id"`
	FirstName   string    `json:"first_name" db:"first_name"`
	LastName    string    `json:"last_name" db:"last_name"`
	Email       *string   `json:"email" db:"email"`
	Phone       *string   `json:"phone" db:"phone"`
	Address     *string   `json:"address" db:"address"`
	City        *string   `json:"city" db:"city"`
	State       *string   `json:"state" db:"state"`
	Zip         *string   `json:"zip" db:"zip"`
	CompanyName *string   `json:"company_name" db:"company_name"`
	ClientType  string    `json:"client_type" db:"client_type"`
	Status      string    `json:"status" db:"status"`
	Notes       *string   `json:"notes" db:"notes"`
	CreatedBy   *int64    `json:"created_by" db:"created_by"`
	CreatedAt   time.Time `json:"created_at" db:"created_at"`
	UpdatedAt   time.Time `json:"updated_at" db:"updated_at"`
}

func (c Client) FullName() string {
	return c.FirstName + " " + c.LastName
}

type ClientInput struct {
	FirstName   string  `json:"first_name" binding:"required,max=100"`
	LastName    string  `json:"last_name" binding:"required,max=100"`
	Email       *string `json:"email" binding:"omitempty,email"`
	Phone       *string `json:"phone"`
	Address     *string `json:"address"`
	City        *string `json:"city"`
	State       *string `json:"state"`
	Zip         *string `json:"zip"`
	CompanyName *string `json:"company_name"`
	ClientType  string  `json:"client_type" binding:"omitempty,oneof=individual corporate"`
	Status      string  `json:"status" binding:"omitempty,oneof=active inactive"`
	Notes       *string `json:"notes"`
}

func (in *ClientInput) ApplyDefaults() {
	if in.ClientType == "" {
		in.ClientType = ClientTypeIndividual
	}
	if in.Status == "" {
		in.Status = ClientStatusActive
	}
}

// ClientUpdate lists the client columns a caller may change.
type ClientUpdate struct {
	FirstName   *string `json:"first_name" binding:"omitempty,min=1,max=100"`
	LastName    *string `json:"last_name" binding:"omitempty,min=1,max=100"`
	Email       *string `json:"email" binding:"omitempty,email"`
	Phone       *string `json:"phone"`
	Address     *string `json:"address"`
	City        *string `json:"city"`
	State       *string `json:"state"`
	Zip         *string `json:"zip"`
	CompanyName *string `json:"company_name"`
	ClientType  *string `json:"client_type" binding:"omitempty,oneof=individual corporate"`
	Status      *string `json:"status" binding:"omitempty,oneof=active inactive"`
	Notes       *string `json:"notes"`
}

func (u ClientUpdate) IsEmpty() bool {
	return u.FirstName == nil && u.LastName == nil && u.Email == nil && u.Phone == nil &&
		u.Address == nil && u.City == nil && u.State == nil && u.Zip == nil &&
		u.CompanyName == nil && u.ClientType == nil && u.Status == nil && u.Notes == nil
}

type ClientFilter struct {
	Search     *string
	ClientType *string
	Status     *string
}

// ClientBilling summarizes a client's invoices.
type ClientBilling struct {
	TotalBilled      decimal.Decimal `json:"total_billed" db:"total_billed"`
	TotalPaid        decimal.Decimal `json:"total_paid" db:"total_paid"`
	TotalOutstanding decimal.Decimal `json:"total_outstanding" db:"total_outstanding"`
	RecentInvoices   []Invoice       `json:"recent_invoices" db:"-"`
}
