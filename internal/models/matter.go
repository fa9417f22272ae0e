package models

import (
	"time"

	"github.com/shopspring/decimal"
)

const (
	MatterStatusOpen    = "open"
	MatterStatusPending = "pending"
	MatterStatusOnHold  = "on_hold"
	MatterStatusClosed  = "closed"
)

type Matter struct {
	ID                    int64               `json:"id" db:"id"`
	Title                 string              `json:"title" db:"title"`
	Description           *string             `json:"description" db:"description"`
	ClientID              int64               `json:"client_id" db:"client_id"`
	PracticeArea          *string             `json:"practice_area" db:"practice_area"`
	Status                string              `json:"status" db:"status"`
	ResponsibleAttorneyID *int64              `json:"responsible_attorney_id" db:"responsible_attorney_id"`
	OpenDate              Date                `json:"open_date" db:"open_date"`
	CloseDate             *Date               `json:"close_date" db:"close_date"`
	ContingencyFee        decimal.NullDecimal `json:"contingency_fee" db:"contingency_fee"`
	FlatFee               decimal.NullDecimal `json:"flat_fee" db:"flat_fee"`
	ReferralSource        *string             `json:"referral_source" db:"referral_source"`
	Notes                 *string             `json:"notes" db:"notes"`
	CreatedBy             *int64              `json:"created_by" db:"created_by"`
	CreatedAt             time.Time           `json:"created_at" db:"created_at"`
	UpdatedAt             time.Time           `json:"updated_at" db:"updated_at"`

	ClientName              *string `json:"client_name,omitempty" db:"client_name"`
	ClientCompany           *string `json:"client_company,omitempty" db:"client_company"`
	ResponsibleAttorneyName *string `json:"responsible_attorney_name,omitempty" db:"responsible_attorney_name"`
}

type MatterInput struct {
	Title                 string              `json:"title" binding:"required,max=255"`
	Description           *string             `json:"description"`
	ClientID              int64               `json:"client_id" binding:"required,gt=0"`
	PracticeArea          *string             `json:"practice_area"`
	Status                string              `json:"status" binding:"omitempty,oneof=open closed pending on_hold"`
	ResponsibleAttorneyID *int64              `json:"responsible_attorney_id" binding:"omitempty,gt=0"`
	OpenDate              Date                `json:"open_date"`
	CloseDate             *Date               `json:"close_date"`
	ContingencyFee        decimal.NullDecimal `json:"contingency_fee"`
	FlatFee               decimal.NullDecimal `json:"flat_fee"`
	ReferralSource        *string             `json:"referral_source"`
	Notes                 *string             `json:"notes"`
}

func (in *MatterInput) ApplyDefaults() {
	if in.Status == "" {
		in.Status = MatterStatusOpen
	}
	if in.OpenDate.IsZero() {
		in.OpenDate = Today()
	}
}

func (in MatterInput) Validate() error {
	var errs fieldErrors
	errs.nonNegative("contingency_fee", in.ContingencyFee)
	errs.nonNegative("flat_fee", in.FlatFee)
	if in.CloseDate != nil && !in.OpenDate.IsZero() && in.CloseDate.Before(in.OpenDate.Time) {
		errs.add("close_date", "Close date cannot be before open date")
	}
	return errs.err()
}

// MatterUpdate lists the matter columns a caller may change. The owning
// client is fixed at creation.
type MatterUpdate struct {
	Title                 *string             `json:"title" binding:"omitempty,min=1,max=255"`
	Description           *string             `json:"description"`
	PracticeArea          *string             `json:"practice_area"`
	Status                *string             `json:"status" binding:"omitempty,oneof=open closed pending on_hold"`
	ResponsibleAttorneyID *int64              `json:"responsible_attorney_id" binding:"omitempty,gt=0"`
	OpenDate              *Date               `json:"open_date"`
	CloseDate             *Date               `json:"close_date"`
	ContingencyFee        decimal.NullDecimal `json:"contingency_fee"`
	FlatFee               decimal.NullDecimal `json:"flat_fee"`
	ReferralSource        *string             `json:"referral_source"`
	Notes                 *string             `json:"notes"`
}

func (u MatterUpdate) IsEmpty() bool {
	return u.Title == nil && u.Description == nil && u.PracticeArea == nil && u.Status == nil &&
		u.ResponsibleAttorneyID == nil && u.OpenDate == nil && u.CloseDate == nil &&
		!u.ContingencyFee.Valid && !u.FlatFee.Valid && u.ReferralSource == nil && u.Notes == nil
}

func (u MatterUpdate) Validate() error {
	var errs fieldErrors
	errs.nonNegative("contingency_fee", u.ContingencyFee)
	errs.nonNegative("flat_fee", u.FlatFee)
	return errs.err()
}

type MatterFilter struct {
	PracticeArea *string
	Status       *string
	ClientID     *int64
	AttorneyID   *int64
	Search       *string
}
