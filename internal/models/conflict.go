package models

import (
	"encoding/json"
	"time"
)

// ConflictMatch is one hit of a conflict search. Fields not relevant to
// the matched entity type are omitted.
type ConflictMatch struct {
	ID               int64   `json:"id" db:"id"`
	EntityType       string  `json:"entity_type" db:"entity_type"`
	Name             string  `json:"name" db:"name"`
	FirstName        *string `json:"first_name,omitempty" db:"first_name"`
	LastName         *string `json:"last_name,omitempty" db:"last_name"`
	Email            *string `json:"email,omitempty" db:"email"`
	CompanyName      *string `json:"company_name,omitempty" db:"company_name"`
	RelationshipType *string `json:"relationship_type,omitempty" db:"relationship_type"`
}

type ConflictResult struct {
	SearchName  string          `json:"search_name"`
	HasConflict bool            `json:"has_conflict"`
	Matches     []ConflictMatch `json:"matches"`
	MatchCount  int             `json:"match_count"`
	CheckID     int64           `json:"check_id"`
}

type ConflictCheck struct {
	ID          int64           `json:"id" db:"id"`
	SearchName  string          `json:"search_name" db:"search_name"`
	CheckedBy   *int64          `json:"checked_by" db:"checked_by"`
	HasConflict bool            `json:"has_conflict" db:"has_conflict"`
	Results     json.RawMessage `json:"results" db:"results"`
	Notes       *string         `json:"notes" db:"notes"`
	CheckedAt   time.Time       `json:"checked_at" db:"checked_at"`

	CheckedByName *string `json:"checked_by_name,omitempty" db:"checked_by_name"`
}

type ConflictSearchInput struct {
	SearchName string `json:"search_name" binding:"required,max=255"`
}

// ConflictLogInput records a check performed outside the system.
type ConflictLogInput struct {
	SearchName  string          `json:"search_name" binding:"required,max=255"`
	HasConflict bool            `json:"has_conflict"`
	Results     json.RawMessage `json:"results"`
	Notes       *string         `json:"notes"`
}

func (in ConflictLogInput) Validate() error {
	var errs fieldErrors
	if len(in.Results) > 0 && !json.Valid(in.Results) {
		errs.add("results", "Results must be valid JSON")
	}
	return errs.err()
}

type AdverseParty struct {
	ID        int64     `json:"id" db:"id"`
	Name      string    `json:"name" db:"name"`
	Email     *string   `json:"email" db:"email"`
	MatterID  *int64    `json:"matter_id" db:"matter_id"`
	Notes     *string   `json:"notes" db:"notes"`
	CreatedBy *int64    `json:"created_by" db:"created_by"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
}

type AdversePartyInput struct {
	Name     string  `json:"name" binding:"required,max=255"`
	Email    *string `json:"email" binding:"omitempty,email"`
	MatterID *int64  `json:"matter_id" binding:"omitempty,gt=0"`
	Notes    *string `json:"notes"`
}

type Contact struct {
	ID               int64     `json:"id" db:"id"`
	Name             string    `json:"name" db:"name"`
	Email            *string   `json:"email" db:"email"`
	Phone            *string   `json:"phone" db:"phone"`
	RelationshipType *string   `json:"relationship_type" db:"relationship_type"`
	ClientID         *int64    `json:"client_id" db:"client_id"`
	MatterID         *int64    `json:"matter_id" db:"matter_id"`
	CreatedBy        *int64    `json:"created_by" db:"created_by"`
	CreatedAt        time.Time `json:"created_at" db:"created_at"`
}

type ContactInput struct {
	Name             string  `json:"name" binding:"required,max=255"`
	Email            *string `json:"email" binding:"omitempty,email"`
	Phone            *string `json:"phone"`
	RelationshipType *string `json:"relationship_type"`
	ClientID         *int64  `json:"client_id" binding:"omitempty,gt=0"`
	MatterID         *int64  `json:"matter_id" binding:"omitempty,gt=0"`
}

// PartyFilter narrows adverse party and contact listings.
type PartyFilter struct {
	MatterID *int64
	ClientID *int64
	Search   *string
}
