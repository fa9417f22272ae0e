package models

import (
	"encoding/json"
	"time"
)

// Entity types recorded in the activity log.
const (
	EntityUser          = "user"
	EntityClient        = "client"
	EntityMatter        = "matter"
	EntityInvoice       = "invoice"
	EntityTimeEntry     = "time_entry"
	EntityTask          = "task"
	EntityDocument      = "document"
	EntityCommunication = "communication"
	EntityCalendarEvent = "calendar_event"
	EntityConflictCheck = "conflict_check"
	EntityAdverseParty  = "adverse_party"
	EntityContact       = "contact"
)

// Actions recorded in the activity log.
const (
	ActionCreate   = "create"
	ActionUpdate   = "update"
	ActionDelete   = "delete"
	ActionSend     = "send"
	ActionPay      = "pay"
	ActionUpload   = "upload"
	ActionLogin    = "login"
	ActionRegister = "register"
	ActionCheck    = "check"
)

type Activity struct {
	ID          int64           `json:"id" db:"id"`
	UserID      *int64          `json:"user_id" db:"user_id"`
	Action      string          `json:"action" db:"action"`
	EntityType  string          `json:"entity_type" db:"entity_type"`
	EntityID    *int64          `json:"entity_id" db:"entity_id"`
	Description *string         `json:"description" db:"description"`
	Metadata    json.RawMessage `json:"metadata" db:"metadata"`
	CreatedAt   time.Time       `json:"created_at" db:"created_at"`

	UserName *string `json:"user_name,omitempty" db:"user_name"`
}

// ActivityInput is one audit row to append.
type ActivityInput struct {
	Action      string          `json:"action" binding:"required,max=50"`
	EntityType  string          `json:"entity_type" binding:"required,max=50"`
	EntityID    *int64          `json:"entity_id" binding:"omitempty,gt=0"`
	Description string          `json:"description"`
	Metadata    json.RawMessage `json:"metadata"`
}

func (in ActivityInput) Validate() error {
	var errs fieldErrors
	if len(in.Metadata) > 0 && !json.Valid(in.Metadata) {
		errs.add("metadata", "Metadata must be valid JSON")
	}
	return errs.err()
}

type ActivityFilter struct {
	UserID     *int64
	EntityType *string
	Action     *string
}
