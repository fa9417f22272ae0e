package models

import "time"

type Communication struct {
	ID                int64     `json:"id" db:"id"`
	Type              string    `json:"type" db:"type"`
	ClientID          *int64    `json:"client_id" db:"client_id"`
	MatterID          *int64    `json:"matter_id" db:"matter_id"`
	ContactName       *string   `json:"contact_name" db:"contact_name"`
	ContactEmail      *string   `json:"contact_email" db:"contact_email"`
	ContactPhone      *string   `json:"contact_phone" db:"contact_phone"`
	Subject           string    `json:"subject" db:"subject"`
	Content           string    `json:"content" db:"content"`
	CommunicationDate time.Time `json:"communication_date" db:"communication_date"`
	Direction         string    `json:"direction" db:"direction"`
	FollowUpDate      *Date     `json:"follow_up_date" db:"follow_up_date"`
	IsConfidential    bool      `json:"is_confidential" db:"is_confidential"`
	CreatedBy         *int64    `json:"created_by" db:"created_by"`
	CreatedAt         time.Time `json:"created_at" db:"created_at"`
	UpdatedAt         time.Time `json:"updated_at" db:"updated_at"`

	ClientName    *string `json:"client_name,omitempty" db:"client_name"`
	MatterTitle   *string `json:"matter_title,omitempty" db:"matter_title"`
	CreatedByName *string `json:"created_by_name,omitempty" db:"created_by_name"`
}

type CommunicationInput struct {
	Type              string     `json:"type" binding:"required,oneof=email phone meeting letter other"`
	ClientID          *int64     `json:"client_id" binding:"omitempty,gt=0"`
	MatterID          *int64     `json:"matter_id" binding:"omitempty,gt=0"`
	ContactName       *string    `json:"contact_name"`
	ContactEmail      *string    `json:"contact_email" binding:"omitempty,email"`
	ContactPhone      *string    `json:"contact_phone"`
	Subject           string     `json:"subject" binding:"required,max=255"`
	Content           string     `json:"content" binding:"required"`
	CommunicationDate *time.Time `json:"communication_date"`
	Direction         string     `json:"direction" binding:"omitempty,oneof=incoming outgoing"`
	FollowUpDate      *Date      `json:"follow_up_date"`
	IsConfidential    bool       `json:"is_confidential"`
}

func (in *CommunicationInput) ApplyDefaults() {
	if in.Direction == "" {
		in.Direction = "outgoing"
	}
	if in.CommunicationDate == nil {
		now := time.Now()
		in.CommunicationDate = &now
	}
}

// CommunicationUpdate lists the communication columns a caller may change.
// The client and matter links are fixed at creation.
type CommunicationUpdate struct {
	Type              *string    `json:"type" binding:"omitempty,oneof=email phone meeting letter other"`
	ContactName       *string    `json:"contact_name"`
	ContactEmail      *string    `json:"contact_email" binding:"omitempty,email"`
	ContactPhone      *string    `json:"contact_phone"`
	Subject           *string    `json:"subject" binding:"omitempty,min=1,max=255"`
	Content           *string    `json:"content" binding:"omitempty,min=1"`
	CommunicationDate *time.Time `json:"communication_date"`
	Direction         *string    `json:"direction" binding:"omitempty,oneof=incoming outgoing"`
	FollowUpDate      *Date      `json:"follow_up_date"`
	IsConfidential    *bool      `json:"is_confidential"`
}

func (u CommunicationUpdate) IsEmpty() bool {
	return u.Type == nil && u.ContactName == nil && u.ContactEmail == nil && u.ContactPhone == nil &&
		u.Subject == nil && u.Content == nil && u.CommunicationDate == nil && u.Direction == nil &&
		u.FollowUpDate == nil && u.IsConfidential == nil
}

type CommunicationFilter struct {
	Type     *string
	ClientID *int64
	MatterID *int64
}
