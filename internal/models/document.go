package models

import "time"

type Document struct {
	ID             int64     `json:"id" db:"id"`
	Title          string    `json:"title" db:"title"`
	Description    *string   `json:"description" db:"description"`
	FilePath       string    `json:"file_path" db:"file_path"`
	FileSize       *int64    `json:"file_size" db:"file_size"`
	FileType       *string   `json:"file_type" db:"file_type"`
	MatterID       *int64    `json:"matter_id" db:"matter_id"`
	ClientID       *int64    `json:"client_id" db:"client_id"`
	Category       *string   `json:"category" db:"category"`
	Tags           []string  `json:"tags" db:"tags"`
	IsConfidential bool      `json:"is_confidential" db:"is_confidential"`
	UploadedBy     *int64    `json:"uploaded_by" db:"uploaded_by"`
	CreatedAt      time.Time `json:"created_at" db:"created_at"`
	UpdatedAt      time.Time `json:"updated_at" db:"updated_at"`

	MatterTitle    *string `json:"matter_title,omitempty" db:"matter_title"`
	ClientName     *string `json:"client_name,omitempty" db:"client_name"`
	UploadedByName *string `json:"uploaded_by_name,omitempty" db:"uploaded_by_name"`
}

type DocumentInput struct {
	Title          string   `json:"title" binding:"required,max=255"`
	Description    *string  `json:"description"`
	FilePath       string   `json:"file_path" binding:"required"`
	FileSize       *int64   `json:"file_size" binding:"omitempty,min=0"`
	FileType       *string  `json:"file_type"`
	MatterID       *int64   `json:"matter_id" binding:"omitempty,gt=0"`
	ClientID       *int64   `json:"client_id" binding:"omitempty,gt=0"`
	Category       *string  `json:"category"`
	Tags           []string `json:"tags"`
	IsConfidential bool     `json:"is_confidential"`
}

type DocumentFilter struct {
	MatterID *int64
	ClientID *int64
	Category *string
}
