package models

import "time"

const (
	PriorityUrgent = "urgent"
	PriorityHigh   = "high"
	PriorityMedium = "medium"
	PriorityLow    = "low"

	TaskStatusPending    = "pending"
	TaskStatusInProgress = "in_progress"
	TaskStatusCompleted  = "completed"
	TaskStatusCancelled  = "cancelled"
)

// PriorityRank orders priorities for sorting: urgent=1 through low=4.
// Unknown values sort last.
func PriorityRank(priority string) int {
	switch priority {
	case PriorityUrgent:
		return 1
	case PriorityHigh:
		return 2
	case PriorityMedium:
		return 3
	case PriorityLow:
		return 4
	default:
		return 5
	}
}

type Task struct {
	ID           int64      `json:"id" db:"id"`
	Title        string     `json:"title" db:"title"`
	Description  *string    `json:"description" db:"description"`
	MatterID     *int64     `json:"matter_id" db:"matter_id"`
	AssignedTo   *int64     `json:"assigned_to" db:"assigned_to"`
	CreatedBy    *int64     `json:"created_by" db:"created_by"`
	Priority     string     `json:"priority" db:"priority"`
	Status       string     `json:"status" db:"status"`
	DueDate      *Date      `json:"due_date" db:"due_date"`
	ReminderDate *time.Time `json:"reminder_date" db:"reminder_date"`
	CompletedAt  *time.Time `json:"completed_at" db:"completed_at"`
	CreatedAt    time.Time  `json:"created_at" db:"created_at"`
	UpdatedAt    time.Time  `json:"updated_at" db:"updated_at"`

	MatterTitle    *string `json:"matter_title,omitempty" db:"matter_title"`
	ClientName     *string `json:"client_name,omitempty" db:"client_name"`
	AssignedToName *string `json:"assigned_to_name,omitempty" db:"assigned_to_name"`
	CreatedByName  *string `json:"created_by_name,omitempty" db:"created_by_name"`
}

type TaskInput struct {
	Title        string     `json:"title" binding:"required,max=255"`
	Description  *string    `json:"description"`
	MatterID     *int64     `json:"matter_id" binding:"omitempty,gt=0"`
	AssignedTo   *int64     `json:"assigned_to" binding:"omitempty,gt=0"`
	Priority     string     `json:"priority" binding:"omitempty,oneof=low medium high urgent"`
	Status       string     `json:"status" binding:"omitempty,oneof=pending in_progress completed cancelled"`
	DueDate      *Date      `json:"due_date"`
	ReminderDate *time.Time `json:"reminder_date"`
}

func (in *TaskInput) ApplyDefaults() {
	if in.Priority == "" {
		in.Priority = PriorityMedium
	}
	if in.Status == "" {
		in.Status = TaskStatusPending
	}
}

// TaskUpdate lists the task columns a caller may change.
type TaskUpdate struct {
	Title        *string    `json:"title" binding:"omitempty,min=1,max=255"`
	Description  *string    `json:"description"`
	AssignedTo   *int64     `json:"assigned_to" binding:"omitempty,gt=0"`
	Priority     *string    `json:"priority" binding:"omitempty,oneof=low medium high urgent"`
	Status       *string    `json:"status" binding:"omitempty,oneof=pending in_progress completed cancelled"`
	DueDate      *Date      `json:"due_date"`
	ReminderDate *time.Time `json:"reminder_date"`
}

func (u TaskUpdate) IsEmpty() bool {
	return u.Title == nil && u.Description == nil && u.AssignedTo == nil &&
		u.Priority == nil && u.Status == nil && u.DueDate == nil && u.ReminderDate == nil
}

type TaskFilter struct {
	Status     *string
	Priority   *string
	AssignedTo *int64
	MatterID   *int64
}
