package model

import "time"

const (
	StatusPending    = "pending"
	StatusAccepted   = "accepted"
	StatusInProgress = "in_progress"
	StatusCompleted  = "completed"
	StatusCancelled  = "cancelled"
)

const (
	PriorityLow    = "low"
	PriorityMedium = "medium"
	PriorityHigh   = "high"
)

func ValidStatus(s string) bool {
	switch s {
	case StatusPending, StatusAccepted, StatusInProgress, StatusCompleted, StatusCancelled:
		return true
	}
	return false
}

func ValidPriority(p string) bool {
	switch p {
	case PriorityLow, PriorityMedium, PriorityHigh:
		return true
	}
	return false
}

type Task struct {
	ID          int64     `db:"id" json:"id"`
	Title       string    `db:"title" json:"title"`
	Description string    `db:"description" json:"description"`
	Priority    string    `db:"priority" json:"priority"`
	TaskType    string    `db:"task_type" json:"task_type"`
	Status      string    `db:"status" json:"status"`
	UserID      int64     `db:"user_id" json:"user_id"`
	VolunteerID *int64    `db:"volunteer_id" json:"volunteer_id,omitempty"`
	CreatedAt   time.Time `db:"created_at" json:"created_at"`
	UpdatedAt   time.Time `db:"updated_at" json:"updated_at"`
}

// TaskDetails is the API projection of a task: the row itself plus the
// denormalized names of its owner and, once accepted, its volunteer.
type TaskDetails struct {
	Task
	OwnerName     string  `db:"owner_name" json:"owner_name"`
	VolunteerName *string `db:"volunteer_name" json:"volunteer_name,omitempty"`
}
