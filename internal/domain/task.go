package domain

import "time"

type TaskStatus string

const (
	TaskStatusPending   TaskStatus = "pending"
	TaskStatusCompleted TaskStatus = "completed"
)

// Task is a unit of work belonging to one board. UserID duplicates the
// owning board's user so task lookups can be ownership-scoped without
// resolving the board. Order determines display position within the
// (user, board) pair, ascending. DueDate is an ISO date string or empty.
type Task struct {
	ID          string     `json:"id"`
	BoardID     string     `json:"boardId"`
	UserID      string     `json:"userId"`
	Title       string     `json:"title"`
	Description string     `json:"description,omitempty"`
	Status      TaskStatus `json:"status"`
	Order       int        `json:"order"`
	DueDate     string     `json:"dueDate,omitempty"`
	CreatedAt   time.Time  `json:"createdAt"`
	UpdatedAt   time.Time  `json:"updatedAt"`
}

// TaskUpdate is a partial update; nil fields are left untouched.
type TaskUpdate struct {
	Title       *string
	Description *string
	Status      *TaskStatus
	DueDate     *string
}
