package model

import "time"

// Todo priorities. Stored as plain strings — the service validates the
// enum on create and update.
const (
	PriorityLow    = "low"
	PriorityMedium = "medium"
	PriorityHigh   = "high"
)

// Todo is an actionable item, optionally linked to one of the owner's
// goals. The link is weak: deleting the goal nulls GoalID but keeps the
// todo.
//
// CompletedAt is stamped exactly once, on the false→true transition of
// IsCompleted, and never cleared by later updates.
type Todo struct {
	ID          string     `json:"id"`
	UserID      string     `json:"user_id"`
	Title       string     `json:"title"`
	Description string     `json:"description"`
	Priority    string     `json:"priority"`
	DueDate     *time.Time `json:"due_date"`
	IsCompleted bool       `json:"is_completed"`
	GoalID      *string    `json:"goal_id"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
	CompletedAt *time.Time `json:"completed_at"`
}

// OwnerID implements the owned-resource check used by the services.
func (t *Todo) OwnerID() string { return t.UserID }

// TodoPatch is a partial update: nil means "leave the stored value alone".
// GoalID set to the empty string clears the goal link.
type TodoPatch struct {
	Title       *string    `json:"title"`
	Description *string    `json:"description"`
	Priority    *string    `json:"priority"`
	DueDate     *time.Time `json:"due_date"`
	IsCompleted *bool      `json:"is_completed"`
	GoalID      *string    `json:"goal_id"`
}
