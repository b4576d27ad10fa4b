package model

import "time"

// ActivityTypeFocusSession is the activity type whose durations are
// summed into the stats summary. Other types are free-form tags
// ("todo_completed", "goal_updated", ...).
const ActivityTypeFocusSession = "focus_session"

// Activity is an append-only log entry of something the user did.
// There is no update path — activities are created, listed and deleted,
// never modified, which is why the struct has no UpdatedAt.
type Activity struct {
	ID              string         `json:"id"`
	UserID          string         `json:"user_id"`
	ActivityType    string         `json:"activity_type"`
	Title           string         `json:"title"`
	Description     string         `json:"description"`
	DurationMinutes *int           `json:"duration_minutes"`
	Metadata        map[string]any `json:"metadata,omitempty"`
	CreatedAt       time.Time      `json:"created_at"`
}

// OwnerID implements the owned-resource check used by the services.
func (a *Activity) OwnerID() string { return a.UserID }
