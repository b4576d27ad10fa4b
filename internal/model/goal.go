package model

import "time"

// Goal is a user's objective, optionally tagged with a free-form category
// ("career", "health", "learning", ...) that also drives video
// recommendations.
//
// AchievedAt is stamped exactly once, when IsAchieved transitions from
// false to true during an update. It is never cleared — un-achieving a
// goal leaves the original achievement time in place.
type Goal struct {
	ID                 string     `json:"id"`
	UserID             string     `json:"user_id"`
	Title              string     `json:"title"`
	Description        string     `json:"description"`
	Category           string     `json:"category"`
	TargetDate         *time.Time `json:"target_date"`
	IsAchieved         bool       `json:"is_achieved"`
	ProgressPercentage int        `json:"progress_percentage"`
	CreatedAt          time.Time  `json:"created_at"`
	UpdatedAt          time.Time  `json:"updated_at"`
	AchievedAt         *time.Time `json:"achieved_at"`
}

// OwnerID implements the owned-resource check used by the services.
func (g *Goal) OwnerID() string { return g.UserID }

// GoalPatch is a partial update: nil means "leave the stored value alone".
type GoalPatch struct {
	Title              *string    `json:"title"`
	Description        *string    `json:"description"`
	Category           *string    `json:"category"`
	TargetDate         *time.Time `json:"target_date"`
	IsAchieved         *bool      `json:"is_achieved"`
	ProgressPercentage *int       `json:"progress_percentage"`
}
