package service

import (
	"context"
	"log/slog"
	"time"

	"github.com/tahmid/focusflow/internal/apperror"
	"github.com/tahmid/focusflow/internal/model"
	"github.com/tahmid/focusflow/internal/repository"
)

// ActivityService manages the append-only activity log and its stats
// summary.
type ActivityService struct {
	activities repository.ActivityRepository
	logger     *slog.Logger
}

func NewActivityService(activities repository.ActivityRepository, logger *slog.Logger) *ActivityService {
	return &ActivityService{activities: activities, logger: logger}
}

// CreateActivityInput is the payload for logging an activity.
type CreateActivityInput struct {
	ActivityType    string         `json:"activity_type"`
	Title           string         `json:"title"`
	Description     string         `json:"description"`
	DurationMinutes *int           `json:"duration_minutes"`
	Metadata        map[string]any `json:"metadata"`
}

// ActivityStats is the aggregate summary over a trailing window.
type ActivityStats struct {
	TotalActivities       int            `json:"total_activities"`
	TotalFocusTimeMinutes int            `json:"total_focus_time_minutes"`
	ActivityBreakdown     map[string]int `json:"activity_breakdown"`
	PeriodDays            int            `json:"period_days"`
}

func (s *ActivityService) Create(ctx context.Context, userID string, in CreateActivityInput) (*model.Activity, error) {
	if in.ActivityType == "" {
		return nil, apperror.ValidationFailed("activity_type", "activity_type is required")
	}
	if in.Title == "" {
		return nil, apperror.ValidationFailed("title", "title is required")
	}
	if in.DurationMinutes != nil && *in.DurationMinutes < 0 {
		return nil, apperror.ValidationFailed("duration_minutes", "duration must not be negative")
	}

	activity := &model.Activity{
		UserID:          userID,
		ActivityType:    in.ActivityType,
		Title:           in.Title,
		Description:     in.Description,
		DurationMinutes: in.DurationMinutes,
		Metadata:        in.Metadata,
	}
	if err := s.activities.Create(ctx, activity); err != nil {
		return nil, err
	}

	return activity, nil
}

// Get returns one of the caller's activities.
func (s *ActivityService) Get(ctx context.Context, userID, activityID string) (*model.Activity, error) {
	activity, err := s.activities.GetByID(ctx, activityID)
	if err != nil {
		return nil, err
	}
	if err := requireOwner(activity, "activity", activityID, userID); err != nil {
		return nil, err
	}
	return activity, nil
}

// List returns the caller's activities, newest first. days > 0 limits
// the listing to a trailing window.
func (s *ActivityService) List(ctx context.Context, userID string, activityType string, days int, opts repository.ListOptions) ([]model.Activity, error) {
	f := repository.ActivityFilter{
		Type:        activityType,
		ListOptions: opts,
	}
	if days > 0 {
		f.Since = time.Now().AddDate(0, 0, -days)
	}
	return s.activities.List(ctx, userID, f)
}

// Delete removes one of the caller's activities. There is no update
// path — a wrong entry is deleted and re-logged.
func (s *ActivityService) Delete(ctx context.Context, userID, activityID string) error {
	if _, err := s.Get(ctx, userID, activityID); err != nil {
		return err
	}
	return s.activities.Delete(ctx, activityID)
}

// Stats aggregates the caller's activities over the last days days
// (default 7): total count, per-type breakdown, and minutes summed
// across focus sessions.
func (s *ActivityService) Stats(ctx context.Context, userID string, days int) (*ActivityStats, error) {
	if days <= 0 {
		days = 7
	}

	since := time.Now().AddDate(0, 0, -days)
	activities, err := s.activities.ListSince(ctx, userID, since)
	if err != nil {
		return nil, err
	}

	stats := &ActivityStats{
		TotalActivities:   len(activities),
		ActivityBreakdown: make(map[string]int),
		PeriodDays:        days,
	}
	for _, a := range activities {
		stats.ActivityBreakdown[a.ActivityType]++
		if a.ActivityType == model.ActivityTypeFocusSession && a.DurationMinutes != nil {
			stats.TotalFocusTimeMinutes += *a.DurationMinutes
		}
	}

	return stats, nil
}
