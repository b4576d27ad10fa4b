package service

import (
	"context"
	"log/slog"
	"time"

	"github.com/tahmid/focusflow/internal/apperror"
	"github.com/tahmid/focusflow/internal/model"
	"github.com/tahmid/focusflow/internal/repository"
)

// GoalService manages a user's goals.
type GoalService struct {
	goals  repository.GoalRepository
	logger *slog.Logger
}

func NewGoalService(goals repository.GoalRepository, logger *slog.Logger) *GoalService {
	return &GoalService{goals: goals, logger: logger}
}

// CreateGoalInput is the payload for goal creation.
type CreateGoalInput struct {
	Title              string     `json:"title"`
	Description        string     `json:"description"`
	Category           string     `json:"category"`
	TargetDate         *time.Time `json:"target_date"`
	ProgressPercentage int        `json:"progress_percentage"`
}

func (s *GoalService) Create(ctx context.Context, userID string, in CreateGoalInput) (*model.Goal, error) {
	if in.Title == "" {
		return nil, apperror.ValidationFailed("title", "title is required")
	}
	if in.ProgressPercentage < 0 || in.ProgressPercentage > 100 {
		return nil, apperror.ValidationFailed("progress_percentage", "progress must be between 0 and 100")
	}

	goal := &model.Goal{
		UserID:             userID,
		Title:              in.Title,
		Description:        in.Description,
		Category:           in.Category,
		TargetDate:         in.TargetDate,
		ProgressPercentage: in.ProgressPercentage,
	}
	if err := s.goals.Create(ctx, goal); err != nil {
		return nil, err
	}

	s.logger.Info("goal created", "goal_id", goal.ID, "user_id", userID)
	return goal, nil
}

// Get returns one of the caller's goals.
func (s *GoalService) Get(ctx context.Context, userID, goalID string) (*model.Goal, error) {
	goal, err := s.goals.GetByID(ctx, goalID)
	if err != nil {
		return nil, err
	}
	if err := requireOwner(goal, "goal", goalID, userID); err != nil {
		return nil, err
	}
	return goal, nil
}

// List returns the caller's goals in creation order.
func (s *GoalService) List(ctx context.Context, userID string, f repository.GoalFilter) ([]model.Goal, error) {
	return s.goals.List(ctx, userID, f)
}

// Update applies a partial update. When the patch flips IsAchieved from
// false to true, AchievedAt is stamped with the current time. Flipping
// back does not clear the stamp.
func (s *GoalService) Update(ctx context.Context, userID, goalID string, patch model.GoalPatch) (*model.Goal, error) {
	goal, err := s.Get(ctx, userID, goalID)
	if err != nil {
		return nil, err
	}

	if patch.Title != nil {
		if *patch.Title == "" {
			return nil, apperror.ValidationFailed("title", "title is required")
		}
		goal.Title = *patch.Title
	}
	if patch.Description != nil {
		goal.Description = *patch.Description
	}
	if patch.Category != nil {
		goal.Category = *patch.Category
	}
	if patch.TargetDate != nil {
		goal.TargetDate = patch.TargetDate
	}
	if patch.ProgressPercentage != nil {
		if *patch.ProgressPercentage < 0 || *patch.ProgressPercentage > 100 {
			return nil, apperror.ValidationFailed("progress_percentage", "progress must be between 0 and 100")
		}
		goal.ProgressPercentage = *patch.ProgressPercentage
	}
	if patch.IsAchieved != nil {
		if *patch.IsAchieved && !goal.IsAchieved {
			now := time.Now()
			goal.AchievedAt = &now
		}
		goal.IsAchieved = *patch.IsAchieved
	}

	if err := s.goals.Update(ctx, goal); err != nil {
		return nil, err
	}
	return goal, nil
}

// Delete removes one of the caller's goals. Linked todos survive with
// their goal link cleared.
func (s *GoalService) Delete(ctx context.Context, userID, goalID string) error {
	if _, err := s.Get(ctx, userID, goalID); err != nil {
		return err
	}
	if err := s.goals.Delete(ctx, goalID); err != nil {
		return err
	}
	s.logger.Info("goal deleted", "goal_id", goalID, "user_id", userID)
	return nil
}
