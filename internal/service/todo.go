package service

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/tahmid/focusflow/internal/apperror"
	"github.com/tahmid/focusflow/internal/model"
	"github.com/tahmid/focusflow/internal/repository"
)

// TodoService manages a user's todos and their optional goal links.
type TodoService struct {
	todos  repository.TodoRepository
	goals  repository.GoalRepository
	logger *slog.Logger
}

func NewTodoService(todos repository.TodoRepository, goals repository.GoalRepository, logger *slog.Logger) *TodoService {
	return &TodoService{todos: todos, goals: goals, logger: logger}
}

// CreateTodoInput is the payload for todo creation. Priority defaults
// to medium when empty.
type CreateTodoInput struct {
	Title       string     `json:"title"`
	Description string     `json:"description"`
	Priority    string     `json:"priority"`
	DueDate     *time.Time `json:"due_date"`
	GoalID      *string    `json:"goal_id"`
}

func (s *TodoService) Create(ctx context.Context, userID string, in CreateTodoInput) (*model.Todo, error) {
	if in.Title == "" {
		return nil, apperror.ValidationFailed("title", "title is required")
	}
	if in.Priority == "" {
		in.Priority = model.PriorityMedium
	}
	if err := validatePriority(in.Priority); err != nil {
		return nil, err
	}
	goalID, err := s.resolveGoalLink(ctx, userID, in.GoalID)
	if err != nil {
		return nil, err
	}

	todo := &model.Todo{
		UserID:      userID,
		Title:       in.Title,
		Description: in.Description,
		Priority:    in.Priority,
		DueDate:     in.DueDate,
		GoalID:      goalID,
	}
	if err := s.todos.Create(ctx, todo); err != nil {
		return nil, err
	}

	s.logger.Info("todo created", "todo_id", todo.ID, "user_id", userID)
	return todo, nil
}

// Get returns one of the caller's todos.
func (s *TodoService) Get(ctx context.Context, userID, todoID string) (*model.Todo, error) {
	todo, err := s.todos.GetByID(ctx, todoID)
	if err != nil {
		return nil, err
	}
	if err := requireOwner(todo, "todo", todoID, userID); err != nil {
		return nil, err
	}
	return todo, nil
}

// List returns the caller's todos in creation order.
func (s *TodoService) List(ctx context.Context, userID string, f repository.TodoFilter) ([]model.Todo, error) {
	return s.todos.List(ctx, userID, f)
}

// Update applies a partial update. Completing a todo stamps CompletedAt
// once, on the false→true transition; re-opening it keeps the stamp.
// Setting GoalID to the empty string clears the goal link.
func (s *TodoService) Update(ctx context.Context, userID, todoID string, patch model.TodoPatch) (*model.Todo, error) {
	todo, err := s.Get(ctx, userID, todoID)
	if err != nil {
		return nil, err
	}

	if patch.Title != nil {
		if *patch.Title == "" {
			return nil, apperror.ValidationFailed("title", "title is required")
		}
		todo.Title = *patch.Title
	}
	if patch.Description != nil {
		todo.Description = *patch.Description
	}
	if patch.Priority != nil {
		if err := validatePriority(*patch.Priority); err != nil {
			return nil, err
		}
		todo.Priority = *patch.Priority
	}
	if patch.DueDate != nil {
		todo.DueDate = patch.DueDate
	}
	if patch.GoalID != nil {
		goalID, err := s.resolveGoalLink(ctx, userID, patch.GoalID)
		if err != nil {
			return nil, err
		}
		todo.GoalID = goalID
	}
	if patch.IsCompleted != nil {
		if *patch.IsCompleted && !todo.IsCompleted {
			now := time.Now()
			todo.CompletedAt = &now
		}
		todo.IsCompleted = *patch.IsCompleted
	}

	if err := s.todos.Update(ctx, todo); err != nil {
		return nil, err
	}
	return todo, nil
}

// Delete removes one of the caller's todos.
func (s *TodoService) Delete(ctx context.Context, userID, todoID string) error {
	if _, err := s.Get(ctx, userID, todoID); err != nil {
		return err
	}
	if err := s.todos.Delete(ctx, todoID); err != nil {
		return err
	}
	s.logger.Info("todo deleted", "todo_id", todoID, "user_id", userID)
	return nil
}

// resolveGoalLink checks that a requested goal link points at one of
// the caller's own goals. Empty string means "clear the link"; a goal
// that does not exist or belongs to someone else is a validation error,
// because the todo itself is fine, only its link is bad.
func (s *TodoService) resolveGoalLink(ctx context.Context, userID string, goalID *string) (*string, error) {
	if goalID == nil || *goalID == "" {
		return nil, nil
	}

	goal, err := s.goals.GetByID(ctx, *goalID)
	if err != nil {
		if errors.Is(err, apperror.ErrNotFound) {
			return nil, apperror.ValidationFailed("goal_id", "linked goal not found")
		}
		return nil, err
	}
	if goal.UserID != userID {
		return nil, apperror.ValidationFailed("goal_id", "linked goal not found")
	}
	return goalID, nil
}

func validatePriority(p string) error {
	switch p {
	case model.PriorityLow, model.PriorityMedium, model.PriorityHigh:
		return nil
	default:
		return apperror.ValidationFailed("priority", "priority must be low, medium or high")
	}
}
