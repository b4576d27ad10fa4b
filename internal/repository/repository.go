// Package repository defines the storage interfaces the services depend
// on. The sqlite subpackage provides the concrete implementation; tests
// substitute in-memory mocks.
package repository

import (
	"context"
	"time"

	"github.com/tahmid/focusflow/internal/model"
)

// ListOptions is shared pagination for all list operations.
type ListOptions struct {
	Limit  int
	Offset int
}

// GoalFilter narrows a goal listing. Achieved nil means "any".
type GoalFilter struct {
	Achieved *bool
	Category string
	ListOptions
}

// TodoFilter narrows a todo listing. Completed nil means "any".
type TodoFilter struct {
	Completed *bool
	ListOptions
}

// ActivityFilter narrows an activity listing. A zero Since means no
// trailing time window.
type ActivityFilter struct {
	Type  string
	Since time.Time
	ListOptions
}

type UserRepository interface {
	Create(ctx context.Context, user *model.User) error
	GetByID(ctx context.Context, id string) (*model.User, error)
	GetByEmail(ctx context.Context, email string) (*model.User, error)
	GetByUsername(ctx context.Context, username string) (*model.User, error)
	Update(ctx context.Context, user *model.User) error
	Delete(ctx context.Context, id string) error
}

type GoalRepository interface {
	Create(ctx context.Context, goal *model.Goal) error
	GetByID(ctx context.Context, id string) (*model.Goal, error)
	List(ctx context.Context, userID string, f GoalFilter) ([]model.Goal, error)
	// Count ignores pagination and counts every goal matching the filter.
	Count(ctx context.Context, userID string, f GoalFilter) (int, error)
	Update(ctx context.Context, goal *model.Goal) error
	Delete(ctx context.Context, id string) error
}

type TodoRepository interface {
	Create(ctx context.Context, todo *model.Todo) error
	GetByID(ctx context.Context, id string) (*model.Todo, error)
	List(ctx context.Context, userID string, f TodoFilter) ([]model.Todo, error)
	Update(ctx context.Context, todo *model.Todo) error
	Delete(ctx context.Context, id string) error
}

// ActivityRepository has no Update — activities are append-only.
// ListSince is the unpaginated variant backing the stats summary and
// the recommendation assembler's trailing window.
type ActivityRepository interface {
	Create(ctx context.Context, activity *model.Activity) error
	GetByID(ctx context.Context, id string) (*model.Activity, error)
	List(ctx context.Context, userID string, f ActivityFilter) ([]model.Activity, error)
	ListSince(ctx context.Context, userID string, since time.Time) ([]model.Activity, error)
	Delete(ctx context.Context, id string) error
}
