package service

import (
	"context"
	"errors"
	"testing"

	"github.com/tahmid/focusflow/internal/apperror"
	"github.com/tahmid/focusflow/internal/model"
)

func newTodoService() (*TodoService, *fakeGoalRepo) {
	goals := &fakeGoalRepo{}
	return NewTodoService(&fakeTodoRepo{}, goals, discardLogger()), goals
}

func TestTodoService_CreateDefaultsPriority(t *testing.T) {
	svc, _ := newTodoService()

	todo, err := svc.Create(context.Background(), "user-1", CreateTodoInput{Title: "Write report"})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if todo.Priority != model.PriorityMedium {
		t.Errorf("priority = %q, want medium default", todo.Priority)
	}
}

func TestTodoService_CreateValidation(t *testing.T) {
	svc, _ := newTodoService()
	ctx := context.Background()

	if _, err := svc.Create(ctx, "user-1", CreateTodoInput{}); !errors.Is(err, apperror.ErrValidation) {
		t.Errorf("empty title: got %v", err)
	}
	if _, err := svc.Create(ctx, "user-1", CreateTodoInput{Title: "x", Priority: "urgent"}); !errors.Is(err, apperror.ErrValidation) {
		t.Errorf("bad priority: got %v", err)
	}
}

func TestTodoService_GoalLink(t *testing.T) {
	svc, goals := newTodoService()
	ctx := context.Background()

	ownGoal := &model.Goal{UserID: "user-1", Title: "Learn Go"}
	foreignGoal := &model.Goal{UserID: "user-2", Title: "not yours"}
	for _, g := range []*model.Goal{ownGoal, foreignGoal} {
		if err := goals.Create(ctx, g); err != nil {
			t.Fatalf("goal setup: %v", err)
		}
	}

	// Linking your own goal works.
	todo, err := svc.Create(ctx, "user-1", CreateTodoInput{Title: "Read the tour", GoalID: &ownGoal.ID})
	if err != nil {
		t.Fatalf("Create with link: %v", err)
	}
	if todo.GoalID == nil || *todo.GoalID != ownGoal.ID {
		t.Errorf("goal link = %v", todo.GoalID)
	}

	// Linking a foreign or missing goal is a validation failure on
	// goal_id, not a 404 on the todo.
	for name, id := range map[string]string{"foreign": foreignGoal.ID, "missing": "goal-999"} {
		_, err := svc.Create(ctx, "user-1", CreateTodoInput{Title: "x", GoalID: &id})
		if !errors.Is(err, apperror.ErrValidation) {
			t.Errorf("%s goal: got %v, want validation error", name, err)
		}
		var appErr *apperror.AppError
		if errors.As(err, &appErr) && appErr.Field != "goal_id" {
			t.Errorf("%s goal: field = %q, want goal_id", name, appErr.Field)
		}
	}
}

func TestTodoService_ClearGoalLink(t *testing.T) {
	svc, goals := newTodoService()
	ctx := context.Background()

	goal := &model.Goal{UserID: "user-1", Title: "Learn Go"}
	if err := goals.Create(ctx, goal); err != nil {
		t.Fatalf("goal setup: %v", err)
	}
	todo, err := svc.Create(ctx, "user-1", CreateTodoInput{Title: "linked", GoalID: &goal.ID})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	empty := ""
	updated, err := svc.Update(ctx, "user-1", todo.ID, model.TodoPatch{GoalID: &empty})
	if err != nil {
		t.Fatalf("Update: %v", err)
	}
	if updated.GoalID != nil {
		t.Errorf("goal link not cleared: %v", *updated.GoalID)
	}
}

func TestTodoService_CompletedAtStampedOnce(t *testing.T) {
	svc, _ := newTodoService()
	ctx := context.Background()

	todo, err := svc.Create(ctx, "user-1", CreateTodoInput{Title: "Ship it"})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	done := true
	updated, err := svc.Update(ctx, "user-1", todo.ID, model.TodoPatch{IsCompleted: &done})
	if err != nil {
		t.Fatalf("Update: %v", err)
	}
	if updated.CompletedAt == nil {
		t.Fatal("completed_at not stamped")
	}
	stamp := *updated.CompletedAt

	// Re-completing and re-opening both keep the original stamp.
	again, err := svc.Update(ctx, "user-1", todo.ID, model.TodoPatch{IsCompleted: &done})
	if err != nil {
		t.Fatalf("Update: %v", err)
	}
	if !again.CompletedAt.Equal(stamp) {
		t.Errorf("completed_at moved on repeat completion")
	}

	open := false
	reopened, err := svc.Update(ctx, "user-1", todo.ID, model.TodoPatch{IsCompleted: &open})
	if err != nil {
		t.Fatalf("Update: %v", err)
	}
	if reopened.IsCompleted {
		t.Error("todo still completed")
	}
	if reopened.CompletedAt == nil || !reopened.CompletedAt.Equal(stamp) {
		t.Errorf("completed_at lost on reopen: %v", reopened.CompletedAt)
	}
}

func TestTodoService_Ownership(t *testing.T) {
	svc, _ := newTodoService()
	ctx := context.Background()

	todo, err := svc.Create(ctx, "user-1", CreateTodoInput{Title: "mine"})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	if _, err := svc.Get(ctx, "user-2", todo.ID); !errors.Is(err, apperror.ErrNotFound) {
		t.Errorf("foreign get: got %v", err)
	}
	if err := svc.Delete(ctx, "user-2", todo.ID); !errors.Is(err, apperror.ErrNotFound) {
		t.Errorf("foreign delete: got %v", err)
	}
	if err := svc.Delete(ctx, "user-1", todo.ID); err != nil {
		t.Errorf("owner delete: %v", err)
	}
}
