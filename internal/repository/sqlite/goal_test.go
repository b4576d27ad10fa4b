package sqlite

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/tahmid/focusflow/internal/apperror"
	"github.com/tahmid/focusflow/internal/model"
	"github.com/tahmid/focusflow/internal/repository"
)

func TestGoalStore_CreateAndGet(t *testing.T) {
	db := newTestDB(t)
	store := NewGoalStore(db)
	ctx := context.Background()

	user := createTestUser(t, db, "ada@example.com", "ada")

	target := time.Date(2027, 1, 1, 0, 0, 0, 0, time.UTC)
	goal := &model.Goal{
		UserID:             user.ID,
		Title:              "Learn Rust",
		Description:        "systems programming",
		Category:           "learning",
		TargetDate:         &target,
		ProgressPercentage: 25,
	}
	if err := store.Create(ctx, goal); err != nil {
		t.Fatalf("Create: %v", err)
	}
	if goal.ID == "" {
		t.Fatal("expected generated ID")
	}

	got, err := store.GetByID(ctx, goal.ID)
	if err != nil {
		t.Fatalf("GetByID: %v", err)
	}
	if got.Title != "Learn Rust" || got.Category != "learning" {
		t.Errorf("got %q / %q, want Learn Rust / learning", got.Title, got.Category)
	}
	if got.TargetDate == nil || !got.TargetDate.Equal(target) {
		t.Errorf("target_date = %v, want %v", got.TargetDate, target)
	}
	if got.ProgressPercentage != 25 {
		t.Errorf("progress = %d, want 25", got.ProgressPercentage)
	}
	if got.AchievedAt != nil {
		t.Error("expected nil achieved_at on a fresh goal")
	}
}

func TestGoalStore_ListOrderAndFilters(t *testing.T) {
	db := newTestDB(t)
	store := NewGoalStore(db)
	ctx := context.Background()

	user := createTestUser(t, db, "ada@example.com", "ada")
	other := createTestUser(t, db, "bob@example.com", "bob")

	titles := []string{"first", "second", "third"}
	for i, title := range titles {
		g := &model.Goal{UserID: user.ID, Title: title, Category: "career"}
		if i == 1 {
			g.Category = "health"
			g.IsAchieved = true
		}
		if err := store.Create(ctx, g); err != nil {
			t.Fatalf("Create %s: %v", title, err)
		}
	}
	// A goal owned by someone else must never show up.
	if err := store.Create(ctx, &model.Goal{UserID: other.ID, Title: "intruder"}); err != nil {
		t.Fatalf("Create intruder: %v", err)
	}

	all, err := store.List(ctx, user.ID, repository.GoalFilter{})
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(all) != 3 {
		t.Fatalf("got %d goals, want 3", len(all))
	}
	for i, title := range titles {
		if all[i].Title != title {
			t.Errorf("position %d = %q, want %q (creation order)", i, all[i].Title, title)
		}
	}

	achieved := true
	filtered, err := store.List(ctx, user.ID, repository.GoalFilter{Achieved: &achieved})
	if err != nil {
		t.Fatalf("List achieved: %v", err)
	}
	if len(filtered) != 1 || filtered[0].Title != "second" {
		t.Errorf("achieved filter returned %v", filtered)
	}

	byCategory, err := store.List(ctx, user.ID, repository.GoalFilter{Category: "career"})
	if err != nil {
		t.Fatalf("List by category: %v", err)
	}
	if len(byCategory) != 2 {
		t.Errorf("career filter returned %d goals, want 2", len(byCategory))
	}
}

func TestGoalStore_CountIgnoresPagination(t *testing.T) {
	db := newTestDB(t)
	store := NewGoalStore(db)
	ctx := context.Background()

	user := createTestUser(t, db, "ada@example.com", "ada")
	for i := 0; i < 7; i++ {
		g := &model.Goal{UserID: user.ID, Title: "goal", Category: "career"}
		if i == 0 {
			g.IsAchieved = true
		}
		if err := store.Create(ctx, g); err != nil {
			t.Fatalf("Create: %v", err)
		}
	}

	total, err := store.Count(ctx, user.ID, repository.GoalFilter{
		// Pagination options must have no effect on the count.
		ListOptions: repository.ListOptions{Limit: 2, Offset: 4},
	})
	if err != nil {
		t.Fatalf("Count: %v", err)
	}
	if total != 7 {
		t.Errorf("count = %d, want 7", total)
	}

	active := false
	activeCount, err := store.Count(ctx, user.ID, repository.GoalFilter{Achieved: &active})
	if err != nil {
		t.Fatalf("Count active: %v", err)
	}
	if activeCount != 6 {
		t.Errorf("active count = %d, want 6", activeCount)
	}
}

func TestGoalStore_ListPagination(t *testing.T) {
	db := newTestDB(t)
	store := NewGoalStore(db)
	ctx := context.Background()

	user := createTestUser(t, db, "ada@example.com", "ada")
	for i := 0; i < 5; i++ {
		g := &model.Goal{UserID: user.ID, Title: "goal"}
		if err := store.Create(ctx, g); err != nil {
			t.Fatalf("Create: %v", err)
		}
	}

	page, err := store.List(ctx, user.ID, repository.GoalFilter{
		ListOptions: repository.ListOptions{Limit: 2, Offset: 4},
	})
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(page) != 1 {
		t.Errorf("got %d goals at offset 4, want 1", len(page))
	}

	// A negative offset and zero limit fall back to the defaults.
	page, err = store.List(ctx, user.ID, repository.GoalFilter{
		ListOptions: repository.ListOptions{Limit: 0, Offset: -3},
	})
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(page) != 5 {
		t.Errorf("got %d goals with default paging, want 5", len(page))
	}
}

func TestGoalStore_UpdatePersistsAchievedAt(t *testing.T) {
	db := newTestDB(t)
	store := NewGoalStore(db)
	ctx := context.Background()

	user := createTestUser(t, db, "ada@example.com", "ada")
	goal := &model.Goal{UserID: user.ID, Title: "Run 5k", Category: "health"}
	if err := store.Create(ctx, goal); err != nil {
		t.Fatalf("Create: %v", err)
	}

	achievedAt := time.Now()
	goal.IsAchieved = true
	goal.AchievedAt = &achievedAt
	goal.ProgressPercentage = 100
	if err := store.Update(ctx, goal); err != nil {
		t.Fatalf("Update: %v", err)
	}

	got, err := store.GetByID(ctx, goal.ID)
	if err != nil {
		t.Fatalf("GetByID: %v", err)
	}
	if !got.IsAchieved || got.AchievedAt == nil {
		t.Fatal("expected achieved goal with achieved_at set")
	}

	// Un-achieving keeps the original achievement time.
	got.IsAchieved = false
	if err := store.Update(ctx, got); err != nil {
		t.Fatalf("Update: %v", err)
	}
	again, err := store.GetByID(ctx, goal.ID)
	if err != nil {
		t.Fatalf("GetByID: %v", err)
	}
	if again.AchievedAt == nil {
		t.Error("achieved_at was cleared on un-achieve")
	}
}

func TestGoalStore_DeleteMissing(t *testing.T) {
	db := newTestDB(t)
	store := NewGoalStore(db)

	err := store.Delete(context.Background(), "nonexistent")
	if !errors.Is(err, apperror.ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}
