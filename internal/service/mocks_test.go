package service

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/tahmid/focusflow/internal/apperror"
	"github.com/tahmid/focusflow/internal/model"
	"github.com/tahmid/focusflow/internal/repository"
	"github.com/tahmid/focusflow/internal/video"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// In-memory fakes. Slices, not maps, so listing order matches insertion
// order like the real store.

type fakeUserRepo struct {
	users  []*model.User
	nextID int
}

func (r *fakeUserRepo) Create(_ context.Context, user *model.User) error {
	for _, u := range r.users {
		if u.Email == user.Email {
			return apperror.Conflict("email", "email already registered")
		}
		if u.Username == user.Username {
			return apperror.Conflict("username", "username already taken")
		}
	}
	r.nextID++
	user.ID = fmt.Sprintf("user-%d", r.nextID)
	user.CreatedAt = time.Now()
	user.UpdatedAt = user.CreatedAt
	clone := *user
	r.users = append(r.users, &clone)
	return nil
}

func (r *fakeUserRepo) GetByID(_ context.Context, id string) (*model.User, error) {
	for _, u := range r.users {
		if u.ID == id {
			clone := *u
			return &clone, nil
		}
	}
	return nil, apperror.NotFound("user", id)
}

func (r *fakeUserRepo) GetByEmail(_ context.Context, email string) (*model.User, error) {
	for _, u := range r.users {
		if u.Email == email {
			clone := *u
			return &clone, nil
		}
	}
	return nil, apperror.NotFound("user", email)
}

func (r *fakeUserRepo) GetByUsername(_ context.Context, username string) (*model.User, error) {
	for _, u := range r.users {
		if u.Username == username {
			clone := *u
			return &clone, nil
		}
	}
	return nil, apperror.NotFound("user", username)
}

func (r *fakeUserRepo) Update(_ context.Context, user *model.User) error {
	for i, u := range r.users {
		if u.ID == user.ID {
			user.UpdatedAt = time.Now()
			clone := *user
			r.users[i] = &clone
			return nil
		}
	}
	return apperror.NotFound("user", user.ID)
}

func (r *fakeUserRepo) Delete(_ context.Context, id string) error {
	for i, u := range r.users {
		if u.ID == id {
			r.users = append(r.users[:i], r.users[i+1:]...)
			return nil
		}
	}
	return apperror.NotFound("user", id)
}

type fakeGoalRepo struct {
	goals  []*model.Goal
	nextID int
}

func (r *fakeGoalRepo) Create(_ context.Context, goal *model.Goal) error {
	r.nextID++
	goal.ID = fmt.Sprintf("goal-%d", r.nextID)
	goal.CreatedAt = time.Now()
	goal.UpdatedAt = goal.CreatedAt
	clone := *goal
	r.goals = append(r.goals, &clone)
	return nil
}

func (r *fakeGoalRepo) GetByID(_ context.Context, id string) (*model.Goal, error) {
	for _, g := range r.goals {
		if g.ID == id {
			clone := *g
			return &clone, nil
		}
	}
	return nil, apperror.NotFound("goal", id)
}

func (r *fakeGoalRepo) List(_ context.Context, userID string, f repository.GoalFilter) ([]model.Goal, error) {
	var out []model.Goal
	for _, g := range r.goals {
		if g.UserID != userID {
			continue
		}
		if f.Achieved != nil && g.IsAchieved != *f.Achieved {
			continue
		}
		if f.Category != "" && g.Category != f.Category {
			continue
		}
		out = append(out, *g)
	}
	if f.Limit > 0 && len(out) > f.Limit {
		out = out[:f.Limit]
	}
	return out, nil
}

func (r *fakeGoalRepo) Count(_ context.Context, userID string, f repository.GoalFilter) (int, error) {
	count := 0
	for _, g := range r.goals {
		if g.UserID != userID {
			continue
		}
		if f.Achieved != nil && g.IsAchieved != *f.Achieved {
			continue
		}
		if f.Category != "" && g.Category != f.Category {
			continue
		}
		count++
	}
	return count, nil
}

func (r *fakeGoalRepo) Update(_ context.Context, goal *model.Goal) error {
	for i, g := range r.goals {
		if g.ID == goal.ID {
			goal.UpdatedAt = time.Now()
			clone := *goal
			r.goals[i] = &clone
			return nil
		}
	}
	return apperror.NotFound("goal", goal.ID)
}

func (r *fakeGoalRepo) Delete(_ context.Context, id string) error {
	for i, g := range r.goals {
		if g.ID == id {
			r.goals = append(r.goals[:i], r.goals[i+1:]...)
			return nil
		}
	}
	return apperror.NotFound("goal", id)
}

type fakeTodoRepo struct {
	todos  []*model.Todo
	nextID int
}

func (r *fakeTodoRepo) Create(_ context.Context, todo *model.Todo) error {
	r.nextID++
	todo.ID = fmt.Sprintf("todo-%d", r.nextID)
	todo.CreatedAt = time.Now()
	todo.UpdatedAt = todo.CreatedAt
	clone := *todo
	r.todos = append(r.todos, &clone)
	return nil
}

func (r *fakeTodoRepo) GetByID(_ context.Context, id string) (*model.Todo, error) {
	for _, t := range r.todos {
		if t.ID == id {
			clone := *t
			return &clone, nil
		}
	}
	return nil, apperror.NotFound("todo", id)
}

func (r *fakeTodoRepo) List(_ context.Context, userID string, f repository.TodoFilter) ([]model.Todo, error) {
	var out []model.Todo
	for _, t := range r.todos {
		if t.UserID != userID {
			continue
		}
		if f.Completed != nil && t.IsCompleted != *f.Completed {
			continue
		}
		out = append(out, *t)
	}
	return out, nil
}

func (r *fakeTodoRepo) Update(_ context.Context, todo *model.Todo) error {
	for i, t := range r.todos {
		if t.ID == todo.ID {
			todo.UpdatedAt = time.Now()
			clone := *todo
			r.todos[i] = &clone
			return nil
		}
	}
	return apperror.NotFound("todo", todo.ID)
}

func (r *fakeTodoRepo) Delete(_ context.Context, id string) error {
	for i, t := range r.todos {
		if t.ID == id {
			r.todos = append(r.todos[:i], r.todos[i+1:]...)
			return nil
		}
	}
	return apperror.NotFound("todo", id)
}

type fakeActivityRepo struct {
	activities []*model.Activity
	nextID     int
}

func (r *fakeActivityRepo) Create(_ context.Context, activity *model.Activity) error {
	r.nextID++
	activity.ID = fmt.Sprintf("activity-%d", r.nextID)
	if activity.CreatedAt.IsZero() {
		activity.CreatedAt = time.Now()
	}
	clone := *activity
	r.activities = append(r.activities, &clone)
	return nil
}

func (r *fakeActivityRepo) GetByID(_ context.Context, id string) (*model.Activity, error) {
	for _, a := range r.activities {
		if a.ID == id {
			clone := *a
			return &clone, nil
		}
	}
	return nil, apperror.NotFound("activity", id)
}

func (r *fakeActivityRepo) List(_ context.Context, userID string, f repository.ActivityFilter) ([]model.Activity, error) {
	var out []model.Activity
	// Newest first: walk backwards.
	for i := len(r.activities) - 1; i >= 0; i-- {
		a := r.activities[i]
		if a.UserID != userID {
			continue
		}
		if f.Type != "" && a.ActivityType != f.Type {
			continue
		}
		if !f.Since.IsZero() && a.CreatedAt.Before(f.Since) {
			continue
		}
		out = append(out, *a)
	}
	return out, nil
}

func (r *fakeActivityRepo) ListSince(ctx context.Context, userID string, since time.Time) ([]model.Activity, error) {
	return r.List(ctx, userID, repository.ActivityFilter{Since: since})
}

func (r *fakeActivityRepo) Delete(_ context.Context, id string) error {
	for i, a := range r.activities {
		if a.ID == id {
			r.activities = append(r.activities[:i], r.activities[i+1:]...)
			return nil
		}
	}
	return apperror.NotFound("activity", id)
}

// searchCall records one provider invocation for assertions.
type searchCall struct {
	Query      string
	MaxResults int
	Order      video.Order
	Duration   video.Duration
}

// fakeProvider scripts search results per query and records every call.
type fakeProvider struct {
	results   map[string][]video.Video
	searchErr error
	details   []video.Video
	detailErr error
	calls     []searchCall
}

func (p *fakeProvider) Search(_ context.Context, query string, maxResults int, order video.Order, duration video.Duration) ([]video.Video, error) {
	p.calls = append(p.calls, searchCall{query, maxResults, order, duration})
	if p.searchErr != nil {
		return nil, p.searchErr
	}
	found := p.results[query]
	if len(found) > maxResults {
		found = found[:maxResults]
	}
	return found, nil
}

func (p *fakeProvider) Details(_ context.Context, ids []string) ([]video.Video, error) {
	if p.detailErr != nil {
		return nil, p.detailErr
	}
	return p.details, nil
}

func vid(id string) video.Video {
	return video.Video{
		VideoID: id,
		Title:   "video " + id,
		URL:     "https://www.youtube.com/watch?v=" + id,
	}
}
