package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/rs/xid"

	"github.com/tahmid/focusflow/internal/apperror"
	"github.com/tahmid/focusflow/internal/model"
	"github.com/tahmid/focusflow/internal/repository"
)

// compile-time check that *GoalStore implements repository.GoalRepository
var _ repository.GoalRepository = (*GoalStore)(nil)

// GoalStore persists goals in SQLite.
type GoalStore struct {
	db *DB
}

func NewGoalStore(db *DB) *GoalStore {
	return &GoalStore{db: db}
}

const goalColumns = `id, user_id, title, description, category, target_date,
	is_achieved, progress_percentage, created_at, updated_at, achieved_at`

// Create inserts a new goal, generating the ID and timestamps in place
// so the caller gets the canonical record back.
func (s *GoalStore) Create(ctx context.Context, goal *model.Goal) error {
	now := time.Now()
	goal.ID = xid.New().String()
	goal.CreatedAt = now
	goal.UpdatedAt = now

	_, err := s.db.conn.ExecContext(ctx,
		`INSERT INTO goals (`+goalColumns+`)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		goal.ID,
		goal.UserID,
		goal.Title,
		goal.Description,
		goal.Category,
		nullTime(goal.TargetDate),
		goal.IsAchieved,
		goal.ProgressPercentage,
		goal.CreatedAt,
		goal.UpdatedAt,
		nullTime(goal.AchievedAt),
	)
	if err != nil {
		return fmt.Errorf("sqlite: creating goal: %w", err)
	}

	return nil
}

// GetByID retrieves a single goal by ID. Ownership is NOT checked here —
// that's the service's job, so the check lives in exactly one place.
func (s *GoalStore) GetByID(ctx context.Context, id string) (*model.Goal, error) {
	row := s.db.conn.QueryRowContext(ctx,
		`SELECT `+goalColumns+` FROM goals WHERE id = ?`, id)

	goal, err := scanGoal(row)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, apperror.NotFound("goal", id)
		}
		return nil, fmt.Errorf("sqlite: getting goal %s: %w", id, err)
	}

	return goal, nil
}

// List retrieves the user's goals, oldest first (creation order), with
// optional achieved/category filters and pagination.
func (s *GoalStore) List(ctx context.Context, userID string, f repository.GoalFilter) ([]model.Goal, error) {
	query := `SELECT ` + goalColumns + ` FROM goals WHERE user_id = ?`
	args := []any{userID}

	if f.Achieved != nil {
		query += ` AND is_achieved = ?`
		args = append(args, *f.Achieved)
	}
	if f.Category != "" {
		query += ` AND category = ?`
		args = append(args, f.Category)
	}

	query += ` ORDER BY created_at, id LIMIT ? OFFSET ?`
	limit, offset := clampPage(f.ListOptions)
	args = append(args, limit, offset)

	rows, err := s.db.conn.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("sqlite: listing goals: %w", err)
	}
	defer rows.Close()

	goals := make([]model.Goal, 0, limit)
	for rows.Next() {
		goal, err := scanGoal(rows)
		if err != nil {
			return nil, fmt.Errorf("sqlite: scanning goal row: %w", err)
		}
		goals = append(goals, *goal)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("sqlite: iterating goals: %w", err)
	}

	return goals, nil
}

// Count counts the user's goals matching the filter, ignoring
// pagination.
func (s *GoalStore) Count(ctx context.Context, userID string, f repository.GoalFilter) (int, error) {
	query := `SELECT COUNT(*) FROM goals WHERE user_id = ?`
	args := []any{userID}

	if f.Achieved != nil {
		query += ` AND is_achieved = ?`
		args = append(args, *f.Achieved)
	}
	if f.Category != "" {
		query += ` AND category = ?`
		args = append(args, f.Category)
	}

	var count int
	if err := s.db.conn.QueryRowContext(ctx, query, args...).Scan(&count); err != nil {
		return 0, fmt.Errorf("sqlite: counting goals: %w", err)
	}
	return count, nil
}

// Update writes the goal's mutable fields. created_at and user_id are
// immutable; achieved_at is whatever the service decided.
func (s *GoalStore) Update(ctx context.Context, goal *model.Goal) error {
	goal.UpdatedAt = time.Now()

	result, err := s.db.conn.ExecContext(ctx,
		`UPDATE goals
		 SET title = ?, description = ?, category = ?, target_date = ?,
		     is_achieved = ?, progress_percentage = ?, updated_at = ?, achieved_at = ?
		 WHERE id = ?`,
		goal.Title,
		goal.Description,
		goal.Category,
		nullTime(goal.TargetDate),
		goal.IsAchieved,
		goal.ProgressPercentage,
		goal.UpdatedAt,
		nullTime(goal.AchievedAt),
		goal.ID,
	)
	if err != nil {
		return fmt.Errorf("sqlite: updating goal %s: %w", goal.ID, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("sqlite: checking rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return apperror.NotFound("goal", goal.ID)
	}

	return nil
}

// Delete removes a goal. Linked todos survive with their goal_id nulled
// by the ON DELETE SET NULL rule.
func (s *GoalStore) Delete(ctx context.Context, id string) error {
	result, err := s.db.conn.ExecContext(ctx,
		`DELETE FROM goals WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("sqlite: deleting goal %s: %w", id, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("sqlite: checking rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return apperror.NotFound("goal", id)
	}

	return nil
}

func scanGoal(s scanner) (*model.Goal, error) {
	var (
		g          model.Goal
		targetDate sql.NullTime
		achievedAt sql.NullTime
	)

	err := s.Scan(
		&g.ID,
		&g.UserID,
		&g.Title,
		&g.Description,
		&g.Category,
		&targetDate,
		&g.IsAchieved,
		&g.ProgressPercentage,
		&g.CreatedAt,
		&g.UpdatedAt,
		&achievedAt,
	)
	if err != nil {
		return nil, err
	}

	g.TargetDate = timePtr(targetDate)
	g.AchievedAt = timePtr(achievedAt)
	return &g, nil
}
