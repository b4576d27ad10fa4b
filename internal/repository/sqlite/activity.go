package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/rs/xid"

	"github.com/tahmid/focusflow/internal/apperror"
	"github.com/tahmid/focusflow/internal/model"
	"github.com/tahmid/focusflow/internal/repository"
)

// compile-time check that *ActivityStore implements repository.ActivityRepository
var _ repository.ActivityRepository = (*ActivityStore)(nil)

// ActivityStore persists activity log entries in SQLite. Activities are
// append-only: there is no Update.
type ActivityStore struct {
	db *DB
}

func NewActivityStore(db *DB) *ActivityStore {
	return &ActivityStore{db: db}
}

const activityColumns = `id, user_id, activity_type, title, description,
	duration_minutes, metadata, created_at`

// Create inserts a new activity entry. The metadata map is stored as a
// JSON blob — it is free-form client data we never query on.
func (s *ActivityStore) Create(ctx context.Context, activity *model.Activity) error {
	activity.ID = xid.New().String()
	activity.CreatedAt = time.Now()

	metadata, err := encodeMetadata(activity.Metadata)
	if err != nil {
		return fmt.Errorf("sqlite: encoding activity metadata: %w", err)
	}

	var duration sql.NullInt64
	if activity.DurationMinutes != nil {
		duration = sql.NullInt64{Int64: int64(*activity.DurationMinutes), Valid: true}
	}

	_, err = s.db.conn.ExecContext(ctx,
		`INSERT INTO activities (`+activityColumns+`)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		activity.ID,
		activity.UserID,
		activity.ActivityType,
		activity.Title,
		activity.Description,
		duration,
		metadata,
		activity.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("sqlite: creating activity: %w", err)
	}

	return nil
}

func (s *ActivityStore) GetByID(ctx context.Context, id string) (*model.Activity, error) {
	row := s.db.conn.QueryRowContext(ctx,
		`SELECT `+activityColumns+` FROM activities WHERE id = ?`, id)

	activity, err := scanActivity(row)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, apperror.NotFound("activity", id)
		}
		return nil, fmt.Errorf("sqlite: getting activity %s: %w", id, err)
	}

	return activity, nil
}

// List retrieves the user's activities, newest first, with optional
// type and since filters.
func (s *ActivityStore) List(ctx context.Context, userID string, f repository.ActivityFilter) ([]model.Activity, error) {
	query := `SELECT ` + activityColumns + ` FROM activities WHERE user_id = ?`
	args := []any{userID}

	if f.Type != "" {
		query += ` AND activity_type = ?`
		args = append(args, f.Type)
	}
	if !f.Since.IsZero() {
		query += ` AND created_at >= ?`
		args = append(args, f.Since)
	}

	query += ` ORDER BY created_at DESC, id DESC LIMIT ? OFFSET ?`
	limit, offset := clampPage(f.ListOptions)
	args = append(args, limit, offset)

	return s.queryActivities(ctx, query, args...)
}

// ListSince retrieves every activity since the cutoff, newest first,
// with no pagination. Serves the stats aggregation and the
// recommendation context, which both need the full window.
func (s *ActivityStore) ListSince(ctx context.Context, userID string, since time.Time) ([]model.Activity, error) {
	return s.queryActivities(ctx,
		`SELECT `+activityColumns+` FROM activities
		 WHERE user_id = ? AND created_at >= ?
		 ORDER BY created_at DESC, id DESC`,
		userID, since)
}

func (s *ActivityStore) queryActivities(ctx context.Context, query string, args ...any) ([]model.Activity, error) {
	rows, err := s.db.conn.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("sqlite: listing activities: %w", err)
	}
	defer rows.Close()

	var activities []model.Activity
	for rows.Next() {
		activity, err := scanActivity(rows)
		if err != nil {
			return nil, fmt.Errorf("sqlite: scanning activity row: %w", err)
		}
		activities = append(activities, *activity)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("sqlite: iterating activities: %w", err)
	}

	return activities, nil
}

func (s *ActivityStore) Delete(ctx context.Context, id string) error {
	result, err := s.db.conn.ExecContext(ctx,
		`DELETE FROM activities WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("sqlite: deleting activity %s: %w", id, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("sqlite: checking rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return apperror.NotFound("activity", id)
	}

	return nil
}

func scanActivity(s scanner) (*model.Activity, error) {
	var (
		a        model.Activity
		duration sql.NullInt64
		metadata string
	)

	err := s.Scan(
		&a.ID,
		&a.UserID,
		&a.ActivityType,
		&a.Title,
		&a.Description,
		&duration,
		&metadata,
		&a.CreatedAt,
	)
	if err != nil {
		return nil, err
	}

	if duration.Valid {
		v := int(duration.Int64)
		a.DurationMinutes = &v
	}
	if metadata != "" {
		if err := json.Unmarshal([]byte(metadata), &a.Metadata); err != nil {
			return nil, fmt.Errorf("decoding metadata: %w", err)
		}
	}
	return &a, nil
}

func encodeMetadata(m map[string]any) (string, error) {
	if len(m) == 0 {
		return "", nil
	}
	b, err := json.Marshal(m)
	if err != nil {
		return "", err
	}
	return string(b), nil
}
