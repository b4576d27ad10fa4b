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

// compile-time check that *TodoStore implements repository.TodoRepository
var _ repository.TodoRepository = (*TodoStore)(nil)

// TodoStore persists todos in SQLite.
type TodoStore struct {
	db *DB
}

func NewTodoStore(db *DB) *TodoStore {
	return &TodoStore{db: db}
}

const todoColumns = `id, user_id, title, description, priority, due_date,
	is_completed, goal_id, created_at, updated_at, completed_at`

func (s *TodoStore) Create(ctx context.Context, todo *model.Todo) error {
	now := time.Now()
	todo.ID = xid.New().String()
	todo.CreatedAt = now
	todo.UpdatedAt = now

	_, err := s.db.conn.ExecContext(ctx,
		`INSERT INTO todos (`+todoColumns+`)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		todo.ID,
		todo.UserID,
		todo.Title,
		todo.Description,
		todo.Priority,
		nullTime(todo.DueDate),
		todo.IsCompleted,
		nullString(todo.GoalID),
		todo.CreatedAt,
		todo.UpdatedAt,
		nullTime(todo.CompletedAt),
	)
	if err != nil {
		return fmt.Errorf("sqlite: creating todo: %w", err)
	}

	return nil
}

func (s *TodoStore) GetByID(ctx context.Context, id string) (*model.Todo, error) {
	row := s.db.conn.QueryRowContext(ctx,
		`SELECT `+todoColumns+` FROM todos WHERE id = ?`, id)

	todo, err := scanTodo(row)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, apperror.NotFound("todo", id)
		}
		return nil, fmt.Errorf("sqlite: getting todo %s: %w", id, err)
	}

	return todo, nil
}

// List retrieves the user's todos in creation order, optionally filtered
// by completion state.
func (s *TodoStore) List(ctx context.Context, userID string, f repository.TodoFilter) ([]model.Todo, error) {
	query := `SELECT ` + todoColumns + ` FROM todos WHERE user_id = ?`
	args := []any{userID}

	if f.Completed != nil {
		query += ` AND is_completed = ?`
		args = append(args, *f.Completed)
	}

	query += ` ORDER BY created_at, id LIMIT ? OFFSET ?`
	limit, offset := clampPage(f.ListOptions)
	args = append(args, limit, offset)

	rows, err := s.db.conn.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("sqlite: listing todos: %w", err)
	}
	defer rows.Close()

	todos := make([]model.Todo, 0, limit)
	for rows.Next() {
		todo, err := scanTodo(rows)
		if err != nil {
			return nil, fmt.Errorf("sqlite: scanning todo row: %w", err)
		}
		todos = append(todos, *todo)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("sqlite: iterating todos: %w", err)
	}

	return todos, nil
}

func (s *TodoStore) Update(ctx context.Context, todo *model.Todo) error {
	todo.UpdatedAt = time.Now()

	result, err := s.db.conn.ExecContext(ctx,
		`UPDATE todos
		 SET title = ?, description = ?, priority = ?, due_date = ?,
		     is_completed = ?, goal_id = ?, updated_at = ?, completed_at = ?
		 WHERE id = ?`,
		todo.Title,
		todo.Description,
		todo.Priority,
		nullTime(todo.DueDate),
		todo.IsCompleted,
		nullString(todo.GoalID),
		todo.UpdatedAt,
		nullTime(todo.CompletedAt),
		todo.ID,
	)
	if err != nil {
		return fmt.Errorf("sqlite: updating todo %s: %w", todo.ID, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("sqlite: checking rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return apperror.NotFound("todo", todo.ID)
	}

	return nil
}

func (s *TodoStore) Delete(ctx context.Context, id string) error {
	result, err := s.db.conn.ExecContext(ctx,
		`DELETE FROM todos WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("sqlite: deleting todo %s: %w", id, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("sqlite: checking rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return apperror.NotFound("todo", id)
	}

	return nil
}

func scanTodo(s scanner) (*model.Todo, error) {
	var (
		t           model.Todo
		dueDate     sql.NullTime
		goalID      sql.NullString
		completedAt sql.NullTime
	)

	err := s.Scan(
		&t.ID,
		&t.UserID,
		&t.Title,
		&t.Description,
		&t.Priority,
		&dueDate,
		&t.IsCompleted,
		&goalID,
		&t.CreatedAt,
		&t.UpdatedAt,
		&completedAt,
	)
	if err != nil {
		return nil, err
	}

	t.DueDate = timePtr(dueDate)
	t.CompletedAt = timePtr(completedAt)
	if goalID.Valid {
		v := goalID.String
		t.GoalID = &v
	}
	return &t, nil
}
