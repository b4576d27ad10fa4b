// Package sqlite implements the repository interfaces using SQLite as
// the storage backend.
//
// WHY modernc.org/sqlite INSTEAD OF github.com/mattn/go-sqlite3?
// mattn/go-sqlite3 uses CGo, which needs a C compiler and makes
// cross-compilation painful. modernc.org/sqlite is a pure Go
// translation of SQLite — works everywhere Go works.
//
// Use ":memory:" as the path for a throwaway in-memory database (tests).
package sqlite

import (
	"database/sql"
	"fmt"
	"time"

	// Side-effect import: registers the "sqlite" driver with database/sql.
	_ "modernc.org/sqlite"

	"github.com/tahmid/focusflow/internal/repository"
)

// DB wraps a sql.DB connection pool. The per-resource stores
// (UserStore, GoalStore, ...) share this one pool; each implements the
// repository interface its service asks for.
type DB struct {
	conn *sql.DB
}

// New opens (or creates) the SQLite database at dbPath and runs the
// migrations.
func New(dbPath string) (*DB, error) {
	conn, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("sqlite: opening database: %w", err)
	}

	// Ping forces an immediate connection so a bad path or permission
	// problem surfaces here instead of on the first query.
	if err := conn.Ping(); err != nil {
		conn.Close()
		return nil, fmt.Errorf("sqlite: pinging database: %w", err)
	}

	// WAL allows concurrent reads while a write is in progress, which a
	// web server needs.
	if _, err := conn.Exec("PRAGMA journal_mode=WAL"); err != nil {
		conn.Close()
		return nil, fmt.Errorf("sqlite: setting WAL mode: %w", err)
	}

	// Foreign keys are OFF by default in SQLite. The cascade rules on
	// user deletion depend on them being enforced.
	if _, err := conn.Exec("PRAGMA foreign_keys=ON"); err != nil {
		conn.Close()
		return nil, fmt.Errorf("sqlite: enabling foreign keys: %w", err)
	}

	db := &DB{conn: conn}

	if err := db.migrate(); err != nil {
		conn.Close()
		return nil, fmt.Errorf("sqlite: running migrations: %w", err)
	}

	return db, nil
}

// Close closes the database connection pool.
func (db *DB) Close() error {
	return db.conn.Close()
}

// migrate creates the schema. CREATE TABLE IF NOT EXISTS keeps this
// idempotent, so it is safe to run at every startup.
//
// Deletion policy: goals, todos and activities reference users(id) with
// ON DELETE CASCADE — deleting an account removes everything it owned.
// The todo→goal link instead uses ON DELETE SET NULL: the link is weak,
// a todo survives its goal.
func (db *DB) migrate() error {
	_, err := db.conn.Exec(`
		CREATE TABLE IF NOT EXISTS users (
			id              TEXT PRIMARY KEY,
			email           TEXT NOT NULL UNIQUE,
			username        TEXT NOT NULL UNIQUE,
			full_name       TEXT NOT NULL DEFAULT '',
			hashed_password TEXT NOT NULL,
			is_active       INTEGER NOT NULL DEFAULT 1,
			created_at      DATETIME NOT NULL,
			updated_at      DATETIME NOT NULL
		);
	`)
	if err != nil {
		return fmt.Errorf("creating users table: %w", err)
	}

	_, err = db.conn.Exec(`
		CREATE TABLE IF NOT EXISTS goals (
			id                  TEXT PRIMARY KEY,
			user_id             TEXT NOT NULL REFERENCES users(id) ON DELETE CASCADE,
			title               TEXT NOT NULL,
			description         TEXT NOT NULL DEFAULT '',
			category            TEXT NOT NULL DEFAULT '',
			target_date         DATETIME,
			is_achieved         INTEGER NOT NULL DEFAULT 0,
			progress_percentage INTEGER NOT NULL DEFAULT 0,
			created_at          DATETIME NOT NULL,
			updated_at          DATETIME NOT NULL,
			achieved_at         DATETIME
		);
		CREATE INDEX IF NOT EXISTS idx_goals_user_id ON goals(user_id);
	`)
	if err != nil {
		return fmt.Errorf("creating goals table: %w", err)
	}

	_, err = db.conn.Exec(`
		CREATE TABLE IF NOT EXISTS todos (
			id           TEXT PRIMARY KEY,
			user_id      TEXT NOT NULL REFERENCES users(id) ON DELETE CASCADE,
			title        TEXT NOT NULL,
			description  TEXT NOT NULL DEFAULT '',
			priority     TEXT NOT NULL DEFAULT 'medium',
			due_date     DATETIME,
			is_completed INTEGER NOT NULL DEFAULT 0,
			goal_id      TEXT REFERENCES goals(id) ON DELETE SET NULL,
			created_at   DATETIME NOT NULL,
			updated_at   DATETIME NOT NULL,
			completed_at DATETIME
		);
		CREATE INDEX IF NOT EXISTS idx_todos_user_id ON todos(user_id);
	`)
	if err != nil {
		return fmt.Errorf("creating todos table: %w", err)
	}

	_, err = db.conn.Exec(`
		CREATE TABLE IF NOT EXISTS activities (
			id               TEXT PRIMARY KEY,
			user_id          TEXT NOT NULL REFERENCES users(id) ON DELETE CASCADE,
			activity_type    TEXT NOT NULL,
			title            TEXT NOT NULL,
			description      TEXT NOT NULL DEFAULT '',
			duration_minutes INTEGER,
			metadata         TEXT NOT NULL DEFAULT '',
			created_at       DATETIME NOT NULL
		);
		CREATE INDEX IF NOT EXISTS idx_activities_user_created
			ON activities(user_id, created_at);
	`)
	if err != nil {
		return fmt.Errorf("creating activities table: %w", err)
	}

	return nil
}

// scanner is satisfied by both *sql.Row and *sql.Rows, so each store's
// column mapping lives in one place.
type scanner interface {
	Scan(dest ...any) error
}

// nullTime converts a *time.Time to the driver-friendly NULL wrapper.
func nullTime(t *time.Time) sql.NullTime {
	if t == nil {
		return sql.NullTime{}
	}
	return sql.NullTime{Time: *t, Valid: true}
}

func timePtr(t sql.NullTime) *time.Time {
	if !t.Valid {
		return nil
	}
	v := t.Time
	return &v
}

func nullString(s *string) sql.NullString {
	if s == nil || *s == "" {
		return sql.NullString{}
	}
	return sql.NullString{String: *s, Valid: true}
}

// clampPage applies the shared pagination defaults: 20 per page, at most
// 100, offset never negative.
func clampPage(opts repository.ListOptions) (limit, offset int) {
	limit = opts.Limit
	if limit <= 0 {
		limit = 20
	}
	if limit > 100 {
		limit = 100
	}
	offset = opts.Offset
	if offset < 0 {
		offset = 0
	}
	return limit, offset
}
