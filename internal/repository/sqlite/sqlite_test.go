package sqlite

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/tahmid/focusflow/internal/model"
)

// newTestDB opens a throwaway database in a per-test temp directory.
// A file (not ":memory:") because database/sql pools connections and
// each pooled connection would otherwise see its own empty in-memory
// database.
func newTestDB(t *testing.T) *DB {
	t.Helper()

	db, err := New(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("opening test database: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	return db
}

// createTestUser inserts a user to own the records under test.
func createTestUser(t *testing.T, db *DB, email, username string) *model.User {
	t.Helper()

	user := &model.User{
		Email:          email,
		Username:       username,
		FullName:       "Test User",
		HashedPassword: "not-a-real-hash",
		IsActive:       true,
	}
	if err := NewUserStore(db).Create(context.Background(), user); err != nil {
		t.Fatalf("creating test user: %v", err)
	}
	return user
}
