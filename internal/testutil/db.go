// Package testutil provides shared helpers for tests: a deterministic clock
// and a seeded session store.
package testutil

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/zjrosen/vimline/internal/infrastructure/sqlite"
	"github.com/zjrosen/vimline/internal/sessions/domain"
)

// NewTestDB opens a migrated session database in a temp directory and returns
// its path. The database is closed when the test completes.
func NewTestDB(t *testing.T) (*sqlite.DB, string) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "sessions.db")
	db, err := sqlite.NewDB(path)
	require.NoError(t, err, "failed to create test database")
	t.Cleanup(func() { _ = db.Close() })
	return db, path
}

// NewTestRepo returns a session repository backed by a fresh test database.
func NewTestRepo(t *testing.T) domain.SessionRepository {
	t.Helper()
	db, _ := NewTestDB(t)
	return db.SessionRepository()
}
