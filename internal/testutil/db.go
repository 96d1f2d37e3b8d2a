// Package testutil provides shared fixtures for package tests.
package testutil

import (
	"path/filepath"
	"strings"
	"testing"

	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/require"

	"github.com/4liaghaie/sait/internal/db"
	"github.com/4liaghaie/sait/internal/logger"
	_ "modernc.org/sqlite"
)

// NewTestDB opens a fresh in-memory SQLite database with every migration
// applied. The about and logo rows exist; no other content does.
func NewTestDB(t *testing.T) *sqlx.DB {
	t.Helper()

	// Shared cache keeps every pooled connection on the same in-memory
	// database; the per-test name keeps tests isolated.
	name := strings.NewReplacer("/", "_", " ", "_").Replace(t.Name())
	dsn := "file:" + name + "?mode=memory&cache=shared&_pragma=busy_timeout(5000)"
	conn, err := sqlx.Open("sqlite", dsn)
	require.NoError(t, err, "open in-memory sqlite")
	t.Cleanup(func() { _ = conn.Close() })

	require.NoError(t, db.Migrate(conn, "sqlite3", logger.NewNop()), "run migrations")
	return conn
}

// NewFileDB opens a migrated SQLite database file under t.TempDir through
// db.New, for tests that need real file locking between connections.
func NewFileDB(t *testing.T) *sqlx.DB {
	t.Helper()

	conn, err := db.New("sqlite3", "file:"+filepath.Join(t.TempDir(), "portfolio.db"))
	require.NoError(t, err, "open sqlite file")
	t.Cleanup(func() { _ = conn.Close() })

	require.NoError(t, db.Migrate(conn, "sqlite3", logger.NewNop()), "run migrations")
	return conn
}
