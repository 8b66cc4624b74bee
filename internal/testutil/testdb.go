package testutil

import (
	"database/sql"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/alexanderramin/degreeplan/internal/db"
)

// NewTestDB opens a migrated in-memory database that lives for the test.
func NewTestDB(t testing.TB) *sql.DB {
	t.Helper()
	database, err := db.OpenDB(":memory:")
	require.NoError(t, err, "open plan database")
	t.Cleanup(func() { _ = database.Close() })
	return database
}

// NewTestUoW wraps database in the production unit of work.
func NewTestUoW(database *sql.DB) db.UnitOfWork {
	return db.NewSQLiteUnitOfWork(database)
}

