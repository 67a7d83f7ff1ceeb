package testutil

import (
	"database/sql"
	"testing"

	"github.com/CarlosGonzalez2025/DateNova-Control-Proyectos/internal/db"
	"github.com/stretchr/testify/require"
)

// NewTestDB opens a migrated in-memory SQLite database that lives until
// the test ends.
func NewTestDB(t testing.TB) *sql.DB {
	t.Helper()
	database, err := db.Open(db.DriverSQLite, ":memory:")
	require.NoError(t, err, "opening test database")
	t.Cleanup(func() { _ = database.Close() })
	return database
}

// NewTestUoW runs transactions on database with SQLite placeholders.
func NewTestUoW(database *sql.DB) db.UnitOfWork {
	return db.NewUnitOfWork(database, db.DriverSQLite)
}
