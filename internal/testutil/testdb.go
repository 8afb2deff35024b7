package testutil

import (
	"testing"

	"github.com/alexanderramin/shootcal/internal/db"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/require"
)

// NewTestDB opens a migrated in-memory store that lives for the test.
func NewTestDB(t *testing.T) *sqlx.DB {
	t.Helper()
	database, err := db.OpenDB(db.MemoryPath)
	require.NoError(t, err, "opening test database")
	t.Cleanup(func() { _ = database.Close() })
	return database
}

func NewTestUoW(database *sqlx.DB) db.UnitOfWork {
	return db.NewSQLiteUnitOfWork(database)
}

// NewTestStore returns a fresh database together with a unit of work over it.
func NewTestStore(t *testing.T) (*sqlx.DB, db.UnitOfWork) {
	t.Helper()
	database := NewTestDB(t)
	return database, NewTestUoW(database)
}
