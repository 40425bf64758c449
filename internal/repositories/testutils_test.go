package repositories_test

import (
	"context"
	"github.com/myrjola/dailytake/internal/sqlite"
	"github.com/myrjola/dailytake/internal/testhelpers"
	"github.com/stretchr/testify/require"
	"io"
	"testing"
)

// newTestDB creates a new in-memory database for testing purposes.
func newTestDB(t *testing.T) *sqlite.Database {
	t.Helper()
	ctx, cancel := context.WithCancel(context.Background())
	db, err := sqlite.NewDatabase(ctx, ":memory:", testhelpers.NewLogger(io.Discard))
	require.NoError(t, err)
	t.Cleanup(func() {
		cancel()
		require.NoError(t, db.Close())
	})
	return db
}
