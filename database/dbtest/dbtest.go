// Package dbtest provides throwaway stores for tests.
package dbtest

import (
	"testing"

	"healthtrack/config"
	"healthtrack/database"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// NewStore opens a migrated in-memory sqlite store that is closed when the test ends.
func NewStore(t testing.TB) *database.Store {
	t.Helper()

	cfg := &config.Config{DBDriver: "sqlite", DBDSN: ":memory:", LogLevel: "error"}
	store, err := database.Open(cfg, zap.NewNop())
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })

	require.NoError(t, store.Migrate())
	return store
}
