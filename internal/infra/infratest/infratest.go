// Package infratest opens throwaway databases for tests.
package infratest

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"inkstudio/internal/config"
	"inkstudio/internal/infra"
)

// NewTestDB returns a migrated sqlite database stored in t.TempDir().
func NewTestDB(t testing.TB) *gorm.DB {
	t.Helper()

	path := filepath.Join(t.TempDir(), "studio.db")
	db, err := infra.OpenDatabase(config.DriverSQLite, path, zap.NewNop())
	require.NoError(t, err)
	require.NoError(t, infra.Migrate(context.Background(), db))

	t.Cleanup(func() { infra.CloseDatabase(db, zap.NewNop()) })
	return db
}
