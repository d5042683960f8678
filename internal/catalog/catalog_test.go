package catalog

import (
	"path/filepath"
	"testing"

	"greengrass/internal/database"

	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := database.New("sqlite://"+filepath.Join(t.TempDir(), "catalog.db"), "error")
	require.NoError(t, err)
	require.NoError(t, db.Migrate())
	t.Cleanup(func() { db.Close() })
	return db.DB
}

func strPtr(s string) *string { return &s }

func boolPtr(b bool) *bool { return &b }
