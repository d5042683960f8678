package database

import (
	"context"
	"fmt"
	"path/filepath"
	"testing"

	"greengrass/internal/models"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm/logger"
)

func TestNewSQLiteMigrates(t *testing.T) {
	path := filepath.Join(t.TempDir(), "store.db")

	db, err := New("sqlite://"+path, "error")
	require.NoError(t, err)
	defer db.Close()

	assert.False(t, db.IsPostgres())
	require.NoError(t, db.Migrate())

	for _, m := range models.All() {
		assert.True(t, db.DB.Migrator().HasTable(m), fmt.Sprintf("%T", m))
	}

	setting := models.SiteSetting{SettingKey: "branding", SettingValue: []byte(`{"siteName":"Green Grass"}`)}
	require.NoError(t, db.DB.Create(&setting).Error)
	assert.NotEmpty(t, setting.ID)
}

func TestGormLogLevel(t *testing.T) {
	assert.Equal(t, logger.Info, gormLogLevel("DEBUG"))
	assert.Equal(t, logger.Warn, gormLogLevel("info"))
	assert.Equal(t, logger.Error, gormLogLevel("error"))
}

func TestNewRedis(t *testing.T) {
	mr, err := miniredis.Run()
	require.NoError(t, err)
	defer mr.Close()

	client, err := NewRedis(context.Background(), "redis://"+mr.Addr())
	require.NoError(t, err)
	defer client.Close()

	_, err = NewRedis(context.Background(), "not a url")
	assert.Error(t, err)
}
