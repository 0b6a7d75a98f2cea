package database

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
	"gorm.io/gorm"

	"github.com/Robson2726/Facilitta-sub000/internal/domain/models"
	"github.com/Robson2726/Facilitta-sub000/internal/infrastructure/config"
)

func openTestPool(t *testing.T, log *zap.Logger) *ConnectionPool {
	t.Helper()

	cfg := &config.Config{
		DBDriver: "sqlite",
		DBPath:   filepath.Join(t.TempDir(), "pool.db"),
	}
	pool, err := NewConnectionPool(cfg, log)
	require.NoError(t, err)
	t.Cleanup(func() { _ = pool.Close() })
	require.NoError(t, Migrate(pool.GetDB(), "auto", log))
	return pool
}

func TestConnectionPoolSqliteSingleConnection(t *testing.T) {
	pool := openTestPool(t, zap.NewNop())

	stats, err := pool.Stats()
	require.NoError(t, err)
	assert.Equal(t, 1, stats["max_open_connections"])
	assert.NoError(t, Ping(context.Background(), pool.GetDB()))

	require.NoError(t, pool.Close())
	assert.Error(t, Ping(context.Background(), pool.GetDB()))
}

func TestGormLoggerSkipsRecordNotFound(t *testing.T) {
	core, logs := observer.New(zapcore.InfoLevel)
	pool := openTestPool(t, zap.New(core))
	db := pool.GetDB()

	var user models.User
	err := db.First(&user, 9999).Error
	require.ErrorIs(t, err, gorm.ErrRecordNotFound)
	assert.Zero(t, logs.FilterMessageSnippet("record not found").Len())

	require.Error(t, db.Exec("SELECT * FROM missing_table").Error)
	entries := logs.FilterMessageSnippet("missing_table").All()
	require.NotEmpty(t, entries)
	assert.Equal(t, "gorm", entries[0].LoggerName)
}

func TestAutoMigrateBackfillsResidentNameKeys(t *testing.T) {
	pool := openTestPool(t, zap.NewNop())
	db := pool.GetDB()

	resident := &models.Resident{Name: "  Conceição   Araújo ", Street: "Rua A", Number: "1"}
	require.NoError(t, db.Create(resident).Error)
	require.NoError(t, db.Model(&models.Resident{}).Where("id = ?", resident.ID).UpdateColumn("name_key", "").Error)

	require.NoError(t, AutoMigrate(db))

	var stored models.Resident
	require.NoError(t, db.First(&stored, resident.ID).Error)
	assert.Equal(t, "conceição araújo", stored.NameKey)
}
