package services

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/Robson2726/Facilitta-sub000/internal/domain/models"
	"github.com/Robson2726/Facilitta-sub000/internal/infrastructure/cache"
	"github.com/Robson2726/Facilitta-sub000/internal/infrastructure/database"
	"github.com/Robson2726/Facilitta-sub000/pkg/utils"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := filepath.Join(t.TempDir(), "test.db") + "?_busy_timeout=5000&_foreign_keys=on"
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	require.NoError(t, database.AutoMigrate(db))
	return db
}

func seedUser(t *testing.T, db *gorm.DB, login, name string, level models.AccessLevel, status models.UserStatus) *models.User {
	t.Helper()

	hash, err := utils.HashPassword("secret123")
	require.NoError(t, err)
	user := &models.User{
		Login:        login,
		FullName:     name,
		AccessLevel:  level,
		Status:       status,
		PasswordHash: hash,
	}
	require.NoError(t, db.Create(user).Error)
	return user
}

func seedPorter(t *testing.T, db *gorm.DB, login, name string) *models.User {
	return seedUser(t, db, login, name, models.AccessLevelPorter, models.UserStatusActive)
}

func seedResident(t *testing.T, db *gorm.DB, name string) *models.Resident {
	t.Helper()

	resident := &models.Resident{Name: name, Street: "Rua A", Number: "10", Block: "B", Unit: "12"}
	require.NoError(t, db.Create(resident).Error)
	return resident
}

func seedPackage(t *testing.T, store *PackageService, residentID, porterID uint) uint {
	t.Helper()

	id, err := store.Create(context.Background(), CreatePackageInput{
		ResidentID:   residentID,
		ReceivedByID: porterID,
		Quantity:     1,
		ReceivedAt:   time.Now(),
	})
	require.NoError(t, err)
	return id
}

func newTestDirectory(db *gorm.DB) (*DirectoryService, *cache.MemoryStore) {
	store := cache.NewMemoryStore()
	return NewDirectoryService(db, store, DirectoryOptions{}, zap.NewNop()), store
}
