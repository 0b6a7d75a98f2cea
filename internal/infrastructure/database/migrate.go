package database

import (
	"fmt"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/Robson2726/Facilitta-sub000/internal/domain/models"
)

// AutoMigrate creates missing tables and columns; it never drops or alters existing ones
func AutoMigrate(db *gorm.DB) error {
	err := db.AutoMigrate(
		&models.User{},
		&models.Resident{},
		&models.Package{},
	)
	if err != nil {
		return err
	}
	return backfillResidentKeys(db)
}

// backfillResidentKeys fills name_key on residents written before the column existed
func backfillResidentKeys(db *gorm.DB) error {
	var residents []models.Resident
	err := db.Select("id", "name").
		Where("name_key IS NULL OR name_key = ''").
		Find(&residents).Error
	if err != nil {
		return fmt.Errorf("load residents without name key: %w", err)
	}

	for _, r := range residents {
		err := db.Model(&models.Resident{}).
			Where("id = ?", r.ID).
			UpdateColumn("name_key", models.NameKey(r.Name)).Error
		if err != nil {
			return fmt.Errorf("backfill name key of resident %d: %w", r.ID, err)
		}
	}
	return nil
}

// DropAndRecreate drops every application table and migrates again.
// All data is lost.
func DropAndRecreate(db *gorm.DB, log *zap.Logger) error {
	log.Warn("dropping and recreating all tables")

	// packages first, it references the other two
	for _, model := range []interface{}{&models.Package{}, &models.Resident{}, &models.User{}} {
		if err := db.Migrator().DropTable(model); err != nil {
			return fmt.Errorf("drop table: %w", err)
		}
	}
	return AutoMigrate(db)
}

// Migrate runs the migration selected by mode ("auto" or "drop")
func Migrate(db *gorm.DB, mode string, log *zap.Logger) error {
	switch mode {
	case "drop":
		return DropAndRecreate(db, log)
	case "", "auto":
		log.Info("running standard migration, only new tables and columns are added")
		return AutoMigrate(db)
	default:
		return fmt.Errorf("unknown migration mode %q", mode)
	}
}
