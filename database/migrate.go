package database

import (
	"fmt"

	"marketplace_backend/internal/logger"
	"marketplace_backend/internal/models"

	"gorm.io/gorm"
)

// AutoMigrate creates or updates every table, including the unique indexes
// that back the one-per-pair rules on applications, proposals and chats.
func AutoMigrate(db *gorm.DB) error {
	if err := db.AutoMigrate(models.All()...); err != nil {
		return fmt.Errorf("auto migrate: %w", err)
	}

	logger.Info("AutoMigrate completed", "models", len(models.All()))
	return nil
}
