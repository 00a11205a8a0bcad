package database

import (
	"fmt"

	"campusnet/internal/models"

	"gorm.io/gorm"
)

// Migrate runs database migrations for all models
func Migrate(db *gorm.DB) error {
	modelsToMigrate := []interface{}{
		&models.User{},
		&models.Friendship{},
		&models.Notification{},
		&models.Post{},
		&models.Like{},
		&models.Comment{},
		&models.Message{},
	}

	for _, model := range modelsToMigrate {
		if err := db.AutoMigrate(model); err != nil {
			return fmt.Errorf("failed to migrate model: %w", err)
		}
	}

	return nil
}
