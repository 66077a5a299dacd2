package database

import (
	"gigwork_backend/internal/models"

	"gorm.io/gorm"
)

// AutoMigrate creates or updates the schema for every model.
func AutoMigrate(db *gorm.DB) error {
	// BaseModel ids default to uuid_generate_v4().
	if err := db.Exec(`CREATE EXTENSION IF NOT EXISTS "uuid-ossp"`).Error; err != nil {
		return err
	}

	return db.AutoMigrate(
		&models.User{},
		&models.Category{},
		&models.Location{},
		&models.Skill{},
		&models.Job{},
		&models.Application{},
		&models.NotificationPreference{},
		&models.NotificationLog{},
		&models.Proposal{},
		&models.CategoryFollow{},
		&models.Favorite{},
	)
}
