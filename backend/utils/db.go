package utils

import (
	"fmt"

	"examprep-backend/backend/config"
	"examprep-backend/backend/models"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// InitDB opens the postgres connection and migrates the schema.
func InitDB(cfg *config.Config) (*gorm.DB, error) {
	dsn := fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=disable",
		cfg.DBHost, cfg.DBPort, cfg.DBUser, cfg.DBPassword, cfg.DBName)

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		return nil, err
	}

	if err := MigrateDB(db); err != nil {
		return nil, err
	}

	return db, nil
}

// MigrateDB runs AutoMigrate for every entity. Kept separate so tests can
// reuse it against their own database.
func MigrateDB(db *gorm.DB) error {
	return db.AutoMigrate(
		&models.User{},
		&models.Educator{},
		&models.Course{},
		&models.Lesson{},
		&models.LiveClass{},
		&models.LiveClassRegistration{},
		&models.Test{},
		&models.TestQuestion{},
		&models.Progress{},
		&models.Subscription{},
	)
}
