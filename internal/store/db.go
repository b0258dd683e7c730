// internal/store/db.go
package store

import (
	"fmt"
	"log"

	"turbo-admin/internal/config"
	"turbo-admin/pkg/models"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

var db *gorm.DB

func InitDB(cfg *config.Config) {
	dsn := fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		cfg.DBHost, cfg.DBPort, cfg.DBUser, cfg.DBPass, cfg.DBName, cfg.DBSSLMode,
	)

	var err error
	db, err = gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		log.Fatalf("❌ Failed to connect to DB: %v", err)
	}

	// Auto-migrate (safe in dev; use migrations in prod)
	if err := Migrate(db); err != nil {
		log.Fatalf("❌ Failed to migrate: %v", err)
	}

	log.Println("✅ [STORE] DB connected & migrated")
}

// Migrate applies the schema for every persisted model.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&models.User{},
		&models.Category{},
		&models.Tag{},
		&models.Post{},
		&models.NewsletterSubscriber{},
		&models.Newsletter{},
		&models.StripeConfiguration{},
		&models.ResendConfiguration{},
		&models.EditorConfiguration{},
		&models.CloudinaryConfiguration{},
	)
}

func GetDB() *gorm.DB {
	return db
}
