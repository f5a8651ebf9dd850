package database

import (
	"fmt"
	"log"

	"stagepass/internal/bookings"
	"stagepass/internal/categories"
	"stagepass/internal/events"
	"stagepass/internal/layouts"

	"gorm.io/gorm"
)

// Migrate runs schema migrations for all domain models.
func Migrate(db *gorm.DB) error {
	// uuid_generate_v4() is used as the primary key default on all tables
	if err := db.Exec(`CREATE EXTENSION IF NOT EXISTS "uuid-ossp"`).Error; err != nil {
		return fmt.Errorf("failed to create uuid-ossp extension: %w", err)
	}

	if err := db.AutoMigrate(
		&events.Event{},
		&categories.SeatCategory{},
		&layouts.LayoutRecord{},
		&bookings.Booking{},
	); err != nil {
		return fmt.Errorf("auto-migration failed: %w", err)
	}

	log.Println("✅ Database migrations completed")
	return nil
}
