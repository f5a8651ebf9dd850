package main

import (
	"context"
	"fmt"
	"log"
	"time"

	"stagepass/internal/categories"
	"stagepass/internal/events"
	"stagepass/internal/layouts"
	"stagepass/internal/shared/config"
	"stagepass/internal/shared/database"
)

type Seeder struct {
	db  *database.DB
	cfg *config.Config
}

func main() {
	fmt.Println("🌱 Starting StagePass Database Seeder...")

	cfg := config.Load()

	db, err := database.InitDB(cfg)
	if err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}
	defer db.Close()

	seeder := &Seeder{db: db, cfg: cfg}

	fmt.Println("\n🧹 Cleaning database...")
	if err := seeder.CleanDatabase(); err != nil {
		log.Fatalf("Failed to clean database: %v", err)
	}
	fmt.Println("✅ Database cleaned successfully")

	fmt.Println("\n🌱 Seeding database...")
	if err := seeder.SeedAll(); err != nil {
		log.Fatalf("Failed to seed database: %v", err)
	}
	fmt.Println("✅ Database seeded successfully")

	fmt.Println("\n🎉 Seeding completed! Database is ready for testing.")
}

// CleanDatabase truncates all tables in the correct order
func (s *Seeder) CleanDatabase() error {
	tables := []string{"bookings", "seat_layouts", "seat_categories", "events"}
	for _, table := range tables {
		if err := s.db.PostgreSQL.Exec(fmt.Sprintf("TRUNCATE TABLE %s CASCADE", table)).Error; err != nil {
			return fmt.Errorf("failed to truncate %s: %w", table, err)
		}
	}
	return nil
}

// SeedAll seeds categories, events and their seat layouts
func (s *Seeder) SeedAll() error {
	ctx := context.Background()

	catalog := []categories.SeatCategory{
		{Name: "Premium", Price: 2000, Color: "#f59e0b", Available: true},
		{Name: "Gold", Price: 1000, Color: "#eab308", Available: true},
		{Name: "Silver", Price: 500, Color: "#9ca3af", Available: true},
	}
	for i := range catalog {
		if err := s.db.PostgreSQL.WithContext(ctx).Create(&catalog[i]).Error; err != nil {
			return fmt.Errorf("failed to seed category %s: %w", catalog[i].Name, err)
		}
	}
	fmt.Printf("  📋 Seeded %d seat categories\n", len(catalog))

	shows := []events.Event{
		{
			Name:      "Arijit Singh Live",
			Venue:     "Jawaharlal Nehru Stadium",
			City:      "Delhi",
			Date:      time.Now().AddDate(0, 1, 0),
			ShowTime:  "19:30",
			BasePrice: 500,
		},
		{
			Name:      "Indie Rock Night",
			Venue:     "Phoenix Arena",
			City:      "Mumbai",
			Date:      time.Now().AddDate(0, 0, 14),
			ShowTime:  "20:00",
			BasePrice: 500,
		},
		{
			Name:      "Standup Comedy Special",
			Venue:     "Good Shepherd Auditorium",
			City:      "Bengaluru",
			Date:      time.Now().AddDate(0, 0, 7),
			ShowTime:  "18:00",
			BasePrice: 500,
		},
	}
	for i := range shows {
		if err := s.db.PostgreSQL.WithContext(ctx).Create(&shows[i]).Error; err != nil {
			return fmt.Errorf("failed to seed event %s: %w", shows[i].Name, err)
		}
	}
	fmt.Printf("  🎤 Seeded %d events\n", len(shows))

	prices := map[string]float64{}
	for _, category := range catalog {
		prices[category.Name] = category.Price
	}

	layoutRepo := layouts.NewRepository(s.db.PostgreSQL)
	for _, show := range shows {
		layout := layouts.Generate(layouts.GeneratorConfig{
			Venue:               show.Venue,
			Rows:                s.cfg.Layout.Rows,
			SeatsPerRow:         s.cfg.Layout.SeatsPerRow,
			UnavailableFraction: s.cfg.Layout.UnavailableFraction,
			Seed:                s.cfg.Layout.Seed,
			DefaultSeatPrice:    s.cfg.Layout.DefaultSeatPrice,
		}, func(category string) (float64, error) {
			if price, ok := prices[category]; ok {
				return price, nil
			}
			return s.cfg.Layout.DefaultSeatPrice, nil
		})

		record := &layouts.LayoutRecord{EventID: show.ID}
		if err := record.Encode(layout); err != nil {
			return err
		}
		if err := layoutRepo.Upsert(ctx, record); err != nil {
			return fmt.Errorf("failed to seed layout for %s: %w", show.Name, err)
		}
	}
	fmt.Printf("  💺 Seeded seat layouts for %d events\n", len(shows))

	return nil
}
