package main

import (
	"context"
	"fmt"
	"os"

	"pocketmeadery/internal/config"
	"pocketmeadery/internal/db"
	applog "pocketmeadery/internal/log"
	"pocketmeadery/internal/repository"
	"pocketmeadery/internal/seed"
	"pocketmeadery/internal/units"
	"pocketmeadery/models"

	"github.com/joho/godotenv"
	"gorm.io/gorm"
)

const upcomingLimit = 5

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "meadery failed: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	// A missing .env is fine; the environment still applies.
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	if err := applog.SetLevel(cfg.LogLevel); err != nil {
		return fmt.Errorf("configure logging: %w", err)
	}

	ctx := context.Background()

	database, err := db.Configure(cfg.Database)
	if err != nil {
		return fmt.Errorf("open database: %w", err)
	}

	if cfg.Seed.DemoData {
		if err := seed.EnsureDemoData(ctx, database); err != nil {
			return err
		}
	}

	return printSummary(ctx, database)
}

func printSummary(ctx context.Context, database *gorm.DB) error {
	batches := repository.NewBatches(database)
	reminders := repository.NewReminders(database)
	settings := repository.NewSettings(database)

	pref := units.PreferenceUS
	if stored, err := settings.Get(ctx, models.SettingUnitsPreference); err == nil && stored != "" {
		pref = units.Preference(stored)
	}

	active, err := batches.ListActive(ctx)
	if err != nil {
		return fmt.Errorf("list active batches: %w", err)
	}

	fmt.Printf("Active batches (%d):\n", len(active))
	for _, batch := range active {
		line := fmt.Sprintf("  %s [%s]", batch.Name, batch.Status)
		if volume := units.FormatAmount(batch.BatchVolumeValue, batch.BatchVolumeUnit, pref); volume != "" {
			line += " " + volume
		}
		if batch.CurrentABV != nil {
			line += fmt.Sprintf(" %.2f%% ABV", *batch.CurrentABV)
		}
		fmt.Println(line)
	}

	upcoming, err := reminders.ListUpcoming(ctx, upcomingLimit)
	if err != nil {
		return fmt.Errorf("list upcoming reminders: %w", err)
	}

	fmt.Printf("Upcoming reminders (%d):\n", len(upcoming))
	for _, reminder := range upcoming {
		status := "will not fire"
		if reminder.Scheduled() {
			status = "scheduled"
		}
		fmt.Printf("  %s at %d (%s)\n", reminder.Title, reminder.ScheduledFor, status)
	}

	return nil
}
