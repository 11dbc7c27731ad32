// Package seed installs a small set of demo batches so a fresh install has
// something to look at. Seeding runs at most once per seed version and is
// all-or-nothing: a failure anywhere rolls the whole set back.
package seed

import (
	"context"
	"errors"
	"fmt"
	"time"

	applog "pocketmeadery/internal/log"
	"pocketmeadery/internal/repository"
	"pocketmeadery/internal/service"
	"pocketmeadery/models"

	"gorm.io/gorm"
)

const (
	version   = "v1"
	markerKey = "demo_seed_" + version
)

func ptr[T any](v T) *T {
	return &v
}

// EnsureDemoData seeds the demo set unless the marker key says it already
// happened. The marker is written inside the same transaction as the rows.
func EnsureDemoData(ctx context.Context, database *gorm.DB) error {
	settings := repository.NewSettings(database)

	if value, err := settings.Get(ctx, markerKey); err == nil && value == "1" {
		applog.Debug(ctx, "demo data already seeded", "version", version)
		return nil
	} else if err != nil && !errors.Is(err, repository.ErrNotFound) {
		return fmt.Errorf("check seed marker: %w", err)
	}

	err := database.Transaction(func(tx *gorm.DB) error {
		if err := insertDemoData(ctx, tx); err != nil {
			return err
		}
		return repository.NewSettings(tx).Set(ctx, markerKey, "1")
	})
	if err != nil {
		return fmt.Errorf("seed demo data: %w", err)
	}

	applog.Info(ctx, "seeded demo data", "version", version)
	return nil
}

func insertDemoData(ctx context.Context, tx *gorm.DB) error {
	batches := repository.NewBatches(tx)
	ingredients := repository.NewIngredients(tx)
	steps := repository.NewSteps(tx)
	reminders := repository.NewReminders(tx)
	recalc := service.NewRecalculator(steps, batches)

	now := time.Now().UnixMilli()
	day := int64(24 * time.Hour / time.Millisecond)
	hour := int64(time.Hour / time.Millisecond)

	wildflower, err := batches.Create(ctx, repository.CreateBatchInput{
		Name:             "Wildflower Traditional",
		Status:           models.StatusActivePrimary,
		BatchVolumeValue: ptr(2.5),
		BatchVolumeUnit:  ptr("gal"),
		Notes:            ptr("Demo batch with complete records."),
		GoalABV:          ptr(12.5),
	})
	if err != nil {
		return err
	}

	melomel, err := batches.Create(ctx, repository.CreateBatchInput{
		Name:             "Blackberry Melomel",
		Status:           models.StatusSecondary,
		BatchVolumeValue: ptr(3.0),
		BatchVolumeUnit:  ptr("gal"),
		GoalABV:          ptr(13.0),
	})
	if err != nil {
		return err
	}

	sack, err := batches.Create(ctx, repository.CreateBatchInput{
		Name:             "Buckwheat Sack Mead",
		Status:           models.StatusBottled,
		BatchVolumeValue: ptr(2.25),
		BatchVolumeUnit:  ptr("gal"),
		GoalABV:          ptr(16.0),
	})
	if err != nil {
		return err
	}

	type ingredientSeed struct {
		batchID string
		name    string
		amount  float64
		unit    string
		kind    models.IngredientType
	}
	for _, ing := range []ingredientSeed{
		{wildflower.ID, "Wildflower honey", 8, "lb", models.IngredientHoney},
		{wildflower.ID, "Lalvin 71B", 5, "g", models.IngredientYeast},
		{wildflower.ID, "Fermaid-O", 4.5, "g", models.IngredientNutrient},
		{melomel.ID, "Clover honey", 9, "lb", models.IngredientHoney},
		{melomel.ID, "Blackberries", 3, "lb", models.IngredientFruit},
		{sack.ID, "Buckwheat honey", 12, "lb", models.IngredientHoney},
	} {
		if _, err := ingredients.Create(ctx, repository.CreateIngredientInput{
			BatchID:        ing.batchID,
			Name:           ing.name,
			AmountValue:    ptr(ing.amount),
			AmountUnit:     ptr(ing.unit),
			IngredientType: ptr(ing.kind),
		}); err != nil {
			return err
		}
	}

	type stepSeed struct {
		batchID    string
		occurredAt int64
		title      string
		notes      string
		gravity    *float64
	}
	for _, st := range []stepSeed{
		{wildflower.ID, now - 46*day, "Pitch", "Pitched yeast at 68F after rehydration.", ptr(1.102)},
		{wildflower.ID, now - 40*day, "Nutrient", "Second nutrient addition, degassed twice daily.", nil},
		{wildflower.ID, now - 4*day, "Gravity check", "Fermentation slowing, slight honey nose.", ptr(1.012)},
		{melomel.ID, now - 62*day, "Pitch", "Primary started on clover honey must.", ptr(1.110)},
		{melomel.ID, now - 20*day, "Rack onto fruit", "Racked onto three pounds of blackberries.", ptr(1.014)},
		{sack.ID, now - 120*day, "Pitch", "High gravity must, stepped feeding planned.", ptr(1.135)},
		{sack.ID, now - 30*day, "Bottling", "Bottled still after three months bulk aging.", ptr(1.018)},
	} {
		if _, err := steps.Create(ctx, repository.CreateStepInput{
			BatchID:    st.batchID,
			OccurredAt: st.occurredAt,
			Title:      ptr(st.title),
			Notes:      st.notes,
			Gravity:    st.gravity,
		}); err != nil {
			return err
		}
	}

	for _, batchID := range []string{wildflower.ID, melomel.ID, sack.ID} {
		if _, err := recalc.Recalculate(ctx, batchID); err != nil {
			return err
		}
	}

	type reminderSeed struct {
		batchID      string
		templateKey  string
		title        string
		body         string
		scheduledFor int64
	}
	for _, rem := range []reminderSeed{
		{wildflower.ID, "DEGAS_IN_HOURS", "Degas", "Batch: Wildflower Traditional", now + 6*hour},
		{melomel.ID, "RACK_IN_DAYS", "Rack to secondary", "Batch: Blackberry Melomel", now + 2*day},
	} {
		if _, err := reminders.Create(ctx, repository.CreateReminderInput{
			BatchID:      rem.batchID,
			TemplateKey:  rem.templateKey,
			Title:        rem.title,
			Body:         ptr(rem.body),
			ScheduledFor: rem.scheduledFor,
		}); err != nil {
			return err
		}
	}

	return nil
}
