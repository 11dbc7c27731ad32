package repository

import (
	"context"
	"errors"
	"strings"

	"pocketmeadery/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Steps is the repository for fermentation events.
type Steps struct {
	db  *gorm.DB
	now func() int64
}

// NewSteps returns a step repository bound to database.
func NewSteps(database *gorm.DB) *Steps {
	return &Steps{db: database, now: nowMillis}
}

// CreateStepInput carries the fields for a new step. Notes is the one
// mandatory narrative field.
type CreateStepInput struct {
	BatchID          string
	OccurredAt       int64
	Title            *string
	Notes            string
	Gravity          *float64
	TemperatureValue *float64
	TemperatureUnit  *string
}

// Create inserts a step and returns the freshly read row.
func (r *Steps) Create(ctx context.Context, input CreateStepInput) (*models.Step, error) {
	if strings.TrimSpace(input.BatchID) == "" {
		return nil, invalidf("step batch id must not be empty")
	}
	if strings.TrimSpace(input.Notes) == "" {
		return nil, invalidf("step notes must not be empty")
	}
	if input.OccurredAt == 0 {
		return nil, invalidf("step occurred_at must be set")
	}

	now := r.now()
	step := models.Step{
		ID:               uuid.NewString(),
		BatchID:          input.BatchID,
		OccurredAt:       input.OccurredAt,
		CreatedAt:        now,
		UpdatedAt:        now,
		Title:            input.Title,
		Notes:            input.Notes,
		Gravity:          input.Gravity,
		TemperatureValue: input.TemperatureValue,
		TemperatureUnit:  input.TemperatureUnit,
	}

	if err := r.db.WithContext(ctx).Create(&step).Error; err != nil {
		return nil, err
	}

	return r.Get(ctx, step.ID)
}

// Get returns the step with the given id, or ErrNotFound. Soft-deleted steps
// are still reachable by id; only listings and ABV inputs hide them.
func (r *Steps) Get(ctx context.Context, id string) (*models.Step, error) {
	var step models.Step
	err := r.db.WithContext(ctx).Where("id = ?", id).Take(&step).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, notFoundf("step %s", id)
	}
	if err != nil {
		return nil, err
	}
	return &step, nil
}

// ListByBatch returns a batch's non-deleted steps, newest event first.
func (r *Steps) ListByBatch(ctx context.Context, batchID string) ([]models.Step, error) {
	var steps []models.Step
	err := r.db.WithContext(ctx).
		Where("batch_id = ? AND is_deleted = ?", batchID, false).
		Order("occurred_at DESC").
		Find(&steps).Error
	if err != nil {
		return nil, err
	}
	return steps, nil
}

// StepPatch is a sparse update: only set fields reach the UPDATE statement.
type StepPatch struct {
	OccurredAt       Field[int64]
	Title            Field[string]
	Notes            Field[string]
	Gravity          Field[float64]
	TemperatureValue Field[float64]
	TemperatureUnit  Field[string]
	IsDeleted        Field[bool]
}

func (p StepPatch) values() (map[string]any, error) {
	if p.Notes.IsNull() || (p.Notes.IsSet() && strings.TrimSpace(p.Notes.Value()) == "") {
		return nil, invalidf("step notes must not be empty")
	}
	if p.OccurredAt.IsNull() {
		return nil, invalidf("step occurred_at must not be null")
	}
	if p.IsDeleted.IsNull() {
		return nil, invalidf("step is_deleted must not be null")
	}

	values := map[string]any{}
	p.OccurredAt.put(values, "occurred_at")
	p.Title.put(values, "title")
	p.Notes.put(values, "notes")
	p.Gravity.put(values, "gravity")
	p.TemperatureValue.put(values, "temperature_value")
	p.TemperatureUnit.put(values, "temperature_unit")
	p.IsDeleted.put(values, "is_deleted")
	return values, nil
}

// Update applies patch to the step with the given id. An empty patch re-reads
// the row without advancing updated_at.
func (r *Steps) Update(ctx context.Context, id string, patch StepPatch) (*models.Step, error) {
	values, err := patch.values()
	if err != nil {
		return nil, err
	}
	if len(values) == 0 {
		return r.Get(ctx, id)
	}

	values["updated_at"] = r.now()

	result := r.db.WithContext(ctx).Model(&models.Step{}).Where("id = ?", id).Updates(values)
	if result.Error != nil {
		return nil, result.Error
	}
	if result.RowsAffected == 0 {
		return nil, notFoundf("step %s", id)
	}

	return r.Get(ctx, id)
}

// SoftDelete hides the step from listings and ABV computation while keeping
// the row in storage.
func (r *Steps) SoftDelete(ctx context.Context, id string) (*models.Step, error) {
	return r.Update(ctx, id, StepPatch{IsDeleted: Set(true)})
}
