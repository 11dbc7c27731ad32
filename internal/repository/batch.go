package repository

import (
	"context"
	"errors"
	"strings"

	"pocketmeadery/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Batches is the repository for fermentation runs.
type Batches struct {
	db  *gorm.DB
	now func() int64
}

// NewBatches returns a batch repository bound to database.
func NewBatches(database *gorm.DB) *Batches {
	return &Batches{db: database, now: nowMillis}
}

// CreateBatchInput carries the user-settable fields for a new batch. Derived
// ABV columns always start NULL regardless of input.
type CreateBatchInput struct {
	Name             string
	Status           models.BatchStatus
	BatchVolumeValue *float64
	BatchVolumeUnit  *string
	Notes            *string
	GoalABV          *float64
}

// Create inserts a batch and returns the freshly read row.
func (r *Batches) Create(ctx context.Context, input CreateBatchInput) (*models.Batch, error) {
	if strings.TrimSpace(input.Name) == "" {
		return nil, invalidf("batch name must not be empty")
	}

	status := input.Status
	if status == "" {
		status = models.DefaultStatus
	}
	if !models.ValidStatus(status) {
		return nil, invalidf("unknown batch status %q", status)
	}

	now := r.now()
	batch := models.Batch{
		ID:               uuid.NewString(),
		Name:             input.Name,
		CreatedAt:        now,
		UpdatedAt:        now,
		Status:           status,
		BatchVolumeValue: input.BatchVolumeValue,
		BatchVolumeUnit:  input.BatchVolumeUnit,
		Notes:            input.Notes,
		GoalABV:          input.GoalABV,
	}

	if err := r.db.WithContext(ctx).Create(&batch).Error; err != nil {
		return nil, err
	}

	return r.Get(ctx, batch.ID)
}

// Get returns the batch with the given id, or ErrNotFound.
func (r *Batches) Get(ctx context.Context, id string) (*models.Batch, error) {
	var batch models.Batch
	err := r.db.WithContext(ctx).Where("id = ?", id).Take(&batch).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, notFoundf("batch %s", id)
	}
	if err != nil {
		return nil, err
	}
	return &batch, nil
}

// ListActive returns batches still in progress, most recently touched first.
func (r *Batches) ListActive(ctx context.Context) ([]models.Batch, error) {
	return r.listByStatus(ctx, models.ActiveStatuses)
}

// ListCompleted returns bottled and archived batches, most recently touched first.
func (r *Batches) ListCompleted(ctx context.Context) ([]models.Batch, error) {
	return r.listByStatus(ctx, models.CompletedStatuses)
}

func (r *Batches) listByStatus(ctx context.Context, statuses []models.BatchStatus) ([]models.Batch, error) {
	var batches []models.Batch
	err := r.db.WithContext(ctx).
		Where("status IN ?", statuses).
		Order("updated_at DESC").
		Find(&batches).Error
	if err != nil {
		return nil, err
	}
	return batches, nil
}

// BatchPatch is a sparse update: only set fields reach the UPDATE statement.
type BatchPatch struct {
	Name             Field[string]
	CreatedAt        Field[int64]
	Status           Field[models.BatchStatus]
	BatchVolumeValue Field[float64]
	BatchVolumeUnit  Field[string]
	Notes            Field[string]
	GoalABV          Field[float64]
	ExpectedABV      Field[float64]
	CurrentABV       Field[float64]
}

func (p BatchPatch) values() (map[string]any, error) {
	if p.Name.IsNull() || (p.Name.IsSet() && strings.TrimSpace(p.Name.Value()) == "") {
		return nil, invalidf("batch name must not be empty")
	}
	if p.CreatedAt.IsNull() {
		return nil, invalidf("batch created_at must not be null")
	}
	if p.Status.IsNull() {
		return nil, invalidf("batch status must not be null")
	}
	if p.Status.IsSet() && !models.ValidStatus(p.Status.Value()) {
		return nil, invalidf("unknown batch status %q", p.Status.Value())
	}

	values := map[string]any{}
	p.Name.put(values, "name")
	p.CreatedAt.put(values, "created_at")
	p.Status.put(values, "status")
	p.BatchVolumeValue.put(values, "batch_volume_value")
	p.BatchVolumeUnit.put(values, "batch_volume_unit")
	p.Notes.put(values, "notes")
	p.GoalABV.put(values, "goal_abv")
	p.ExpectedABV.put(values, "expected_abv")
	p.CurrentABV.put(values, "current_abv")
	return values, nil
}

// Update applies patch to the batch with the given id. An empty patch re-reads
// the row without advancing updated_at; a non-empty one always advances it.
func (r *Batches) Update(ctx context.Context, id string, patch BatchPatch) (*models.Batch, error) {
	values, err := patch.values()
	if err != nil {
		return nil, err
	}
	if len(values) == 0 {
		return r.Get(ctx, id)
	}

	values["updated_at"] = r.now()

	result := r.db.WithContext(ctx).Model(&models.Batch{}).Where("id = ?", id).Updates(values)
	if result.Error != nil {
		return nil, result.Error
	}
	if result.RowsAffected == 0 {
		return nil, notFoundf("batch %s", id)
	}

	return r.Get(ctx, id)
}

// Delete removes the batch; ingredients, steps, step edit history, and
// reminders go with it through the schema's cascades. Deleting an absent id is
// a no-op.
func (r *Batches) Delete(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Where("id = ?", id).Delete(&models.Batch{}).Error
}
