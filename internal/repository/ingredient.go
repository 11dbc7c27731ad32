package repository

import (
	"context"
	"errors"
	"strings"

	"pocketmeadery/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Ingredients is the repository for a batch's recipe lines.
type Ingredients struct {
	db  *gorm.DB
	now func() int64
}

// NewIngredients returns an ingredient repository bound to database.
func NewIngredients(database *gorm.DB) *Ingredients {
	return &Ingredients{db: database, now: nowMillis}
}

// CreateIngredientInput carries the fields for a new ingredient.
type CreateIngredientInput struct {
	BatchID        string
	Name           string
	AmountValue    *float64
	AmountUnit     *string
	IngredientType *models.IngredientType
	Notes          *string
}

// Create inserts an ingredient and returns the freshly read row. A missing
// parent batch surfaces as the engine's foreign-key error.
func (r *Ingredients) Create(ctx context.Context, input CreateIngredientInput) (*models.Ingredient, error) {
	if strings.TrimSpace(input.BatchID) == "" {
		return nil, invalidf("ingredient batch id must not be empty")
	}
	if strings.TrimSpace(input.Name) == "" {
		return nil, invalidf("ingredient name must not be empty")
	}
	if input.IngredientType != nil && !models.ValidIngredientType(*input.IngredientType) {
		return nil, invalidf("unknown ingredient type %q", *input.IngredientType)
	}

	now := r.now()
	ingredient := models.Ingredient{
		ID:             uuid.NewString(),
		BatchID:        input.BatchID,
		Name:           input.Name,
		AmountValue:    input.AmountValue,
		AmountUnit:     input.AmountUnit,
		IngredientType: input.IngredientType,
		Notes:          input.Notes,
		CreatedAt:      now,
		UpdatedAt:      now,
	}

	if err := r.db.WithContext(ctx).Create(&ingredient).Error; err != nil {
		return nil, err
	}

	return r.Get(ctx, ingredient.ID)
}

// Get returns the ingredient with the given id, or ErrNotFound.
func (r *Ingredients) Get(ctx context.Context, id string) (*models.Ingredient, error) {
	var ingredient models.Ingredient
	err := r.db.WithContext(ctx).Where("id = ?", id).Take(&ingredient).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, notFoundf("ingredient %s", id)
	}
	if err != nil {
		return nil, err
	}
	return &ingredient, nil
}

// ListByBatch returns a batch's ingredients in creation order.
func (r *Ingredients) ListByBatch(ctx context.Context, batchID string) ([]models.Ingredient, error) {
	var ingredients []models.Ingredient
	err := r.db.WithContext(ctx).
		Where("batch_id = ?", batchID).
		Order("created_at ASC, id ASC").
		Find(&ingredients).Error
	if err != nil {
		return nil, err
	}
	return ingredients, nil
}

// IngredientPatch is a sparse update: only set fields reach the UPDATE statement.
type IngredientPatch struct {
	Name           Field[string]
	AmountValue    Field[float64]
	AmountUnit     Field[string]
	IngredientType Field[models.IngredientType]
	Notes          Field[string]
}

func (p IngredientPatch) values() (map[string]any, error) {
	if p.Name.IsNull() || (p.Name.IsSet() && strings.TrimSpace(p.Name.Value()) == "") {
		return nil, invalidf("ingredient name must not be empty")
	}
	if p.IngredientType.IsSet() && !p.IngredientType.IsNull() && !models.ValidIngredientType(p.IngredientType.Value()) {
		return nil, invalidf("unknown ingredient type %q", p.IngredientType.Value())
	}

	values := map[string]any{}
	p.Name.put(values, "name")
	p.AmountValue.put(values, "amount_value")
	p.AmountUnit.put(values, "amount_unit")
	p.IngredientType.put(values, "ingredient_type")
	p.Notes.put(values, "notes")
	return values, nil
}

// Update applies patch to the ingredient with the given id. An empty patch
// re-reads the row without advancing updated_at.
func (r *Ingredients) Update(ctx context.Context, id string, patch IngredientPatch) (*models.Ingredient, error) {
	values, err := patch.values()
	if err != nil {
		return nil, err
	}
	if len(values) == 0 {
		return r.Get(ctx, id)
	}

	values["updated_at"] = r.now()

	result := r.db.WithContext(ctx).Model(&models.Ingredient{}).Where("id = ?", id).Updates(values)
	if result.Error != nil {
		return nil, result.Error
	}
	if result.RowsAffected == 0 {
		return nil, notFoundf("ingredient %s", id)
	}

	return r.Get(ctx, id)
}

// Delete removes the ingredient. Deleting an absent id is a no-op.
func (r *Ingredients) Delete(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Where("id = ?", id).Delete(&models.Ingredient{}).Error
}
