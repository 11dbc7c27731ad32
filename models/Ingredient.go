package models

// IngredientType is a coarse classification used for grouping in listings.
type IngredientType string

const (
	IngredientHoney    IngredientType = "HONEY"
	IngredientYeast    IngredientType = "YEAST"
	IngredientNutrient IngredientType = "NUTRIENT"
	IngredientFruit    IngredientType = "FRUIT"
	IngredientAddition IngredientType = "ADDITION"
	IngredientOther    IngredientType = "OTHER"
)

// ValidIngredientType reports whether value is one of the known types.
func ValidIngredientType(value IngredientType) bool {
	switch value {
	case IngredientHoney, IngredientYeast, IngredientNutrient, IngredientFruit, IngredientAddition, IngredientOther:
		return true
	}
	return false
}

// Ingredient belongs to exactly one batch and is removed with it.
type Ingredient struct {
	ID             string          `gorm:"primaryKey" json:"id"`
	BatchID        string          `gorm:"not null;index" json:"batch_id"`
	Batch          *Batch          `gorm:"foreignKey:BatchID;constraint:OnDelete:CASCADE" json:"-"`
	Name           string          `gorm:"not null" json:"name"`
	AmountValue    *float64        `json:"amount_value"`
	AmountUnit     *string         `json:"amount_unit"`
	IngredientType *IngredientType `json:"ingredient_type"`
	Notes          *string         `gorm:"type:text" json:"notes"`
	CreatedAt      int64           `gorm:"not null;autoCreateTime:false" json:"created_at"`
	UpdatedAt      int64           `gorm:"not null;autoUpdateTime:false" json:"updated_at"`
}
