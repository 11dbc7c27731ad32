package models

// Step is a dated fermentation event within a batch. OccurredAt is the
// user-editable logical timestamp; CreatedAt/UpdatedAt are bookkeeping only.
// Soft-deleted steps stay in storage but are excluded from listings and from
// ABV computation.
type Step struct {
	ID               string   `gorm:"primaryKey" json:"id"`
	BatchID          string   `gorm:"not null;index" json:"batch_id"`
	Batch            *Batch   `gorm:"foreignKey:BatchID;constraint:OnDelete:CASCADE" json:"-"`
	OccurredAt       int64    `gorm:"not null" json:"occurred_at"`
	CreatedAt        int64    `gorm:"not null;autoCreateTime:false" json:"created_at"`
	UpdatedAt        int64    `gorm:"not null;autoUpdateTime:false" json:"updated_at"`
	Title            *string  `json:"title"`
	Notes            string   `gorm:"type:text;not null" json:"notes"`
	Gravity          *float64 `json:"gravity"`
	TemperatureValue *float64 `json:"temperature_value"`
	TemperatureUnit  *string  `json:"temperature_unit"`
	IsDeleted        bool     `gorm:"not null;default:false" json:"is_deleted"`
}
