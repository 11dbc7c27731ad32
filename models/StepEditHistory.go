package models

// StepEditHistory is the single-slot undo buffer for a step: at most one row
// per step, holding the field values from immediately before the latest edit.
// Saving again replaces the row; restoring consumes it.
type StepEditHistory struct {
	StepID             string   `gorm:"primaryKey" json:"step_id"`
	Step               *Step    `gorm:"foreignKey:StepID;constraint:OnDelete:CASCADE" json:"-"`
	PreviousNotes      string   `gorm:"type:text;not null" json:"previous_notes"`
	PreviousGravity    *float64 `json:"previous_gravity"`
	PreviousTitle      *string  `json:"previous_title"`
	PreviousOccurredAt int64    `gorm:"not null" json:"previous_occurred_at"`
	SavedAt            int64    `gorm:"not null" json:"saved_at"`
}

// TableName pins the singular table name from the schema.
func (StepEditHistory) TableName() string {
	return "step_edit_history"
}
