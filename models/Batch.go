package models

// BatchStatus labels where a batch sits in its lifecycle. Transitions are
// unrestricted: any status may be set from any other.
type BatchStatus string

const (
	StatusActivePrimary BatchStatus = "ACTIVE_PRIMARY"
	StatusSecondary     BatchStatus = "SECONDARY"
	StatusAging         BatchStatus = "AGING"
	StatusBottled       BatchStatus = "BOTTLED"
	StatusArchived      BatchStatus = "ARCHIVED"
)

// DefaultStatus is applied when a batch is created without one.
const DefaultStatus = StatusActivePrimary

// ActiveStatuses are the statuses shown on the active dashboard.
var ActiveStatuses = []BatchStatus{StatusActivePrimary, StatusSecondary, StatusAging}

// CompletedStatuses are the statuses shown on the completed list.
var CompletedStatuses = []BatchStatus{StatusBottled, StatusArchived}

// ValidStatus reports whether value is one of the known batch statuses.
func ValidStatus(value BatchStatus) bool {
	switch value {
	case StatusActivePrimary, StatusSecondary, StatusAging, StatusBottled, StatusArchived:
		return true
	}
	return false
}

// Batch is a single fermentation run. ExpectedABV and CurrentABV are derived
// columns owned by the recalculation service; both stay nil until at least two
// gravity-bearing steps exist.
type Batch struct {
	ID               string      `gorm:"primaryKey" json:"id"`
	Name             string      `gorm:"not null" json:"name"`
	CreatedAt        int64       `gorm:"not null;autoCreateTime:false" json:"created_at"`
	UpdatedAt        int64       `gorm:"not null;autoUpdateTime:false" json:"updated_at"`
	Status           BatchStatus `gorm:"not null" json:"status"`
	BatchVolumeValue *float64    `json:"batch_volume_value"`
	BatchVolumeUnit  *string     `json:"batch_volume_unit"`
	Notes            *string     `gorm:"type:text" json:"notes"`
	GoalABV          *float64    `gorm:"column:goal_abv" json:"goal_abv"`
	ExpectedABV      *float64    `gorm:"column:expected_abv" json:"expected_abv"`
	CurrentABV       *float64    `gorm:"column:current_abv" json:"current_abv"`
}
