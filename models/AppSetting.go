package models

// AppSetting is a flat key/value preference row, last write wins.
type AppSetting struct {
	Key   string `gorm:"primaryKey" json:"key"`
	Value string `gorm:"not null" json:"value"`
}

// Well-known setting keys.
const (
	SettingUnitsPreference = "units_preference"
)
