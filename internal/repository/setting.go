package repository

import (
	"context"
	"errors"
	"strings"

	"pocketmeadery/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Settings is the repository for the flat key/value preference table.
type Settings struct {
	db *gorm.DB
}

// NewSettings returns a settings repository bound to database.
func NewSettings(database *gorm.DB) *Settings {
	return &Settings{db: database}
}

// Get returns the value stored under key, or ErrNotFound.
func (r *Settings) Get(ctx context.Context, key string) (string, error) {
	var setting models.AppSetting
	err := r.db.WithContext(ctx).Where("key = ?", key).Take(&setting).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return "", notFoundf("setting %s", key)
	}
	if err != nil {
		return "", err
	}
	return setting.Value, nil
}

// Set upserts key to value, last write wins.
func (r *Settings) Set(ctx context.Context, key, value string) error {
	if strings.TrimSpace(key) == "" {
		return invalidf("setting key must not be empty")
	}

	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "key"}},
			DoUpdates: clause.AssignmentColumns([]string{"value"}),
		}).
		Create(&models.AppSetting{Key: key, Value: value}).Error
}
