// Package history keeps the single-slot undo buffer for step edits. Each step
// has at most one snapshot; saving replaces it and restoring consumes it.
package history

import (
	"context"
	"errors"
	"strings"
	"time"

	"pocketmeadery/internal/repository"
	"pocketmeadery/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// ErrNoSnapshot is returned when a step has nothing to restore. It is a
// normal outcome, not a failure.
var ErrNoSnapshot = errors.New("no snapshot to restore")

// Snapshot holds a step's pre-edit field values. Callers capture it before
// applying an edit; the store never computes the diff itself.
type Snapshot struct {
	Notes      string
	Gravity    *float64
	Title      *string
	OccurredAt int64
}

// Store persists snapshots and applies them back onto steps.
type Store struct {
	db  *gorm.DB
	now func() int64
}

// NewStore returns a snapshot store bound to database.
func NewStore(database *gorm.DB) *Store {
	return &Store{db: database, now: millis}
}

// Save upsert-replaces the snapshot for stepID. Saving twice in a row loses
// the first snapshot: only one undo level is ever retained.
func (s *Store) Save(ctx context.Context, stepID string, snapshot Snapshot) error {
	if strings.TrimSpace(stepID) == "" {
		return errors.New("step id must not be empty")
	}

	row := models.StepEditHistory{
		StepID:             stepID,
		PreviousNotes:      snapshot.Notes,
		PreviousGravity:    snapshot.Gravity,
		PreviousTitle:      snapshot.Title,
		PreviousOccurredAt: snapshot.OccurredAt,
		SavedAt:            s.now(),
	}

	return s.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "step_id"}},
			UpdateAll: true,
		}).
		Create(&row).Error
}

// Get returns the stored snapshot for stepID, or ErrNoSnapshot.
func (s *Store) Get(ctx context.Context, stepID string) (*Snapshot, error) {
	var row models.StepEditHistory
	err := s.db.WithContext(ctx).Where("step_id = ?", stepID).Take(&row).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNoSnapshot
	}
	if err != nil {
		return nil, err
	}

	return &Snapshot{
		Notes:      row.PreviousNotes,
		Gravity:    row.PreviousGravity,
		Title:      row.PreviousTitle,
		OccurredAt: row.PreviousOccurredAt,
	}, nil
}

// Restore writes the snapshot's four fields back onto the step and deletes the
// snapshot in the same transaction. If the step update fails the snapshot
// stays intact; a second restore after success returns ErrNoSnapshot.
func (s *Store) Restore(ctx context.Context, stepID string) (*models.Step, error) {
	snapshot, err := s.Get(ctx, stepID)
	if err != nil {
		return nil, err
	}

	var restored *models.Step
	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		patch := repository.StepPatch{
			Notes:      repository.Set(snapshot.Notes),
			OccurredAt: repository.Set(snapshot.OccurredAt),
			Gravity:    optional(snapshot.Gravity),
			Title:      optional(snapshot.Title),
		}

		step, err := repository.NewSteps(tx).Update(ctx, stepID, patch)
		if err != nil {
			return err
		}
		restored = step

		return tx.Where("step_id = ?", stepID).Delete(&models.StepEditHistory{}).Error
	})
	if err != nil {
		return nil, err
	}

	return restored, nil
}

func optional[T any](value *T) repository.Field[T] {
	if value == nil {
		return repository.Null[T]()
	}
	return repository.Set(*value)
}

func millis() int64 {
	return time.Now().UnixMilli()
}
