// Package service orchestrates the repositories with the ABV engine and the
// external notification dispatcher.
package service

import (
	"context"

	"pocketmeadery/internal/abv"
	"pocketmeadery/internal/repository"
	"pocketmeadery/models"
)

// Recalculator keeps a batch's derived ABV columns consistent with its
// gravity readings. It is invoked explicitly after step mutations; a missed
// call leaves the batch with stale derived values, never corrupt ones.
type Recalculator struct {
	steps   *repository.Steps
	batches *repository.Batches
}

// NewRecalculator wires the recalculation service.
func NewRecalculator(steps *repository.Steps, batches *repository.Batches) *Recalculator {
	return &Recalculator{steps: steps, batches: batches}
}

// Recalculate recomputes ABV from the batch's non-deleted steps and writes the
// result, or an explicit NULL when undefined, into both expected_abv and
// current_abv. The two columns intentionally stay equal: nothing in this core
// distinguishes a projected from an observed value yet.
func (s *Recalculator) Recalculate(ctx context.Context, batchID string) (*models.Batch, error) {
	steps, err := s.steps.ListByBatch(ctx, batchID)
	if err != nil {
		return nil, err
	}

	readings := make([]abv.Reading, 0, len(steps))
	for _, step := range steps {
		if step.Gravity == nil {
			continue
		}
		readings = append(readings, abv.Reading{Gravity: step.Gravity, OccurredAt: step.OccurredAt})
	}

	patch := repository.BatchPatch{
		ExpectedABV: repository.Null[float64](),
		CurrentABV:  repository.Null[float64](),
	}
	if value, ok := abv.Calculate(readings); ok {
		patch.ExpectedABV = repository.Set(value)
		patch.CurrentABV = repository.Set(value)
	}

	return s.batches.Update(ctx, batchID, patch)
}
