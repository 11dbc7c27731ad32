package service

import (
	"context"
	"fmt"
	"sync/atomic"
	"testing"

	"pocketmeadery/internal/config"
	"pocketmeadery/internal/db"
	"pocketmeadery/internal/notify"
	"pocketmeadery/internal/repository"
	"pocketmeadery/models"

	"gorm.io/gorm"
)

var dbCounter atomic.Int64

func testDB(t *testing.T) *gorm.DB {
	t.Helper()

	name := fmt.Sprintf("service_test_%d", dbCounter.Add(1))
	database, err := db.Open(config.DatabaseConfig{Path: "file:" + name + "?mode=memory&cache=shared"})
	if err != nil {
		t.Fatalf("open test database: %v", err)
	}
	t.Cleanup(func() {
		if sqlDB, err := database.DB(); err == nil {
			sqlDB.Close()
		}
	})

	if err := db.Migrate(database); err != nil {
		t.Fatalf("migrate test database: %v", err)
	}

	return database
}

func createBatch(t *testing.T, database *gorm.DB, name string) *models.Batch {
	t.Helper()
	batch, err := repository.NewBatches(database).Create(context.Background(), repository.CreateBatchInput{Name: name})
	if err != nil {
		t.Fatalf("create batch %q: %v", name, err)
	}
	return batch
}

func addStep(t *testing.T, database *gorm.DB, batchID string, occurredAt int64, gravity *float64) *models.Step {
	t.Helper()
	step, err := repository.NewSteps(database).Create(context.Background(), repository.CreateStepInput{
		BatchID:    batchID,
		OccurredAt: occurredAt,
		Notes:      "reading",
		Gravity:    gravity,
	})
	if err != nil {
		t.Fatalf("create step: %v", err)
	}
	return step
}

func gravity(v float64) *float64 {
	return &v
}

// fakeDispatcher scripts permission answers and records scheduling traffic.
type fakeDispatcher struct {
	permission notify.PermissionStatus
	onRequest  notify.PermissionStatus
	scheduleID string
	failNext   error
	onSchedule func(req notify.ScheduleRequest)

	requested int
	scheduled []notify.ScheduleRequest
	cancelled []string
}

func (d *fakeDispatcher) CheckPermission(ctx context.Context) (notify.PermissionStatus, error) {
	return d.permission, nil
}

func (d *fakeDispatcher) RequestPermission(ctx context.Context) (notify.PermissionStatus, error) {
	d.requested++
	return d.onRequest, nil
}

func (d *fakeDispatcher) Schedule(ctx context.Context, req notify.ScheduleRequest) (string, error) {
	if d.failNext != nil {
		err := d.failNext
		d.failNext = nil
		return "", err
	}
	d.scheduled = append(d.scheduled, req)
	if d.onSchedule != nil {
		d.onSchedule(req)
	}
	id := d.scheduleID
	if id == "" {
		id = fmt.Sprintf("dispatch-%d", len(d.scheduled))
	}
	return id, nil
}

func (d *fakeDispatcher) Cancel(ctx context.Context, identifier string) error {
	d.cancelled = append(d.cancelled, identifier)
	return nil
}
