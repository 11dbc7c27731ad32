package repository

import (
	"context"
	"fmt"
	"sync/atomic"
	"testing"

	"pocketmeadery/internal/config"
	"pocketmeadery/internal/db"
	"pocketmeadery/models"

	"gorm.io/gorm"
)

var dbCounter atomic.Int64

func testDB(t *testing.T) *gorm.DB {
	t.Helper()

	name := fmt.Sprintf("repo_test_%d", dbCounter.Add(1))
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

// fakeClock hands repositories strictly increasing timestamps so ordering
// assertions never collide on the same millisecond.
type fakeClock struct {
	current atomic.Int64
}

func newFakeClock(start int64) *fakeClock {
	clock := &fakeClock{}
	clock.current.Store(start)
	return clock
}

func (c *fakeClock) now() int64 {
	return c.current.Add(1)
}

func createTestBatch(t *testing.T, batches *Batches, name string) *models.Batch {
	t.Helper()
	batch, err := batches.Create(context.Background(), CreateBatchInput{Name: name})
	if err != nil {
		t.Fatalf("create batch %q: %v", name, err)
	}
	return batch
}
