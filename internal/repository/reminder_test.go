package repository

import (
	"context"
	"errors"
	"testing"
)

func TestReminderCreateDefaultsToUnscheduled(t *testing.T) {
	t.Parallel()

	database := testDB(t)
	batches := NewBatches(database)
	reminders := NewReminders(database)
	ctx := context.Background()

	batch := createTestBatch(t, batches, "Reminded")

	reminder, err := reminders.Create(ctx, CreateReminderInput{
		BatchID:      batch.ID,
		TemplateKey:  "RACK_IN_DAYS",
		Title:        "Rack to secondary",
		ScheduledFor: 5000,
	})
	if err != nil {
		t.Fatalf("create reminder: %v", err)
	}

	if reminder.NotificationID != nil {
		t.Fatal("notification id must start null")
	}
	if reminder.IsCompleted || reminder.CompletedAt != nil {
		t.Fatal("reminder must start not completed")
	}
	if reminder.Scheduled() {
		t.Fatal("Scheduled() must be false without a notification id")
	}
}

func TestReminderValidation(t *testing.T) {
	t.Parallel()

	database := testDB(t)
	batches := NewBatches(database)
	reminders := NewReminders(database)
	ctx := context.Background()

	batch := createTestBatch(t, batches, "Strict")

	cases := []struct {
		name  string
		input CreateReminderInput
	}{
		{"missing batch", CreateReminderInput{TemplateKey: "K", Title: "T", ScheduledFor: 1}},
		{"missing template", CreateReminderInput{BatchID: batch.ID, Title: "T", ScheduledFor: 1}},
		{"missing title", CreateReminderInput{BatchID: batch.ID, TemplateKey: "K", ScheduledFor: 1}},
		{"missing schedule", CreateReminderInput{BatchID: batch.ID, TemplateKey: "K", Title: "T"}},
	}
	for _, tt := range cases {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if _, err := reminders.Create(ctx, tt.input); !errors.Is(err, ErrInvalid) {
				t.Fatalf("error = %v, want ErrInvalid", err)
			}
		})
	}
}

func TestReminderListUpcoming(t *testing.T) {
	t.Parallel()

	database := testDB(t)
	batches := NewBatches(database)
	reminders := NewReminders(database)
	ctx := context.Background()

	batch := createTestBatch(t, batches, "Upcoming")

	ids := make(map[int64]string)
	for _, scheduledFor := range []int64{3000, 1000, 2000, 4000} {
		reminder, err := reminders.Create(ctx, CreateReminderInput{
			BatchID:      batch.ID,
			TemplateKey:  "DEGAS_IN_HOURS",
			Title:        "Degas",
			ScheduledFor: scheduledFor,
		})
		if err != nil {
			t.Fatalf("create reminder: %v", err)
		}
		ids[scheduledFor] = reminder.ID
	}

	if _, err := reminders.MarkCompleted(ctx, ids[1000]); err != nil {
		t.Fatalf("complete reminder: %v", err)
	}

	upcoming, err := reminders.ListUpcoming(ctx, 2)
	if err != nil {
		t.Fatalf("list upcoming: %v", err)
	}
	if len(upcoming) != 2 {
		t.Fatalf("upcoming count = %d, want 2 (limit)", len(upcoming))
	}
	if upcoming[0].ID != ids[2000] || upcoming[1].ID != ids[3000] {
		t.Fatal("upcoming must be soonest-first and exclude completed reminders")
	}
	for _, reminder := range upcoming {
		if reminder.IsCompleted {
			t.Fatal("completed reminder leaked into upcoming listing")
		}
	}

	all, err := reminders.ListUpcoming(ctx, 0)
	if err != nil {
		t.Fatalf("list upcoming unlimited: %v", err)
	}
	if len(all) != 3 {
		t.Fatalf("unlimited upcoming count = %d, want 3", len(all))
	}
}

func TestReminderMarkCompletedSetsBothFields(t *testing.T) {
	t.Parallel()

	database := testDB(t)
	batches := NewBatches(database)
	reminders := NewReminders(database)
	reminders.now = newFakeClock(9_000).now
	ctx := context.Background()

	batch := createTestBatch(t, batches, "Done")

	reminder, err := reminders.Create(ctx, CreateReminderInput{
		BatchID:      batch.ID,
		TemplateKey:  "BOTTLE_IN_DAYS",
		Title:        "Bottle",
		ScheduledFor: 1000,
	})
	if err != nil {
		t.Fatalf("create reminder: %v", err)
	}

	completed, err := reminders.MarkCompleted(ctx, reminder.ID)
	if err != nil {
		t.Fatalf("mark completed: %v", err)
	}
	if !completed.IsCompleted {
		t.Fatal("is_completed must be set")
	}
	if completed.CompletedAt == nil || *completed.CompletedAt != completed.UpdatedAt {
		t.Fatal("completed_at must be set atomically with the same timestamp")
	}

	if _, err := reminders.MarkCompleted(ctx, "missing"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("missing id error = %v, want ErrNotFound", err)
	}
}

func TestReminderNextPerBatchTieBreak(t *testing.T) {
	t.Parallel()

	database := testDB(t)
	batches := NewBatches(database)
	reminders := NewReminders(database)
	ctx := context.Background()

	first := createTestBatch(t, batches, "First")
	second := createTestBatch(t, batches, "Second")

	// Two reminders with the same timestamp on the first batch: the lower id
	// must win deterministically.
	var sameTime []string
	for i := 0; i < 2; i++ {
		reminder, err := reminders.Create(ctx, CreateReminderInput{
			BatchID:      first.ID,
			TemplateKey:  "DEGAS_IN_HOURS",
			Title:        "Degas",
			ScheduledFor: 1000,
		})
		if err != nil {
			t.Fatalf("create reminder: %v", err)
		}
		sameTime = append(sameTime, reminder.ID)
	}
	if _, err := reminders.Create(ctx, CreateReminderInput{
		BatchID:      first.ID,
		TemplateKey:  "RACK_IN_DAYS",
		Title:        "Rack",
		ScheduledFor: 9000,
	}); err != nil {
		t.Fatalf("create later reminder: %v", err)
	}
	early, err := reminders.Create(ctx, CreateReminderInput{
		BatchID:      second.ID,
		TemplateKey:  "RACK_IN_DAYS",
		Title:        "Rack",
		ScheduledFor: 500,
	})
	if err != nil {
		t.Fatalf("create second-batch reminder: %v", err)
	}

	next, err := reminders.NextPerBatch(ctx)
	if err != nil {
		t.Fatalf("next per batch: %v", err)
	}
	if len(next) != 2 {
		t.Fatalf("next count = %d, want one winner per batch", len(next))
	}

	winner := sameTime[0]
	if sameTime[1] < winner {
		winner = sameTime[1]
	}
	byBatch := map[string]string{}
	for _, reminder := range next {
		byBatch[reminder.BatchID] = reminder.ID
	}
	if byBatch[first.ID] != winner {
		t.Fatalf("first batch winner = %s, want lowest id %s", byBatch[first.ID], winner)
	}
	if byBatch[second.ID] != early.ID {
		t.Fatalf("second batch winner = %s, want %s", byBatch[second.ID], early.ID)
	}
}

func TestReminderUpdateNotificationID(t *testing.T) {
	t.Parallel()

	database := testDB(t)
	batches := NewBatches(database)
	reminders := NewReminders(database)
	ctx := context.Background()

	batch := createTestBatch(t, batches, "Handles")

	reminder, err := reminders.Create(ctx, CreateReminderInput{
		BatchID:      batch.ID,
		TemplateKey:  "STABILIZE_IN_DAYS",
		Title:        "Stabilize",
		ScheduledFor: 1000,
	})
	if err != nil {
		t.Fatalf("create reminder: %v", err)
	}

	scheduled, err := reminders.Update(ctx, reminder.ID, ReminderPatch{NotificationID: Set("os-handle-1")})
	if err != nil {
		t.Fatalf("store notification id: %v", err)
	}
	if !scheduled.Scheduled() || *scheduled.NotificationID != "os-handle-1" {
		t.Fatalf("notification id = %v, want os-handle-1", scheduled.NotificationID)
	}

	unscheduled, err := reminders.Update(ctx, reminder.ID, ReminderPatch{NotificationID: Null[string]()})
	if err != nil {
		t.Fatalf("clear notification id: %v", err)
	}
	if unscheduled.Scheduled() {
		t.Fatal("notification id must be cleared by explicit null")
	}
}
