package service

import (
	"context"
	"errors"
	"time"

	applog "pocketmeadery/internal/log"
	"pocketmeadery/internal/notify"
	"pocketmeadery/internal/repository"
	"pocketmeadery/models"
)

// SnoozeInterval is how far a snooze pushes a reminder, counted from its
// stored scheduled_for so repeated snoozes do not drift.
const SnoozeInterval = 24 * time.Hour

// Scheduler keeps stored reminders and the external dispatcher consistent.
// Dispatch is best-effort throughout: a reminder whose scheduling failed is
// persisted anyway with a nil notification id, the explicit will-not-fire
// signal.
type Scheduler struct {
	reminders  *repository.Reminders
	dispatcher notify.Dispatcher
}

// NewScheduler wires the reminder scheduling service.
func NewScheduler(reminders *repository.Reminders, dispatcher notify.Dispatcher) *Scheduler {
	return &Scheduler{reminders: reminders, dispatcher: dispatcher}
}

// Create persists the reminder, then attempts to schedule its alert. Dispatch
// denial or failure never fails the creation.
func (s *Scheduler) Create(ctx context.Context, input repository.CreateReminderInput) (*models.Reminder, error) {
	input.NotificationID = nil

	reminder, err := s.reminders.Create(ctx, input)
	if err != nil {
		return nil, err
	}

	identifier, ok := s.trySchedule(ctx, reminder)
	if !ok {
		return reminder, nil
	}

	updated, err := s.reminders.Update(ctx, reminder.ID, repository.ReminderPatch{
		NotificationID: repository.Set(identifier),
	})
	if err != nil {
		// The handle was never stored, so nothing could cancel it later.
		s.cancel(ctx, reminder.ID, identifier)
		return nil, err
	}

	return updated, nil
}

// Snooze cancels any outstanding dispatch, advances scheduled_for by exactly
// SnoozeInterval from its stored value, and reschedules. Completion state is
// left alone.
func (s *Scheduler) Snooze(ctx context.Context, id string) (*models.Reminder, error) {
	reminder, err := s.reminders.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	s.cancelOutstanding(ctx, reminder)

	snoozed := *reminder
	snoozed.ScheduledFor = reminder.ScheduledFor + SnoozeInterval.Milliseconds()

	patch := repository.ReminderPatch{
		ScheduledFor:   repository.Set(snoozed.ScheduledFor),
		NotificationID: repository.Null[string](),
	}
	identifier, scheduled := s.trySchedule(ctx, &snoozed)
	if scheduled {
		patch.NotificationID = repository.Set(identifier)
	}

	updated, err := s.reminders.Update(ctx, id, patch)
	if err != nil {
		if scheduled {
			s.cancel(ctx, id, identifier)
		}
		return nil, err
	}

	return updated, nil
}

// Complete marks the reminder done. Any outstanding dispatch is deliberately
// left alone; cancellation belongs to deletion and supersession flows.
func (s *Scheduler) Complete(ctx context.Context, id string) (*models.Reminder, error) {
	return s.reminders.MarkCompleted(ctx, id)
}

// Delete cancels any outstanding dispatch before removing the row, so no
// orphaned notification fires for a reminder that no longer exists. Deleting
// an absent reminder is a no-op.
func (s *Scheduler) Delete(ctx context.Context, id string) error {
	reminder, err := s.reminders.Get(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil
		}
		return err
	}

	s.cancelOutstanding(ctx, reminder)

	return s.reminders.Delete(ctx, id)
}

func (s *Scheduler) trySchedule(ctx context.Context, reminder *models.Reminder) (string, bool) {
	status, err := s.dispatcher.CheckPermission(ctx)
	if err != nil {
		applog.Warn(ctx, "notification permission check failed", "reminder", reminder.ID, "error", err)
		return "", false
	}
	if status == notify.PermissionUndetermined {
		status, err = s.dispatcher.RequestPermission(ctx)
		if err != nil {
			applog.Warn(ctx, "notification permission request failed", "reminder", reminder.ID, "error", err)
			return "", false
		}
	}
	if status != notify.PermissionGranted {
		applog.Warn(ctx, "reminder will not fire", "reminder", reminder.ID, "permission", string(status))
		return "", false
	}

	body := ""
	if reminder.Body != nil {
		body = *reminder.Body
	}

	identifier, err := s.dispatcher.Schedule(ctx, notify.ScheduleRequest{
		Title:  reminder.Title,
		Body:   body,
		FireAt: reminder.ScheduledFor,
		Correlation: notify.Correlation{
			ReminderID: reminder.ID,
			BatchID:    reminder.BatchID,
		},
	})
	if err != nil {
		applog.Warn(ctx, "scheduling notification failed", "reminder", reminder.ID, "error", err)
		return "", false
	}
	if identifier == "" {
		return "", false
	}

	return identifier, true
}

func (s *Scheduler) cancelOutstanding(ctx context.Context, reminder *models.Reminder) {
	if reminder.NotificationID == nil {
		return
	}
	s.cancel(ctx, reminder.ID, *reminder.NotificationID)
}

func (s *Scheduler) cancel(ctx context.Context, reminderID, identifier string) {
	if err := s.dispatcher.Cancel(ctx, identifier); err != nil {
		applog.Warn(ctx, "cancelling notification failed", "reminder", reminderID, "error", err)
	}
}
