package repository

import (
	"context"
	"errors"
	"strings"

	"pocketmeadery/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Reminders is the repository for batch-associated scheduled alerts.
type Reminders struct {
	db  *gorm.DB
	now func() int64
}

// NewReminders returns a reminder repository bound to database.
func NewReminders(database *gorm.DB) *Reminders {
	return &Reminders{db: database, now: nowMillis}
}

// CreateReminderInput carries the fields for a new reminder. NotificationID is
// usually nil here; the scheduling service fills it in after dispatch succeeds.
type CreateReminderInput struct {
	BatchID        string
	TemplateKey    string
	Title          string
	Body           *string
	ScheduledFor   int64
	NotificationID *string
}

// Create inserts a reminder and returns the freshly read row.
func (r *Reminders) Create(ctx context.Context, input CreateReminderInput) (*models.Reminder, error) {
	if strings.TrimSpace(input.BatchID) == "" {
		return nil, invalidf("reminder batch id must not be empty")
	}
	if strings.TrimSpace(input.TemplateKey) == "" {
		return nil, invalidf("reminder template key must not be empty")
	}
	if strings.TrimSpace(input.Title) == "" {
		return nil, invalidf("reminder title must not be empty")
	}
	if input.ScheduledFor == 0 {
		return nil, invalidf("reminder scheduled_for must be set")
	}

	now := r.now()
	reminder := models.Reminder{
		ID:             uuid.NewString(),
		BatchID:        input.BatchID,
		TemplateKey:    input.TemplateKey,
		Title:          input.Title,
		Body:           input.Body,
		ScheduledFor:   input.ScheduledFor,
		NotificationID: input.NotificationID,
		CreatedAt:      now,
		UpdatedAt:      now,
	}

	if err := r.db.WithContext(ctx).Create(&reminder).Error; err != nil {
		return nil, err
	}

	return r.Get(ctx, reminder.ID)
}

// Get returns the reminder with the given id, or ErrNotFound.
func (r *Reminders) Get(ctx context.Context, id string) (*models.Reminder, error) {
	var reminder models.Reminder
	err := r.db.WithContext(ctx).Where("id = ?", id).Take(&reminder).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, notFoundf("reminder %s", id)
	}
	if err != nil {
		return nil, err
	}
	return &reminder, nil
}

// ListUpcoming returns not-completed reminders soonest first, capped to limit
// rows when limit is positive.
func (r *Reminders) ListUpcoming(ctx context.Context, limit int) ([]models.Reminder, error) {
	query := r.db.WithContext(ctx).
		Where("is_completed = ?", false).
		Order("scheduled_for ASC, id ASC")
	if limit > 0 {
		query = query.Limit(limit)
	}

	var reminders []models.Reminder
	if err := query.Find(&reminders).Error; err != nil {
		return nil, err
	}
	return reminders, nil
}

// ListUpcomingByBatch is ListUpcoming restricted to one batch.
func (r *Reminders) ListUpcomingByBatch(ctx context.Context, batchID string, limit int) ([]models.Reminder, error) {
	query := r.db.WithContext(ctx).
		Where("batch_id = ? AND is_completed = ?", batchID, false).
		Order("scheduled_for ASC, id ASC")
	if limit > 0 {
		query = query.Limit(limit)
	}

	var reminders []models.Reminder
	if err := query.Find(&reminders).Error; err != nil {
		return nil, err
	}
	return reminders, nil
}

// NextPerBatch returns, for every batch with pending reminders, its single
// earliest not-completed reminder. Equal scheduled_for timestamps are
// tie-broken by id so the winner is deterministic.
func (r *Reminders) NextPerBatch(ctx context.Context) ([]models.Reminder, error) {
	var reminders []models.Reminder
	err := r.db.WithContext(ctx).Raw(`
		SELECT * FROM reminders r
		WHERE r.is_completed = 0
		  AND NOT EXISTS (
			SELECT 1 FROM reminders other
			WHERE other.batch_id = r.batch_id
			  AND other.is_completed = 0
			  AND (other.scheduled_for < r.scheduled_for
			    OR (other.scheduled_for = r.scheduled_for AND other.id < r.id))
		  )
		ORDER BY r.scheduled_for ASC, r.id ASC`).
		Scan(&reminders).Error
	if err != nil {
		return nil, err
	}
	return reminders, nil
}

// ReminderPatch is a sparse update: only set fields reach the UPDATE statement.
type ReminderPatch struct {
	Title          Field[string]
	Body           Field[string]
	ScheduledFor   Field[int64]
	NotificationID Field[string]
}

func (p ReminderPatch) values() (map[string]any, error) {
	if p.Title.IsNull() || (p.Title.IsSet() && strings.TrimSpace(p.Title.Value()) == "") {
		return nil, invalidf("reminder title must not be empty")
	}
	if p.ScheduledFor.IsNull() {
		return nil, invalidf("reminder scheduled_for must not be null")
	}

	values := map[string]any{}
	p.Title.put(values, "title")
	p.Body.put(values, "body")
	p.ScheduledFor.put(values, "scheduled_for")
	p.NotificationID.put(values, "notification_id")
	return values, nil
}

// Update applies patch to the reminder with the given id. An empty patch
// re-reads the row without advancing updated_at.
func (r *Reminders) Update(ctx context.Context, id string, patch ReminderPatch) (*models.Reminder, error) {
	values, err := patch.values()
	if err != nil {
		return nil, err
	}
	if len(values) == 0 {
		return r.Get(ctx, id)
	}

	values["updated_at"] = r.now()

	result := r.db.WithContext(ctx).Model(&models.Reminder{}).Where("id = ?", id).Updates(values)
	if result.Error != nil {
		return nil, result.Error
	}
	if result.RowsAffected == 0 {
		return nil, notFoundf("reminder %s", id)
	}

	return r.Get(ctx, id)
}

// MarkCompleted sets is_completed and completed_at together in one write.
func (r *Reminders) MarkCompleted(ctx context.Context, id string) (*models.Reminder, error) {
	now := r.now()
	result := r.db.WithContext(ctx).Model(&models.Reminder{}).Where("id = ?", id).Updates(map[string]any{
		"is_completed": true,
		"completed_at": now,
		"updated_at":   now,
	})
	if result.Error != nil {
		return nil, result.Error
	}
	if result.RowsAffected == 0 {
		return nil, notFoundf("reminder %s", id)
	}

	return r.Get(ctx, id)
}

// Delete removes the reminder row. Cancelling any outstanding dispatch is the
// caller's job, before the row (and its notification id) is gone.
func (r *Reminders) Delete(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Where("id = ?", id).Delete(&models.Reminder{}).Error
}
