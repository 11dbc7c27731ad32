package models

// Reminder is a batch-associated scheduled alert. NotificationID is the opaque
// handle returned by the external dispatcher; nil means the reminder exists but
// will not fire (permission denied or scheduling failed).
type Reminder struct {
	ID             string  `gorm:"primaryKey" json:"id"`
	BatchID        string  `gorm:"not null;index" json:"batch_id"`
	Batch          *Batch  `gorm:"foreignKey:BatchID;constraint:OnDelete:CASCADE" json:"-"`
	TemplateKey    string  `gorm:"not null" json:"template_key"`
	Title          string  `gorm:"not null" json:"title"`
	Body           *string `json:"body"`
	ScheduledFor   int64   `gorm:"not null;index" json:"scheduled_for"`
	NotificationID *string `json:"notification_id"`
	CreatedAt      int64   `gorm:"not null;autoCreateTime:false" json:"created_at"`
	UpdatedAt      int64   `gorm:"not null;autoUpdateTime:false" json:"updated_at"`
	IsCompleted    bool    `gorm:"not null;default:false" json:"is_completed"`
	CompletedAt    *int64  `json:"completed_at"`
}

// Scheduled reports whether the reminder holds a live dispatcher handle.
func (r Reminder) Scheduled() bool {
	return r.NotificationID != nil
}
