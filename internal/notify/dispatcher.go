// Package notify defines the boundary to the platform notification
// dispatcher. The core never implements delivery itself; it only schedules
// and cancels through this port and degrades gracefully when it cannot.
package notify

import "context"

// PermissionStatus mirrors the platform's notification permission states.
type PermissionStatus string

const (
	PermissionGranted      PermissionStatus = "granted"
	PermissionDenied       PermissionStatus = "denied"
	PermissionUndetermined PermissionStatus = "undetermined"
)

// Correlation ties a dispatched notification back to its reminder.
type Correlation struct {
	ReminderID string
	BatchID    string
}

// ScheduleRequest asks the dispatcher to fire an alert at FireAt (epoch ms).
type ScheduleRequest struct {
	Title       string
	Body        string
	FireAt      int64
	Correlation Correlation
}

// Dispatcher is the external notification scheduler. Schedule returns an
// opaque identifier used later to cancel. All of it is best-effort from the
// core's point of view: failures degrade reminders to unscheduled, they never
// block reminder persistence.
type Dispatcher interface {
	CheckPermission(ctx context.Context) (PermissionStatus, error)
	RequestPermission(ctx context.Context) (PermissionStatus, error)
	Schedule(ctx context.Context, req ScheduleRequest) (string, error)
	Cancel(ctx context.Context, identifier string) error
}

// Noop is a dispatcher for headless runs: permission is always denied and
// nothing is ever scheduled, so every reminder stays in the explicit
// will-not-fire state.
type Noop struct{}

func (Noop) CheckPermission(ctx context.Context) (PermissionStatus, error) {
	return PermissionDenied, nil
}

func (Noop) RequestPermission(ctx context.Context) (PermissionStatus, error) {
	return PermissionDenied, nil
}

func (Noop) Schedule(ctx context.Context, req ScheduleRequest) (string, error) {
	return "", nil
}

func (Noop) Cancel(ctx context.Context, identifier string) error {
	return nil
}
