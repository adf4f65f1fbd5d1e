// internal/notify/notifier.go

// Package notify sends best-effort confirmations after roster changes.
// Delivery failures are logged and never surfaced to the student.
package notify

import (
	"context"
	"time"

	"activities-service/internal/common/logger"

	"github.com/google/uuid"
)

// Event describes a roster change worth telling someone about.
type Event struct {
	ID       string    `json:"notification_id"`
	Kind     Kind      `json:"kind"`
	Activity string    `json:"activity"`
	Email    string    `json:"email"`
	At       time.Time `json:"at"`
}

type Kind string

const (
	KindSignup     Kind = "signup"
	KindUnregister Kind = "unregister"
)

// Notifier delivers roster-change events. Implementations must be safe for
// concurrent use.
type Notifier interface {
	Notify(ctx context.Context, ev Event) error
}

// NewEvent stamps a roster change with an id and timestamp.
func NewEvent(kind Kind, activity, email string) Event {
	return Event{
		ID:       uuid.New().String(),
		Kind:     kind,
		Activity: activity,
		Email:    email,
		At:       time.Now().UTC(),
	}
}

// Noop discards every event; the default when notifications are off.
type Noop struct{}

func (Noop) Notify(ctx context.Context, ev Event) error { return nil }

// Fire delivers ev through n in the background, logging failures. Handlers
// call this after the store mutation has already succeeded, so the request
// never waits on AWS.
func Fire(n Notifier, log logger.Logger, ev Event) {
	if n == nil {
		return
	}
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := n.Notify(ctx, ev); err != nil {
			log.WithError(err).Warn("notification delivery failed", map[string]interface{}{
				"notificationId": ev.ID,
				"kind":           string(ev.Kind),
				"activity":       ev.Activity,
			})
		}
	}()
}
