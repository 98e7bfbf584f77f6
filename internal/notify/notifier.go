package notify

import (
	"context"

	"gemcal/internal/event"
)

// Notifier sends a copy of an event confirmation outside the chat.
type Notifier interface {
	// Send delivers a notification for a resolved event and its calendar link
	Send(ctx context.Context, ev *event.Event, link string) error
	// Name returns the notifier type name (for logging)
	Name() string
	// IsConfigured returns true if the notifier has server-side config
	IsConfigured() bool
}
