package gcal

import (
	"context"
	"fmt"

	"google.golang.org/api/calendar/v3"

	"gemcal/internal/event"
)

// InsertEvent inserts a resolved event into the user's primary calendar and
// returns the created event ID.
func (c *Client) InsertEvent(ctx context.Context, ev *event.Event) (string, error) {
	if c == nil || c.service == nil {
		return "", fmt.Errorf("calendar service not initialized")
	}

	calEvent := &calendar.Event{
		Summary:  ev.Title,
		Location: ev.Location,
		Start: &calendar.EventDateTime{
			DateTime: ev.Start.Format("2006-01-02T15:04:05-07:00"),
		},
		End: &calendar.EventDateTime{
			DateTime: ev.End.Format("2006-01-02T15:04:05-07:00"),
		},
	}

	if ev.ReminderMinutes != nil {
		calEvent.Reminders = &calendar.EventReminders{
			UseDefault: false,
			Overrides: []*calendar.EventReminder{
				{Method: "popup", Minutes: int64(*ev.ReminderMinutes)},
			},
			ForceSendFields: []string{"UseDefault"},
		}
	}

	created, err := c.service.Events.Insert("primary", calEvent).Context(ctx).Do()
	if err != nil {
		return "", fmt.Errorf("failed to insert event: %w", err)
	}

	return created.Id, nil
}
