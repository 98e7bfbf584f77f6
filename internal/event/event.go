package event

import "time"

// Event is a fully resolved calendar event, ready for link rendering.
// Start and End are zone-aware; End is always set once Start is set. End is
// not guaranteed to be after Start - callers must tolerate End < Start.
type Event struct {
	Title           string
	Start           time.Time
	End             time.Time
	Location        string // empty when not mentioned
	ReminderMinutes *int   // nil when not mentioned
}
