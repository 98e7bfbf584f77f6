package gcallink

import (
	"errors"
	"fmt"
	"html"
	"net/url"
	"strconv"
	"strings"

	"gemcal/internal/event"
)

const (
	renderBaseURL = "https://calendar.google.com/calendar/render"

	// CompactTimeLayout is the wall-clock format Google Calendar expects in
	// the dates query parameter. Timestamps are rendered in the resolved
	// zone's local time, not UTC.
	CompactTimeLayout = "20060102T150405"

	displayTimeLayout = "2006-01-02 15:04"
)

// ErrNoTitle should be unreachable once resolution has defaulted the title.
var ErrNoTitle = errors.New("event has no title")

// Link builds the Google Calendar "add event" deep link. Parameter names and
// order are fixed for compatibility with the provider's URL scheme.
func Link(ev *event.Event) (string, error) {
	if ev.Title == "" {
		return "", ErrNoTitle
	}

	var b strings.Builder
	b.WriteString(renderBaseURL)
	b.WriteString("?action=TEMPLATE&text=")
	b.WriteString(encodeText(ev.Title))
	b.WriteString("&dates=")
	b.WriteString(ev.Start.Format(CompactTimeLayout))
	b.WriteString("/")
	b.WriteString(ev.End.Format(CompactTimeLayout))
	if ev.Location != "" {
		b.WriteString("&location=")
		b.WriteString(encodeText(ev.Location))
	}
	if ev.ReminderMinutes != nil {
		b.WriteString("&reminders=popup%3A")
		b.WriteString(strconv.Itoa(*ev.ReminderMinutes))
	}
	return b.String(), nil
}

// Message renders the HTML confirmation sent back to the user.
func Message(ev *event.Event, zoneLabel, link string) string {
	parts := []string{fmt.Sprintf("<b>Event Created:</b> %s", html.EscapeString(ev.Title))}
	parts = append(parts, fmt.Sprintf("Start: %s (%s)", ev.Start.Format(displayTimeLayout), zoneLabel))
	parts = append(parts, fmt.Sprintf("End: %s (%s)", ev.End.Format(displayTimeLayout), zoneLabel))
	if ev.Location != "" {
		parts = append(parts, fmt.Sprintf("Location: %s", html.EscapeString(ev.Location)))
	}
	if ev.ReminderMinutes != nil {
		parts = append(parts, fmt.Sprintf("Reminder: %s", FormatReminder(*ev.ReminderMinutes)))
	}
	parts = append(parts, "\n<b>Add this event to your calendar:</b>")
	parts = append(parts, fmt.Sprintf(`<a href="%s">Add to Google Calendar</a>`, link))
	return strings.Join(parts, "\n")
}

// FormatReminder humanizes a reminder offset in minutes.
func FormatReminder(minutes int) string {
	switch {
	case minutes == 60:
		return "1 hour before"
	case minutes >= 60 && minutes%60 == 0:
		return fmt.Sprintf("%d hours before", minutes/60)
	default:
		return fmt.Sprintf("%d minutes before", minutes)
	}
}

func encodeText(s string) string {
	return url.QueryEscape(s)
}
