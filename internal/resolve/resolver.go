package resolve

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"

	"gemcal/internal/event"
	"gemcal/internal/extract"
)

// DateParser turns a natural-language date/time expression into an absolute
// time, anchored at a reference instant in a specific zone. Implementations
// report ok=false when the expression cannot be interpreted.
type DateParser interface {
	Parse(text string, ref time.Time, loc *time.Location) (t time.Time, ok bool)
}

// ErrNoStartTime marks extraction output with no usable start time.
var ErrNoStartTime = errors.New("no usable start time")

// durationPattern matches "<n> hour(s)/hr/h" and "<n> minute(s)/min/m" at
// the start of the string, case-insensitive. Trailing text is ignored.
var durationPattern = regexp.MustCompile(`(?i)^(\d+)\s*(hour|hr|h|minute|min|m)s?`)

// durationEpoch is the fixed zero point for free-form duration parsing: the
// expression is parsed relative to it and the delta is the duration. The
// anchor is explicit so the fallback does not depend on parser defaults.
var durationEpoch = time.Date(2000, time.January, 1, 0, 0, 0, 0, time.UTC)

// Resolver converts extracted string fields into a zone-aware Event.
type Resolver struct {
	parser DateParser
	loc    *time.Location
}

// New creates a Resolver anchored to the target zone.
func New(parser DateParser, loc *time.Location) *Resolver {
	if loc == nil {
		loc = time.UTC
	}
	return &Resolver{parser: parser, loc: loc}
}

// Resolve applies the resolution policy to fields, using now as the
// relative-reference point:
//
//  1. Absent or unparseable start -> ErrNoStartTime.
//  2. End parsed with the same settings; unparseable end is treated as
//     absent, never fatal.
//  3. With no end yet, a duration string sets end = start + duration.
//  4. Still no end -> start + 1 hour.
//
// An end before start is accepted as-is; downstream consumers tolerate it.
func (r *Resolver) Resolve(fields *extract.Fields, now time.Time) (*event.Event, error) {
	startStr := deref(fields.StartTimeStr)
	if startStr == "" {
		return nil, ErrNoStartTime
	}

	start, ok := r.parser.Parse(startStr, now, r.loc)
	if !ok {
		fmt.Printf("Resolver: failed to parse start time %q\n", startStr)
		return nil, fmt.Errorf("%w: unparseable start %q", ErrNoStartTime, startStr)
	}

	var end time.Time
	haveEnd := false

	if endStr := deref(fields.EndTimeStr); endStr != "" {
		if t, ok := r.parser.Parse(endStr, now, r.loc); ok {
			end = t
			haveEnd = true
		} else {
			fmt.Printf("Resolver: failed to parse end time %q, falling back to duration\n", endStr)
		}
	}

	if !haveEnd {
		if durStr := deref(fields.DurationStr); durStr != "" {
			if d, ok := r.parseDuration(durStr); ok {
				end = start.Add(d)
				haveEnd = true
			}
		}
	}

	if !haveEnd {
		end = start.Add(time.Hour)
	}

	title := strings.TrimSpace(deref(fields.Title))
	if title == "" {
		title = "Event"
	}

	return &event.Event{
		Title:           title,
		Start:           start,
		End:             end,
		Location:        deref(fields.Location),
		ReminderMinutes: fields.ReminderMinutes,
	}, nil
}

// parseDuration tries the strict "<n> <unit>" pattern first, then falls back
// to parsing the string as a relative expression anchored at durationEpoch.
// Only strictly positive deltas are accepted.
func (r *Resolver) parseDuration(s string) (time.Duration, bool) {
	if m := durationPattern.FindStringSubmatch(s); m != nil {
		n, err := strconv.Atoi(m[1])
		if err != nil {
			return 0, false
		}
		switch strings.ToLower(m[2]) {
		case "hour", "hr", "h":
			return time.Duration(n) * time.Hour, true
		default:
			return time.Duration(n) * time.Minute, true
		}
	}

	t, ok := r.parser.Parse(s, durationEpoch, time.UTC)
	if !ok {
		fmt.Printf("Resolver: could not parse duration string %q\n", s)
		return 0, false
	}
	d := t.Sub(durationEpoch)
	if d <= 0 {
		fmt.Printf("Resolver: ignoring non-positive duration %q (%s)\n", s, d)
		return 0, false
	}
	return d, true
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
