package timeutil

import "time"

var defaultLocation = time.UTC

// ResolveLocation returns the target location with UTC fallback.
func ResolveLocation(timezone string) (*time.Location, bool) {
	if timezone == "" {
		return defaultLocation, true
	}

	loc, err := time.LoadLocation(timezone)
	if err != nil {
		return defaultLocation, true
	}
	return loc, false
}

// ZoneLabel returns the human-readable label shown next to displayed times.
func ZoneLabel(timezone string) string {
	switch timezone {
	case "Asia/Jerusalem":
		return "Israel Time"
	case "", "UTC":
		return "UTC"
	default:
		return timezone
	}
}
