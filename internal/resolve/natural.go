package resolve

import (
	"time"

	"github.com/markusmobius/go-dateparser"
)

// NaturalParser is the production DateParser, backed by go-dateparser.
// Ambiguous dates resolve to the future relative to the reference instant,
// and numeric dates are read day-first (DD/MM/YYYY).
type NaturalParser struct{}

// isoLayouts are tried before the natural-language grammar. The day-first
// DateOrder below makes go-dateparser reject year-first ISO strings as
// unknown formats, and the extraction prompt names ISO as a valid shape.
var isoLayouts = []string{
	"2006-01-02T15:04:05",
	"2006-01-02T15:04",
	"2006-01-02 15:04:05",
	"2006-01-02 15:04",
	"2006-01-02",
}

// Parse implements DateParser.
func (NaturalParser) Parse(text string, ref time.Time, loc *time.Location) (time.Time, bool) {
	for _, layout := range isoLayouts {
		if t, err := time.ParseInLocation(layout, text, loc); err == nil {
			return t, true
		}
	}

	cfg := &dateparser.Configuration{
		CurrentTime:         ref.In(loc),
		DefaultTimezone:     loc,
		PreferredDateSource: dateparser.Future,
		DateOrder:           dateparser.DMY,
	}

	dt, err := dateparser.Parse(cfg, text)
	if err != nil || dt.Time.IsZero() {
		return time.Time{}, false
	}
	return dt.Time, true
}
