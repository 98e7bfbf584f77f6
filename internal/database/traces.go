package database

import (
	"fmt"
	"time"
)

// Terminal statuses for an extraction trace.
const (
	TraceStatusOK          = "ok"
	TraceStatusBlocked     = "blocked"
	TraceStatusUnavailable = "unavailable"
	TraceStatusMalformed   = "malformed"
	TraceStatusNoStartTime = "no_start_time"
	TraceStatusLinkError   = "link_error"
)

// ExtractionTrace captures one pipeline run for offline diagnosis: the
// inbound text, the raw model output (or error detail), and the outcome.
type ExtractionTrace struct {
	ID          int64
	ChatID      int64
	MessageText string
	RawOutput   string
	Status      string
	Detail      string
	EventTitle  *string
	EventStart  *time.Time
	EventEnd    *time.Time
	CreatedAt   time.Time
}

func (d *DB) CreateExtractionTrace(trace ExtractionTrace) error {
	var start, end *string
	if trace.EventStart != nil {
		s := trace.EventStart.Format(time.RFC3339)
		start = &s
	}
	if trace.EventEnd != nil {
		s := trace.EventEnd.Format(time.RFC3339)
		end = &s
	}

	_, err := d.Exec(`
		INSERT INTO extraction_traces (
			chat_id, message_text, raw_output, status, detail,
			event_title, event_start, event_end
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`,
		trace.ChatID,
		trace.MessageText,
		trace.RawOutput,
		trace.Status,
		trace.Detail,
		trace.EventTitle,
		start,
		end,
	)
	if err != nil {
		return fmt.Errorf("failed to create extraction trace: %w", err)
	}
	return nil
}

// RecentTraces returns the newest traces, most recent first.
func (d *DB) RecentTraces(limit int) ([]ExtractionTrace, error) {
	if limit <= 0 {
		limit = 50
	}

	rows, err := d.Query(`
		SELECT id, chat_id, message_text, raw_output, status, detail,
		       event_title, event_start, event_end, created_at
		FROM extraction_traces
		ORDER BY id DESC
		LIMIT ?
	`, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query extraction traces: %w", err)
	}
	defer rows.Close()

	var traces []ExtractionTrace
	for rows.Next() {
		var t ExtractionTrace
		var start, end *string
		if err := rows.Scan(
			&t.ID, &t.ChatID, &t.MessageText, &t.RawOutput, &t.Status, &t.Detail,
			&t.EventTitle, &start, &end, &t.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan extraction trace: %w", err)
		}
		if start != nil {
			if ts, err := time.Parse(time.RFC3339, *start); err == nil {
				t.EventStart = &ts
			}
		}
		if end != nil {
			if ts, err := time.Parse(time.RFC3339, *end); err == nil {
				t.EventEnd = &ts
			}
		}
		traces = append(traces, t)
	}
	return traces, rows.Err()
}
