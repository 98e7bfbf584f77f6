package database

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestDB(t *testing.T) *DB {
	t.Helper()
	db, err := New(filepath.Join(t.TempDir(), "gemcal_test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return db
}

func TestCreateExtractionTrace_Minimal(t *testing.T) {
	db := newTestDB(t)

	err := db.CreateExtractionTrace(ExtractionTrace{
		ChatID:      42,
		MessageText: "gibberish",
		Status:      TraceStatusNoStartTime,
		Detail:      "no usable start time",
	})
	require.NoError(t, err)

	traces, err := db.RecentTraces(10)
	require.NoError(t, err)
	require.Len(t, traces, 1)

	got := traces[0]
	assert.Equal(t, int64(42), got.ChatID)
	assert.Equal(t, "gibberish", got.MessageText)
	assert.Equal(t, TraceStatusNoStartTime, got.Status)
	assert.Equal(t, "no usable start time", got.Detail)
	assert.Nil(t, got.EventTitle)
	assert.Nil(t, got.EventStart)
	assert.Nil(t, got.EventEnd)
}

func TestCreateExtractionTrace_WithEvent(t *testing.T) {
	db := newTestDB(t)

	loc, err := time.LoadLocation("Asia/Jerusalem")
	require.NoError(t, err)
	start := time.Date(2024, 6, 11, 15, 0, 0, 0, loc)
	end := start.Add(30 * time.Minute)
	title := "Team Sync"

	err = db.CreateExtractionTrace(ExtractionTrace{
		ChatID:      7,
		MessageText: "Team sync tomorrow at 3pm for 30 minutes",
		RawOutput:   `{"title": "Team Sync"}`,
		Status:      TraceStatusOK,
		EventTitle:  &title,
		EventStart:  &start,
		EventEnd:    &end,
	})
	require.NoError(t, err)

	traces, err := db.RecentTraces(10)
	require.NoError(t, err)
	require.Len(t, traces, 1)

	got := traces[0]
	assert.Equal(t, TraceStatusOK, got.Status)
	require.NotNil(t, got.EventTitle)
	assert.Equal(t, "Team Sync", *got.EventTitle)
	require.NotNil(t, got.EventStart)
	assert.True(t, got.EventStart.Equal(start))
	require.NotNil(t, got.EventEnd)
	assert.True(t, got.EventEnd.Equal(end))
}

func TestRecentTraces_OrderAndLimit(t *testing.T) {
	db := newTestDB(t)

	for i, status := range []string{TraceStatusOK, TraceStatusBlocked, TraceStatusMalformed} {
		require.NoError(t, db.CreateExtractionTrace(ExtractionTrace{
			ChatID:      int64(i),
			MessageText: "msg",
			Status:      status,
		}))
	}

	traces, err := db.RecentTraces(2)
	require.NoError(t, err)
	require.Len(t, traces, 2)
	// Most recent first
	assert.Equal(t, TraceStatusMalformed, traces[0].Status)
	assert.Equal(t, TraceStatusBlocked, traces[1].Status)
}
