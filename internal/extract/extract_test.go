package extract

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse_AllFields(t *testing.T) {
	raw := `{
		"title": "Team Sync",
		"start_time_str": "tomorrow 3 PM",
		"end_time_str": "tomorrow 4 PM",
		"duration_str": "1 hour",
		"location": "Office",
		"reminder_minutes": 30
	}`

	fields, err := Parse(raw)
	require.NoError(t, err)

	require.NotNil(t, fields.Title)
	assert.Equal(t, "Team Sync", *fields.Title)
	require.NotNil(t, fields.StartTimeStr)
	assert.Equal(t, "tomorrow 3 PM", *fields.StartTimeStr)
	require.NotNil(t, fields.EndTimeStr)
	assert.Equal(t, "tomorrow 4 PM", *fields.EndTimeStr)
	require.NotNil(t, fields.DurationStr)
	assert.Equal(t, "1 hour", *fields.DurationStr)
	require.NotNil(t, fields.Location)
	assert.Equal(t, "Office", *fields.Location)
	require.NotNil(t, fields.ReminderMinutes)
	assert.Equal(t, 30, *fields.ReminderMinutes)
}

func TestParse_FenceStripping(t *testing.T) {
	tests := []struct {
		name string
		raw  string
	}{
		{
			name: "no fence",
			raw:  `{"title": "Lunch", "start_time_str": "noon"}`,
		},
		{
			name: "json fence",
			raw:  "```json\n{\"title\": \"Lunch\", \"start_time_str\": \"noon\"}\n```",
		},
		{
			name: "bare fence",
			raw:  "```\n{\"title\": \"Lunch\", \"start_time_str\": \"noon\"}\n```",
		},
		{
			name: "fence with surrounding whitespace",
			raw:  "  \n```json\n{\"title\": \"Lunch\", \"start_time_str\": \"noon\"}\n```  \n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fields, err := Parse(tt.raw)
			require.NoError(t, err)
			require.NotNil(t, fields.Title)
			assert.Equal(t, "Lunch", *fields.Title)
			require.NotNil(t, fields.StartTimeStr)
			assert.Equal(t, "noon", *fields.StartTimeStr)
		})
	}
}

func TestParse_AbsenceIsNil(t *testing.T) {
	t.Run("explicit nulls", func(t *testing.T) {
		fields, err := Parse(`{"title": null, "start_time_str": "3pm", "location": null, "reminder_minutes": null}`)
		require.NoError(t, err)
		assert.Nil(t, fields.Title)
		assert.Nil(t, fields.Location)
		assert.Nil(t, fields.ReminderMinutes)
		require.NotNil(t, fields.StartTimeStr)
	})

	t.Run("missing keys", func(t *testing.T) {
		fields, err := Parse(`{"start_time_str": "3pm"}`)
		require.NoError(t, err)
		assert.Nil(t, fields.Title)
		assert.Nil(t, fields.EndTimeStr)
		assert.Nil(t, fields.DurationStr)
		assert.Nil(t, fields.Location)
		assert.Nil(t, fields.ReminderMinutes)
	})

	t.Run("empty string is present, not absent", func(t *testing.T) {
		fields, err := Parse(`{"title": ""}`)
		require.NoError(t, err)
		require.NotNil(t, fields.Title)
		assert.Equal(t, "", *fields.Title)
	})
}

func TestParse_Malformed(t *testing.T) {
	tests := []struct {
		name string
		raw  string
	}{
		{name: "plain text", raw: "I could not find an event in that message."},
		{name: "truncated json", raw: `{"title": "Lunch", "start_`},
		{name: "empty string", raw: ""},
		{name: "fence around garbage", raw: "```json\nnot json\n```"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fields, err := Parse(tt.raw)
			assert.Nil(t, fields)
			assert.ErrorIs(t, err, ErrMalformed)
		})
	}
}
