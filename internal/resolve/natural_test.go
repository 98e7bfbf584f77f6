package resolve

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNaturalParser_Absolute(t *testing.T) {
	loc := testLocation(t)
	ref := time.Date(2024, 6, 10, 9, 0, 0, 0, loc)
	p := NaturalParser{}

	// ISO shapes the extraction prompt names must parse even though the
	// day-first grammar alone would reject them as unknown formats
	tests := []struct {
		name string
		text string
		want time.Time
	}{
		{
			name: "space-separated",
			text: "2024-12-25 17:00",
			want: time.Date(2024, 12, 25, 17, 0, 0, 0, loc),
		},
		{
			name: "t-separated",
			text: "2024-12-25T17:00",
			want: time.Date(2024, 12, 25, 17, 0, 0, 0, loc),
		},
		{
			name: "with seconds",
			text: "2024-12-25 17:00:30",
			want: time.Date(2024, 12, 25, 17, 0, 30, 0, loc),
		},
		{
			name: "date only",
			text: "2024-12-25",
			want: time.Date(2024, 12, 25, 0, 0, 0, 0, loc),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := p.Parse(tt.text, ref, loc)
			require.True(t, ok)
			assert.True(t, got.Equal(tt.want), "got %s, want %s", got, tt.want)
		})
	}
}

func TestNaturalParser_DayFirstNumericDates(t *testing.T) {
	loc := testLocation(t)
	ref := time.Date(2024, 6, 10, 9, 0, 0, 0, loc)
	p := NaturalParser{}

	// 11/06/2024 must read as June 11th, not November 6th
	got, ok := p.Parse("11/06/2024 15:00", ref, loc)
	require.True(t, ok)
	got = got.In(loc)
	assert.Equal(t, time.June, got.Month())
	assert.Equal(t, 11, got.Day())
	assert.Equal(t, 15, got.Hour())
}

func TestNaturalParser_RelativeAnchoredToReference(t *testing.T) {
	loc := testLocation(t)
	ref := time.Date(2024, 6, 10, 9, 0, 0, 0, loc)
	p := NaturalParser{}

	got, ok := p.Parse("tomorrow at 3pm", ref, loc)
	require.True(t, ok)
	got = got.In(loc)
	assert.Equal(t, 2024, got.Year())
	assert.Equal(t, time.June, got.Month())
	assert.Equal(t, 11, got.Day())
	assert.Equal(t, 15, got.Hour())
	assert.Equal(t, 0, got.Minute())
}

func TestNaturalParser_Unparseable(t *testing.T) {
	loc := testLocation(t)
	ref := time.Date(2024, 6, 10, 9, 0, 0, 0, loc)
	p := NaturalParser{}

	_, ok := p.Parse("definitely not a date", ref, loc)
	assert.False(t, ok)
}
