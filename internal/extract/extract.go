package extract

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
)

// Fields is the structured output of the extraction model. Pointer fields
// distinguish "not mentioned" (nil) from an empty value; nothing is
// defaulted at this stage.
type Fields struct {
	Title           *string `json:"title"`
	StartTimeStr    *string `json:"start_time_str"`
	EndTimeStr      *string `json:"end_time_str"`
	DurationStr     *string `json:"duration_str"`
	Location        *string `json:"location"`
	ReminderMinutes *int    `json:"reminder_minutes"`
}

// ErrMalformed marks model output that is not a JSON object even after
// fence stripping.
var ErrMalformed = errors.New("model output is not valid JSON")

// Parse strips an optional markdown code fence and decodes the model
// output into Fields.
func Parse(raw string) (*Fields, error) {
	text := stripFence(strings.TrimSpace(raw))

	var f Fields
	if err := json.Unmarshal([]byte(text), &f); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformed, err)
	}
	return &f, nil
}

// stripFence removes a surrounding markdown code fence, a common LLM
// formatting habit.
func stripFence(text string) string {
	if strings.HasPrefix(text, "```json") {
		text = text[len("```json"):]
	} else if strings.HasPrefix(text, "```") {
		text = text[len("```"):]
	}
	if strings.HasSuffix(text, "```") {
		text = text[:len(text)-len("```")]
	}
	return strings.TrimSpace(text)
}
