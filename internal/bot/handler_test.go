package bot

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCommand(t *testing.T) {
	tests := []struct {
		name     string
		text     string
		expected string
	}{
		{name: "start", text: "/start", expected: "/start"},
		{name: "help", text: "/help", expected: "/help"},
		{name: "command with bot mention", text: "/help@gemcal_bot", expected: "/help"},
		{name: "command with arguments", text: "/start deep-link-payload", expected: "/start"},
		{name: "plain message", text: "Team sync tomorrow at 3pm", expected: ""},
		{name: "slash mid-text", text: "meet at 3/4 of the way", expected: ""},
		{name: "empty", text: "", expected: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, command(tt.text))
		})
	}
}
