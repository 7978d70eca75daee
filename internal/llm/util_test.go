package llm

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCleanJSONBlock(t *testing.T) {
	cases := []struct {
		name     string
		input    string
		expected string
	}{
		{
			name:     "bare JSON untouched",
			input:    `{"titles": ["a"]}`,
			expected: `{"titles": ["a"]}`,
		},
		{
			name:     "json fence",
			input:    "```json\n{\"titles\": [\"a\"]}\n```",
			expected: `{"titles": ["a"]}`,
		},
		{
			name:     "generic fence",
			input:    "```\n{\"titles\": [\"a\"]}\n```",
			expected: `{"titles": ["a"]}`,
		},
		{
			name:     "fence with language identifier",
			input:    "```javascript\n{\"titles\": [\"a\"]}\n```",
			expected: `{"titles": ["a"]}`,
		},
		{
			name:     "surrounding whitespace",
			input:    "  \n```json\n{}\n```\n  ",
			expected: `{}`,
		},
		{
			name:     "empty input",
			input:    "",
			expected: "",
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expected, CleanJSONBlock(tc.input))
		})
	}
}
