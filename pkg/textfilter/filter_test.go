package textfilter

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFilter_Sanitize(t *testing.T) {
	f := NewFilter()

	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{
			name:     "clean text passes through",
			input:    "The detective examined the window.",
			expected: "The detective examined the window.",
		},
		{
			name:     "lowercase word replaced",
			input:    "well, damn.",
			expected: "well, dang.",
		},
		{
			name:     "capitalized word keeps the capital",
			input:    "Damn, she thought.",
			expected: "Dang, she thought.",
		},
		{
			name:     "all caps stays all caps",
			input:    "DAMN!",
			expected: "DANG!",
		},
		{
			name:     "word boundaries respected",
			input:    "the assistant passed the classic test",
			expected: "the assistant passed the classic test",
		},
		{
			name:     "multiple words in one sentence",
			input:    "that bastard told a bullshit story",
			expected: "that jerk told a baloney story",
		},
		{
			name:     "unreplaceable word censored",
			input:    "he called her a whore",
			expected: "he called her a [censored]",
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expected, f.Sanitize(tc.input))
		})
	}
}

func TestFilter_ContainsProfanity(t *testing.T) {
	f := NewFilter()

	assert.True(t, f.ContainsProfanity("what the hell happened here"))
	assert.False(t, f.ContainsProfanity("a perfectly polite sentence"))
	assert.False(t, f.ContainsProfanity("hello there"), "substrings do not match")
}

func TestShouldFilter(t *testing.T) {
	tests := []struct {
		rating   string
		expected bool
	}{
		{"G", true},
		{"PG", true},
		{"PG13", true},
		{"PG-13", true},
		{"pg-13", true},
		{" pg13 ", true},
		{"R", false},
		{"", false},
		{"unrated", false},
	}

	for _, tc := range tests {
		assert.Equal(t, tc.expected, ShouldFilter(tc.rating), "rating %q", tc.rating)
	}
}
