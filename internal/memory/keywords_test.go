// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package memory

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestExtractKeywords(t *testing.T) {
	tests := []struct {
		text string
		want []string
	}{
		{"What is the weather in Paris?", []string{"weather", "paris"}},
		{"The cat sat on a mat", nil},
		{"Rust rust RUST macros", []string{"rust", "macros"}},
		{"golang channels goroutines mutexes contexts generics interfaces", []string{"golang", "channels", "goroutines", "mutexes", "contexts"}},
		{"", nil},
	}
	for _, tt := range tests {
		t.Run(tt.text, func(t *testing.T) {
			assert.Equal(t, tt.want, ExtractKeywords(tt.text))
		})
	}
}

func TestKeywordStats(t *testing.T) {
	history := exchanges(
		"tell me about rust macros",
		"golang generics",
		"rust ownership rules",
		"more rust macros please",
	)

	tests := []struct {
		name   string
		window int
		want   []KeywordCount
	}{
		{
			name:   "whole history",
			window: 10,
			want: []KeywordCount{
				{Keyword: "rust", Count: 3},
				{Keyword: "macros", Count: 2},
				{Keyword: "more", Count: 1},
				{Keyword: "ownership", Count: 1},
				{Keyword: "rules", Count: 1},
				{Keyword: "generics", Count: 1},
				{Keyword: "golang", Count: 1},
				{Keyword: "tell", Count: 1},
			},
		},
		{
			name:   "last two exchanges",
			window: 2,
			want: []KeywordCount{
				{Keyword: "rust", Count: 2},
				{Keyword: "macros", Count: 1},
				{Keyword: "more", Count: 1},
				{Keyword: "ownership", Count: 1},
				{Keyword: "rules", Count: 1},
			},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			first := KeywordStats(history, tt.window)
			assert.Equal(t, tt.want, first)
			assert.Equal(t, first, KeywordStats(history, tt.window), "same input, same output")
		})
	}

	assert.Empty(t, KeywordStats(nil, 5))
}
