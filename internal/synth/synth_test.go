// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package synth

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/omnimind/internal/llm"
	"github.com/pdiddy/omnimind/pkg/types"
)

type mockGenerator struct {
	out    string
	err    error
	block  bool
	system string
	user   string
	opts   llm.Options
	calls  int
}

func (m *mockGenerator) Generate(ctx context.Context, system, user string, opts ...llm.Option) (string, error) {
	m.calls++
	m.system, m.user = system, user
	for _, o := range opts {
		o(&m.opts)
	}
	if m.block {
		<-ctx.Done()
		return "", ctx.Err()
	}
	return m.out, m.err
}

var sample = []types.SearchResult{
	{Title: "Go 1.22 release notes", URL: "https://go.dev/doc/go1.22", Snippet: "Range over integers.", Source: types.EngineSearXNG},
	{Title: "Go (programming language)", URL: "https://en.wikipedia.org/wiki/Go_(programming_language)", Snippet: "Go is a language.", Source: types.EngineWikipedia},
	{Title: "Third", URL: "https://example.com/3", Source: types.EngineYaCy},
	{Title: "Fourth", URL: "https://example.com/4", Source: types.EngineYaCy},
}

func TestSummarize(t *testing.T) {
	gen := &mockGenerator{out: "  Go 1.22 adds range over integers [1].  "}
	s := New(gen, nil)

	summary, ok := s.Summarize(context.Background(), "what is new in go", sample, 2)
	require.True(t, ok)
	assert.Equal(t, "Go 1.22 adds range over integers [1].", summary)

	assert.Equal(t, SystemPrompt, gen.system)
	assert.Contains(t, gen.user, "Question: what is new in go")
	assert.Contains(t, gen.user, "[1] Go 1.22 release notes")
	assert.Contains(t, gen.user, "https://go.dev/doc/go1.22")
	assert.Contains(t, gen.user, "[2] Go (programming language)")
	assert.NotContains(t, gen.user, "[3]")
	assert.Equal(t, 0.3, gen.opts.Temperature)
	assert.Equal(t, 400, gen.opts.MaxTokens)
}

func TestSummarizeFailuresAreAbsent(t *testing.T) {
	tests := []struct {
		name string
		gen  llm.Generator
	}{
		{"generator error", &mockGenerator{err: errors.New("connection refused")}},
		{"empty output", &mockGenerator{out: "   "}},
		{"error-shaped output", &mockGenerator{out: "[Error] Failed to reach local Ollama server"}},
		{"nil generator", nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			summary, ok := New(tt.gen, nil).Summarize(context.Background(), "q", sample, 3)
			assert.False(t, ok)
			assert.Empty(t, summary)
		})
	}
}

func TestSummarizeTimeout(t *testing.T) {
	gen := &mockGenerator{block: true}
	s := New(gen, nil, WithTimeout(30*time.Millisecond))

	start := time.Now()
	_, ok := s.Summarize(context.Background(), "q", sample, 3)
	assert.False(t, ok)
	assert.Less(t, time.Since(start), time.Second)
}

func TestSummarizeSkipsWhenNothingToCite(t *testing.T) {
	gen := &mockGenerator{out: "should not be called"}
	s := New(gen, nil)

	_, ok := s.Summarize(context.Background(), "q", nil, 3)
	assert.False(t, ok)
	_, ok = s.Summarize(context.Background(), "q", []types.SearchResult{types.Unavailable()}, 3)
	assert.False(t, ok)
	assert.Zero(t, gen.calls)
}

func TestUserPromptDefaultsAndTruncation(t *testing.T) {
	long := strings.Repeat("x", 500)
	p := UserPrompt("q", []types.SearchResult{{Title: "T", URL: "https://t.example", Snippet: long}})
	assert.Contains(t, p, strings.Repeat("x", snippetRunes)+"...")
	assert.NotContains(t, p, strings.Repeat("x", snippetRunes+1))

	gen := &mockGenerator{out: "ok [1]"}
	_, ok := New(gen, nil).Summarize(context.Background(), "q", sample, 0)
	require.True(t, ok)
	assert.Contains(t, gen.user, "[3] Third")
	assert.NotContains(t, gen.user, "[4]")
}
