// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package synth folds the top search results into a short cited answer
// using an external text generator. It is an optional decoration: any
// failure yields no summary and never an error.
package synth

import (
	"context"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/pdiddy/omnimind/internal/llm"
	"github.com/pdiddy/omnimind/internal/logging"
	"github.com/pdiddy/omnimind/internal/textutil"
	"github.com/pdiddy/omnimind/pkg/types"
)

// DefaultTopN is the number of results cited when callers pass zero.
const DefaultTopN = 3

// SystemPrompt is the fixed instruction sent with every summary request.
const SystemPrompt = "You are a search result analyzer. Answer the question using only the numbered sources provided. " +
	"Be concise: at most four sentences. Cite every claim with the source number in square brackets, e.g. [1] or [2][3]. " +
	"If the sources do not answer the question, say so in one sentence."

// snippetRunes bounds each snippet in the citation context.
const snippetRunes = 300

// Synthesizer produces cited answers from search results.
type Synthesizer struct {
	gen         llm.Generator
	timeout     time.Duration
	temperature float64
	maxTokens   int
	log         *zap.Logger
}

// Option configures a Synthesizer.
type Option func(*Synthesizer)

// WithTimeout bounds one Summarize call.
func WithTimeout(d time.Duration) Option {
	return func(s *Synthesizer) { s.timeout = d }
}

// WithMaxTokens caps the answer length.
func WithMaxTokens(n int) Option {
	return func(s *Synthesizer) { s.maxTokens = n }
}

// New returns a Synthesizer over gen. A nil gen makes every Summarize call
// report no summary.
func New(gen llm.Generator, log *zap.Logger, opts ...Option) *Synthesizer {
	s := &Synthesizer{
		gen:         gen,
		timeout:     60 * time.Second,
		temperature: 0.3,
		maxTokens:   400,
		log:         logging.OrNop(log),
	}
	for _, o := range opts {
		o(s)
	}
	return s
}

// Summarize asks the generator for a cited answer over the first topN
// results. The bool is false when there is nothing to summarize or the
// generator failed.
func (s *Synthesizer) Summarize(ctx context.Context, query string, results []types.SearchResult, topN int) (string, bool) {
	if s == nil || s.gen == nil {
		return "", false
	}
	if topN <= 0 {
		topN = DefaultTopN
	}

	cited := make([]types.SearchResult, 0, topN)
	for _, r := range results {
		if r.IsUnavailable() {
			continue
		}
		cited = append(cited, r)
		if len(cited) == topN {
			break
		}
	}
	if len(cited) == 0 {
		return "", false
	}

	if s.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.timeout)
		defer cancel()
	}

	text, err := s.gen.Generate(ctx, SystemPrompt, UserPrompt(query, cited),
		llm.WithTemperature(s.temperature), llm.WithMaxTokens(s.maxTokens))
	if err != nil {
		s.log.Warn("summary unavailable", zap.String("query", query), zap.Error(err))
		return "", false
	}
	text = strings.TrimSpace(text)
	if text == "" || strings.HasPrefix(text, llm.ErrorPrefix) {
		s.log.Warn("summary unavailable", zap.String("query", query), zap.String("reason", "empty or error-shaped output"))
		return "", false
	}
	return text, true
}

// UserPrompt renders the numbered citation context for query.
func UserPrompt(query string, results []types.SearchResult) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "Question: %s\n\nSources:\n", query)
	for i, r := range results {
		fmt.Fprintf(&sb, "[%d] %s\n", i+1, r.Title)
		if snip := strings.TrimSpace(r.Snippet); snip != "" {
			fmt.Fprintf(&sb, "    %s\n", textutil.Truncate(snip, snippetRunes, "..."))
		}
		fmt.Fprintf(&sb, "    %s\n", r.URL)
	}
	sb.WriteString("\nWrite the answer with citations.")
	return sb.String()
}
