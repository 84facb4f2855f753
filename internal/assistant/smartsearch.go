// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package assistant

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/pdiddy/omnimind/internal/textutil"
	"github.com/pdiddy/omnimind/pkg/types"
)

const (
	maxListed    = 10
	snippetRunes = 150
)

// Messages rendered by SmartSearch.
const (
	SearchUnavailable = "Search is unavailable right now: none of the search engines answered. Please try again later."
	SearchNoQuery     = "Please tell me what to search for."
)

// SmartSearch runs an aggregated search and renders it for a person. With
// summarize set, a cited summary is appended when the synthesizer produces
// one. It never fails: an outage renders as SearchUnavailable.
func (a *Assistant) SmartSearch(ctx context.Context, query string, summarize bool) string {
	query = strings.TrimSpace(query)
	if query == "" {
		return SearchNoQuery
	}
	if a.agg == nil {
		return SearchUnavailable
	}

	out, err := a.agg.SearchAll(ctx, query, a.perQuery)
	if err != nil {
		a.log.Warn("search rejected", zap.String("query", query), zap.Error(err))
		return SearchNoQuery
	}
	if out.Unavailable() {
		return SearchUnavailable
	}
	if len(out.Results) == 0 {
		return fmt.Sprintf("No results found for '%s'.", query)
	}

	var sb strings.Builder
	renderResults(&sb, query, out.Results)

	if summarize && a.synth != nil {
		if summary, ok := a.synth.Summarize(ctx, query, out.Results, 0); ok {
			fmt.Fprintf(&sb, "Summary:\n%s\n", summary)
		}
	}
	return strings.TrimRight(sb.String(), "\n")
}

func renderResults(sb *strings.Builder, query string, results []types.SearchResult) {
	fmt.Fprintf(sb, "Search results for '%s' (%d found)\n\n", query, len(results))
	for i, r := range results {
		if i == maxListed {
			break
		}
		fmt.Fprintf(sb, "%d. %s [%s]\n", i+1, r.Title, r.Source)
		if snip := strings.TrimSpace(r.Snippet); snip != "" {
			fmt.Fprintf(sb, "   %s\n", textutil.Truncate(snip, snippetRunes, "..."))
		}
		fmt.Fprintf(sb, "   %s\n\n", r.URL)
	}
}
