// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package assistant

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/pdiddy/omnimind/internal/dispatch"
	"github.com/pdiddy/omnimind/internal/textutil"
	"github.com/pdiddy/omnimind/pkg/types"
)

const defaultNewsItems = 5

// newsSkill answers from RSS feeds when one is configured for the request
// and falls back to web search otherwise, or when every feed failed or was
// empty.
func (a *Assistant) newsSkill(ctx context.Context, d dispatch.Decision) (string, error) {
	key := dispatch.NewsFeed(textutil.Normalize(d.Text))
	if a.news == nil || key == "" {
		return a.SmartSearch(ctx, d.Query, true), nil
	}

	items, err := a.news.Headlines(ctx, key, a.newsItems)
	if err != nil {
		a.log.Warn("news feeds failed, searching instead", zap.String("feed", key), zap.Error(err))
		return a.SmartSearch(ctx, d.Query, true), nil
	}
	if len(items) == 0 {
		return a.SmartSearch(ctx, d.Query, true), nil
	}

	var sb strings.Builder
	renderHeadlines(&sb, key, items)
	if a.synth != nil {
		if summary, ok := a.synth.Summarize(ctx, d.Query, items, 0); ok {
			fmt.Fprintf(&sb, "Summary:\n%s\n", summary)
		}
	}
	return strings.TrimRight(sb.String(), "\n"), nil
}

func renderHeadlines(sb *strings.Builder, key string, items []types.SearchResult) {
	switch key {
	case dispatch.FeedDefault:
		sb.WriteString("Latest headlines:\n\n")
	case dispatch.FeedBreaking:
		sb.WriteString("Breaking news:\n\n")
	default:
		fmt.Fprintf(sb, "Latest %s news:\n\n", strings.ToUpper(key[:1])+key[1:])
	}
	for i, it := range items {
		fmt.Fprintf(sb, "%d. %s\n", i+1, it.Title)
		if snip := strings.TrimSpace(it.Snippet); snip != "" {
			fmt.Fprintf(sb, "   %s\n", textutil.Truncate(snip, snippetRunes, "..."))
		}
		fmt.Fprintf(sb, "   %s\n\n", it.URL)
	}
}
