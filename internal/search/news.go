// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package search

import (
	"context"
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	"golang.org/x/time/rate"

	"github.com/pdiddy/omnimind/internal/textutil"
	"github.com/pdiddy/omnimind/pkg/types"
)

const newsSnippetRunes = 200

// NewsFetcher reads headlines from RSS feeds. Each feed key has an ordered
// list of feeds and the first one with items wins, the same way search
// mirrors are tried.
type NewsFetcher struct {
	httpEngine
	feeds map[string][]string
}

// NewNewsFetcher returns a fetcher over feeds, keyed by region or by
// "breaking" and "default".
func NewNewsFetcher(client *http.Client, cfg types.HTTPConfig, feeds map[string][]string, limiter *rate.Limiter) *NewsFetcher {
	return &NewsFetcher{
		httpEngine: newHTTPEngine(types.EngineNews, client, cfg, limiter),
		feeds:      feeds,
	}
}

// Headlines returns up to limit items from the first non-empty feed listed
// under key. A key with no feeds is a KindUnconfigured error so the caller
// can fall back to web search.
func (f *NewsFetcher) Headlines(ctx context.Context, key string, limit int) ([]types.SearchResult, error) {
	feeds := f.feeds[key]
	if len(feeds) == 0 {
		return nil, &EngineError{Engine: f.id, Kind: KindUnconfigured, Err: fmt.Errorf("no feeds configured for %q", key)}
	}
	if limit <= 0 {
		return nil, errors.New("limit must be positive")
	}
	return firstNonEmpty(ctx, f.id, feeds, func(ctx context.Context, feed string) ([]types.SearchResult, error) {
		return f.fetch(ctx, feed, limit)
	})
}

func (f *NewsFetcher) fetch(ctx context.Context, feed string, limit int) ([]types.SearchResult, error) {
	var doc rssDoc
	err := f.get(ctx, feed, nil, func(r io.Reader) error {
		return xml.NewDecoder(r).Decode(&doc)
	})
	if err != nil {
		return nil, err
	}

	var results []types.SearchResult
	for _, item := range doc.Channel.Items {
		title := textutil.CleanHTML(item.Title)
		link := strings.TrimSpace(item.Link)
		if title == "" || link == "" {
			continue
		}
		results = append(results, types.SearchResult{
			Title:   title,
			URL:     link,
			Snippet: textutil.Truncate(textutil.CleanHTML(item.Description), newsSnippetRunes, "..."),
			Source:  types.EngineNews,
		})
		if len(results) == limit {
			break
		}
	}
	return results, nil
}

// RSS 2.0 XML structures.
type rssDoc struct {
	Channel struct {
		Items []rssItem `xml:"item"`
	} `xml:"channel"`
}

type rssItem struct {
	Title       string `xml:"title"`
	Link        string `xml:"link"`
	Description string `xml:"description"`
}
