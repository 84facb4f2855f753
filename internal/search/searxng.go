// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package search

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/url"
	"strings"

	"golang.org/x/time/rate"

	"github.com/pdiddy/omnimind/pkg/types"
)

// SearXNGAdapter queries a SearXNG meta-search instance, falling back
// through mirror instances in priority order.
type SearXNGAdapter struct {
	httpEngine
	bases []string
}

// NewSearXNGAdapter returns an adapter over the given mirror base URLs.
func NewSearXNGAdapter(client *http.Client, cfg types.HTTPConfig, bases []string, limiter *rate.Limiter) *SearXNGAdapter {
	return &SearXNGAdapter{
		httpEngine: newHTTPEngine(types.EngineSearXNG, client, cfg, limiter),
		bases:      bases,
	}
}

// Engine returns the backend identifier.
func (a *SearXNGAdapter) Engine() types.EngineID { return types.EngineSearXNG }

// Search queries each mirror until one returns results.
func (a *SearXNGAdapter) Search(ctx context.Context, query string, limit int) ([]types.SearchResult, error) {
	return firstNonEmpty(ctx, a.id, a.bases, func(ctx context.Context, base string) ([]types.SearchResult, error) {
		return a.searchBase(ctx, base, query, limit)
	})
}

func (a *SearXNGAdapter) searchBase(ctx context.Context, base, query string, limit int) ([]types.SearchResult, error) {
	params := url.Values{
		"q":          {query},
		"format":     {"json"},
		"language":   {"en"},
		"safesearch": {"1"},
		"categories": {"general"},
	}

	var sr searxngResponse
	err := a.get(ctx, strings.TrimRight(base, "/")+"/search", params, func(r io.Reader) error {
		return json.NewDecoder(r).Decode(&sr)
	})
	if err != nil {
		return nil, err
	}

	var results []types.SearchResult
	for _, item := range sr.Results {
		if item.URL == "" {
			continue
		}
		title := item.Title
		if title == "" {
			title = item.URL
		}
		results = append(results, types.SearchResult{
			Title:   strings.TrimSpace(title),
			URL:     item.URL,
			Snippet: strings.TrimSpace(item.Content),
			Source:  types.EngineSearXNG,
		})
		if len(results) == limit {
			break
		}
	}
	return results, nil
}

// SearXNG JSON structures.
type searxngResponse struct {
	Results []searxngResult `json:"results"`
}

type searxngResult struct {
	Title   string `json:"title"`
	URL     string `json:"url"`
	Content string `json:"content"`
}
