// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package search

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"golang.org/x/time/rate"

	"github.com/pdiddy/omnimind/internal/textutil"
	"github.com/pdiddy/omnimind/pkg/types"
)

// YaCyAdapter queries a YaCy peer. There is no dependable public instance,
// so at least one base URL (usually a local deployment) must be configured.
type YaCyAdapter struct {
	httpEngine
	bases []string
}

// NewYaCyAdapter returns an adapter over the given peer base URLs.
func NewYaCyAdapter(client *http.Client, cfg types.HTTPConfig, bases []string, limiter *rate.Limiter) *YaCyAdapter {
	return &YaCyAdapter{
		httpEngine: newHTTPEngine(types.EngineYaCy, client, cfg, limiter),
		bases:      bases,
	}
}

// Engine returns the backend identifier.
func (a *YaCyAdapter) Engine() types.EngineID { return types.EngineYaCy }

// Search queries each peer until one returns results. maximumRecords is
// clamped to 1..20.
func (a *YaCyAdapter) Search(ctx context.Context, query string, limit int) ([]types.SearchResult, error) {
	limit = clamp(limit, 1, 20)
	return firstNonEmpty(ctx, a.id, a.bases, func(ctx context.Context, base string) ([]types.SearchResult, error) {
		return a.searchBase(ctx, base, query, limit)
	})
}

func (a *YaCyAdapter) searchBase(ctx context.Context, base, query string, limit int) ([]types.SearchResult, error) {
	params := url.Values{
		"query":          {query},
		"maximumRecords": {strconv.Itoa(limit)},
		"verify":         {"false"},
	}

	var yr yacyResponse
	err := a.get(ctx, strings.TrimRight(base, "/")+"/yacysearch.json", params, func(r io.Reader) error {
		return json.NewDecoder(r).Decode(&yr)
	})
	if err != nil {
		return nil, err
	}

	var results []types.SearchResult
	for _, item := range yr.items() {
		link := item.Link
		if link == "" {
			link = item.URL
		}
		if link == "" {
			continue
		}
		title := textutil.CleanHTML(item.Title)
		if title == "" {
			title = link
		}
		results = append(results, types.SearchResult{
			Title:   title,
			URL:     link,
			Snippet: textutil.CleanHTML(item.Description),
			Source:  types.EngineYaCy,
		})
		if len(results) == limit {
			break
		}
	}
	return results, nil
}

// yacyResponse accepts both shapes YaCy peers emit: an RSS-style
// {"channels":[{"items":[...]}]} and a flat {"items":[...]}.
type yacyResponse struct {
	Channels []struct {
		Items []yacyItem `json:"items"`
	} `json:"channels"`
	Items []yacyItem `json:"items"`
}

func (r yacyResponse) items() []yacyItem {
	if len(r.Channels) > 0 {
		return r.Channels[0].Items
	}
	return r.Items
}

type yacyItem struct {
	Title       string `json:"title"`
	Link        string `json:"link"`
	URL         string `json:"url"`
	Description string `json:"description"`
}
