// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package search

import (
	"context"
	"encoding/xml"
	"errors"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"golang.org/x/time/rate"

	"github.com/pdiddy/omnimind/internal/textutil"
	"github.com/pdiddy/omnimind/pkg/types"
)

const arxivSnippetRunes = 300

// ArxivAdapter queries the arXiv Atom API. Disabled unless configured; it
// shows how an extra engine joins the fan-out without aggregator changes.
type ArxivAdapter struct {
	httpEngine
	endpoint string
}

// NewArxivAdapter returns an adapter for the arXiv query endpoint.
func NewArxivAdapter(client *http.Client, cfg types.HTTPConfig, endpoint string, limiter *rate.Limiter) *ArxivAdapter {
	return &ArxivAdapter{
		httpEngine: newHTTPEngine(types.EngineArxiv, client, cfg, limiter),
		endpoint:   endpoint,
	}
}

// Engine returns the backend identifier.
func (a *ArxivAdapter) Engine() types.EngineID { return types.EngineArxiv }

// Search runs an all-fields query sorted by relevance.
func (a *ArxivAdapter) Search(ctx context.Context, query string, limit int) ([]types.SearchResult, error) {
	if a.endpoint == "" {
		return nil, &EngineError{Engine: a.id, Kind: KindUnconfigured, Err: errors.New("no API endpoint configured")}
	}
	terms := strings.Fields(query)
	if len(terms) == 0 {
		return nil, nil
	}

	params := url.Values{
		"search_query": {"all:" + strings.Join(terms, " AND all:")},
		"start":        {"0"},
		"max_results":  {strconv.Itoa(limit)},
		"sortBy":       {"relevance"},
		"sortOrder":    {"descending"},
	}

	var feed arxivFeed
	err := a.get(ctx, a.endpoint, params, func(r io.Reader) error {
		return xml.NewDecoder(r).Decode(&feed)
	})
	if err != nil {
		return nil, err
	}

	var results []types.SearchResult
	for _, entry := range feed.Entries {
		id := extractArxivID(entry.ID)
		if id == "" {
			continue
		}
		results = append(results, types.SearchResult{
			Title:   strings.Join(strings.Fields(entry.Title), " "),
			URL:     "https://arxiv.org/abs/" + id,
			Snippet: textutil.Truncate(strings.Join(strings.Fields(entry.Summary), " "), arxivSnippetRunes, "..."),
			Source:  types.EngineArxiv,
		})
		if len(results) == limit {
			break
		}
	}
	return results, nil
}

// arXiv Atom feed XML structures.
type arxivFeed struct {
	Entries []arxivEntry `xml:"entry"`
}

type arxivEntry struct {
	ID      string `xml:"id"`
	Title   string `xml:"title"`
	Summary string `xml:"summary"`
}

// extractArxivID pulls the arXiv ID from the entry's <id> URL
// (e.g. "http://arxiv.org/abs/2301.07041v1" → "2301.07041").
func extractArxivID(idURL string) string {
	const prefix = "/abs/"
	idx := strings.Index(idURL, prefix)
	if idx < 0 {
		return ""
	}
	id := idURL[idx+len(prefix):]

	// Strip version suffix (e.g. "v1", "v2").
	if vIdx := strings.LastIndex(id, "v"); vIdx > 0 {
		if _, err := strconv.Atoi(id[vIdx+1:]); err == nil {
			id = id[:vIdx]
		}
	}
	return id
}
