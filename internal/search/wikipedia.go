// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package search

import (
	"context"
	"encoding/json"
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

// wikipediaPageBase prefixes article titles to build result URLs.
const wikipediaPageBase = "https://en.wikipedia.org/wiki/"

// WikipediaAdapter queries the MediaWiki full-text search API.
type WikipediaAdapter struct {
	httpEngine
	endpoint string
}

// NewWikipediaAdapter returns an adapter for the MediaWiki API at endpoint
// (e.g. "https://en.wikipedia.org/w/api.php").
func NewWikipediaAdapter(client *http.Client, cfg types.HTTPConfig, endpoint string, limiter *rate.Limiter) *WikipediaAdapter {
	return &WikipediaAdapter{
		httpEngine: newHTTPEngine(types.EngineWikipedia, client, cfg, limiter),
		endpoint:   endpoint,
	}
}

// Engine returns the backend identifier.
func (a *WikipediaAdapter) Engine() types.EngineID { return types.EngineWikipedia }

// Search runs one list=search query. The API caps srlimit, so limit is
// clamped to 1..10.
func (a *WikipediaAdapter) Search(ctx context.Context, query string, limit int) ([]types.SearchResult, error) {
	if a.endpoint == "" {
		return nil, &EngineError{Engine: a.id, Kind: KindUnconfigured, Err: errors.New("no API endpoint configured")}
	}
	limit = clamp(limit, 1, 10)

	params := url.Values{
		"action":   {"query"},
		"list":     {"search"},
		"srsearch": {query},
		"utf8":     {"1"},
		"format":   {"json"},
		"srlimit":  {strconv.Itoa(limit)},
	}

	var wr wikipediaResponse
	err := a.get(ctx, a.endpoint, params, func(r io.Reader) error {
		return json.NewDecoder(r).Decode(&wr)
	})
	if err != nil {
		return nil, err
	}

	var results []types.SearchResult
	for _, item := range wr.Query.Search {
		title := strings.TrimSpace(item.Title)
		if title == "" {
			continue
		}
		results = append(results, types.SearchResult{
			Title:   title,
			URL:     wikipediaPageURL(title),
			Snippet: textutil.CleanHTML(item.Snippet),
			Source:  types.EngineWikipedia,
		})
		if len(results) == limit {
			break
		}
	}
	return results, nil
}

// wikipediaPageURL maps an article title to its canonical page URL
// ("Go (programming language)" → ".../wiki/Go_(programming_language)").
func wikipediaPageURL(title string) string {
	return wikipediaPageBase + strings.ReplaceAll(title, " ", "_")
}

// MediaWiki search JSON structures.
type wikipediaResponse struct {
	Query struct {
		Search []wikipediaHit `json:"search"`
	} `json:"query"`
}

type wikipediaHit struct {
	Title   string `json:"title"`
	Snippet string `json:"snippet"`
}
