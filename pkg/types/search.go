// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package types defines shared data structures for the omnimind core:
// normalized search results, conversation exchanges, derived topic state,
// the persisted user profile, and configuration.
package types

// EngineID identifies the search backend that produced a result.
type EngineID string

const (
	// EngineSearXNG is the meta-search backend.
	EngineSearXNG EngineID = "searxng"
	// EngineWikipedia is the encyclopedia backend.
	EngineWikipedia EngineID = "wikipedia"
	// EngineYaCy is the distributed-index backend.
	EngineYaCy EngineID = "yacy"
	// EngineArxiv is the optional preprint backend.
	EngineArxiv EngineID = "arxiv"
	// EngineNews marks headlines read from RSS feeds. It never joins the
	// search fan-out.
	EngineNews EngineID = "news"
)

// SearchResult is a normalized record returned by an engine adapter.
type SearchResult struct {
	// Title is the page or article title as returned by the engine.
	Title string `json:"title" yaml:"title"`

	// URL is the absolute result URL. An empty URL marks the
	// search-unavailable sentinel, never a real result.
	URL string `json:"url" yaml:"url"`

	// Snippet is a short plain-text excerpt.
	Snippet string `json:"snippet" yaml:"snippet"`

	// Source identifies which adapter produced the record.
	Source EngineID `json:"source" yaml:"source"`
}

// IsUnavailable reports whether r is the search-unavailable sentinel.
func (r SearchResult) IsUnavailable() bool {
	return r.URL == ""
}

// Unavailable returns the sentinel record used at the presentation
// boundary when every engine failed. It is distinguishable from an empty
// result list, which means the engines answered but found nothing.
func Unavailable() SearchResult {
	return SearchResult{Title: "search unavailable"}
}
