// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package dispatch routes an utterance to a skill by keyword. Routing is an
// ordered table; the first matching route wins and anything unmatched goes
// to chat.
package dispatch

import (
	"slices"
	"strings"

	"github.com/pdiddy/omnimind/internal/textutil"
)

// Intent names a skill, or chat for free-form conversation.
type Intent string

const (
	IntentChat    Intent = "chat"
	IntentNews    Intent = "news"
	IntentSearch  Intent = "search"
	IntentTime    Intent = "time"
	IntentWeather Intent = "weather"
	IntentMusic   Intent = "music"
	IntentCode    Intent = "code"
)

// Route matches an utterance by leading prefix or by keyword phrase.
// Prefixes compare against the lowercased, trimmed text; keywords match on
// word boundaries.
type Route struct {
	Intent   Intent
	Prefixes []string
	Keywords []string

	// Strip removes a matched prefix from the query handed to the skill.
	Strip bool
}

// Routes is checked in order. Time and weather questions are matched before
// the chat prefixes since they are usually phrased "what is the time".
// Knowledge questions route to chat ahead of search so "what is X" is
// answered by the model instead of a web search.
var Routes = []Route{
	{Intent: IntentNews, Keywords: []string{"news", "headlines", "current events"}},
	{Intent: IntentTime, Keywords: []string{
		"what time", "current time", "time now", "what is the time", "what's the time",
		"what day is it", "what day is today", "today's date", "date today", "the date today",
	}},
	{Intent: IntentWeather, Keywords: []string{"weather", "forecast"}},
	{Intent: IntentChat, Prefixes: []string{"what is ", "who is ", "define ", "explain ", "tell me about ", "describe "}},
	{Intent: IntentSearch, Prefixes: []string{"search for ", "find ", "look up ", "google "}, Keywords: []string{"search"}, Strip: true},
	{Intent: IntentMusic, Prefixes: []string{"play "}, Keywords: []string{"music", "song", "songs"}, Strip: true},
	{Intent: IntentCode, Prefixes: []string{"write code ", "code "}, Keywords: []string{"code", "script", "function", "program"}},
}

// Decision is the routing result.
type Decision struct {
	Intent Intent

	// Text is the original utterance.
	Text string

	// Query is what the skill should act on: the utterance with a command
	// prefix removed, a rewritten query for news, or the place for weather.
	Query string
}

// Decide routes text through Routes.
func Decide(text string) Decision {
	trimmed := strings.TrimSpace(text)
	lower := strings.ToLower(trimmed)
	norm := textutil.Normalize(trimmed)

	for _, r := range Routes {
		prefix, ok := matchPrefix(lower, r.Prefixes)
		if !ok && !textutil.ContainsAny(norm, r.Keywords) {
			continue
		}
		d := Decision{Intent: r.Intent, Text: trimmed, Query: trimmed}
		if ok && r.Strip {
			d.Query = strings.TrimSpace(trimmed[len(prefix):])
		} else if r.Intent == IntentSearch {
			d.Query = stripSearchWords(trimmed)
		}
		switch r.Intent {
		case IntentNews:
			d.Query = NewsQuery(norm)
		case IntentWeather:
			d.Query = WeatherLocation(trimmed)
		}
		return d
	}
	return Decision{Intent: IntentChat, Text: trimmed, Query: trimmed}
}

func matchPrefix(lower string, prefixes []string) (string, bool) {
	for _, p := range prefixes {
		if strings.HasPrefix(lower, p) {
			return p, true
		}
	}
	return "", false
}

// stripSearchWords removes a bare "search" keyword from a query such as
// "golang generics search".
func stripSearchWords(text string) string {
	var kept []string
	for _, w := range strings.Fields(text) {
		if strings.EqualFold(w, "search") {
			continue
		}
		kept = append(kept, w)
	}
	return strings.Join(kept, " ")
}

// WeatherLocation returns the place named after the last "in", "for" or
// "at" in text, or "" when none is named.
func WeatherLocation(text string) string {
	fields := strings.Fields(strings.TrimRight(text, "?!. "))
	for len(fields) > 0 && slices.Contains(timeWords, strings.ToLower(fields[len(fields)-1])) {
		fields = fields[:len(fields)-1]
	}
	for i := len(fields) - 2; i >= 0; i-- {
		switch strings.ToLower(fields[i]) {
		case "in", "for", "at":
			return strings.TrimRight(strings.Join(fields[i+1:], " "), ",")
		}
	}
	return ""
}

var timeWords = []string{"today", "tonight", "tomorrow", "now", "right"}

// newsRegions are the region words recognized in news requests.
var newsRegions = []string{"india", "world", "business", "sports", "technology", "science"}

// NewsQuery rewrites a normalized news request into a search query.
func NewsQuery(norm string) string {
	if textutil.ContainsAny(norm, []string{"ai", "artificial intelligence"}) {
		return "latest AI artificial intelligence news"
	}
	prefix := "latest"
	if textutil.ContainsAny(norm, []string{"breaking", "urgent"}) {
		prefix = "breaking"
	}
	for _, region := range newsRegions {
		if textutil.ContainsPhrase(norm, region) {
			return prefix + " " + region + " news"
		}
	}
	return prefix + " news today"
}

// News feed keys. Regions without a configured feed list fall back to web
// search.
const (
	FeedDefault  = "default"
	FeedBreaking = "breaking"
)

// NewsFeed picks the feed list for a normalized news request: a region word
// first, then breaking, then the default list. AI news has no feed and
// returns "".
func NewsFeed(norm string) string {
	if textutil.ContainsAny(norm, []string{"ai", "artificial intelligence"}) {
		return ""
	}
	for _, region := range newsRegions {
		if textutil.ContainsPhrase(norm, region) {
			return region
		}
	}
	if textutil.ContainsAny(norm, []string{"breaking", "urgent"}) {
		return FeedBreaking
	}
	return FeedDefault
}
