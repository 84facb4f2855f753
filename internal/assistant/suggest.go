// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package assistant

import "github.com/pdiddy/omnimind/internal/textutil"

type suggestionRule struct {
	keywords    []string
	suggestions []string
}

var suggestionRules = []suggestionRule{
	{
		keywords:    []string{"what", "explain", "how"},
		suggestions: []string{"Can you give me more details?", "What are the practical applications?", "Are there any examples?"},
	},
	{
		keywords:    []string{"news"},
		suggestions: []string{"Get breaking news alerts", "Show detailed news analysis", "Search for specific topics"},
	},
	{
		keywords:    []string{"search", "find"},
		suggestions: []string{"Search the web for more info", "Get recent updates on this topic", "Find related articles"},
	},
}

var defaultSuggestions = []string{"Tell me more about this", "What's the latest news?", "Help me search for something"}

// Suggestions returns up to three follow-up prompts for text.
func Suggestions(text string) []string {
	norm := textutil.Normalize(text)
	for _, r := range suggestionRules {
		if textutil.ContainsAny(norm, r.keywords) {
			return append([]string(nil), r.suggestions...)
		}
	}
	return append([]string(nil), defaultSuggestions...)
}
