// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package textutil holds small text helpers shared by dispatch, memory and
// the search adapters.
package textutil

import (
	"html"
	"regexp"
	"strings"
	"unicode"
)

var htmlTagRe = regexp.MustCompile(`<[^>]+>`)

// CleanHTML strips HTML tags, unescapes entities and trims whitespace.
func CleanHTML(s string) string {
	return strings.TrimSpace(html.UnescapeString(htmlTagRe.ReplaceAllString(s, "")))
}

// Tokenize lowercases s and splits it on anything that is not a letter or digit.
func Tokenize(s string) []string {
	return strings.FieldsFunc(strings.ToLower(s), func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})
}

// Normalize returns the tokens of s joined by single spaces and padded with
// a space on each side, ready for ContainsPhrase.
func Normalize(s string) string {
	return " " + strings.Join(Tokenize(s), " ") + " "
}

// ContainsPhrase reports whether the normalized text contains phrase on word
// boundaries, so "ai" matches "latest ai news" but not "explain".
func ContainsPhrase(normalized, phrase string) bool {
	p := strings.Join(Tokenize(phrase), " ")
	if p == "" {
		return false
	}
	return strings.Contains(normalized, " "+p+" ")
}

// ContainsAny reports whether normalized contains any of phrases.
func ContainsAny(normalized string, phrases []string) bool {
	for _, p := range phrases {
		if ContainsPhrase(normalized, p) {
			return true
		}
	}
	return false
}

// SharedTokens counts the distinct tokens present in both a and b.
func SharedTokens(a, b string) int {
	set := make(map[string]bool)
	for _, t := range Tokenize(a) {
		set[t] = true
	}
	n := 0
	for _, t := range Tokenize(b) {
		if set[t] {
			n++
			delete(set, t)
		}
	}
	return n
}

// WordCount counts whitespace-separated words.
func WordCount(s string) int {
	return len(strings.Fields(s))
}

// Truncate caps s at limit runes, appending suffix when it cuts.
func Truncate(s string, limit int, suffix string) string {
	r := []rune(s)
	if len(r) <= limit {
		return s
	}
	return string(r[:limit]) + suffix
}
