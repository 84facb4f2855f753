// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package memory

import (
	"sort"

	"github.com/pdiddy/omnimind/internal/textutil"
	"github.com/pdiddy/omnimind/pkg/types"
)

// MaxMessageKeywords bounds the keywords taken from one message.
const MaxMessageKeywords = 5

var stopWords = map[string]bool{
	"the": true, "is": true, "at": true, "which": true, "on": true, "a": true,
	"an": true, "and": true, "or": true, "but": true, "in": true, "with": true,
	"to": true, "for": true, "of": true, "as": true, "by": true,
	"what": true, "that": true, "this": true, "about": true, "have": true,
	"there": true, "from": true, "your": true, "please": true,
}

// KeywordCount is one keyword and the number of messages it appeared in.
type KeywordCount struct {
	Keyword string `json:"keyword" yaml:"keyword"`
	Count   int    `json:"count" yaml:"count"`
}

// ExtractKeywords returns the first MaxMessageKeywords distinct tokens of
// text longer than three characters that are not stop words.
func ExtractKeywords(text string) []string {
	var out []string
	seen := make(map[string]bool)
	for _, tok := range textutil.Tokenize(text) {
		if len([]rune(tok)) <= 3 || stopWords[tok] || seen[tok] {
			continue
		}
		seen[tok] = true
		out = append(out, tok)
		if len(out) == MaxMessageKeywords {
			break
		}
	}
	return out
}

// KeywordStats counts keywords over the user side of the last n exchanges.
// Ranking is by count, then most recent message, then alphabetical. The
// result depends only on its arguments.
func KeywordStats(history []types.Exchange, n int) []KeywordCount {
	type stat struct {
		count int
		last  int
	}
	stats := make(map[string]*stat)
	for i, ex := range window(history, n) {
		for _, kw := range ExtractKeywords(ex.UserText) {
			s, ok := stats[kw]
			if !ok {
				s = &stat{}
				stats[kw] = s
			}
			s.count++
			s.last = i
		}
	}

	out := make([]KeywordCount, 0, len(stats))
	for kw, s := range stats {
		out = append(out, KeywordCount{Keyword: kw, Count: s.count})
	}
	sort.Slice(out, func(i, j int) bool {
		a, b := stats[out[i].Keyword], stats[out[j].Keyword]
		if a.count != b.count {
			return a.count > b.count
		}
		if a.last != b.last {
			return a.last > b.last
		}
		return out[i].Keyword < out[j].Keyword
	})
	return out
}
