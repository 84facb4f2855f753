// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package memory

import (
	"fmt"
	"strings"

	"github.com/pdiddy/omnimind/internal/textutil"
	"github.com/pdiddy/omnimind/pkg/types"
)

// Word-count thresholds for the communication style heuristic.
const (
	detailedAbove = 20
	conciseBelow  = 5
)

// InterestTable maps keyword phrases to long-lived interest labels. Unlike
// topics, a message may contribute several interests; they are merged in
// table order.
var InterestTable = []Topic{
	{Label: "news", Keywords: []string{"news", "current", "politics", "election"}},
	{Label: "technology", Keywords: []string{"tech", "technology", "ai", "computer", "software", "programming"}},
	{Label: "science", Keywords: []string{"science", "research", "study", "physics", "biology"}},
	{Label: "music", Keywords: []string{"music", "song", "album", "playlist"}},
	{Label: "sports", Keywords: []string{"sports", "football", "cricket", "basketball", "match"}},
	{Label: "finance", Keywords: []string{"stock", "stocks", "market", "finance", "crypto", "investing"}},
	{Label: "health", Keywords: []string{"health", "fitness", "diet", "sleep"}},
}

// DetectInterests returns the interest labels text mentions, in table order.
func DetectInterests(text string) []string {
	norm := textutil.Normalize(text)
	var out []string
	for _, t := range InterestTable {
		if textutil.ContainsAny(norm, t.Keywords) {
			out = append(out, t.Label)
		}
	}
	return out
}

// MergeInterest adds interest to the set, evicting the oldest entry when
// the set would exceed types.MaxInterests. A label already present keeps
// its position. The input slice is never modified.
func MergeInterest(interests []string, interest string) []string {
	for _, have := range interests {
		if have == interest {
			return interests
		}
	}
	out := make([]string, 0, len(interests)+1)
	out = append(out, interests...)
	out = append(out, interest)
	if len(out) > types.MaxInterests {
		out = out[len(out)-types.MaxInterests:]
	}
	return out
}

// NextStyle applies the message-length heuristic: more than 20 words is
// detailed, fewer than 5 is concise, anything between keeps current.
func NextStyle(current types.CommunicationStyle, userText string) types.CommunicationStyle {
	n := textutil.WordCount(userText)
	switch {
	case n > detailedAbove:
		return types.StyleDetailed
	case n < conciseBelow:
		return types.StyleConcise
	case current == "":
		return types.StyleBalanced
	default:
		return current
	}
}

// UpdateProfile folds one exchange into p and regenerates the summary.
// UpdatedAt is left to the caller so the result depends only on the inputs.
func UpdateProfile(p types.UserProfile, userText, assistantText string) types.UserProfile {
	out := p
	out.Interests = append([]string(nil), p.Interests...)
	for _, interest := range DetectInterests(userText) {
		out.Interests = MergeInterest(out.Interests, interest)
	}
	out.CommunicationStyle = NextStyle(p.CommunicationStyle, userText)
	out.Exchanges = p.Exchanges + 1
	out.Summary = ProfileSummary(out)
	return out
}

// ProfileSummary renders p as one sentence for the chat system prompt.
func ProfileSummary(p types.UserProfile) string {
	style := p.CommunicationStyle
	if style == "" {
		style = types.StyleBalanced
	}
	interests := "nothing yet"
	if len(p.Interests) > 0 {
		interests = strings.Join(p.Interests, ", ")
	}
	return fmt.Sprintf("User prefers %s responses. Interested in: %s. Total conversations: %d",
		style, interests, p.Exchanges)
}
