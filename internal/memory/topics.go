// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package memory

import (
	"sort"

	"github.com/pdiddy/omnimind/internal/textutil"
	"github.com/pdiddy/omnimind/pkg/types"
)

// DefaultWindow is the number of recent exchanges topic and context
// derivation look at when callers pass zero.
const DefaultWindow = 8

// Topic maps a set of keyword phrases to a coarse topic label.
type Topic struct {
	Label    string
	Keywords []string
}

// TopicTable is checked in order; a message takes the label of the first
// entry with a matching keyword. Keywords match on word boundaries.
var TopicTable = []Topic{
	{Label: "news", Keywords: []string{"news", "headlines", "current events", "today"}},
	{Label: "question", Keywords: []string{"what", "how", "why", "when", "where", "who", "explain"}},
	{Label: "search", Keywords: []string{"search", "find", "look up", "google"}},
	{Label: "coding", Keywords: []string{"code", "program", "programming", "script", "function", "bug"}},
	{Label: "memory", Keywords: []string{"memory", "remember", "recall", "earlier"}},
	{Label: "ai", Keywords: []string{"ai", "artificial intelligence", "machine learning", "llm"}},
}

// Classify returns the topic label for text, or "" when nothing matches.
func Classify(text string) string {
	norm := textutil.Normalize(text)
	for _, t := range TopicTable {
		if textutil.ContainsAny(norm, t.Keywords) {
			return t.Label
		}
	}
	return ""
}

// window returns the last n exchanges of history.
func window(history []types.Exchange, n int) []types.Exchange {
	if n <= 0 {
		n = DefaultWindow
	}
	if len(history) > n {
		return history[len(history)-n:]
	}
	return history
}

// RecentTopics derives a TopicProfile from the last n exchanges. Topics are
// ranked by frequency, ties going to the most recent occurrence. Style and
// interests are folded over the window the same way UpdateProfile folds
// them over the whole history. The result depends only on its arguments.
func RecentTopics(history []types.Exchange, n int) types.TopicProfile {
	recent := window(history, n)

	type stat struct {
		count int
		last  int
	}
	stats := make(map[string]*stat)
	style := types.StyleBalanced
	var interests []string

	for i, ex := range recent {
		if label := Classify(ex.UserText); label != "" {
			s, ok := stats[label]
			if !ok {
				s = &stat{}
				stats[label] = s
			}
			s.count++
			s.last = i
		}
		style = NextStyle(style, ex.UserText)
		for _, interest := range DetectInterests(ex.UserText) {
			interests = MergeInterest(interests, interest)
		}
	}

	labels := make([]string, 0, len(stats))
	for label := range stats {
		labels = append(labels, label)
	}
	sort.Slice(labels, func(i, j int) bool {
		a, b := stats[labels[i]], stats[labels[j]]
		if a.count != b.count {
			return a.count > b.count
		}
		return a.last > b.last
	})

	return types.TopicProfile{
		RecentTopics:       labels,
		CommunicationStyle: style,
		Interests:          interests,
	}
}

// Flow describes where the conversation stands.
type Flow struct {
	// Continuing is false for a conversation with fewer than two exchanges.
	Continuing bool `json:"continuing" yaml:"continuing"`

	// Topics lists the labels seen in the last flowWindow exchanges in
	// first-seen order.
	Topics []string `json:"topics" yaml:"topics"`

	// QuestionPattern is set when more than two recent messages were questions.
	QuestionPattern bool   `json:"question_pattern" yaml:"question_pattern"`
	Depth           int    `json:"depth" yaml:"depth"`
	LastTopic       string `json:"last_topic,omitempty" yaml:"last_topic,omitempty"`
}

const flowWindow = 5

var questionWords = []string{"why", "how", "what", "when", "where", "who"}

// AnalyzeFlow inspects the tail of history for topic continuity.
func AnalyzeFlow(history []types.Exchange) Flow {
	f := Flow{Depth: len(history)}
	if len(history) < 2 {
		return f
	}
	f.Continuing = true

	seen := make(map[string]bool)
	questions := 0
	for _, ex := range window(history, flowWindow) {
		norm := textutil.Normalize(ex.UserText)
		if textutil.ContainsAny(norm, questionWords) {
			questions++
		}
		label := Classify(ex.UserText)
		if label == "" || label == "question" {
			continue
		}
		if !seen[label] {
			seen[label] = true
			f.Topics = append(f.Topics, label)
		}
		f.LastTopic = label
	}
	f.QuestionPattern = questions > 2
	return f
}
