// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package memory

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/pdiddy/omnimind/pkg/types"
)

func words(n int) string {
	return strings.TrimSpace(strings.Repeat("word ", n))
}

func TestNextStyle(t *testing.T) {
	tests := []struct {
		name    string
		current types.CommunicationStyle
		text    string
		want    types.CommunicationStyle
	}{
		{"short message", types.StyleDetailed, words(4), types.StyleConcise},
		{"five words keeps style", types.StyleDetailed, words(5), types.StyleDetailed},
		{"twenty words keeps style", types.StyleConcise, words(20), types.StyleConcise},
		{"long message", types.StyleConcise, words(21), types.StyleDetailed},
		{"unset becomes balanced", "", words(10), types.StyleBalanced},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, NextStyle(tt.current, tt.text))
		})
	}
}

func TestDetectInterests(t *testing.T) {
	assert.Equal(t, []string{"news", "technology"}, DetectInterests("tech news"))
	assert.Equal(t, []string{"technology"}, DetectInterests("tell me about AI"))
	assert.Empty(t, DetectInterests("she said hello"))
}

func TestMergeInterestEvictsOldest(t *testing.T) {
	full := []string{"news", "technology", "science", "music", "sports"}

	got := MergeInterest(full, "finance")
	assert.Equal(t, []string{"technology", "science", "music", "sports", "finance"}, got)
	assert.Equal(t, []string{"news", "technology", "science", "music", "sports"}, full, "input must not be modified")

	assert.Equal(t, full, MergeInterest(full, "science"), "existing interest keeps its place")
	assert.Equal(t, []string{"news"}, MergeInterest(nil, "news"))
}

func TestUpdateProfile(t *testing.T) {
	p := UpdateProfile(types.UserProfile{}, "tech news", "Here is the latest.")
	assert.Equal(t, types.StyleConcise, p.CommunicationStyle)
	assert.Equal(t, []string{"news", "technology"}, p.Interests)
	assert.Equal(t, 1, p.Exchanges)
	assert.Equal(t, "User prefers concise responses. Interested in: news, technology. Total conversations: 1", p.Summary)

	p = UpdateProfile(p, "I would like to know more about recent physics research results that were published in journals during the last couple of months", "...")
	assert.Equal(t, types.StyleDetailed, p.CommunicationStyle)
	assert.Equal(t, []string{"news", "technology", "science"}, p.Interests)
	assert.Equal(t, 2, p.Exchanges)

	p = UpdateProfile(p, "play my favourite song list now", "...")
	assert.Equal(t, types.StyleDetailed, p.CommunicationStyle, "six words leaves style unchanged")
	assert.Equal(t, []string{"news", "technology", "science", "music"}, p.Interests)

	p = UpdateProfile(p, "football match", "...")
	p = UpdateProfile(p, "stock market", "...")
	assert.Equal(t, []string{"technology", "science", "music", "sports", "finance"}, p.Interests)
	assert.Len(t, p.Interests, types.MaxInterests)
	assert.Equal(t, 5, p.Exchanges)
}

func TestUpdateProfileDeterministic(t *testing.T) {
	base := types.UserProfile{Interests: []string{"news"}, CommunicationStyle: types.StyleBalanced, Exchanges: 3}
	a := UpdateProfile(base, "latest science study", "x")
	b := UpdateProfile(base, "latest science study", "x")
	assert.Equal(t, a, b)
	assert.Equal(t, []string{"news"}, base.Interests, "input must not be modified")
}

func TestProfileSummaryDefaults(t *testing.T) {
	assert.Equal(t, "User prefers balanced responses. Interested in: nothing yet. Total conversations: 0",
		ProfileSummary(types.UserProfile{}))
}
