// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package dispatch

import (
	"context"
	"errors"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/omnimind/internal/llm"
	"github.com/pdiddy/omnimind/internal/textutil"
)

func TestDecide(t *testing.T) {
	tests := []struct {
		text   string
		intent Intent
		query  string
	}{
		{"latest AI news", IntentNews, "latest AI artificial intelligence news"},
		{"What is the latest news?", IntentNews, "latest news today"},
		{"breaking news from india", IntentNews, "breaking india news"},
		{"world headlines please", IntentNews, "latest world news"},
		{"What is a goroutine", IntentChat, "What is a goroutine"},
		{"explain closures", IntentChat, "explain closures"},
		{"Search for golang generics", IntentSearch, "golang generics"},
		{"look up tide tables for Brest", IntentSearch, "tide tables for Brest"},
		{"golang generics search", IntentSearch, "golang generics"},
		{"what time is it", IntentTime, "what time is it"},
		{"what's today's date", IntentTime, "what's today's date"},
		{"What is the time?", IntentTime, "What is the time?"},
		{"what is today's date", IntentTime, "what is today's date"},
		{"what is the date of the french revolution", IntentChat, "what is the date of the french revolution"},
		{"what is the weather in Paris?", IntentWeather, "Paris"},
		{"look up the weather in Paris", IntentWeather, "Paris"},
		{"weather forecast", IntentWeather, ""},
		{"play some jazz", IntentMusic, "some jazz"},
		{"I want to hear a song", IntentMusic, "I want to hear a song"},
		{"write a python script to rename files", IntentCode, "write a python script to rename files"},
		{"hello there", IntentChat, "hello there"},
		{"  ", IntentChat, ""},
	}
	for _, tt := range tests {
		t.Run(tt.text, func(t *testing.T) {
			d := Decide(tt.text)
			assert.Equal(t, tt.intent, d.Intent)
			assert.Equal(t, tt.query, d.Query)
		})
	}
}

func TestWeatherLocation(t *testing.T) {
	tests := []struct {
		text string
		want string
	}{
		{"weather in New York today", "New York"},
		{"what's the forecast for Cape Town, right now?", "Cape Town"},
		{"weather at the airport", "the airport"},
		{"is it raining", ""},
		{"weather", ""},
	}
	for _, tt := range tests {
		t.Run(tt.text, func(t *testing.T) {
			assert.Equal(t, tt.want, WeatherLocation(tt.text))
		})
	}
}

func TestNewsFeed(t *testing.T) {
	tests := []struct {
		text string
		want string
	}{
		{"latest AI news", ""},
		{"india news", "india"},
		{"breaking world news", "world"},
		{"any breaking news", FeedBreaking},
		{"what's in the news", FeedDefault},
	}
	for _, tt := range tests {
		t.Run(tt.text, func(t *testing.T) {
			assert.Equal(t, tt.want, NewsFeed(textutil.Normalize(tt.text)))
		})
	}
}

func TestDecideKeywordsRespectWordBoundaries(t *testing.T) {
	assert.Equal(t, IntentChat, Decide("researching newsletters").Intent)
	assert.Equal(t, IntentChat, Decide("the playground was fun").Intent)
}

func TestDispatcher(t *testing.T) {
	d := NewDispatcher(nil)
	var got Decision
	d.Register(IntentSearch, SkillFunc(func(_ context.Context, dec Decision) (string, error) {
		got = dec
		return "results for " + dec.Query, nil
	}))
	d.Register(IntentChat, SkillFunc(func(context.Context, Decision) (string, error) {
		t.Error("chat must not be bindable")
		return "", nil
	}))

	res, err := d.Dispatch(context.Background(), "search for tide tables")
	require.NoError(t, err)
	assert.True(t, res.Handled)
	assert.Equal(t, "results for tide tables", res.Output)
	assert.Equal(t, "tide tables", got.Query)

	res, err = d.Dispatch(context.Background(), "what time is it")
	require.NoError(t, err)
	assert.False(t, res.Handled, "unbound intent falls through")
	assert.Equal(t, IntentTime, res.Decision.Intent)

	res, err = d.Dispatch(context.Background(), "how are you")
	require.NoError(t, err)
	assert.False(t, res.Handled)

	assert.Equal(t, []Intent{IntentSearch}, d.Intents())
}

func TestDispatcherSkillError(t *testing.T) {
	d := NewDispatcher(nil)
	d.Register(IntentMusic, SkillFunc(func(context.Context, Decision) (string, error) {
		return "", errors.New("no player")
	}))

	res, err := d.Dispatch(context.Background(), "play a song")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "music skill: no player")
	assert.True(t, res.Handled)
}

func TestTimeSkill(t *testing.T) {
	s := TimeSkill{Now: func() time.Time { return time.Date(2026, 10, 17, 15, 4, 0, 0, time.UTC) }}

	out, err := s.Run(context.Background(), Decide("what time is it"))
	require.NoError(t, err)
	assert.Equal(t, "Current time: 03:04 PM, Saturday, October 17, 2026", out)

	out, err = s.Run(context.Background(), Decide("what is today's date"))
	require.NoError(t, err)
	assert.Equal(t, "Today is Saturday, October 17, 2026", out)
}

func TestMusicSearchURL(t *testing.T) {
	u, err := url.Parse(MusicSearchURL("lofi beats"))
	require.NoError(t, err)
	assert.Equal(t, "www.youtube.com", u.Host)
	assert.Equal(t, "lofi beats no copyright OR royalty free", u.Query().Get("search_query"))

	u, err = url.Parse(MusicSearchURL("  "))
	require.NoError(t, err)
	assert.Equal(t, "royalty free music", u.Query().Get("search_query"))

	out, err := MusicSkill{}.Run(context.Background(), Decide("play lofi beats"))
	require.NoError(t, err)
	assert.True(t, strings.HasSuffix(out, MusicSearchURL("lofi beats")))
}

type stubGenerator struct {
	system, user string
	opts         llm.Options
}

func (s *stubGenerator) Generate(_ context.Context, system, user string, opts ...llm.Option) (string, error) {
	s.system, s.user = system, user
	for _, o := range opts {
		o(&s.opts)
	}
	return "Use os.Rename.\n```go\nos.Rename(a, b)\n```", nil
}

func TestCodeSkill(t *testing.T) {
	gen := &stubGenerator{}
	out, err := CodeSkill{Gen: gen}.Run(context.Background(), Decide("write a go function to rename a file"))
	require.NoError(t, err)
	assert.Contains(t, out, "os.Rename")
	assert.Equal(t, CodeSystemPrompt, gen.system)
	assert.Contains(t, gen.user, "Task: write a go function to rename a file")
	assert.Equal(t, 0.2, gen.opts.Temperature)
	assert.Equal(t, 1024, gen.opts.MaxTokens)

	_, err = CodeSkill{}.Run(context.Background(), Decide("write code"))
	assert.Error(t, err)
}
