// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package search

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/omnimind/pkg/types"
)

const rssFixture = `<?xml version="1.0" encoding="UTF-8"?>
<rss version="2.0"><channel><title>Top stories</title>
  <item><title><![CDATA[<b>Monsoon</b> arrives early]]></title>
    <link> https://news.example/monsoon </link>
    <description>&lt;p&gt;Rain &amp;amp; relief across the south.&lt;/p&gt;</description></item>
  <item><title>No link</title></item>
  <item><title>Markets close higher</title><link>https://news.example/markets</link></item>
  <item><title>Third story</title><link>https://news.example/third</link></item>
</channel></rss>`

func rssServer(t *testing.T, status int, body string) (*httptest.Server, *atomic.Int32) {
	t.Helper()
	var hits atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		assert.Equal(t, "omnimind-test", r.Header.Get("User-Agent"))
		w.Header().Set("Content-Type", "application/rss+xml")
		w.WriteHeader(status)
		w.Write([]byte(body))
	}))
	t.Cleanup(srv.Close)
	return srv, &hits
}

func TestNewsHeadlines(t *testing.T) {
	srv, _ := rssServer(t, http.StatusOK, rssFixture)
	f := NewNewsFetcher(srv.Client(), testHTTP, map[string][]string{"india": {srv.URL + "/rss"}}, nil)

	got, err := f.Headlines(context.Background(), "india", 2)
	require.NoError(t, err)
	require.Len(t, got, 2)

	assert.Equal(t, "Monsoon arrives early", got[0].Title)
	assert.Equal(t, "https://news.example/monsoon", got[0].URL)
	assert.Equal(t, "Rain & relief across the south.", got[0].Snippet)
	assert.Equal(t, types.EngineNews, got[0].Source)
	assert.Equal(t, "Markets close higher", got[1].Title, "items without a link are skipped")
}

func TestNewsFirstNonEmptyFeedWins(t *testing.T) {
	broken, brokenHits := rssServer(t, http.StatusBadGateway, "")
	empty, emptyHits := rssServer(t, http.StatusOK, `<rss><channel></channel></rss>`)
	good, goodHits := rssServer(t, http.StatusOK, rssFixture)
	never, neverHits := rssServer(t, http.StatusOK, rssFixture)

	f := NewNewsFetcher(nil, testHTTP, map[string][]string{
		"world": {broken.URL, empty.URL, good.URL, never.URL},
	}, nil)

	got, err := f.Headlines(context.Background(), "world", 5)
	require.NoError(t, err)
	assert.Len(t, got, 3)
	assert.Equal(t, int32(1), brokenHits.Load())
	assert.Equal(t, int32(1), emptyHits.Load())
	assert.Equal(t, int32(1), goodHits.Load())
	assert.Zero(t, neverHits.Load(), "feeds after the first non-empty one are not fetched")
}

func TestNewsFailures(t *testing.T) {
	t.Run("unknown key", func(t *testing.T) {
		f := NewNewsFetcher(nil, testHTTP, map[string][]string{"world": {"http://unused"}}, nil)
		_, err := f.Headlines(context.Background(), "sports", 5)
		assert.Equal(t, KindUnconfigured, KindOf(err))
	})

	t.Run("every feed fails", func(t *testing.T) {
		a, _ := rssServer(t, http.StatusInternalServerError, "")
		b, _ := rssServer(t, http.StatusOK, "<rss><channel><item>")
		f := NewNewsFetcher(nil, testHTTP, map[string][]string{"breaking": {a.URL, b.URL}}, nil)

		_, err := f.Headlines(context.Background(), "breaking", 5)
		require.Error(t, err)
		assert.Equal(t, KindMalformed, KindOf(err), "the last feed's failure is reported")
	})

	t.Run("reachable but empty", func(t *testing.T) {
		srv, _ := rssServer(t, http.StatusOK, `<rss><channel></channel></rss>`)
		f := NewNewsFetcher(nil, testHTTP, map[string][]string{"default": {srv.URL}}, nil)

		got, err := f.Headlines(context.Background(), "default", 5)
		require.NoError(t, err)
		assert.Empty(t, got)
	})
}
