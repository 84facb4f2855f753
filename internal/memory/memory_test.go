// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package memory

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/omnimind/pkg/types"
)

func openMemory(t *testing.T, backend types.MemoryBackend) *Memory {
	t.Helper()
	m, err := Open(types.MemoryConfig{Dir: t.TempDir(), Backend: backend, Window: 3}, nil)
	require.NoError(t, err)
	t.Cleanup(func() { m.Close() })
	return m
}

func TestOpenUnknownBackend(t *testing.T) {
	_, err := Open(types.MemoryConfig{Dir: t.TempDir(), Backend: "redis"}, nil)
	assert.ErrorContains(t, err, "unknown memory backend")
}

func TestAppendIsLosslessUnderConcurrency(t *testing.T) {
	for _, backend := range []types.MemoryBackend{types.MemoryJSON, types.MemorySQLite} {
		t.Run(string(backend), func(t *testing.T) {
			m := openMemory(t, backend)
			ctx := context.Background()
			const n = 25

			var wg sync.WaitGroup
			errs := make(chan error, n)
			for i := 0; i < n; i++ {
				wg.Add(1)
				go func(i int) {
					defer wg.Done()
					_, err := m.Append(ctx, fmt.Sprintf("message %d", i), "reply", "")
					errs <- err
				}(i)
			}
			wg.Wait()
			close(errs)
			for err := range errs {
				require.NoError(t, err)
			}

			all, err := m.Recent(ctx, 0)
			require.NoError(t, err)
			require.Len(t, all, n)

			ids := make(map[string]bool)
			texts := make(map[string]bool)
			for _, ex := range all {
				ids[ex.ID] = true
				texts[ex.UserText] = true
			}
			assert.Len(t, ids, n, "no duplicate entries")
			assert.Len(t, texts, n, "no lost updates")
			assert.Equal(t, n, m.Profile().Exchanges)
		})
	}
}

func TestMemoryLatestAINewsScenario(t *testing.T) {
	m := openMemory(t, types.MemoryJSON)
	ctx := context.Background()

	for _, u := range []string{"good morning", "show me the latest AI news", "thank you"} {
		_, err := m.Append(ctx, u, "ok", "")
		require.NoError(t, err)
	}

	topics, err := m.Topics(ctx)
	require.NoError(t, err)
	assert.Equal(t, "news", topics.TopTopic())
}

func TestMemoryAppendUpdatesProfile(t *testing.T) {
	m := openMemory(t, types.MemoryJSON)
	fixed := time.Date(2026, 5, 4, 9, 30, 0, 0, time.UTC)
	m.now = func() time.Time { return fixed }
	ctx := context.Background()

	ex, err := m.Append(ctx, "tech news", "Here you go", "news")
	require.NoError(t, err)
	assert.NotEmpty(t, ex.ID)
	assert.Equal(t, fixed, ex.Timestamp)
	assert.Equal(t, "news", ex.SkillExecuted)

	p := m.Profile()
	assert.Equal(t, types.StyleConcise, p.CommunicationStyle)
	assert.Equal(t, []string{"news", "technology"}, p.Interests)
	assert.Equal(t, 1, p.Exchanges)
	assert.True(t, fixed.Equal(p.UpdatedAt))
	assert.Equal(t, "User prefers concise responses. Interested in: news, technology. Total conversations: 1", p.Summary)
}

func TestMemoryContextAndFlow(t *testing.T) {
	m := openMemory(t, types.MemoryJSON)
	ctx := context.Background()

	block, err := m.Context(ctx, "hello")
	require.NoError(t, err)
	assert.Equal(t, EmptyContext, block)

	for _, u := range []string{"search for rust tutorials", "what about rust macros", "remember I like rust", "latest news"} {
		_, err := m.Append(ctx, u, "ok", "")
		require.NoError(t, err)
	}

	block, err = m.Context(ctx, "rust macros again")
	require.NoError(t, err)
	assert.NotContains(t, block, "search for rust tutorials", "window is 3")
	assert.Contains(t, block, "Exchange 3:\n  User: latest news")
	assert.Contains(t, block, "Current topic thread: news")

	flow, err := m.Flow(ctx)
	require.NoError(t, err)
	assert.Equal(t, 4, flow.Depth)
	assert.True(t, flow.Continuing)
}

func TestMemoryExport(t *testing.T) {
	m := openMemory(t, types.MemoryJSON)
	ctx := context.Background()
	_, err := m.Append(ctx, "latest science news", "Here it is", "news")
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, m.Export(ctx, &buf, "json"))
	var snap Snapshot
	require.NoError(t, json.Unmarshal(buf.Bytes(), &snap))
	require.Len(t, snap.Exchanges, 1)
	assert.Equal(t, "latest science news", snap.Exchanges[0].UserText)
	assert.Equal(t, "news", snap.Topics.TopTopic())
	assert.Equal(t, []string{"news", "science"}, snap.Profile.Interests)
	assert.Equal(t, []KeywordCount{
		{Keyword: "latest", Count: 1},
		{Keyword: "news", Count: 1},
		{Keyword: "science", Count: 1},
	}, snap.Keywords)

	buf.Reset()
	require.NoError(t, m.Export(ctx, &buf, "yaml"))
	var generic map[string]any
	require.NoError(t, yaml.Unmarshal(buf.Bytes(), &generic))
	assert.Contains(t, generic, "exchanges")
	assert.Contains(t, buf.String(), "user: latest science news")

	assert.ErrorContains(t, m.Export(ctx, &buf, "xml"), "unsupported export format")
}
