// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package memory keeps the durable conversation history and derives topic,
// context and profile state from it. History is append-only; everything
// else is recomputed from a history slice or merged into the profile one
// exchange at a time.
package memory

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/pdiddy/omnimind/internal/logging"
	"github.com/pdiddy/omnimind/pkg/types"
)

// Memory is the single owner of the conversation history and user profile.
// Construct one per process and share it.
type Memory struct {
	mu       sync.Mutex
	history  HistoryStore
	profiles *ProfileStore
	window   int
	log      *zap.Logger

	// now is swapped in tests.
	now func() time.Time
}

// Open builds a Memory over cfg.Dir with the configured history backend.
func Open(cfg types.MemoryConfig, log *zap.Logger) (*Memory, error) {
	log = logging.OrNop(log)

	var (
		history HistoryStore
		err     error
	)
	switch cfg.Backend {
	case types.MemoryJSON, "":
		history, err = NewJSONStore(cfg.Dir, log)
	case types.MemorySQLite:
		history, err = NewSQLiteStore(cfg.Dir, log)
	default:
		return nil, fmt.Errorf("unknown memory backend %q", cfg.Backend)
	}
	if err != nil {
		return nil, err
	}

	profiles, err := NewProfileStore(cfg.Dir, log)
	if err != nil {
		history.Close()
		return nil, err
	}
	return New(history, profiles, cfg.Window, log), nil
}

// New wires a Memory from existing stores. A non-positive window selects
// DefaultWindow.
func New(history HistoryStore, profiles *ProfileStore, window int, log *zap.Logger) *Memory {
	if window <= 0 {
		window = DefaultWindow
	}
	return &Memory{
		history:  history,
		profiles: profiles,
		window:   window,
		log:      logging.OrNop(log),
		now:      time.Now,
	}
}

// Window returns the default derivation window.
func (m *Memory) Window() int { return m.window }

// Close releases the history store.
func (m *Memory) Close() error { return m.history.Close() }

// Append records one exchange and folds it into the user profile. Appends
// are serialized, so concurrent callers never lose each other's writes.
// A profile write failure is logged and does not fail the append; the
// history is the record of truth.
func (m *Memory) Append(ctx context.Context, userText, assistantText, skill string) (types.Exchange, error) {
	ex := types.Exchange{
		ID:            uuid.NewString(),
		UserText:      userText,
		AssistantText: assistantText,
		SkillExecuted: skill,
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	ex.Timestamp = m.now()
	if err := m.history.Append(ctx, ex); err != nil {
		return types.Exchange{}, fmt.Errorf("appending exchange: %w", err)
	}

	if m.profiles != nil {
		p := UpdateProfile(m.profiles.Load(), userText, assistantText)
		p.UpdatedAt = ex.Timestamp
		if err := m.profiles.Save(p); err != nil {
			m.log.Warn("profile not saved", zap.Error(err))
		}
	}

	m.log.Debug("exchange recorded",
		zap.String("id", ex.ID),
		zap.String("skill", skill),
		zap.String("topic", Classify(userText)))
	return ex, nil
}

// Recent returns the last n exchanges, or all of them when n <= 0.
func (m *Memory) Recent(ctx context.Context, n int) ([]types.Exchange, error) {
	return m.history.Recent(ctx, n)
}

// Topics derives the TopicProfile over the default window.
func (m *Memory) Topics(ctx context.Context) (types.TopicProfile, error) {
	h, err := m.history.Recent(ctx, m.window)
	if err != nil {
		return types.TopicProfile{}, err
	}
	return RecentTopics(h, m.window), nil
}

// Context renders the ContextBlock for current over the default window.
func (m *Memory) Context(ctx context.Context, current string) (string, error) {
	// AnalyzeFlow needs the true depth, so read the whole history.
	h, err := m.history.Recent(ctx, 0)
	if err != nil {
		return "", err
	}
	return ContextBlock(h, m.window, current), nil
}

// Keywords counts keywords over the default window.
func (m *Memory) Keywords(ctx context.Context) ([]KeywordCount, error) {
	h, err := m.history.Recent(ctx, m.window)
	if err != nil {
		return nil, err
	}
	return KeywordStats(h, m.window), nil
}

// Flow analyzes the whole history.
func (m *Memory) Flow(ctx context.Context) (Flow, error) {
	h, err := m.history.Recent(ctx, 0)
	if err != nil {
		return Flow{}, err
	}
	return AnalyzeFlow(h), nil
}

// Profile returns the stored user profile. Its Summary is regenerated so a
// profile written by an older version still renders consistently.
func (m *Memory) Profile() types.UserProfile {
	if m.profiles == nil {
		return types.UserProfile{Summary: ProfileSummary(types.UserProfile{})}
	}
	p := m.profiles.Load()
	p.Summary = ProfileSummary(p)
	return p
}
