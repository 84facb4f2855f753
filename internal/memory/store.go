// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package memory

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/pdiddy/omnimind/internal/logging"
	"github.com/pdiddy/omnimind/pkg/types"
)

const (
	historyFile = "conversations.json"
	profileFile = "user_profile.json"
)

// HistoryStore is the durable, append-only exchange log. Implementations
// serialize Append; Recent returns the last n exchanges in append order
// (all of them when n <= 0).
type HistoryStore interface {
	Append(ctx context.Context, ex types.Exchange) error
	Recent(ctx context.Context, n int) ([]types.Exchange, error)
	Close() error
}

// JSONStore keeps the history in one JSON document of the form
// {"history":[...]}. Every append rewrites the file through a temp file and
// rename, so readers always see a complete document.
type JSONStore struct {
	mu   sync.Mutex
	path string
	log  *zap.Logger
}

// NewJSONStore returns a store backed by dir/conversations.json, creating
// dir when needed. The file itself is created on first append.
func NewJSONStore(dir string, log *zap.Logger) (*JSONStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("creating memory directory: %w", err)
	}
	return &JSONStore{path: filepath.Join(dir, historyFile), log: logging.OrNop(log)}, nil
}

// Path returns the backing file.
func (s *JSONStore) Path() string { return s.path }

// Append adds ex to the end of the history. A file that cannot be read is
// left untouched and the error returned. A file that is not valid JSON is
// moved aside to <path>.corrupt-<unix> before a new history is started.
func (s *JSONStore) Append(ctx context.Context, ex types.Exchange) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	doc, err := s.read()
	switch {
	case errors.Is(err, errCorruptHistory):
		if err := s.quarantine(); err != nil {
			return err
		}
	case err != nil:
		return err
	}
	doc.History = append(doc.History, toRecord(ex))

	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return fmt.Errorf("marshaling history: %w", err)
	}
	if err := writeFileAtomic(s.path, data); err != nil {
		return fmt.Errorf("writing history: %w", err)
	}
	return nil
}

// Recent returns the last n exchanges from the last committed file. A
// corrupt file reads as empty.
func (s *JSONStore) Recent(ctx context.Context, n int) ([]types.Exchange, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	doc, err := s.read()
	if err != nil && !errors.Is(err, errCorruptHistory) {
		return nil, err
	}
	records := doc.History
	if n > 0 && len(records) > n {
		records = records[len(records)-n:]
	}
	out := make([]types.Exchange, len(records))
	for i, r := range records {
		out[i] = r.exchange()
	}
	return out, nil
}

// Close is a no-op; the file is not held open between calls.
func (s *JSONStore) Close() error { return nil }

var errCorruptHistory = errors.New("history file is not valid JSON")

// read loads the document. A missing file is an empty history. A file that
// does not decode returns an empty document with errCorruptHistory; any
// other failure is returned as is.
func (s *JSONStore) read() (historyDoc, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return historyDoc{}, nil
		}
		return historyDoc{}, fmt.Errorf("reading history %s: %w", s.path, err)
	}
	var doc historyDoc
	if err := json.Unmarshal(data, &doc); err != nil {
		s.log.Warn("history corrupt, treating as empty", zap.String("path", s.path), zap.Error(err))
		return historyDoc{}, fmt.Errorf("%w: %v", errCorruptHistory, err)
	}
	for i, r := range doc.History {
		if r.Timestamp.raw != nil {
			s.log.Warn("unparseable timestamp, keeping exchange with zero time",
				zap.Int("index", i),
				zap.String("id", r.ID),
				zap.ByteString("timestamp", r.Timestamp.raw))
		}
	}
	return doc, nil
}

// quarantine renames the corrupt history out of the way so a new one can
// be started without destroying it.
func (s *JSONStore) quarantine() error {
	aside := fmt.Sprintf("%s.corrupt-%d", s.path, time.Now().Unix())
	if err := os.Rename(s.path, aside); err != nil {
		return fmt.Errorf("moving corrupt history aside: %w", err)
	}
	s.log.Warn("corrupt history moved aside", zap.String("path", aside))
	return nil
}

type historyDoc struct {
	History []historyRecord `json:"history"`
}

type historyRecord struct {
	ID        string   `json:"id,omitempty"`
	Timestamp flexTime `json:"timestamp"`
	User      string   `json:"user"`
	Assistant string   `json:"assistant"`
	Skill     string   `json:"skill_executed,omitempty"`
}

func toRecord(ex types.Exchange) historyRecord {
	return historyRecord{
		ID:        ex.ID,
		Timestamp: flexTime{Time: ex.Timestamp},
		User:      ex.UserText,
		Assistant: ex.AssistantText,
		Skill:     ex.SkillExecuted,
	}
}

func (r historyRecord) exchange() types.Exchange {
	return types.Exchange{
		ID:            r.ID,
		Timestamp:     r.Timestamp.Time,
		UserText:      r.User,
		AssistantText: r.Assistant,
		SkillExecuted: r.Skill,
	}
}

// flexTime writes RFC 3339 and also reads Unix epoch seconds, the format of
// history files written by older assistant versions. Any other value decodes
// to the zero time and is kept verbatim in raw so a rewrite preserves it.
type flexTime struct {
	time.Time
	raw json.RawMessage
}

func (t flexTime) MarshalJSON() ([]byte, error) {
	if t.raw != nil {
		return t.raw, nil
	}
	return json.Marshal(t.UTC().Format(time.RFC3339Nano))
}

func (t *flexTime) UnmarshalJSON(b []byte) error {
	if string(b) == "null" {
		return nil
	}
	var secs float64
	if err := json.Unmarshal(b, &secs); err == nil {
		whole, frac := math.Modf(secs)
		t.Time = time.Unix(int64(whole), int64(frac*1e9)).UTC()
		return nil
	}
	var s string
	if err := json.Unmarshal(b, &s); err == nil {
		if parsed, err := time.Parse(time.RFC3339Nano, s); err == nil {
			t.Time = parsed
			return nil
		}
	}
	t.Time = time.Time{}
	t.raw = append(json.RawMessage(nil), b...)
	return nil
}

// ProfileStore persists the UserProfile as a JSON file.
type ProfileStore struct {
	path string
	log  *zap.Logger
}

// NewProfileStore returns a store backed by dir/user_profile.json.
func NewProfileStore(dir string, log *zap.Logger) (*ProfileStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("creating memory directory: %w", err)
	}
	return &ProfileStore{path: filepath.Join(dir, profileFile), log: logging.OrNop(log)}, nil
}

// Load returns the stored profile. A missing or corrupt file yields the
// zero profile.
func (s *ProfileStore) Load() types.UserProfile {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if !errors.Is(err, os.ErrNotExist) {
			s.log.Warn("profile unreadable, starting fresh", zap.String("path", s.path), zap.Error(err))
		}
		return types.UserProfile{}
	}
	var p types.UserProfile
	if err := json.Unmarshal(data, &p); err != nil {
		s.log.Warn("profile corrupt, starting fresh", zap.String("path", s.path), zap.Error(err))
		return types.UserProfile{}
	}
	return p
}

// Save replaces the stored profile.
func (s *ProfileStore) Save(p types.UserProfile) error {
	data, err := json.MarshalIndent(p, "", "  ")
	if err != nil {
		return fmt.Errorf("marshaling profile: %w", err)
	}
	if err := writeFileAtomic(s.path, data); err != nil {
		return fmt.Errorf("writing profile: %w", err)
	}
	return nil
}

// writeFileAtomic writes data to a temp file next to path and renames it
// over path.
func writeFileAtomic(path string, data []byte) error {
	tmp, err := os.CreateTemp(filepath.Dir(path), "."+filepath.Base(path)+".*.tmp")
	if err != nil {
		return err
	}
	tmpName := tmp.Name()
	defer os.Remove(tmpName)

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	return os.Rename(tmpName, path)
}
