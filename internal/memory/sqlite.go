// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package memory

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "github.com/mattn/go-sqlite3"
	"go.uber.org/zap"

	"github.com/pdiddy/omnimind/internal/logging"
	"github.com/pdiddy/omnimind/pkg/types"
)

const dbFile = "history.db"

// SQLiteStore keeps the history in a SQLite table ordered by an
// autoincrement sequence, so append order survives clock skew.
type SQLiteStore struct {
	db  *sql.DB
	log *zap.Logger
}

// NewSQLiteStore opens or creates dir/history.db.
func NewSQLiteStore(dir string, log *zap.Logger) (*SQLiteStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("creating memory directory: %w", err)
	}

	dbPath := filepath.Join(dir, dbFile)
	db, err := sql.Open("sqlite3", dbPath+"?_journal_mode=WAL&_busy_timeout=5000")
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}
	// One writer connection; appends queue here instead of failing with SQLITE_BUSY.
	db.SetMaxOpenConns(1)

	s := &SQLiteStore{db: db, log: logging.OrNop(log)}
	if err := s.createSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating schema: %w", err)
	}
	return s, nil
}

func (s *SQLiteStore) createSchema() error {
	_, err := s.db.Exec(`CREATE TABLE IF NOT EXISTS exchanges (
		seq INTEGER PRIMARY KEY AUTOINCREMENT,
		id TEXT NOT NULL UNIQUE,
		ts TEXT NOT NULL,
		user_text TEXT NOT NULL,
		assistant_text TEXT NOT NULL,
		skill TEXT
	)`)
	return err
}

// Close releases the database connection.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

// Append inserts ex as the newest row.
func (s *SQLiteStore) Append(ctx context.Context, ex types.Exchange) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO exchanges (id, ts, user_text, assistant_text, skill) VALUES (?, ?, ?, ?, ?)`,
		ex.ID, ex.Timestamp.UTC().Format(time.RFC3339Nano), ex.UserText, ex.AssistantText, nullString(ex.SkillExecuted))
	if err != nil {
		return fmt.Errorf("inserting exchange %s: %w", ex.ID, err)
	}
	return nil
}

// Recent returns the last n rows in append order.
func (s *SQLiteStore) Recent(ctx context.Context, n int) ([]types.Exchange, error) {
	limit := n
	if limit <= 0 {
		limit = -1
	}
	rows, err := s.db.QueryContext(ctx, `SELECT id, ts, user_text, assistant_text, skill FROM (
			SELECT seq, id, ts, user_text, assistant_text, skill FROM exchanges ORDER BY seq DESC LIMIT ?
		) ORDER BY seq ASC`, limit)
	if err != nil {
		return nil, fmt.Errorf("querying exchanges: %w", err)
	}
	defer rows.Close()

	var out []types.Exchange
	for rows.Next() {
		var (
			ex    types.Exchange
			ts    string
			skill sql.NullString
		)
		if err := rows.Scan(&ex.ID, &ts, &ex.UserText, &ex.AssistantText, &skill); err != nil {
			return nil, fmt.Errorf("scanning exchange: %w", err)
		}
		if ex.Timestamp, err = time.Parse(time.RFC3339Nano, ts); err != nil {
			s.log.Warn("unparseable timestamp, keeping exchange with zero time",
				zap.String("id", ex.ID), zap.String("timestamp", ts), zap.Error(err))
		}
		ex.SkillExecuted = skill.String
		out = append(out, ex)
	}
	return out, rows.Err()
}

func nullString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}
