//go:build !js

package history

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite" // SQLite driver (CGO-free)

	"spaedge/pkg/report"
)

// Store keeps the URIs tried in the TUI, one row per distinct input.
type Store struct {
	db *sql.DB
}

// Open opens (creating if needed) the history database at dbPath.
func Open(ctx context.Context, dbPath string) (*Store, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0o755); err != nil {
		return nil, fmt.Errorf("creating history dir: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open history db: %w", err)
	}
	db.SetMaxOpenConns(1)

	if err := applyPragmas(ctx, db); err != nil {
		db.Close()
		return nil, err
	}
	if err := ensureSchema(ctx, db); err != nil {
		db.Close()
		return nil, err
	}
	return &Store{db: db}, nil
}

func applyPragmas(ctx context.Context, db *sql.DB) error {
	if _, err := db.ExecContext(ctx, "PRAGMA journal_mode=WAL;"); err != nil {
		return fmt.Errorf("set WAL: %w", err)
	}
	if _, err := db.ExecContext(ctx, "PRAGMA busy_timeout=5000;"); err != nil {
		return fmt.Errorf("set busy_timeout: %w", err)
	}
	return nil
}

func ensureSchema(ctx context.Context, db *sql.DB) error {
	create := `
	CREATE TABLE IF NOT EXISTS attempts (
		input TEXT NOT NULL PRIMARY KEY,
		output TEXT NOT NULL,
		rewritten INTEGER NOT NULL,
		error TEXT NOT NULL,
		hits INTEGER NOT NULL,
		last_seen DATETIME NOT NULL
	);
	CREATE INDEX IF NOT EXISTS idx_attempts_last_seen ON attempts(last_seen);
	`
	if _, err := db.ExecContext(ctx, create); err != nil {
		return fmt.Errorf("ensure schema: %w", err)
	}
	return nil
}

// Record upserts o, bumping its hit count.
func (s *Store) Record(ctx context.Context, o report.Outcome) error {
	return s.recordAt(ctx, o, time.Now().UTC())
}

func (s *Store) recordAt(ctx context.Context, o report.Outcome, now time.Time) error {
	errText := ""
	if o.Err != nil {
		errText = o.Err.Error()
	}
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO attempts(input, output, rewritten, error, hits, last_seen)
		VALUES(?, ?, ?, ?, 1, ?)
		ON CONFLICT(input) DO UPDATE SET
			output = excluded.output,
			rewritten = excluded.rewritten,
			error = excluded.error,
			hits = attempts.hits + 1,
			last_seen = excluded.last_seen`,
		o.Input, o.Output, o.Rewritten, errText, now)
	if err != nil {
		return fmt.Errorf("record %q: %w", o.Input, err)
	}
	return nil
}

// Recent returns up to limit entries, most recently seen first.
func (s *Store) Recent(ctx context.Context, limit int) ([]Entry, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT input, output, rewritten, error, hits, last_seen FROM attempts
		ORDER BY last_seen DESC, input ASC
		LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("load history: %w", err)
	}
	defer rows.Close()

	var entries []Entry
	for rows.Next() {
		var (
			e       Entry
			errText string
		)
		if err := rows.Scan(&e.Input, &e.Output, &e.Rewritten, &errText, &e.Hits, &e.LastSeen); err != nil {
			return nil, fmt.Errorf("scan attempt: %w", err)
		}
		e.Error = errText
		e.LastSeen = e.LastSeen.UTC()
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows error: %w", err)
	}
	return entries, nil
}

// Clear forgets everything.
func (s *Store) Clear(ctx context.Context) error {
	if _, err := s.db.ExecContext(ctx, "DELETE FROM attempts"); err != nil {
		return fmt.Errorf("clear history: %w", err)
	}
	return nil
}

func (s *Store) Close() error {
	return s.db.Close()
}
