package store

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	// Pure Go SQLite driver (no CGO).
	_ "modernc.org/sqlite"
)

// Store persists generated quizzes in SQLite. It is safe for concurrent use.
type Store struct {
	db  *sql.DB
	log *slog.Logger
}

// Open creates a Store backed by the SQLite database at dsn, applying
// pragmas and creating the schema if needed. A plain file path has its
// parent directory created.
func Open(dsn string, log *slog.Logger) (*Store, error) {
	if log == nil {
		log = slog.Default()
	}
	if isFilePath(dsn) {
		if err := os.MkdirAll(filepath.Dir(dsn), 0o755); err != nil {
			return nil, fmt.Errorf("create database dir: %w", err)
		}
	}

	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	// Pragmas apply per connection, so the pool holds exactly one.
	db.SetMaxOpenConns(1)

	if err := applyPragmas(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("apply pragmas: %w", err)
	}
	if err := migrate(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}

	log.Info("quiz store opened", "dsn", dsn)
	return &Store{db: db, log: log}, nil
}

// DB returns the underlying *sql.DB for raw queries.
func (s *Store) DB() *sql.DB {
	return s.db
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// Ping checks that the database is reachable.
func (s *Store) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

// applyPragmas configures SQLite for a small single-host service.
func applyPragmas(db *sql.DB) error {
	pragmas := []string{
		"PRAGMA journal_mode = WAL",
		"PRAGMA busy_timeout = 5000",
		"PRAGMA foreign_keys = ON",
		"PRAGMA synchronous = NORMAL",
	}
	for _, p := range pragmas {
		if _, err := db.Exec(p); err != nil {
			return fmt.Errorf("%s: %w", p, err)
		}
	}
	return nil
}

var schema = []string{
	`CREATE TABLE IF NOT EXISTS quizzes (
		id TEXT PRIMARY KEY,
		filename TEXT NOT NULL DEFAULT '',
		content_hash TEXT NOT NULL,
		question_type TEXT NOT NULL,
		difficulty TEXT NOT NULL,
		requested_count INTEGER NOT NULL,
		placeholder INTEGER NOT NULL DEFAULT 0,
		analysis TEXT NOT NULL DEFAULT '{}',
		created_at INTEGER NOT NULL
	)`,
	`CREATE INDEX IF NOT EXISTS idx_quizzes_content_hash ON quizzes(content_hash)`,
	`CREATE INDEX IF NOT EXISTS idx_quizzes_created_at ON quizzes(created_at)`,
	`CREATE TABLE IF NOT EXISTS questions (
		quiz_id TEXT NOT NULL REFERENCES quizzes(id) ON DELETE CASCADE,
		position INTEGER NOT NULL,
		question_id TEXT NOT NULL,
		type TEXT NOT NULL,
		stem TEXT NOT NULL,
		options TEXT NOT NULL,
		correct_index INTEGER,
		correct_text TEXT NOT NULL,
		explanation TEXT NOT NULL,
		difficulty TEXT NOT NULL,
		source_sentence INTEGER NOT NULL,
		PRIMARY KEY (quiz_id, position)
	)`,
}

func migrate(db *sql.DB) error {
	for _, stmt := range schema {
		if _, err := db.Exec(stmt); err != nil {
			return err
		}
	}
	return nil
}

// isFilePath reports whether dsn names a plain database file rather than an
// in-memory database or a URI.
func isFilePath(dsn string) bool {
	return dsn != "" && dsn != ":memory:" && filepath.Dir(dsn) != "." && !strings.HasPrefix(dsn, "file:")
}
