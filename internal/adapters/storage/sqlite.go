// Package storage provides SQLite implementations of the storage ports.
package storage

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/xvierd/tomato/internal/ports"
	"modernc.org/sqlite"
)

// ErrDuplicateSession is returned when a session ID is recorded twice.
var ErrDuplicateSession = errors.New("session already recorded")

// sqliteStorage implements the ports.Storage interface using SQLite.
type sqliteStorage struct {
	db       *sql.DB
	kv       ports.Store
	sessions ports.SessionLog
}

// Ensure sqliteStorage implements ports.Storage.
var _ ports.Storage = (*sqliteStorage)(nil)

// New creates a new SQLite storage instance.
func New(dbPath string) (ports.Storage, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// A :memory: database lives inside one connection.
	db.SetMaxOpenConns(1)

	pragmas := []string{
		"PRAGMA journal_mode = WAL",
		"PRAGMA busy_timeout = 5000",
	}
	for _, p := range pragmas {
		if _, err := db.Exec(p); err != nil {
			_ = db.Close()
			return nil, fmt.Errorf("failed to run %q: %w", p, err)
		}
	}

	storage := &sqliteStorage{
		db:       db,
		kv:       newKVStore(db),
		sessions: newSessionLog(db),
	}

	if err := storage.Migrate(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}

	return storage, nil
}

// NewMemory creates a new in-memory SQLite storage instance for testing.
func NewMemory() (ports.Storage, error) {
	return New(":memory:")
}

// KV returns the checkpoint store.
func (s *sqliteStorage) KV() ports.Store {
	return s.kv
}

// Sessions returns the session history.
func (s *sqliteStorage) Sessions() ports.SessionLog {
	return s.sessions
}

// Close closes the database connection.
func (s *sqliteStorage) Close() error {
	return s.db.Close()
}

// migrations are applied in order. PRAGMA user_version records how many
// have run, so append new steps and never edit old ones.
var migrations = []string{
	`CREATE TABLE IF NOT EXISTS kv (
		key TEXT PRIMARY KEY,
		value BLOB NOT NULL,
		updated_at INTEGER NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS sessions (
		id TEXT PRIMARY KEY,
		mode TEXT NOT NULL,
		outcome TEXT NOT NULL,
		planned_ms INTEGER NOT NULL,
		elapsed_ms INTEGER NOT NULL,
		ended_at INTEGER NOT NULL,
		git_branch TEXT NOT NULL DEFAULT '',
		git_commit TEXT NOT NULL DEFAULT ''
	);
	CREATE INDEX IF NOT EXISTS idx_sessions_ended ON sessions(ended_at);
	CREATE INDEX IF NOT EXISTS idx_sessions_mode ON sessions(mode)`,
}

// Migrate brings the schema up to date. Running it again is a no-op.
func (s *sqliteStorage) Migrate() error {
	var version int
	if err := s.db.QueryRow("PRAGMA user_version").Scan(&version); err != nil {
		return fmt.Errorf("failed to read schema version: %w", err)
	}

	for i := version; i < len(migrations); i++ {
		tx, err := s.db.Begin()
		if err != nil {
			return fmt.Errorf("failed to begin migration %d: %w", i+1, err)
		}
		if _, err := tx.Exec(migrations[i]); err != nil {
			_ = tx.Rollback()
			return fmt.Errorf("migration %d failed: %w", i+1, err)
		}
		// PRAGMA does not accept bound parameters.
		if _, err := tx.Exec(fmt.Sprintf("PRAGMA user_version = %d", i+1)); err != nil {
			_ = tx.Rollback()
			return fmt.Errorf("failed to record schema version %d: %w", i+1, err)
		}
		if err := tx.Commit(); err != nil {
			return fmt.Errorf("failed to commit migration %d: %w", i+1, err)
		}
	}

	return nil
}

// isUniqueConstraintError checks if an error is a unique constraint violation.
func isUniqueConstraintError(err error) bool {
	var sqliteErr *sqlite.Error
	if !errors.As(err, &sqliteErr) {
		return false
	}
	code := sqliteErr.Code()
	return code == 2067 || code == 1555 // SQLITE_CONSTRAINT_UNIQUE, SQLITE_CONSTRAINT_PRIMARYKEY
}
