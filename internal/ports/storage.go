// Package ports defines the interfaces (driven and driving ports)
// for the Tomato timer following hexagonal architecture principles.
// These interfaces define the contracts between the timer engine and
// external infrastructure.
package ports

import (
	"context"
	"time"

	"github.com/xvierd/tomato/internal/domain"
)

// Store is a flat key-value checkpoint store.
// This is a driven port (implemented by adapters).
type Store interface {
	// Save writes value under key, replacing any previous value.
	Save(ctx context.Context, key string, value []byte) error

	// Load returns the value stored under key. The boolean is false when
	// the key is absent.
	Load(ctx context.Context, key string) ([]byte, bool, error)

	// Delete removes key. Deleting an absent key is not an error.
	Delete(ctx context.Context, key string) error
}

// SessionLog records finished sessions.
// This is a driven port (implemented by adapters).
type SessionLog interface {
	// Record appends a session to the log.
	Record(ctx context.Context, rec domain.SessionRecord) error

	// Recent returns sessions that ended at or after since, newest first.
	Recent(ctx context.Context, since time.Time) ([]domain.SessionRecord, error)

	// DailyStats returns aggregated statistics for the day containing date.
	DailyStats(ctx context.Context, date time.Time) (*domain.DailyStats, error)
}

// Storage is the combined persistence interface.
// This is a driven port (implemented by adapters).
type Storage interface {
	// KV provides access to the checkpoint store.
	KV() Store

	// Sessions provides access to the session history.
	Sessions() SessionLog

	// Close closes the storage connection.
	Close() error

	// Migrate runs database migrations.
	Migrate() error
}
