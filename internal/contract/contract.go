// Package contract provides interfaces and shared utilities for internal architecture.
package contract

import (
	"context"
	"time"

	"github.com/huangsam/wordboard/schema"
)

// SnapshotSource supplies the flat list of score records the engine consumes.
// This allows the core orchestration to be tested without files or databases.
type SnapshotSource interface {
	// Load performs a single bulk read of every record.
	Load(ctx context.Context) ([]schema.ScoreRecord, error)

	// Fingerprint returns a cheap identity of the current snapshot contents.
	// It changes whenever Load would return different records.
	Fingerprint(ctx context.Context) (string, error)

	// Describe returns a stable human-readable name of the source (e.g. "file:scores.json").
	Describe() string
}

// CacheManager defines the interface for managing cache stores.
// This allows the cache layer to be mocked for testing.
type CacheManager interface {
	GetSnapshotStore() CacheStore
	GetHistoryStore() HistoryStore
}

// CacheStore defines the interface for cache data storage.
// This allows mocking the store for testing.
type CacheStore interface {
	Get(key string) ([]byte, int, int64, error)
	Set(key string, value []byte, version int, timestamp int64) error
	GetStatus() (schema.CacheStatus, error)
	Close() error
}

// HistoryStore defines the interface for tracking leaderboard runs and their standings.
type HistoryStore interface {
	// BeginRun creates a new run and returns its unique ID
	BeginRun(startTime time.Time, configParams map[string]any) (int64, error)

	// EndRun updates the run with completion data
	EndRun(runID int64, endTime time.Time, totalPlayers int) error

	// RecordStandings stores the ranked entries of one view for a run
	RecordStandings(runID int64, view schema.ViewKind, asOf schema.Date, entries []schema.BoardEntry) error

	// GetStatus returns status information about the history store
	GetStatus() (schema.HistoryStatus, error)

	// GetAllRuns returns every stored run, oldest first
	GetAllRuns() ([]schema.RunRecord, error)

	// GetAllStandings returns every stored standing row
	GetAllStandings() ([]schema.StandingRecord, error)

	// Close closes the underlying connection
	Close() error
}
