package cmd

import (
	"fmt"
	"os"

	"github.com/huangsam/wordboard/internal/contract"
	"github.com/huangsam/wordboard/internal/iocache"
	"github.com/huangsam/wordboard/schema"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// cacheSetup loads minimal configuration needed for cache operations.
// This is used by commands that need cache access without full shared setup.
func cacheSetup() error {
	if err := loadConfigFile(); err != nil {
		return err
	}

	// Get cache-related config values
	backend := schema.DatabaseBackend(viper.GetString("cache-backend"))
	connStr := viper.GetString("cache-db-connect")

	// Basic validation for database backends
	if _, ok := schema.ValidDatabaseBackends[backend]; !ok {
		return fmt.Errorf("invalid cache backend '%s'. must be sqlite, mysql, postgresql, none", backend)
	}
	if err := contract.ValidateDatabaseConnectionString(backend, connStr); err != nil {
		return err
	}

	cfg.CacheBackend = backend
	cfg.CacheDBConnect = connStr

	return nil
}

// cacheSetupWrapper wraps cacheSetup to provide PreRunE for cache commands.
func cacheSetupWrapper(_ *cobra.Command, _ []string) error {
	return cacheSetup()
}

// cacheCmd focused on cache management.
//
// Note: Cache subcommands use minimal initialization (cacheSetup) instead of
// the full sharedSetup used by leaderboard commands. No snapshot source is needed.
var cacheCmd = &cobra.Command{
	Use:   "cache",
	Short: "Manage the snapshot cache (avoids reloading unchanged sources)",
	Long: `Manage the snapshot cache that speeds up repeated leaderboard runs.

Wordboard caches the decoded records of a snapshot, keyed by the source and a
fingerprint of its contents. A cached snapshot is reused while the fingerprint
is unchanged and the entry is younger than --cache-ttl.

Supported backends: SQLite (default), MySQL, PostgreSQL, or None (disabled)

Subcommands:
  status - Show cache statistics and connection info
  clear  - Remove all cached data

Examples:
  # Check cache status
  wordboard cache status

  # Clear the cache
  wordboard cache clear`,
}

// cacheClearCmd clears the cache.
var cacheClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Remove all cached snapshots",
	Long: `Delete all cached snapshots from the configured backend.

For SQLite: Deletes the database file
For MySQL/PostgreSQL: Drops the cache table

Examples:
  # Clear SQLite cache (default)
  wordboard cache clear

  # Clear MySQL cache (set connection string via env variable)
  WORDBOARD_CACHE_BACKEND=mysql WORDBOARD_CACHE_DB_CONNECT="..." wordboard cache clear`,
	PreRunE: cacheSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		if err := iocache.ClearCache(cfg.CacheBackend, cfg.CacheDBConnect); err != nil {
			contract.LogFatal("Failed to clear cache", err)
		}
		fmt.Println("Cache cleared successfully.")
	},
}

// cacheStatusCmd shows cache status.
var cacheStatusCmd = &cobra.Command{
	Use:   "status",
	Short: "Display cache statistics and connection details",
	Long: `Show detailed information about the snapshot cache.

Displays:
- Backend type and connection status
- Total number of cached snapshots
- Last and oldest cache entry timestamps
- Cache table size

Examples:
  # Check cache status
  wordboard cache status`,
	PreRunE: cacheSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		if err := iocache.InitCaching(cfg.CacheBackend, cfg.CacheDBConnect, "", ""); err != nil {
			contract.LogFatal("Failed to initialize cache", err)
		}
		store := iocache.Manager.GetSnapshotStore()
		if store == nil {
			contract.LogFatal("Failed to get cache status", fmt.Errorf("cache backend %s is not available", cfg.CacheBackend))
		}
		status, err := store.GetStatus()
		if err != nil {
			contract.LogFatal("Failed to get cache status", err)
		}
		iocache.PrintCacheStatus(os.Stdout, status)
	},
}
