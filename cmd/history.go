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

// historyBackendConfig reads and validates the run history backend settings.
// An empty backend is treated as NoneBackend.
func historyBackendConfig() (schema.DatabaseBackend, string, error) {
	if err := loadConfigFile(); err != nil {
		return "", "", err
	}

	backendStr := viper.GetString("history-backend")
	connStr := viper.GetString("history-db-connect")

	backend := schema.NoneBackend
	if backendStr != "" {
		backend = schema.DatabaseBackend(backendStr)
	}
	if _, ok := schema.ValidDatabaseBackends[backend]; !ok {
		return "", "", fmt.Errorf("invalid history backend '%s'. must be sqlite, mysql, postgresql, none", backendStr)
	}

	// Basic validation for database backends
	if err := contract.ValidateDatabaseConnectionString(backend, connStr); err != nil {
		return "", "", err
	}
	return backend, connStr, nil
}

// historySetup loads minimal configuration needed for history operations.
func historySetup() error {
	backend, connStr, err := historyBackendConfig()
	if err != nil {
		return err
	}

	cfg.HistoryBackend = backend
	cfg.HistoryDBConnect = connStr
	cfg.OutputFile = viper.GetString("output-file")

	return nil
}

// historySetupWrapper wraps historySetup to provide PreRunE for history commands.
func historySetupWrapper(_ *cobra.Command, _ []string) error {
	return historySetup()
}

// historyStore opens the configured history store without a snapshot cache.
func historyStore() contract.HistoryStore {
	if err := iocache.InitCaching("", "", cfg.HistoryBackend, cfg.HistoryDBConnect); err != nil {
		contract.LogFatal("Failed to initialize run history", err)
	}
	return iocache.Manager.GetHistoryStore()
}

// historyCmd focused on run history management.
var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Manage the run history (every computed leaderboard and its standings)",
	Long: `Manage the run history store.

When --history-backend is set, every leaderboard run is recorded: one row per
run with its parameters and timing, and one row per ranked entry of each view.
This makes it possible to look back at earlier standings.

Supported backends: SQLite, MySQL, PostgreSQL, or None (disabled, default)

Subcommands:
  status  - Show history statistics and connection info
  clear   - Remove all recorded runs
  export  - Export runs and standings to Parquet files
  migrate - Run database schema migrations

Examples:
  # Record runs in the default SQLite file
  wordboard boards --source scores.json --history-backend sqlite

  # Check history status
  wordboard history status --history-backend sqlite`,
}

// historyClearCmd clears the run history.
var historyClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Remove all recorded runs and standings",
	Long: `Delete all recorded runs and standings from the configured backend.

For SQLite: Deletes the database file
For MySQL/PostgreSQL: Drops the history tables

Examples:
  # Clear SQLite history
  wordboard history clear --history-backend sqlite`,
	PreRunE: historySetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		if err := iocache.ClearHistory(cfg.HistoryBackend, cfg.HistoryDBConnect); err != nil {
			contract.LogFatal("Failed to clear run history", err)
		}
		fmt.Println("Run history cleared successfully.")
	},
}

// historyStatusCmd shows run history status.
var historyStatusCmd = &cobra.Command{
	Use:   "status",
	Short: "Display run history statistics and connection details",
	Long: `Show detailed information about the run history store.

Displays:
- Backend type and connection status
- Total number of runs and standings
- Last and oldest run timestamps
- Row counts per table

Examples:
  # Check history status
  wordboard history status --history-backend sqlite`,
	PreRunE: historySetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		store := historyStore()
		if store == nil {
			contract.LogFatal("Failed to get run history status", fmt.Errorf("history backend %s is not available", cfg.HistoryBackend))
		}
		status, err := store.GetStatus()
		if err != nil {
			contract.LogFatal("Failed to get run history status", err)
		}
		iocache.PrintHistoryStatus(os.Stdout, status)
	},
}

// historyExportCmd exports the run history to Parquet.
var historyExportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export runs and standings to Parquet files",
	Long: `Write every recorded run and standing to two Parquet files:
<output-file>.runs.parquet and <output-file>.standings.parquet.

Examples:
  # Export SQLite history
  wordboard history export --history-backend sqlite --output-file wordboard`,
	PreRunE: historySetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		if err := iocache.ExecuteHistoryExport(os.Stdout, historyStore(), cfg.OutputFile); err != nil {
			contract.LogFatal("Failed to export run history", err)
		}
	},
}

// historyMigrateCmd runs database migrations for the history store.
//
// Migrations do NOT initialize stores or create tables,
// so they can run on a fresh database.
var historyMigrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Run database schema migrations (upgrades/downgrades)",
	Long: `Manage database schema versions for the run history store.

By default, migrates to the latest version. Use --target-version for specific versions.

Examples:
  # Migrate to latest version (default)
  wordboard history migrate --history-backend sqlite

  # Migrate to specific version
  wordboard history migrate --history-backend sqlite --target-version 1

  # Rollback to initial state
  wordboard history migrate --history-backend sqlite --target-version 0`,
	PreRunE: historySetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		targetVersion := viper.GetInt("target-version")
		if err := iocache.MigrateHistory(os.Stdout, cfg.HistoryBackend, cfg.HistoryDBConnect, targetVersion); err != nil {
			contract.LogFatal("Failed to run migrations", err)
		}
	},
}
