// Package cmd defines the command-line interface for wordboard.
package cmd

import (
	"github.com/huangsam/wordboard/internal/contract"
	"github.com/huangsam/wordboard/schema"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

func init() {
	// Call initConfig on Cobra's initialization
	cobra.OnInitialize(initConfig)

	// Add primary subcommands to the root command
	rootCmd.AddCommand(boardsCmd)
	rootCmd.AddCommand(dailyCmd)
	rootCmd.AddCommand(weeklyCmd)
	rootCmd.AddCommand(alltimeCmd)
	rootCmd.AddCommand(timeseriesCmd)
	rootCmd.AddCommand(metricsCmd)
	rootCmd.AddCommand(importCmd)
	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(cacheCmd)
	rootCmd.AddCommand(historyCmd)
	rootCmd.AddCommand(mcpCmd)

	// Add the cache subcommands to the parent cache command
	cacheCmd.AddCommand(cacheClearCmd)
	cacheCmd.AddCommand(cacheStatusCmd)

	// Add the history subcommands to the parent history command
	historyCmd.AddCommand(historyClearCmd)
	historyCmd.AddCommand(historyStatusCmd)
	historyCmd.AddCommand(historyExportCmd)
	historyCmd.AddCommand(historyMigrateCmd)

	// Bind all persistent flags of rootCmd to Viper
	rootCmd.PersistentFlags().StringP("source", "s", "", "Snapshot to rank: a .json/.csv/.parquet file, - for JSON on stdin, or db")
	rootCmd.PersistentFlags().String("source-format", string(schema.AutoFormat), "Snapshot file format: auto or json or csv or parquet")
	rootCmd.PersistentFlags().String("source-backend", string(schema.SQLiteBackend), "Database backend for --source db: sqlite or mysql or postgresql")
	rootCmd.PersistentFlags().String("source-db-connect", "", "Database connection string for --source db (file path for sqlite)")
	rootCmd.PersistentFlags().String("source-table", contract.DefaultSourceTable, "Table holding score records for --source db")
	rootCmd.PersistentFlags().String("timezone", schema.DefaultTimezone, "Home timezone that decides which day a submission counts for")
	rootCmd.PersistentFlags().String("as-of", "", "Evaluation instant in RFC 3339, YYYY-MM-DD or time ago (default now)")
	rootCmd.PersistentFlags().IntP("limit", "l", contract.DefaultResultLimit, "Number of entries to display per view")
	rootCmd.PersistentFlags().Int("precision", contract.DefaultPrecision, "Decimal precision for numeric columns (1 or 2)")
	rootCmd.PersistentFlags().String("output", string(schema.TextOut), "Output format: text or csv or json or parquet")
	rootCmd.PersistentFlags().String("output-file", "", "Optional path to write output to")
	rootCmd.PersistentFlags().Bool("detail", false, "Print the rating breakdown columns of each view")
	rootCmd.PersistentFlags().Int("width", 0, "Terminal width override (0 = auto-detect)")
	rootCmd.PersistentFlags().String("cache-backend", string(schema.SQLiteBackend), "Cache backend: sqlite or mysql or postgresql or none")
	rootCmd.PersistentFlags().String("cache-db-connect", "", "Database connection string for mysql/postgresql (e.g., user:pass@tcp(host:port)/dbname)")
	rootCmd.PersistentFlags().String("cache-ttl", "5 minutes", "How long a cached snapshot stays fresh")
	rootCmd.PersistentFlags().Bool("refresh", false, "Bypass the snapshot cache and reload the source")
	rootCmd.PersistentFlags().String("history-backend", "", "Run history backend: sqlite or mysql or postgresql or none")
	rootCmd.PersistentFlags().String("history-db-connect", "", "Database connection string for run history (must differ from cache-db-connect)")
	rootCmd.PersistentFlags().String("color", "yes", "Enable colored labels in output (yes/no/true/false/1/0)")
	rootCmd.PersistentFlags().String("emoji", "no", "Enable emojis in output headings (yes/no/true/false/1/0)")
	rootCmd.PersistentFlags().String("profile", "", "Enable profiling and write profiles to files with this prefix")
	rootCmd.PersistentFlags().String("config", "", "Path to config file")
	if err := viper.BindPFlags(rootCmd.PersistentFlags()); err != nil {
		contract.LogFatal("Error binding root flags", err)
	}

	// Bind all flags of boardsCmd to Viper
	boardsCmd.Flags().String("view", string(schema.AllViews), "Leaderboard view: daily or weekly or alltime or raw or active or spoon or all")
	if err := viper.BindPFlags(boardsCmd.Flags()); err != nil {
		contract.LogFatal("Error binding boards flags", err)
	}

	// Bind all flags of timeseriesCmd to Viper
	timeseriesCmd.Flags().String("mode", string(schema.BayesianSeries), "Series mode: bayesian or raw")
	timeseriesCmd.Flags().Bool("connect-gaps", false, "Carry decayed values across days a player did not play")
	timeseriesCmd.Flags().String("players", "", "Comma-separated list of players to plot (default all)")
	if err := viper.BindPFlags(timeseriesCmd.Flags()); err != nil {
		contract.LogFatal("Error binding timeseries flags", err)
	}

	// Bind all flags of historyMigrateCmd to Viper
	historyMigrateCmd.Flags().Int("target-version", -1, "Target migration version (-1 means latest, 0 means rollback to initial state)")
	if err := viper.BindPFlags(historyMigrateCmd.Flags()); err != nil {
		contract.LogFatal("Error binding history migrate flags", err)
	}
}
