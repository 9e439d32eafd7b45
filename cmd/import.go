package cmd

import (
	"fmt"

	"github.com/huangsam/wordboard/core"
	"github.com/huangsam/wordboard/internal/contract"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// importSetup validates the SQL source settings that import writes to.
// The snapshot cache and run history are not touched.
func importSetup(_ *cobra.Command, _ []string) error {
	if err := loadConfigFile(); err != nil {
		return err
	}
	if err := viper.Unmarshal(input); err != nil {
		return fmt.Errorf("unable to unmarshal config: %w", err)
	}
	input.Source = contract.DBSource
	return contract.ProcessAndValidate(cfg, input)
}

// importCmd loads a snapshot file into a SQL score table.
var importCmd = &cobra.Command{
	Use:   "import <file>",
	Short: "Append a snapshot file to the SQL score table used by --source db",
	Long: `Read a JSON, CSV or Parquet snapshot and append its records to a SQL table.

The table is created when missing, with the columns name, guesses, dnf,
submitted_at and puzzle_number. Records are copied as they are: invalid
records stay in the table and are excluded when leaderboards are computed.

Use - to read a JSON snapshot from stdin.

Examples:
  # Load an export into a SQLite file, then rank from it
  wordboard import scores.json --source-db-connect scores.db
  wordboard boards --source db --source-db-connect scores.db

  # Load a CSV into PostgreSQL
  wordboard import scores.csv --source-backend postgresql \
    --source-db-connect "host=localhost dbname=puzzles user=postgres password=secret"`,
	Args:    cobra.ExactArgs(1),
	PreRunE: importSetup,
	Run: func(_ *cobra.Command, args []string) {
		if err := core.ExecuteImport(rootCtx, cfg, args[0]); err != nil {
			contract.LogFatal("Cannot import snapshot", err)
		}
	},
}
