package cmd

import (
	"github.com/huangsam/wordboard/core"
	"github.com/huangsam/wordboard/internal/contract"
	"github.com/spf13/cobra"
)

// timeseriesCmd reconstructs player ratings day by day.
var timeseriesCmd = &cobra.Command{
	Use:   "timeseries",
	Short: "Track how each player's rating evolved day by day",
	Long: `Reconstruct every player's rating on each day of the snapshot, plus the
running global average.

In bayesian mode each value is the all-time adjusted score the player would
have had on that day, using only records up to that day. In raw mode it is
the running plain average with no shrinkage and no decay.

By default a player only has a value on days they played. With
--connect-gaps the decayed rating is carried across the days in between.

Examples:
  # Bayesian ratings of every player
  wordboard timeseries --source scores.json

  # Raw running averages of two players, gaps connected
  wordboard timeseries --source scores.json --mode raw --players "Ada,Bob" --connect-gaps

  # Stop the axis at an earlier day and export CSV
  wordboard timeseries --source scores.json --as-of 2025-01-31 --output csv --output-file series.csv`,
	PreRunE: sharedSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		if err := core.ExecuteTimeseries(rootCtx, cfg, cacheManager); err != nil {
			contract.LogFatal("Cannot run timeseries reconstruction", err)
		}
	},
}
