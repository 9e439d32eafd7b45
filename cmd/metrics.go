package cmd

import (
	"github.com/huangsam/wordboard/core"
	"github.com/huangsam/wordboard/internal/contract"
	"github.com/spf13/cobra"
)

// metricsCmd displays the formal definitions of the rating and every view.
var metricsCmd = &cobra.Command{
	Use:   "metrics",
	Short: "Display the rating formula and how each leaderboard view ranks players",
	Long: `Show the formal definitions behind every leaderboard view.

Provides complete transparency into how players are ranked, including:
- The Bayesian average, inactivity decay and attempts bonus
- The active rating parameters, including overrides from .wordboard.yaml
- Sort order, tie-breaks and minimum attempts for each view

No snapshot is read - this is purely informational.

Examples:
  # Show the default formulas
  wordboard metrics

  # View with a custom rating block from a config file
  wordboard metrics --config .wordboard.yaml`,
	PreRunE: sharedSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		if err := core.ExecuteMetrics(rootCtx, cfg, cacheManager); err != nil {
			contract.LogFatal("Cannot display metrics", err)
		}
	},
}
