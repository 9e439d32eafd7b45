package cmd

import (
	"github.com/huangsam/wordboard/core"
	"github.com/huangsam/wordboard/internal/contract"
	"github.com/huangsam/wordboard/schema"
	"github.com/spf13/cobra"
)

// boardsCmd prints the ranked leaderboard views of a snapshot.
var boardsCmd = &cobra.Command{
	Use:   "boards",
	Short: "Rank players on the daily, weekly, all-time and supporting leaderboards",
	Long: `Compute every leaderboard view from one snapshot of score submissions.

Views:
- daily   - average guesses on the as-of day
- weekly  - best score per weekday over the last 5 weekdays (missed days count as 7)
- alltime - Bayesian average with inactivity decay and an attempts bonus
- raw     - plain average guesses (at least 5 attempts)
- active  - number of attempts
- spoon   - share of attempts that did not finish

Scores are normalized to 1-7 first: 7 means did not finish, and anything
missing or out of range counts as 7. The submission timestamp, projected into
the home timezone, decides which day a score belongs to.

Examples:
  # All views from a JSON export
  wordboard boards --source scores.json

  # Weekly board as of last Friday, with the rating breakdown
  wordboard boards --source scores.csv --view weekly --as-of 2025-01-10 --detail

  # Read the snapshot from a database table and export JSON
  wordboard boards --source db --source-backend postgresql \
    --source-db-connect "host=localhost dbname=puzzles" --output json`,
	PreRunE: sharedSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		if err := core.ExecuteBoards(rootCtx, cfg, cacheManager); err != nil {
			contract.LogFatal("Cannot compute leaderboards", err)
		}
	},
}

// viewShortcut builds a command that runs boards for a single view.
func viewShortcut(view schema.ViewKind, short, example string) *cobra.Command {
	return &cobra.Command{
		Use:     string(view),
		Short:   short,
		Long:    short + ". Shortcut for 'wordboard boards --view " + string(view) + "'.",
		Example: example,
		PreRunE: sharedSetupWrapper,
		Run: func(_ *cobra.Command, _ []string) {
			cfg.View = view
			if err := core.ExecuteBoards(rootCtx, cfg, cacheManager); err != nil {
				contract.LogFatal("Cannot compute leaderboard", err)
			}
		},
	}
}

var (
	dailyCmd = viewShortcut(schema.DailyView,
		"Show today's leaderboard",
		"  wordboard daily --source scores.json")
	weeklyCmd = viewShortcut(schema.WeeklyView,
		"Show the leaderboard of the last 5 weekdays",
		"  wordboard weekly --source scores.json --as-of \"2 days ago\"")
	alltimeCmd = viewShortcut(schema.AllTimeView,
		"Show the all-time adjusted leaderboard",
		"  wordboard alltime --source scores.json --detail")
)
