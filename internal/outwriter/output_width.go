package outwriter

import (
	"os"

	"github.com/huangsam/wordboard/internal/contract"
	"golang.org/x/term"
)

// GetMaxTableNameWidth calculates the maximum width for player names in table output
// based on terminal width and table configuration.
func GetMaxTableNameWidth(cfg *contract.Config) int {
	termWidth := cfg.Width // absolute override from flag/env

	if termWidth == 0 {
		detectedWidth, _, err := term.GetSize(int(os.Stdout.Fd()))
		if err != nil || detectedWidth <= 0 {
			termWidth = 80 // Conservative default for narrow terminals and CI
		} else {
			termWidth = detectedWidth
		}
	}

	// Rank + Metric + Attempts + Label with borders/padding
	baseWidth := 40

	// Detail columns (the all-time view has the widest set)
	if cfg.Detail {
		baseWidth += 45
	}

	// Reserve space for table borders, separators, and padding
	baseWidth += 10

	available := termWidth - baseWidth
	if available < 12 {
		return 12
	}
	if available > 40 {
		return 40
	}
	return available
}
