package cmd

import (
	"github.com/huangsam/wordboard/internal/mcp"
	"github.com/spf13/cobra"
)

// mcpCmd represents the mcp command.
var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Start the Wordboard MCP server",
	Long: `Launch an MCP server on stdio that lets AI agents query leaderboards,
player time series and score normalization via standard tools.

The snapshot source and storage flags given here apply to every tool call.`,
	PreRunE: sharedSetupWrapper,
	RunE: func(_ *cobra.Command, _ []string) error {
		return mcp.StartMCPServer(rootCtx, cfg, cacheManager)
	},
}
