// Package mcp provides the Model Context Protocol (MCP) server implementation.
package mcp

import (
	"context"

	"github.com/huangsam/wordboard/internal/contract"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

// NewMCPServer initializes and configures the Wordboard MCP server without starting it.
// This is exposed for unit testing.
func NewMCPServer(baseCfg *contract.Config, mgr contract.CacheManager) *server.MCPServer {
	s := server.NewMCPServer(
		"Wordboard Leaderboard Server",
		"1.0.0",
		server.WithLogging(),
	)

	h := &toolHandler{
		baseCfg: baseCfg,
		mgr:     mgr,
	}

	// --- 1. Tool: get_leaderboards ---
	s.AddTool(mcp.NewTool("get_leaderboards",
		mcp.WithDescription("Compute the word-puzzle leaderboards (daily, weekly, all-time, raw average, most active, wooden spoon) from the configured score snapshot."),
		mcp.WithString("view", mcp.Description("Leaderboard view to return. Defaults to 'all'."),
			mcp.Enum("daily", "weekly", "alltime", "raw", "active", "spoon", "all")),
		mcp.WithString("as_of", mcp.Description("Evaluation instant: RFC 3339, YYYY-MM-DD or 'N days ago'. Defaults to now.")),
		mcp.WithNumber("limit", mcp.Description("Maximum number of entries per view (1-1000).")),
	), h.handleGetLeaderboards)

	// --- 2. Tool: get_player_timeseries ---
	s.AddTool(mcp.NewTool("get_player_timeseries",
		mcp.WithDescription("Reconstruct each player's rating day by day, plus the running global average."),
		mcp.WithString("mode", mcp.Description("Series mode. Defaults to 'bayesian'."), mcp.Enum("bayesian", "raw")),
		mcp.WithBoolean("connect_gaps", mcp.Description("Carry decayed values across days a player did not play.")),
		mcp.WithString("players", mcp.Description("Comma-separated player names to keep. Defaults to all players.")),
		mcp.WithString("as_of", mcp.Description("Last day of the axis. Defaults to the latest record.")),
	), h.handleGetPlayerTimeseries)

	// --- 3. Tool: normalize_score ---
	s.AddTool(mcp.NewTool("normalize_score",
		mcp.WithDescription("Map a raw guess count onto the 1-7 scale used by every leaderboard (7 means did not finish)."),
		mcp.WithNumber("guesses", mcp.Description("Raw guess count. Omit for a missing value.")),
		mcp.WithBoolean("dnf", mcp.Description("Explicit did-not-finish flag.")),
	), h.handleNormalizeScore)

	// --- 4. Tool: get_scoring_definitions ---
	s.AddTool(mcp.NewTool("get_scoring_definitions",
		mcp.WithDescription("Describe the rating formula with its active parameters and how each view ranks players."),
	), h.handleGetScoringDefinitions)

	return s
}

// StartMCPServer starts the Wordboard MCP server on stdio.
func StartMCPServer(_ context.Context, baseCfg *contract.Config, mgr contract.CacheManager) error {
	s := NewMCPServer(baseCfg, mgr)
	return server.ServeStdio(s)
}
