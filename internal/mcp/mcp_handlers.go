package mcp

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/huangsam/wordboard/core"
	"github.com/huangsam/wordboard/core/algo"
	"github.com/huangsam/wordboard/internal/contract"
	"github.com/huangsam/wordboard/internal/outwriter"
	"github.com/huangsam/wordboard/schema"
	"github.com/mark3labs/mcp-go/mcp"
)

// toolHandler holds common dependencies for MCP tool handlers.
type toolHandler struct {
	baseCfg *contract.Config
	mgr     contract.CacheManager
}

// leaderboardView is one ranked view in a get_leaderboards result.
type leaderboardView struct {
	View    schema.ViewKind        `json:"view"`
	Title   string                 `json:"title"`
	Entries []schema.EnrichedEntry `json:"entries"`
}

// leaderboardsResult is the JSON payload of get_leaderboards.
type leaderboardsResult struct {
	AsOf            schema.Date       `json:"as_of"`
	Timezone        string            `json:"timezone"`
	GlobalMean      float64           `json:"global_mean"`
	ValidRecords    int               `json:"valid_records"`
	ExcludedRecords int               `json:"excluded_records"`
	FutureRecords   int               `json:"future_records"`
	WeekDays        []schema.Date     `json:"week_days"`
	Views           []leaderboardView `json:"views"`
}

// normalizeResult is the JSON payload of normalize_score.
type normalizeResult struct {
	Normalized int    `json:"normalized"`
	DNF        bool   `json:"dnf"`
	Label      string `json:"label"`
}

func (h *toolHandler) handleGetLeaderboards(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	cfg := h.baseCfg.Clone()
	if v := request.GetString("view", ""); v != "" {
		view := schema.ViewKind(v)
		if _, ok := schema.ValidViews[view]; !ok {
			return mcp.NewToolResultError(fmt.Sprintf("invalid view %q", v)), nil
		}
		cfg.View = view
	}
	if err := applyAsOf(cfg, request.GetString("as_of", "")); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	if l := request.GetInt("limit", 0); l != 0 {
		if l < 1 || l > contract.MaxResultLimit {
			return mcp.NewToolResultError(fmt.Sprintf("limit must be between 1 and %d", contract.MaxResultLimit)), nil
		}
		cfg.ResultLimit = l
	}

	boards, _, err := core.GetLeaderboards(core.WithSuppressHeader(ctx), cfg, h.mgr)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("leaderboards failed: %v", err)), nil
	}

	result := leaderboardsResult{
		AsOf:            boards.AsOf,
		Timezone:        boards.Timezone,
		GlobalMean:      boards.GlobalMean,
		ValidRecords:    boards.ValidRecords,
		ExcludedRecords: boards.ExcludedRecords,
		FutureRecords:   boards.FutureRecords,
		WeekDays:        boards.WeekDays,
	}
	for _, view := range schema.Views(cfg.View) {
		result.Views = append(result.Views, leaderboardView{
			View:    view,
			Title:   schema.ViewTitle(view),
			Entries: schema.EnrichEntries(view, boards.View(view)),
		})
	}

	jsonData, _ := json.MarshalIndent(result, "", "  ")
	return mcp.NewToolResultText(string(jsonData)), nil
}

func (h *toolHandler) handleGetPlayerTimeseries(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	cfg := h.baseCfg.Clone()
	if m := request.GetString("mode", ""); m != "" {
		mode := schema.SeriesMode(m)
		if _, ok := schema.ValidSeriesModes[mode]; !ok {
			return mcp.NewToolResultError(fmt.Sprintf("invalid mode %q", m)), nil
		}
		cfg.Mode = mode
	}
	cfg.ConnectGaps = request.GetBool("connect_gaps", cfg.ConnectGaps)
	if p := request.GetString("players", ""); p != "" {
		cfg.Players = schema.SplitPlayers(p)
	}
	if err := applyAsOf(cfg, request.GetString("as_of", "")); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	result, _, err := core.GetTimeseries(core.WithSuppressHeader(ctx), cfg, h.mgr)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("timeseries failed: %v", err)), nil
	}

	jsonData, _ := json.MarshalIndent(result, "", "  ")
	return mcp.NewToolResultText(string(jsonData)), nil
}

func (h *toolHandler) handleNormalizeScore(_ context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	var guesses *float64
	if raw, ok := request.GetArguments()["guesses"]; ok && raw != nil {
		v, ok := raw.(float64)
		if !ok {
			return mcp.NewToolResultError(fmt.Sprintf("guesses must be a number, got %T", raw)), nil
		}
		guesses = schema.GuessesOf(v)
	}
	dnf := request.GetBool("dnf", false)

	normalized := algo.Normalize(guesses, dnf)
	result := normalizeResult{
		Normalized: normalized,
		DNF:        normalized == schema.DNFScore,
		Label:      schema.GetPlainLabel(float64(normalized)),
	}

	jsonData, _ := json.MarshalIndent(result, "", "  ")
	return mcp.NewToolResultText(string(jsonData)), nil
}

func (h *toolHandler) handleGetScoringDefinitions(_ context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	cfg := h.baseCfg.Clone()
	cfg.Output = schema.JSONOut
	cfg.OutputFile = ""

	var buf bytes.Buffer
	if err := outwriter.NewOutWriter(&buf).WriteMetrics(cfg); err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("scoring definitions failed: %v", err)), nil
	}
	return mcp.NewToolResultText(buf.String()), nil
}

// applyAsOf overrides the evaluation instant when the tool call supplies one.
// Without one, a server started without --as-of evaluates at the time of the call.
func applyAsOf(cfg *contract.Config, value string) error {
	if value == "" {
		if !cfg.AsOfSet {
			cfg.AsOf = time.Now()
		}
		return nil
	}
	loc := cfg.Location
	if loc == nil {
		loc = time.UTC
	}
	asOf, err := contract.ParseAsOf(value, time.Now(), loc)
	if err != nil {
		return err
	}
	cfg.AsOf = asOf
	cfg.AsOfSet = true
	return nil
}
