package core

import (
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/huangsam/wordboard/internal/contract"
	"github.com/huangsam/wordboard/schema"
)

// logBoardsHeader prints a concise, 2-line header for a leaderboard run.
func logBoardsHeader(ctx context.Context, w io.Writer, cfg *contract.Config, src contract.SnapshotSource, fromCache bool) {
	if shouldSuppressHeader(ctx) {
		return
	}
	_, _ = fmt.Fprintf(w, "🔎 Source: %s (View: %s%s)\n", src.Describe(), cfg.View, cacheNote(fromCache))
	_, _ = fmt.Fprintf(w, "📅 As of: %s (%s)\n", cfg.AsOf.In(locationOf(cfg)).Format(contract.DateTimeFormat), cfg.Timezone)
}

// logTimeseriesHeader prints a header for a time series reconstruction.
func logTimeseriesHeader(ctx context.Context, w io.Writer, cfg *contract.Config, src contract.SnapshotSource, fromCache bool) {
	if shouldSuppressHeader(ctx) {
		return
	}
	_, _ = fmt.Fprintf(w, "🔎 Source: %s (Mode: %s%s)\n", src.Describe(), cfg.Mode, cacheNote(fromCache))
	end := "latest record"
	if cfg.AsOfSet {
		end = cfg.AsOfDate().String()
	}
	players := "all"
	if len(cfg.Players) > 0 {
		players = strings.Join(schema.AbbreviatePlayers(cfg.Players), ", ")
	}
	_, _ = fmt.Fprintf(w, "📅 Through: %s (%s), players: %s\n", end, cfg.Timezone, players)
}

func cacheNote(fromCache bool) string {
	if fromCache {
		return ", cached"
	}
	return ""
}

// locationOf returns the configured home timezone, defaulting to UTC.
func locationOf(cfg *contract.Config) *time.Location {
	if cfg.Location == nil {
		return time.UTC
	}
	return cfg.Location
}
