// Package core has the orchestration for leaderboards, time series and metrics.
package core

import (
	"context"
	"io"
	"os"
	"time"

	"github.com/huangsam/wordboard/core/agg"
	"github.com/huangsam/wordboard/core/algo"
	"github.com/huangsam/wordboard/internal/contract"
	"github.com/huangsam/wordboard/internal/outwriter"
	"github.com/huangsam/wordboard/internal/source"
	"github.com/huangsam/wordboard/schema"
)

// ExecutorFunc defines the function signature for executing the different commands.
type ExecutorFunc func(ctx context.Context, cfg *contract.Config, mgr contract.CacheManager) error

// ExecuteBoards computes the leaderboards of the configured source and prints them to stdout.
// It serves as the main entry point for the 'boards' command.
func ExecuteBoards(ctx context.Context, cfg *contract.Config, mgr contract.CacheManager) error {
	src, err := source.NewSource(cfg)
	if err != nil {
		return err
	}
	return runBoards(ctx, os.Stdout, os.Stderr, cfg, src, mgr)
}

// ExecuteTimeseries reconstructs player ratings over time and prints them to stdout.
// It serves as the main entry point for the 'timeseries' command.
func ExecuteTimeseries(ctx context.Context, cfg *contract.Config, mgr contract.CacheManager) error {
	src, err := source.NewSource(cfg)
	if err != nil {
		return err
	}
	return runTimeseries(ctx, os.Stdout, os.Stderr, cfg, src, mgr)
}

// ExecuteMetrics prints the scoring definitions. It needs no snapshot.
func ExecuteMetrics(_ context.Context, cfg *contract.Config, _ contract.CacheManager) error {
	return outwriter.NewOutWriter(os.Stdout).WriteMetrics(cfg)
}

// GetLeaderboards computes the leaderboards of the configured source without printing them.
func GetLeaderboards(ctx context.Context, cfg *contract.Config, mgr contract.CacheManager) (schema.Leaderboards, time.Duration, error) {
	start := time.Now()
	src, err := source.NewSource(cfg)
	if err != nil {
		return schema.Leaderboards{}, 0, err
	}
	boards, _, err := BuildLeaderboards(ctx, cfg, src, mgr)
	if err != nil {
		return schema.Leaderboards{}, 0, err
	}
	return boards, time.Since(start), nil
}

// GetTimeseries reconstructs the time series of the configured source without printing it.
func GetTimeseries(ctx context.Context, cfg *contract.Config, mgr contract.CacheManager) (schema.TimeseriesResult, time.Duration, error) {
	start := time.Now()
	src, err := source.NewSource(cfg)
	if err != nil {
		return schema.TimeseriesResult{}, 0, err
	}
	result, _, err := BuildTimeseries(ctx, cfg, src, mgr)
	if err != nil {
		return schema.TimeseriesResult{}, 0, err
	}
	return result, time.Since(start), nil
}

// BuildLeaderboards loads one snapshot from src and computes every view at cfg.AsOf.
// An explicit as-of replays the snapshot: records dated after that day are left out.
// Each view is cut to cfg.ResultLimit entries and the run is recorded in the history store.
// The second return value reports whether the snapshot came from the cache.
func BuildLeaderboards(ctx context.Context, cfg *contract.Config, src contract.SnapshotSource, mgr contract.CacheManager) (schema.Leaderboards, bool, error) {
	start := time.Now()
	snap, err := loadSnapshot(ctx, cfg, src, mgr)
	if err != nil {
		return schema.Leaderboards{}, false, err
	}

	aggregate := agg.Aggregate
	if cfg.AsOfSet {
		aggregate = agg.Replay
	}
	boards := aggregate(snap.Records, cfg.AsOf, locationOf(cfg), cfg.Params)
	totalPlayers := len(boards.MostActive)
	limitBoards(&boards, cfg.ResultLimit)

	recordRun(ctx, cfg, mgr, src, start, boards, totalPlayers)
	return boards, snap.FromCache, nil
}

// BuildTimeseries loads one snapshot from src and reconstructs player values day by day.
// The axis ends at cfg.AsOf only when it was given explicitly.
func BuildTimeseries(ctx context.Context, cfg *contract.Config, src contract.SnapshotSource, mgr contract.CacheManager) (schema.TimeseriesResult, bool, error) {
	snap, err := loadSnapshot(ctx, cfg, src, mgr)
	if err != nil {
		return schema.TimeseriesResult{}, false, err
	}

	opts := schema.TimeseriesOptions{
		ConnectGaps: cfg.ConnectGaps,
		Mode:        cfg.Mode,
		Params:      cfg.Params,
	}
	if cfg.AsOfSet {
		opts.AsOf = cfg.AsOfDate()
	}
	result := agg.Reconstruct(snap.Records, locationOf(cfg), opts)
	result.Filter(cfg.Players)
	return result, snap.FromCache, nil
}

// limitBoards truncates every view to the result limit.
func limitBoards(boards *schema.Leaderboards, limit int) {
	boards.Daily = algo.TopN(boards.Daily, limit)
	boards.Weekly = algo.TopN(boards.Weekly, limit)
	boards.AllTime = algo.TopN(boards.AllTime, limit)
	boards.RawAverage = algo.TopN(boards.RawAverage, limit)
	boards.MostActive = algo.TopN(boards.MostActive, limit)
	boards.WoodenSpoon = algo.TopN(boards.WoodenSpoon, limit)
}

// runBoards builds and prints the leaderboards, with the header on hdr.
func runBoards(ctx context.Context, out, hdr io.Writer, cfg *contract.Config, src contract.SnapshotSource, mgr contract.CacheManager) error {
	start := time.Now()
	boards, fromCache, err := BuildLeaderboards(ctx, cfg, src, mgr)
	if err != nil {
		return err
	}
	logBoardsHeader(ctx, hdr, cfg, src, fromCache)
	return outwriter.NewOutWriter(out).WriteBoards(boards, cfg, time.Since(start))
}

// runTimeseries builds and prints the time series, with the header on hdr.
func runTimeseries(ctx context.Context, out, hdr io.Writer, cfg *contract.Config, src contract.SnapshotSource, mgr contract.CacheManager) error {
	start := time.Now()
	result, fromCache, err := BuildTimeseries(ctx, cfg, src, mgr)
	if err != nil {
		return err
	}
	logTimeseriesHeader(ctx, hdr, cfg, src, fromCache)
	return outwriter.NewOutWriter(out).WriteTimeseries(result, cfg, time.Since(start))
}
