package core

import (
	"context"
	"fmt"
	"time"

	"github.com/huangsam/wordboard/internal/contract"
	"github.com/huangsam/wordboard/schema"
)

// recordRun stores one leaderboard computation in the history store.
// Tracking failures are logged and never fail the run.
func recordRun(ctx context.Context, cfg *contract.Config, mgr contract.CacheManager, src contract.SnapshotSource,
	startTime time.Time, boards schema.Leaderboards, totalPlayers int) {
	if mgr == nil || shouldSkipHistory(ctx) {
		return
	}
	store := mgr.GetHistoryStore()
	if store == nil || cfg.HistoryBackend == schema.NoneBackend {
		return
	}

	configParams := map[string]any{
		"source":   src.Describe(),
		"view":     string(cfg.View),
		"as_of":    boards.AsOf.String(),
		"timezone": cfg.Timezone,
		"limit":    cfg.ResultLimit,
		"alpha":    cfg.Params.Alpha,
		"recency":  cfg.Params.RecencyScaleDays,
		"bonus":    cfg.Params.AttemptsBonusScale,
		"prior":    cfg.Params.NeutralPrior,
	}
	runID, err := store.BeginRun(startTime, configParams)
	if err != nil {
		contract.LogWarn("Run tracking initialization failed", err)
		return
	}

	for _, view := range schema.Views(cfg.View) {
		if err := store.RecordStandings(runID, view, boards.AsOf, boards.View(view)); err != nil {
			contract.LogWarn(fmt.Sprintf("Run tracking failed for %s standings", view), err)
		}
	}

	if err := store.EndRun(runID, time.Now(), totalPlayers); err != nil {
		contract.LogWarn("Failed to finalize run tracking", err)
	}
}
