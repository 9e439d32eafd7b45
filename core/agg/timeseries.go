package agg

import (
	"sort"
	"time"

	"github.com/huangsam/wordboard/core/algo"
	"github.com/huangsam/wordboard/schema"
)

// Reconstruct builds a per-day, per-player score trajectory plus a running global average.
//
// The day axis runs from the earliest to the latest effective date, or to opts.AsOf when
// that is later. Records after opts.AsOf are ignored. Bayesian values are evaluated on
// each axis day with days-since-play measured from that day, so inactive players decay.
// With ConnectGaps false a player only has values on days they played.
func Reconstruct(records []schema.ScoreRecord, loc *time.Location, opts schema.TimeseriesOptions) schema.TimeseriesResult {
	if loc == nil {
		loc = time.UTC
	}
	mode := opts.Mode
	if mode == "" {
		mode = schema.BayesianSeries
	}
	result := schema.TimeseriesResult{
		Mode:        mode,
		ConnectGaps: opts.ConnectGaps,
		Players:     []string{},
		Points:      []schema.SeriesPoint{},
	}

	valid, excluded := algo.Prepare(records, loc)
	result.ExcludedRecords = excluded
	if !opts.AsOf.IsZero() {
		valid, result.FutureRecords = splitFuture(valid, opts.AsOf)
	}
	result.GlobalMean = algo.GlobalMean(valid, opts.Params)
	if len(valid) == 0 {
		return result
	}

	sort.SliceStable(valid, func(i, j int) bool {
		if valid[i].Date != valid[j].Date {
			return valid[i].Date.Before(valid[j].Date)
		}
		return valid[i].Submitted.Before(valid[j].Submitted)
	})

	start := valid[0].Date
	end := valid[len(valid)-1].Date
	if opts.AsOf.After(end) {
		end = opts.AsOf
	}

	running := make(map[string]*schema.PlayerAggregate)
	var players []string
	globalTotal, globalCount := 0, 0
	next := 0

	for day := start; !day.After(end); day = day.AddDays(1) {
		played := make(map[string]struct{})
		for next < len(valid) && valid[next].Date == day {
			r := valid[next]
			agg, ok := running[r.Name]
			if !ok {
				agg = &schema.PlayerAggregate{Name: r.Name}
				running[r.Name] = agg
				players = append(players, r.Name)
			}
			agg.Add(r.Score, r.Date, r.Submitted)
			played[r.Name] = struct{}{}
			globalTotal += r.Score
			globalCount++
			next++
		}

		point := schema.SeriesPoint{
			Date:   day,
			Values: make(map[string]float64, len(players)),
		}
		if globalCount > 0 {
			point.GlobalAverage = float64(globalTotal) / float64(globalCount)
			point.HasGlobal = true
		}
		for _, name := range players {
			if _, ok := played[name]; !ok && !opts.ConnectGaps {
				continue
			}
			agg := running[name]
			if mode == schema.RawSeries {
				point.Values[name] = agg.RawAverage()
				continue
			}
			point.Values[name] = algo.RateAggregate(agg, day, result.GlobalMean, opts.Params).AdjustedScore
		}
		result.Points = append(result.Points, point)
	}

	sort.Strings(players)
	result.Players = players
	return result
}
