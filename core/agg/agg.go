// Package agg has the aggregation engine and time-series reconstructor for score snapshots.
package agg

import (
	"time"

	"github.com/huangsam/wordboard/core/algo"
	"github.com/huangsam/wordboard/schema"
)

// Aggregate computes every leaderboard view from a snapshot at the instant asOf.
// "today" is asOf projected into loc. Records without a usable submittedAt are excluded.
// Records dated after today still count toward the global mean and the all-time, raw-average,
// most-active and wooden-spoon views; they are only reported in FutureRecords.
// Empty input yields empty views.
func Aggregate(records []schema.ScoreRecord, asOf time.Time, loc *time.Location, params schema.RatingParams) schema.Leaderboards {
	if loc == nil {
		loc = time.UTC
	}
	today := algo.DateIn(asOf, loc)
	valid, excluded := algo.Prepare(records, loc)
	_, future := splitFuture(valid, today)
	return aggregate(valid, excluded, future, today, loc, params)
}

// Replay computes the leaderboards as they stood at the end of asOf's day:
// records dated after today are dropped from every view and counted in FutureRecords.
func Replay(records []schema.ScoreRecord, asOf time.Time, loc *time.Location, params schema.RatingParams) schema.Leaderboards {
	if loc == nil {
		loc = time.UTC
	}
	today := algo.DateIn(asOf, loc)
	prepared, excluded := algo.Prepare(records, loc)
	valid, future := splitFuture(prepared, today)
	return aggregate(valid, excluded, future, today, loc, params)
}

func aggregate(valid []algo.ValidRecord, excluded, future int, today schema.Date, loc *time.Location, params schema.RatingParams) schema.Leaderboards {
	mean := algo.GlobalMean(valid, params)
	week := algo.RecentWeekdays(today, schema.WeeklyDays)

	totals := aggregateByPlayer(valid)

	return schema.Leaderboards{
		AsOf:            today,
		Timezone:        loc.String(),
		GlobalMean:      mean,
		Params:          params,
		ValidRecords:    len(valid),
		ExcludedRecords: excluded,
		FutureRecords:   future,
		WeekDays:        week,
		Daily:           dailyBoard(valid, today),
		Weekly:          weeklyBoard(valid, week),
		AllTime:         allTimeBoard(totals, today, mean, params),
		RawAverage:      rawAverageBoard(totals),
		MostActive:      mostActiveBoard(totals),
		WoodenSpoon:     woodenSpoonBoard(totals),
	}
}

// splitFuture separates records whose effective date is after today.
func splitFuture(valid []algo.ValidRecord, today schema.Date) ([]algo.ValidRecord, int) {
	kept := make([]algo.ValidRecord, 0, len(valid))
	for _, r := range valid {
		if r.Date.After(today) {
			continue
		}
		kept = append(kept, r)
	}
	return kept, len(valid) - len(kept)
}

// aggregateByPlayer builds an all-time PlayerAggregate per player.
func aggregateByPlayer(valid []algo.ValidRecord) map[string]*schema.PlayerAggregate {
	totals := make(map[string]*schema.PlayerAggregate)
	for _, r := range valid {
		agg, ok := totals[r.Name]
		if !ok {
			agg = &schema.PlayerAggregate{Name: r.Name}
			totals[r.Name] = agg
		}
		agg.Add(r.Score, r.Date, r.Submitted)
	}
	return totals
}

// dailyBoard ranks the mean normalized score over today's records.
func dailyBoard(valid []algo.ValidRecord, today schema.Date) []schema.BoardEntry {
	todays := make(map[string]*schema.PlayerAggregate)
	for _, r := range valid {
		if r.Date != today {
			continue
		}
		agg, ok := todays[r.Name]
		if !ok {
			agg = &schema.PlayerAggregate{Name: r.Name}
			todays[r.Name] = agg
		}
		agg.Add(r.Score, r.Date, r.Submitted)
	}

	entries := make([]schema.BoardEntry, 0, len(todays))
	for _, agg := range todays {
		entries = append(entries, schema.BoardEntry{
			Name:             agg.Name,
			Metric:           agg.RawAverage(),
			Attempts:         agg.Attempts,
			FirstSubmittedAt: agg.FirstSubmittedAt,
			LastPlayed:       today,
		})
	}
	return algo.RankEntries(schema.DailyView, entries)
}

// weeklyBoard sums the best score of each played weekday, counts missing weekdays as DNF,
// and divides by the fixed week length.
func weeklyBoard(valid []algo.ValidRecord, week []schema.Date) []schema.BoardEntry {
	inWeek := make(map[schema.Date]struct{}, len(week))
	for _, d := range week {
		inWeek[d] = struct{}{}
	}

	type weekly struct {
		best     map[schema.Date]int
		attempts int
		last     schema.Date
	}
	players := make(map[string]*weekly)
	for _, r := range valid {
		if _, ok := inWeek[r.Date]; !ok {
			continue
		}
		w, ok := players[r.Name]
		if !ok {
			w = &weekly{best: make(map[schema.Date]int)}
			players[r.Name] = w
		}
		w.attempts++
		if cur, seen := w.best[r.Date]; !seen || r.Score < cur {
			w.best[r.Date] = r.Score
		}
		if r.Date.After(w.last) {
			w.last = r.Date
		}
	}

	entries := make([]schema.BoardEntry, 0, len(players))
	for name, w := range players {
		total := 0
		for _, score := range w.best {
			total += score
		}
		played := len(w.best)
		total += schema.DNFScore * (schema.WeeklyDays - played)
		entries = append(entries, schema.BoardEntry{
			Name:        name,
			Metric:      float64(total) / schema.WeeklyDays,
			Attempts:    w.attempts,
			PlayedDays:  played,
			WeeklyTotal: total,
			LastPlayed:  w.last,
		})
	}
	return algo.RankEntries(schema.WeeklyView, entries)
}

// allTimeBoard ranks players by the rating formula's adjusted score.
func allTimeBoard(totals map[string]*schema.PlayerAggregate, today schema.Date, mean float64, params schema.RatingParams) []schema.BoardEntry {
	entries := make([]schema.BoardEntry, 0, len(totals))
	for _, agg := range totals {
		if agg.Attempts < schema.MinAllTimeAttempts {
			continue
		}
		r := algo.RateAggregate(agg, today, mean, params)
		entries = append(entries, schema.BoardEntry{
			Name:          agg.Name,
			Metric:        r.AdjustedScore,
			Attempts:      agg.Attempts,
			RawAverage:    r.RawAverage,
			BayesAverage:  r.BayesAverage,
			RecencyFactor: r.RecencyFactor,
			AttemptsBonus: r.AttemptsBonus,
			DaysSincePlay: r.DaysSincePlay,
			LastPlayed:    agg.LastEffectiveDate,
		})
	}
	return algo.RankEntries(schema.AllTimeView, entries)
}

func rawAverageBoard(totals map[string]*schema.PlayerAggregate) []schema.BoardEntry {
	entries := make([]schema.BoardEntry, 0, len(totals))
	for _, agg := range totals {
		if agg.Attempts < schema.MinRawAttempts {
			continue
		}
		entries = append(entries, schema.BoardEntry{
			Name:       agg.Name,
			Metric:     agg.RawAverage(),
			Attempts:   agg.Attempts,
			RawAverage: agg.RawAverage(),
			LastPlayed: agg.LastEffectiveDate,
		})
	}
	return algo.RankEntries(schema.RawAverageView, entries)
}

func mostActiveBoard(totals map[string]*schema.PlayerAggregate) []schema.BoardEntry {
	entries := make([]schema.BoardEntry, 0, len(totals))
	for _, agg := range totals {
		entries = append(entries, schema.BoardEntry{
			Name:       agg.Name,
			Metric:     float64(agg.Attempts),
			Attempts:   agg.Attempts,
			LastPlayed: agg.LastEffectiveDate,
		})
	}
	return algo.RankEntries(schema.MostActiveView, entries)
}

// woodenSpoonBoard ranks players with at least one DNF by DNF percentage.
func woodenSpoonBoard(totals map[string]*schema.PlayerAggregate) []schema.BoardEntry {
	entries := make([]schema.BoardEntry, 0)
	for _, agg := range totals {
		if agg.DNFCount == 0 {
			continue
		}
		entries = append(entries, schema.BoardEntry{
			Name:       agg.Name,
			Metric:     float64(agg.DNFCount) / float64(agg.Attempts) * 100,
			Attempts:   agg.Attempts,
			DNFCount:   agg.DNFCount,
			LastPlayed: agg.LastEffectiveDate,
		})
	}
	return algo.RankEntries(schema.WoodenSpoonView, entries)
}
