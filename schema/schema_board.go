package schema

import "time"

// BoardEntry is one ranked row of a leaderboard view.
// Only the fields relevant to a view are populated; the rest stay zero.
type BoardEntry struct {
	Rank     int     `json:"rank"`
	Name     string  `json:"name"`
	Metric   float64 `json:"metric"`
	Attempts int     `json:"attempts"`

	// Weekly view
	PlayedDays  int `json:"played_days,omitempty"`
	WeeklyTotal int `json:"weekly_total,omitempty"`

	// All-time view
	RawAverage    float64 `json:"raw_average,omitempty"`
	BayesAverage  float64 `json:"bayes_average,omitempty"`
	RecencyFactor float64 `json:"recency_factor,omitempty"`
	AttemptsBonus float64 `json:"attempts_bonus,omitempty"`
	DaysSincePlay int     `json:"days_since_play,omitempty"`

	// Wooden spoon view
	DNFCount int `json:"dnf_count,omitempty"`

	FirstSubmittedAt time.Time `json:"first_submitted_at,omitzero"` // Daily tie-break
	LastPlayed       Date      `json:"last_played,omitzero"`
}

// Leaderboards bundles every ranked view computed from one snapshot at one as-of date.
type Leaderboards struct {
	AsOf            Date         `json:"as_of"`
	Timezone        string       `json:"timezone"`
	GlobalMean      float64      `json:"global_mean"`
	Params          RatingParams `json:"params"`
	ValidRecords    int          `json:"valid_records"`
	ExcludedRecords int          `json:"excluded_records"`
	FutureRecords   int          `json:"future_records"` // Valid records dated after the as-of date
	WeekDays        []Date       `json:"week_days"`

	Daily       []BoardEntry `json:"daily"`
	Weekly      []BoardEntry `json:"weekly"`
	AllTime     []BoardEntry `json:"alltime"`
	RawAverage  []BoardEntry `json:"raw"`
	MostActive  []BoardEntry `json:"active"`
	WoodenSpoon []BoardEntry `json:"spoon"`
}

// View returns the entries of a single view.
func (l *Leaderboards) View(view ViewKind) []BoardEntry {
	switch view {
	case DailyView:
		return l.Daily
	case WeeklyView:
		return l.Weekly
	case AllTimeView:
		return l.AllTime
	case RawAverageView:
		return l.RawAverage
	case MostActiveView:
		return l.MostActive
	case WoodenSpoonView:
		return l.WoodenSpoon
	default:
		return nil
	}
}

// Views returns the concrete views selected by view, in display order.
func Views(view ViewKind) []ViewKind {
	if view == AllViews || view == "" {
		return OrderedViews
	}
	return []ViewKind{view}
}
