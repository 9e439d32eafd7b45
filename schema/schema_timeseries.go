package schema

// SeriesPoint is one row of the reconstructed time series: a day on the axis.
// Values holds a value only for players plotted on that day.
type SeriesPoint struct {
	Date          Date               `json:"date"`
	Values        map[string]float64 `json:"values"`
	GlobalAverage float64            `json:"global_average"`
	HasGlobal     bool               `json:"has_global"`
}

// TimeseriesOptions configures a time-series reconstruction.
type TimeseriesOptions struct {
	ConnectGaps bool         `json:"connect_gaps"`
	Mode        SeriesMode   `json:"mode"`
	Params      RatingParams `json:"params"`
	AsOf        Date         `json:"as_of,omitzero"` // Optional axis end; later records are ignored
}

// TimeseriesResult holds the day axis plus every player value on it.
type TimeseriesResult struct {
	Mode            SeriesMode    `json:"mode"`
	ConnectGaps     bool          `json:"connect_gaps"`
	GlobalMean      float64       `json:"global_mean"`
	Players         []string      `json:"players"`
	Points          []SeriesPoint `json:"points"`
	ExcludedRecords int           `json:"excluded_records"`
	FutureRecords   int           `json:"future_records"`
}

// Latest returns the last plotted value of a player and whether one exists.
func (r *TimeseriesResult) Latest(name string) (float64, bool) {
	for i := len(r.Points) - 1; i >= 0; i-- {
		if v, ok := r.Points[i].Values[name]; ok {
			return v, true
		}
	}
	return 0, false
}

// Filter keeps only the named players. An empty list keeps all.
func (r *TimeseriesResult) Filter(names []string) {
	if len(names) == 0 {
		return
	}
	keep := make(map[string]struct{}, len(names))
	for _, n := range names {
		keep[n] = struct{}{}
	}
	players := r.Players[:0]
	for _, p := range r.Players {
		if _, ok := keep[p]; ok {
			players = append(players, p)
		}
	}
	r.Players = players
	for i := range r.Points {
		for name := range r.Points[i].Values {
			if _, ok := keep[name]; !ok {
				delete(r.Points[i].Values, name)
			}
		}
	}
}
