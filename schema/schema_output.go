package schema

// EnrichedEntry adds presentation data to a BoardEntry.
type EnrichedEntry struct {
	View  ViewKind `json:"view"`
	Label string   `json:"label"`
	BoardEntry
}

// GetPlainLabel returns a plain text label indicating the performance tier
// based on a guess-scale metric (lower is better).
func GetPlainLabel(metric float64) string {
	switch {
	case metric < 3.5:
		return "Elite"
	case metric < 4.2:
		return "Strong"
	case metric < 5.0:
		return "Steady"
	default:
		return "Struggling"
	}
}

// GuessScaleView reports whether the metric of view is measured in guesses.
func GuessScaleView(view ViewKind) bool {
	switch view {
	case DailyView, WeeklyView, AllTimeView, RawAverageView:
		return true
	default:
		return false
	}
}

// EnrichEntries adds view and label to a list of board entries.
// Views whose metric is not on the guess scale get no label.
func EnrichEntries(view ViewKind, entries []BoardEntry) []EnrichedEntry {
	output := make([]EnrichedEntry, len(entries))
	for i, e := range entries {
		label := ""
		if GuessScaleView(view) {
			label = GetPlainLabel(e.Metric)
		}
		output[i] = EnrichedEntry{
			View:       view,
			Label:      label,
			BoardEntry: e,
		}
	}
	return output
}
