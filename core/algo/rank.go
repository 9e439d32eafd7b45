package algo

import (
	"sort"

	"github.com/huangsam/wordboard/schema"
)

// lessFunc reports whether a ranks strictly before b.
type lessFunc func(a, b *schema.BoardEntry) bool

// tieBreak returns the ordering applied when two metrics are equal for view.
func tieBreak(view schema.ViewKind) lessFunc {
	switch view {
	case schema.DailyView:
		return func(a, b *schema.BoardEntry) bool {
			if !a.FirstSubmittedAt.Equal(b.FirstSubmittedAt) {
				return a.FirstSubmittedAt.Before(b.FirstSubmittedAt)
			}
			return a.Name < b.Name
		}
	case schema.WoodenSpoonView:
		return func(a, b *schema.BoardEntry) bool {
			if a.DNFCount != b.DNFCount {
				return a.DNFCount > b.DNFCount
			}
			return a.Name < b.Name
		}
	default:
		return func(a, b *schema.BoardEntry) bool {
			return a.Name < b.Name
		}
	}
}

// RankEntries sorts entries for view and assigns 1-based ranks in place.
// Ascending views put the lowest metric first; ties fall back to the view's tie-break, then name.
func RankEntries(view schema.ViewKind, entries []schema.BoardEntry) []schema.BoardEntry {
	asc := schema.AscendingView(view)
	tie := tieBreak(view)
	sort.SliceStable(entries, func(i, j int) bool {
		a, b := &entries[i], &entries[j]
		if a.Metric != b.Metric {
			if asc {
				return a.Metric < b.Metric
			}
			return a.Metric > b.Metric
		}
		return tie(a, b)
	})
	for i := range entries {
		entries[i].Rank = i + 1
	}
	return entries
}

// TopN returns the first limit entries. If limit is not positive or exceeds the
// number of entries, all entries are returned.
func TopN(entries []schema.BoardEntry, limit int) []schema.BoardEntry {
	if limit > 0 && len(entries) > limit {
		return entries[:limit]
	}
	return entries
}
