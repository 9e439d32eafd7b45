package algo

import (
	"testing"
	"time"

	"github.com/huangsam/wordboard/schema"
	"github.com/stretchr/testify/assert"
)

func names(entries []schema.BoardEntry) []string {
	out := make([]string, len(entries))
	for i, e := range entries {
		out[i] = e.Name
	}
	return out
}

func TestRankEntries(t *testing.T) {
	t.Run("ascending with name tie-break", func(t *testing.T) {
		entries := []schema.BoardEntry{
			{Name: "Cat", Metric: 4.0},
			{Name: "Ann", Metric: 4.0},
			{Name: "Bob", Metric: 3.0},
		}
		got := RankEntries(schema.AllTimeView, entries)
		assert.Equal(t, []string{"Bob", "Ann", "Cat"}, names(got))
		assert.Equal(t, 1, got[0].Rank)
		assert.Equal(t, 3, got[2].Rank)
	})

	t.Run("descending for most active", func(t *testing.T) {
		entries := []schema.BoardEntry{
			{Name: "Ann", Metric: 2},
			{Name: "Bob", Metric: 9},
			{Name: "Cat", Metric: 9},
		}
		got := RankEntries(schema.MostActiveView, entries)
		assert.Equal(t, []string{"Bob", "Cat", "Ann"}, names(got))
	})

	t.Run("daily ties go to earliest submission", func(t *testing.T) {
		base := time.Date(2025, 1, 6, 9, 0, 0, 0, time.UTC)
		entries := []schema.BoardEntry{
			{Name: "Ann", Metric: 3, FirstSubmittedAt: base.Add(time.Hour)},
			{Name: "Bob", Metric: 3, FirstSubmittedAt: base},
			{Name: "Cat", Metric: 2, FirstSubmittedAt: base.Add(2 * time.Hour)},
		}
		got := RankEntries(schema.DailyView, entries)
		assert.Equal(t, []string{"Cat", "Bob", "Ann"}, names(got))
	})

	t.Run("wooden spoon ties go to more dnfs", func(t *testing.T) {
		entries := []schema.BoardEntry{
			{Name: "Ann", Metric: 50, DNFCount: 1},
			{Name: "Bob", Metric: 50, DNFCount: 3},
			{Name: "Cat", Metric: 75, DNFCount: 3},
		}
		got := RankEntries(schema.WoodenSpoonView, entries)
		assert.Equal(t, []string{"Cat", "Bob", "Ann"}, names(got))
	})

	t.Run("empty", func(t *testing.T) {
		assert.Empty(t, RankEntries(schema.WeeklyView, nil))
	})
}

func TestTopN(t *testing.T) {
	entries := []schema.BoardEntry{{Name: "a"}, {Name: "b"}, {Name: "c"}}

	assert.Len(t, TopN(entries, 2), 2)
	assert.Len(t, TopN(entries, 3), 3)
	assert.Len(t, TopN(entries, 10), 3)
	assert.Len(t, TopN(entries, 0), 3)
}
