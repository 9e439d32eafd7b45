package algo

import (
	"testing"
	"time"

	"github.com/huangsam/wordboard/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEffectiveDate(t *testing.T) {
	london, err := time.LoadLocation("Europe/London")
	require.NoError(t, err)

	tests := []struct {
		name        string
		submittedAt string
		want        schema.Date
		ok          bool
	}{
		{"winter utc evening", "2024-12-31T23:30:00Z", schema.NewDate(2024, time.December, 31), true},
		{"summer utc late evening rolls over", "2024-06-30T23:30:00Z", schema.NewDate(2024, time.July, 1), true},
		{"offset instant", "2024-06-30T20:00:00-05:00", schema.NewDate(2024, time.July, 1), true},
		{"fractional seconds", "2024-03-05T08:15:00.123456Z", schema.NewDate(2024, time.March, 5), true},
		{"day of spring forward", "2024-03-31T00:30:00Z", schema.NewDate(2024, time.March, 31), true},
		{"day of fall back", "2024-10-27T00:30:00Z", schema.NewDate(2024, time.October, 27), true},
		{"compact offset", "2024-01-02T10:00:00+0100", schema.NewDate(2024, time.January, 2), true},
		{"no offset treated as utc", "2024-01-02T23:59:59", schema.NewDate(2024, time.January, 2), true},
		{"empty", "", schema.Date{}, false},
		{"blank", "   ", schema.Date{}, false},
		{"garbage", "not a date", schema.Date{}, false},
		{"date only", "2024-01-02", schema.Date{}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := EffectiveDate(schema.ScoreRecord{SubmittedAt: tt.submittedAt}, london)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestEffectiveDateIsStable(t *testing.T) {
	london, err := time.LoadLocation("Europe/London")
	require.NoError(t, err)
	r := schema.ScoreRecord{SubmittedAt: "2024-06-30T23:30:00Z"}

	first, _ := EffectiveDate(r, london)
	for range 10 {
		again, _ := EffectiveDate(r, london)
		assert.Equal(t, first, again)
	}
}

func TestDateInNilLocation(t *testing.T) {
	ts := time.Date(2024, 6, 30, 23, 30, 0, 0, time.UTC)
	assert.Equal(t, schema.NewDate(2024, time.June, 30), DateIn(ts, nil))
}

func TestRecentWeekdays(t *testing.T) {
	t.Run("from wednesday", func(t *testing.T) {
		wed := schema.NewDate(2025, time.January, 8)
		got := RecentWeekdays(wed, 5)
		assert.Equal(t, []schema.Date{
			schema.NewDate(2025, time.January, 8),
			schema.NewDate(2025, time.January, 7),
			schema.NewDate(2025, time.January, 6),
			schema.NewDate(2025, time.January, 3),
			schema.NewDate(2025, time.January, 2),
		}, got)
	})

	t.Run("from sunday skips weekend", func(t *testing.T) {
		sun := schema.NewDate(2025, time.January, 12)
		got := RecentWeekdays(sun, 5)
		require.Len(t, got, 5)
		assert.Equal(t, schema.NewDate(2025, time.January, 10), got[0])
		assert.Equal(t, schema.NewDate(2025, time.January, 6), got[4])
		for _, d := range got {
			assert.False(t, d.IsWeekend())
		}
	})

	t.Run("zero", func(t *testing.T) {
		assert.Empty(t, RecentWeekdays(schema.NewDate(2025, time.January, 8), 0))
	})
}
