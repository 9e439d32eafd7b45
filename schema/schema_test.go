package schema

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDateArithmetic(t *testing.T) {
	d := NewDate(2024, time.March, 30)

	assert.Equal(t, "2024-03-30", d.String())
	assert.Equal(t, NewDate(2024, time.April, 1), d.AddDays(2))
	assert.Equal(t, NewDate(2024, time.March, 25), d.AddDays(-5))
	assert.Equal(t, 2, NewDate(2024, time.April, 1).DaysSince(d))
	assert.Equal(t, -2, d.DaysSince(NewDate(2024, time.April, 1)))
	assert.True(t, d.Before(d.AddDays(1)))
	assert.True(t, d.After(d.AddDays(-1)))
	assert.Equal(t, time.Saturday, d.Weekday())
	assert.True(t, d.IsWeekend())
	assert.False(t, d.AddDays(2).IsWeekend())
}

func TestDaysSinceLongSpans(t *testing.T) {
	first := NewDate(1, time.January, 1)
	asOf := NewDate(2025, time.January, 8)
	assert.Equal(t, 739258, asOf.DaysSince(first))
	assert.Equal(t, -739258, first.DaysSince(asOf))
	assert.Equal(t, 20096, asOf.DaysSince(NewDate(1970, time.January, 1)))
	assert.Equal(t, 0, asOf.DaysSince(asOf))
}

func TestDateNormalizesOverflow(t *testing.T) {
	assert.Equal(t, NewDate(2024, time.February, 1), NewDate(2024, time.January, 32))
	assert.Equal(t, NewDate(2024, time.February, 29), NewDate(2024, time.March, 1).AddDays(-1))
}

func TestDateText(t *testing.T) {
	t.Run("round trip through json", func(t *testing.T) {
		in := struct {
			D Date `json:"d"`
		}{D: NewDate(2025, time.January, 6)}
		b, err := json.Marshal(in)
		require.NoError(t, err)
		assert.JSONEq(t, `{"d":"2025-01-06"}`, string(b))

		var out struct {
			D Date `json:"d"`
		}
		require.NoError(t, json.Unmarshal(b, &out))
		assert.Equal(t, in.D, out.D)
	})

	t.Run("invalid", func(t *testing.T) {
		_, err := ParseDate("2025-13-01")
		assert.Error(t, err)
	})

	t.Run("zero", func(t *testing.T) {
		var d Date
		require.NoError(t, d.UnmarshalText(nil))
		assert.True(t, d.IsZero())
	})
}

func TestPlayerAggregateAdd(t *testing.T) {
	var agg PlayerAggregate
	t1 := time.Date(2025, 1, 6, 14, 0, 0, 0, time.UTC)
	t0 := time.Date(2025, 1, 6, 9, 0, 0, 0, time.UTC)

	agg.Add(3, NewDate(2025, time.January, 6), t1)
	agg.Add(DNFScore, NewDate(2025, time.January, 3), t0)

	assert.Equal(t, 10, agg.TotalGuesses)
	assert.Equal(t, 2, agg.Attempts)
	assert.Equal(t, 1, agg.DNFCount)
	assert.Equal(t, NewDate(2025, time.January, 6), agg.LastEffectiveDate)
	assert.Equal(t, t0, agg.FirstSubmittedAt)
	assert.InDelta(t, 5.0, agg.RawAverage(), 1e-9)
}

func TestTimeseriesFilterAndLatest(t *testing.T) {
	r := TimeseriesResult{
		Players: []string{"Ann", "Bob"},
		Points: []SeriesPoint{
			{Date: NewDate(2025, time.January, 1), Values: map[string]float64{"Ann": 4, "Bob": 5}},
			{Date: NewDate(2025, time.January, 2), Values: map[string]float64{"Bob": 3}},
		},
	}

	v, ok := r.Latest("Ann")
	assert.True(t, ok)
	assert.InDelta(t, 4.0, v, 1e-9)

	r.Filter([]string{"Bob"})
	assert.Equal(t, []string{"Bob"}, r.Players)
	_, ok = r.Latest("Ann")
	assert.False(t, ok)
	v, ok = r.Latest("Bob")
	assert.True(t, ok)
	assert.InDelta(t, 3.0, v, 1e-9)
}
