package algo

import (
	"testing"
	"time"

	"github.com/huangsam/wordboard/schema"
	"github.com/stretchr/testify/assert"
)

func TestComputeRating(t *testing.T) {
	params := schema.DefaultRatingParams()
	last := schema.NewDate(2025, time.January, 6)

	t.Run("played today", func(t *testing.T) {
		r := ComputeRating(40, 10, last, last, 4.5, params)
		assert.InDelta(t, 130.0/30.0, r.BayesAverage, 1e-9)
		assert.Equal(t, 0, r.DaysSincePlay)
		assert.InDelta(t, 1.0, r.RecencyFactor, 1e-9)
		assert.InDelta(t, 0.4796, r.AttemptsBonus, 1e-3)
		assert.InDelta(t, 3.854, r.AdjustedScore, 1e-3)
		assert.InDelta(t, 4.0, r.RawAverage, 1e-9)
	})

	t.Run("thirty days of inactivity", func(t *testing.T) {
		r := ComputeRating(40, 10, last, last.AddDays(30), 4.5, params)
		assert.Equal(t, 30, r.DaysSincePlay)
		assert.InDelta(t, 1.75, r.RecencyFactor, 1e-9)
		assert.InDelta(t, 7.105, r.AdjustedScore, 0.01)
	})

	t.Run("evaluation before last play clamps to zero", func(t *testing.T) {
		r := ComputeRating(40, 10, last, last.AddDays(-3), 4.5, params)
		assert.Equal(t, 0, r.DaysSincePlay)
		assert.InDelta(t, 1.0, r.RecencyFactor, 1e-9)
	})

	t.Run("zero attempts is the prior", func(t *testing.T) {
		r := ComputeRating(0, 0, last, last, 4.5, params)
		assert.InDelta(t, 4.5, r.BayesAverage, 1e-9)
		assert.InDelta(t, 0.0, r.AttemptsBonus, 1e-9)
		assert.InDelta(t, 0.0, r.RawAverage, 1e-9)
	})

	t.Run("custom recency scale", func(t *testing.T) {
		p := params
		p.RecencyScaleDays = 30
		r := ComputeRating(40, 10, last, last.AddDays(30), 4.5, p)
		assert.InDelta(t, 2.0, r.RecencyFactor, 1e-9)
	})
}

// TestComputeRatingMonotonicDecay holds last play fixed and moves the evaluation date forward.
func TestComputeRatingMonotonicDecay(t *testing.T) {
	params := schema.DefaultRatingParams()
	last := schema.NewDate(2025, time.January, 6)

	prev := ComputeRating(25, 8, last, last, 4.2, params).AdjustedScore
	for d := 1; d <= 120; d++ {
		cur := ComputeRating(25, 8, last, last.AddDays(d), 4.2, params).AdjustedScore
		assert.GreaterOrEqual(t, cur, prev, "day %d", d)
		prev = cur
	}
}

func TestRateAggregate(t *testing.T) {
	agg := &schema.PlayerAggregate{TotalGuesses: 40, Attempts: 10, LastEffectiveDate: schema.NewDate(2025, time.January, 6)}
	r := RateAggregate(agg, schema.NewDate(2025, time.January, 6), 4.5, schema.DefaultRatingParams())
	assert.InDelta(t, 3.854, r.AdjustedScore, 1e-3)
}
