package algo

import (
	"math"

	"github.com/huangsam/wordboard/schema"
)

// ComputeRating applies the rating formula to a player's totals as of evaluation date asOf.
//
//	bayesAvg      = (totalGuesses + globalMean*alpha) / (attempts + alpha)
//	recencyFactor = 1 + max(0, asOf - lastPlay) / R
//	attemptsBonus = C * ln(attempts + 1)
//	adjustedScore = bayesAvg*recencyFactor - attemptsBonus
//
// Lower adjustedScore is better.
func ComputeRating(totalGuesses, attempts int, lastPlay, asOf schema.Date, globalMean float64, params schema.RatingParams) schema.Rating {
	days := max(asOf.DaysSince(lastPlay), 0)
	bayes := (float64(totalGuesses) + globalMean*params.Alpha) / (float64(attempts) + params.Alpha)

	recency := 1.0
	if params.RecencyScaleDays > 0 {
		recency += float64(days) / params.RecencyScaleDays
	}
	bonus := params.AttemptsBonusScale * math.Log(float64(attempts)+1)

	raw := 0.0
	if attempts > 0 {
		raw = float64(totalGuesses) / float64(attempts)
	}

	return schema.Rating{
		BayesAverage:  bayes,
		DaysSincePlay: days,
		RecencyFactor: recency,
		AttemptsBonus: bonus,
		AdjustedScore: bayes*recency - bonus,
		RawAverage:    raw,
	}
}

// RateAggregate is ComputeRating over a PlayerAggregate.
func RateAggregate(agg *schema.PlayerAggregate, asOf schema.Date, globalMean float64, params schema.RatingParams) schema.Rating {
	return ComputeRating(agg.TotalGuesses, agg.Attempts, agg.LastEffectiveDate, asOf, globalMean, params)
}
