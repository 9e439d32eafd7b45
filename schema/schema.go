// Package schema has models, enums and status types for all parts of wordboard.
package schema

import "time"

// ScoreRecord is a single puzzle submission as supplied by a snapshot source.
// Records are immutable: the engine only ever reads them.
type ScoreRecord struct {
	Name         string   `json:"name"`                   // Player identifier, case-sensitive
	Guesses      *float64 `json:"guesses"`                // Raw guess count; nil for null/undefined
	DNF          bool     `json:"dnf"`                    // Explicit did-not-finish flag
	SubmittedAt  string   `json:"submittedAt"`            // ISO-8601 instant; the only trusted date source
	PuzzleNumber string   `json:"puzzleNumber,omitempty"` // Display only
}

// GuessesOf is a convenience constructor for a non-nil guess count.
func GuessesOf(v float64) *float64 {
	return &v
}

// PlayerAggregate accumulates one player's records over a scope (today, this week, all time).
// It is rebuilt from scratch on every computation.
type PlayerAggregate struct {
	Name              string
	TotalGuesses      int
	Attempts          int
	DNFCount          int
	LastEffectiveDate Date
	FirstSubmittedAt  time.Time
}

// Add folds one normalized score into the aggregate.
func (p *PlayerAggregate) Add(normalized int, date Date, submittedAt time.Time) {
	p.TotalGuesses += normalized
	p.Attempts++
	if normalized == DNFScore {
		p.DNFCount++
	}
	if p.LastEffectiveDate.IsZero() || date.After(p.LastEffectiveDate) {
		p.LastEffectiveDate = date
	}
	if p.FirstSubmittedAt.IsZero() || submittedAt.Before(p.FirstSubmittedAt) {
		p.FirstSubmittedAt = submittedAt
	}
}

// RawAverage returns TotalGuesses / Attempts, or 0 for an empty aggregate.
func (p *PlayerAggregate) RawAverage() float64 {
	if p.Attempts == 0 {
		return 0
	}
	return float64(p.TotalGuesses) / float64(p.Attempts)
}

// Rating is the output of the shared rating formula for one player at one evaluation date.
type Rating struct {
	BayesAverage  float64 `json:"bayes_average"`
	DaysSincePlay int     `json:"days_since_play"`
	RecencyFactor float64 `json:"recency_factor"`
	AttemptsBonus float64 `json:"attempts_bonus"`
	AdjustedScore float64 `json:"adjusted_score"`
	RawAverage    float64 `json:"raw_average"`
}

// RatingParams holds the tunable constants of the rating formula.
type RatingParams struct {
	Alpha              float64 `json:"alpha"`                // Prior strength, in attempts
	RecencyScaleDays   float64 `json:"recency_scale_days"`   // Days of inactivity that add 100% to the average
	AttemptsBonusScale float64 `json:"attempts_bonus_scale"` // Multiplier on ln(attempts+1)
	NeutralPrior       float64 `json:"neutral_prior"`        // Global mean used when there is no valid record
}

// DefaultRatingParams returns the production rating constants.
func DefaultRatingParams() RatingParams {
	return RatingParams{
		Alpha:              DefaultAlpha,
		RecencyScaleDays:   DefaultRecencyScaleDays,
		AttemptsBonusScale: DefaultAttemptsBonusScale,
		NeutralPrior:       DefaultNeutralPrior,
	}
}
