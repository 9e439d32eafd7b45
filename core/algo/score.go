// Package algo has the date, score and rating primitives shared by every leaderboard view.
package algo

import (
	"math"
	"time"

	"github.com/huangsam/wordboard/schema"
)

// Normalize maps a raw guess count onto the canonical 1..7 scale.
// DNF wins over guesses; anything that is not a finite value in [1,6] is a DNF.
// Fractional guesses are truncated.
func Normalize(guesses *float64, dnf bool) int {
	if dnf || guesses == nil {
		return schema.DNFScore
	}
	g := *guesses
	if math.IsNaN(g) || math.IsInf(g, 0) || g < schema.MinGuesses || g > schema.MaxGuesses {
		return schema.DNFScore
	}
	return int(g)
}

// NormalizeRecord is Normalize applied to a record's fields.
func NormalizeRecord(record schema.ScoreRecord) int {
	return Normalize(record.Guesses, record.DNF)
}

// ValidRecord is a record that passed date normalization, with its derived fields.
type ValidRecord struct {
	schema.ScoreRecord
	Date      schema.Date
	Submitted time.Time
	Score     int
}

// Prepare normalizes every record once and splits off the invalid ones.
// The returned slice keeps input order; excluded counts records without a usable submittedAt.
func Prepare(records []schema.ScoreRecord, loc *time.Location) (valid []ValidRecord, excluded int) {
	valid = make([]ValidRecord, 0, len(records))
	for _, r := range records {
		submitted, ok := ParseSubmitted(r.SubmittedAt)
		if !ok {
			excluded++
			continue
		}
		valid = append(valid, ValidRecord{
			ScoreRecord: r,
			Date:        DateIn(submitted, loc),
			Submitted:   submitted,
			Score:       NormalizeRecord(r),
		})
	}
	return valid, excluded
}

// GlobalMean is the mean normalized score over all valid records, or the neutral prior when there are none.
func GlobalMean(valid []ValidRecord, params schema.RatingParams) float64 {
	if len(valid) == 0 {
		return params.NeutralPrior
	}
	total := 0
	for _, r := range valid {
		total += r.Score
	}
	return float64(total) / float64(len(valid))
}
