package algo

import (
	"testing"

	"github.com/huangsam/wordboard/schema"
)

// FuzzNormalize fuzzes Normalize with arbitrary guess values and flags.
func FuzzNormalize(f *testing.F) {
	seeds := []struct {
		guesses float64
		null    bool
		dnf     bool
	}{
		{3, false, false},
		{0, false, false},
		{7, false, false},
		{3, false, true},
		{0, true, false},
		{-1e300, false, false},
		{5.5, false, false},
	}
	for _, s := range seeds {
		f.Add(s.guesses, s.null, s.dnf)
	}

	f.Fuzz(func(t *testing.T, guesses float64, null bool, dnf bool) {
		var g *float64
		if !null {
			g = &guesses
		}
		got := Normalize(g, dnf)
		if got < schema.MinGuesses || got > schema.DNFScore {
			t.Fatalf("Normalize(%v, %v) = %d, want value in [1,7]", guesses, dnf, got)
		}
		if dnf && got != schema.DNFScore {
			t.Fatalf("Normalize(%v, true) = %d, want %d", guesses, got, schema.DNFScore)
		}
		if again := Normalize(schema.GuessesOf(float64(got)), false); again != got {
			t.Fatalf("Normalize is not a fixed point on %d: got %d", got, again)
		}
	})
}
