package schema

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAbbreviateName(t *testing.T) {
	tests := []struct {
		name string
		want string
	}{
		// Basic cases
		{"Ann", "Ann"},                    // single-part name
		{"Ann Smith", "Ann S"},            // standard two-part name
		{"First Second Third", "First T"}, // three parts, uses last

		// Punctuation
		{"O'Neill John", "O'Neill J"},        // apostrophe
		{"Anne-Marie Smith", "Anne-Marie S"}, // hyphen
		{"(Ava) Cathy", "Ava C"},             // wrapped part

		// Spaces
		{"  Alice  ", "Alice"},   // leading/trailing spaces
		{"John   Doe", "John D"}, // multiple spaces
		{"   ", ""},              // blank

		// Unicode
		{"Hans Müller", "Hans M"},
		{"Émile Zola", "Émile Z"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, AbbreviateName(tt.name))
		})
	}
}

func TestAbbreviatePlayers(t *testing.T) {
	t.Run("distinct abbreviations", func(t *testing.T) {
		got := AbbreviatePlayers([]string{"Ann Smith", "Bob Jones", "Cat"})
		assert.Equal(t, []string{"Ann S", "Bob J", "Cat"}, got)
	})

	t.Run("colliding abbreviations keep full names", func(t *testing.T) {
		got := AbbreviatePlayers([]string{"Ann Smith", "Ann Stone", "Bob Jones"})
		assert.Equal(t, []string{"Ann Smith", "Ann Stone", "Bob J"}, got)
	})

	t.Run("empty", func(t *testing.T) {
		assert.Empty(t, AbbreviatePlayers(nil))
	})
}

func TestSplitPlayers(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want []string
	}{
		{"empty", "", nil},
		{"single", "Ann", []string{"Ann"}},
		{"trim and collapse", " Ann ,  Bob   Jones ", []string{"Ann", "Bob Jones"}},
		{"drop blanks", "Ann,,Bob,", []string{"Ann", "Bob"}},
		{"dedupe keeps case", "Ann,ann,Ann", []string{"Ann", "ann"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, SplitPlayers(tt.in))
		})
	}
}
