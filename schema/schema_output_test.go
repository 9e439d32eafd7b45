package schema_test

import (
	"testing"

	"github.com/huangsam/wordboard/schema"
	"github.com/stretchr/testify/assert"
)

func TestGetPlainLabel(t *testing.T) {
	tests := []struct {
		name     string
		metric   float64
		expected string
	}{
		{"Elite Lower", 1.0, "Elite"},
		{"Elite Upper", 3.49, "Elite"},
		{"Strong Lower", 3.5, "Strong"},
		{"Strong Upper", 4.19, "Strong"},
		{"Steady Lower", 4.2, "Steady"},
		{"Steady Upper", 4.99, "Steady"},
		{"Struggling Lower", 5.0, "Struggling"},
		{"All DNF", 7.0, "Struggling"},
		{"Decayed Past Scale", 9.3, "Struggling"}, // Edge case
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, schema.GetPlainLabel(tt.metric))
		})
	}
}

func TestEnrichEntries(t *testing.T) {
	entries := []schema.BoardEntry{
		{Rank: 1, Name: "Ann", Metric: 3.2},
		{Rank: 2, Name: "Bob", Metric: 4.5},
		{Rank: 3, Name: "Cat", Metric: 6.0},
	}

	t.Run("guess scale view", func(t *testing.T) {
		enriched := schema.EnrichEntries(schema.AllTimeView, entries)
		assert.Len(t, enriched, 3)
		assert.Equal(t, "Elite", enriched[0].Label)
		assert.Equal(t, "Steady", enriched[1].Label)
		assert.Equal(t, "Struggling", enriched[2].Label)
		assert.Equal(t, "Bob", enriched[1].Name)
		assert.Equal(t, 2, enriched[1].Rank)
		assert.Equal(t, schema.AllTimeView, enriched[2].View)
	})

	t.Run("count view has no label", func(t *testing.T) {
		enriched := schema.EnrichEntries(schema.MostActiveView, entries)
		for _, e := range enriched {
			assert.Empty(t, e.Label)
		}
	})
}
