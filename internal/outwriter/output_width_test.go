package outwriter

import (
	"testing"

	"github.com/huangsam/wordboard/internal/contract"
	"github.com/stretchr/testify/assert"
)

func TestGetMaxTableNameWidth(t *testing.T) {
	tests := []struct {
		name     string
		cfg      *contract.Config
		expected int
	}{
		{name: "narrow override clamps to minimum", cfg: &contract.Config{Width: 40}, expected: 12},
		{name: "default width", cfg: &contract.Config{Width: 80}, expected: 30},
		{name: "wide override clamps to maximum", cfg: &contract.Config{Width: 200}, expected: 40},
		{name: "detail columns reduce room", cfg: &contract.Config{Width: 120, Detail: true}, expected: 25},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, GetMaxTableNameWidth(tt.cfg))
		})
	}
}
