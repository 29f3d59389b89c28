package dataset

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestToFloat(t *testing.T) {
	tests := []struct {
		name string
		in   any
		want float64
		ok   bool
	}{
		{"int", 7, 7, true},
		{"float", 2.5, 2.5, true},
		{"numeric string", " 42.5 ", 42.5, true},
		{"text", "abc", 0, false},
		{"blank", "  ", 0, false},
		{"nil", nil, 0, false},
		{"NaN text", "NaN", 0, false},
		{"Infinity text", "Infinity", 0, false},
		{"inf text", "-inf", 0, false},
		{"NaN float", math.NaN(), 0, false},
		{"Inf float", math.Inf(1), 0, false},
		{"Inf float32", float32(math.Inf(-1)), 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := ToFloat(tt.in)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestToStringOfNonFiniteFloat(t *testing.T) {
	assert.Equal(t, "+Inf", ToString(math.Inf(1)))
}
