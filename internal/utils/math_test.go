package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFloorCoins(t *testing.T) {
	tests := []struct {
		name     string
		value    float64
		expected int64
	}{
		{"exact integer", 80, 80},
		{"float drift below integer", 79.99999999999999, 80},
		{"fraction floors", 12.7, 12},
		{"zero", 0, 0},
		{"negative clamps to zero", -3.2, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, FloorCoins(tt.value))
		})
	}
}

func TestClampInt(t *testing.T) {
	assert.Equal(t, 0, ClampInt(-5, 0, 10))
	assert.Equal(t, 10, ClampInt(15, 0, 10))
	assert.Equal(t, 7, ClampInt(7, 0, 10))
}

func TestRoundToInt(t *testing.T) {
	assert.Equal(t, 3, RoundToInt(2.5))
	assert.Equal(t, 2, RoundToInt(2.49))
	assert.Equal(t, -3, RoundToInt(-2.5))
}

func TestNewRand_Deterministic(t *testing.T) {
	a := NewRand(11)
	b := NewRand(11)
	for i := 0; i < 10; i++ {
		assert.Equal(t, a.Int63(), b.Int63())
	}
}

func TestNewSeed_NonNegative(t *testing.T) {
	for i := 0; i < 20; i++ {
		assert.GreaterOrEqual(t, NewSeed(), int64(0))
	}
}
