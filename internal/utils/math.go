package utils

import (
	crand "crypto/rand"
	"encoding/binary"
	"math"
	"math/rand"
	"time"
)

// coinEpsilon absorbs float error such as 100*0.8 = 79.99999999999999
const coinEpsilon = 1e-9

// NewSeed returns a seed from crypto/rand, falling back to the clock
func NewSeed() int64 {
	var b [8]byte
	if _, err := crand.Read(b[:]); err != nil {
		return time.Now().UnixNano()
	}
	return int64(binary.LittleEndian.Uint64(b[:]) & math.MaxInt64)
}

// NewRand returns a game-logic random source. It is not safe for concurrent use.
func NewRand(seed int64) *rand.Rand {
	return rand.New(rand.NewSource(seed)) //nolint:gosec // Game logic randomness, not security critical
}

// RoundToInt rounds half away from zero
func RoundToInt(v float64) int {
	return int(math.Round(v))
}

// FloorCoins floors a scaled coin amount, tolerating float drift just below
// an integer
func FloorCoins(v float64) int64 {
	if v <= 0 {
		return 0
	}
	return int64(math.Floor(v + coinEpsilon))
}

// ClampInt bounds v to [lo, hi]
func ClampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// MinFloat returns the smaller of a and b
func MinFloat(a, b float64) float64 {
	if a < b {
		return a
	}
	return b
}
