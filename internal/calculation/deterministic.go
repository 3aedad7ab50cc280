package calculation

import (
	"math/rand"
	"time"
)

// seedFunc returns a pseudo-random seed when a simulation is run without one
// (override for deterministic Monte Carlo tests).
var seedFunc = func() int64 { return time.Now().UnixNano() }

// SetSeedFunc overrides the seed provider (use only in tests).
func SetSeedFunc(f func() int64) { seedFunc = f }

// RandomSource supplies uniform draws in [0,1). *rand.Rand satisfies it.
type RandomSource interface {
	Float64() float64
}

// NewSeededSource returns a reproducible source. A zero seed draws one from seedFunc.
func NewSeededSource(seed int64) RandomSource {
	if seed == 0 {
		seed = seedFunc()
	}
	return rand.New(rand.NewSource(seed))
}
