package core

import "math/rand/v2"

// RNG is a thin convenience wrapper around math/rand/v2 for deterministic seeding.
type RNG struct {
	r *rand.Rand
}

// NewRNG creates a deterministic RNG using the provided seed.
func NewRNG(seed int64) *RNG {
	return &RNG{r: rand.New(rand.NewPCG(uint64(seed), 0))}
}

// Float64 returns a uniform draw in [0, 1).
func (r *RNG) Float64() float64 {
	return r.r.Float64()
}

// Above reports whether the next uniform draw is strictly greater than
// threshold, as 1 or 0.
func (r *RNG) Above(threshold float64) uint32 {
	if r.r.Float64() > threshold {
		return 1
	}
	return 0
}

// FillThreshold fills buf in order with Above(threshold) draws.
func FillThreshold(r *RNG, buf []uint32, threshold float64) {
	for i := range buf {
		buf[i] = r.Above(threshold)
	}
}

// Source exposes the underlying rand.Rand for advanced use.
func (r *RNG) Source() *rand.Rand { return r.r }
