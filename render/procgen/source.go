// Package procgen generates the static particle fields and meshes of the scene.
package procgen

import (
	"math/rand/v2"
	"time"
)

// Source is the uniform random source the generators draw from. *rand.Rand satisfies it.
type Source interface {
	Float32() float32
}

// NewSource returns a reproducible source for the given seed.
func NewSource(seed uint64) *rand.Rand {
	return rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
}

// DefaultSource returns an unseeded source; a zero seed in config maps here.
func DefaultSource() *rand.Rand {
	return NewSource(uint64(time.Now().UnixNano()))
}

func lerp(a, b, t float32) float32 { return a + (b-a)*t }

func uniform(rng Source, lo, hi float32) float32 { return lerp(lo, hi, rng.Float32()) }
