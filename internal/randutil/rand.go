// Package randutil derives deterministic random sources from seeds so that a
// shoe shuffled from the same seed deals the same cards.
package randutil

import (
	rand "math/rand/v2"
	"time"
)

const goldenRatio64 = 0x9e3779b97f4a7c15

// New returns a *rand.Rand seeded deterministically from the provided int64.
func New(seed int64) *rand.Rand {
	u := uint64(seed)
	return rand.New(rand.NewPCG(mix(u), mix(u+goldenRatio64)))
}

// FromSeed returns a generator for seed, picking a time-based seed when seed
// is zero. The seed actually used is returned so a session can be replayed.
func FromSeed(seed int64) (*rand.Rand, int64) {
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	return New(seed), seed
}

// Derive returns the seed for the n-th independent stream of a base seed.
func Derive(base int64, n int) int64 {
	return int64(mix(uint64(base) + uint64(n)*goldenRatio64))
}

func mix(x uint64) uint64 {
	x ^= x >> 30
	x *= 0xbf58476d1ce4e5b9
	x ^= x >> 27
	x *= 0x94d049bb133111eb
	x ^= x >> 31
	return x
}
