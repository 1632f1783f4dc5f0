// Package optimizer - RNG utilities for shot-based collaborators.
//
// Determinism: the same seed yields the same shot sequence on every
// platform. math/rand.Rand is not goroutine-safe; every Solve call builds its
// own stream.
package optimizer

import "math/rand"

// defaultRNGSeed is used when callers pass seed==0.
const defaultRNGSeed int64 = 1

// rngFromSeed returns a deterministic *rand.Rand.
// Policy: seed==0 ⇒ defaultRNGSeed; otherwise the seed is used verbatim.
func rngFromSeed(seed int64) *rand.Rand {
	s := seed
	if s == 0 {
		s = defaultRNGSeed
	}

	return rand.New(rand.NewSource(s))
}
