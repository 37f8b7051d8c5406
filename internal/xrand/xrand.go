// Package xrand provides the seeded uniform-integer source the sampler
// needs: a cryptographically strong source is not required (spec.md §5),
// but tests must be able to seed it deterministically, which rules out
// crypto/rand. Seeds may come from an arbitrary string (e.g. the CLI -seed
// flag); NewFromString hashes it down to a uint64 with a
// fixed-key SipHash, in the style of the teacher's hash-based routing
// (splitter.go, tenant.go).
package xrand

import (
	"math/rand"

	"github.com/dchest/siphash"
)

// fixed keys: only used to spread a user-supplied seed string over the
// uint64 space, not for anything security-sensitive.
const (
	seedKey0 = 0x9e3779b97f4a7c15
	seedKey1 = 0xbf58476d1ce4e5b9
)

// Source is a seedable uniform-integer generator.
type Source struct {
	rng *rand.Rand
}

// New returns a Source seeded directly with an int64 (e.g. for
// reproducible tests).
func New(seed int64) *Source {
	return &Source{rng: rand.New(rand.NewSource(seed))}
}

// NewFromString derives a seed from an arbitrary string via SipHash and
// returns a Source seeded with it. The empty string is a valid seed
// (derives the same fixed value every time, for default reproducibility).
func NewFromString(seed string) *Source {
	h := siphash.Hash(seedKey0, seedKey1, []byte(seed))
	return New(int64(h))
}

// Uint64n returns a uniform random value in [0, n). Panics if n == 0.
func (s *Source) Uint64n(n uint64) uint64 {
	return uint64(s.rng.Int63n(int64(n)))
}
