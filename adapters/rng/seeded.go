// Package rng provides the deterministic random stream adapter. Every
// consumer derives its generator from a name or run/chain identity so a
// rerun with the same base seed reproduces results exactly.
package rng

import (
	"fmt"
	"hash/fnv"
	"math/rand"
)

// SeededRNG implements ports.RNGPort with FNV-derived stream seeds
type SeededRNG struct{}

// New creates the adapter
func New() *SeededRNG {
	return &SeededRNG{}
}

// SeededStream creates a deterministic generator for a named operation
func (r *SeededRNG) SeededStream(name string, seed int64) *rand.Rand {
	return rand.New(rand.NewSource(deriveSeed(name, seed)))
}

// ChainStream derives the generator for one sampling chain. Chains must not
// share streams: each gets an independent seed from (runID, chain, baseSeed).
func (r *SeededRNG) ChainStream(runID string, chain int, baseSeed int64) *rand.Rand {
	name := fmt.Sprintf("%s/chain-%d", runID, chain)
	return rand.New(rand.NewSource(deriveSeed(name, baseSeed)))
}

func deriveSeed(name string, base int64) int64 {
	h := fnv.New64a()
	h.Write([]byte(name))
	derived := int64(h.Sum64()) ^ base
	if derived == 0 {
		derived = base + 1
	}
	return derived
}
