package ports

import (
	"math/rand"
)

// RNGPort provides seeded random number generation for deterministic runs
type RNGPort interface {
	// SeededStream creates a deterministic generator for a named operation
	SeededStream(name string, seed int64) *rand.Rand

	// ChainStream derives the generator for one sampling chain. The same
	// (runID, chain, baseSeed) triple always yields an identical stream so a
	// rerun reproduces its posterior draw for draw.
	ChainStream(runID string, chain int, baseSeed int64) *rand.Rand
}
