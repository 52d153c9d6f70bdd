package core

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"strings"
)

// Hash represents a cryptographic hash
type Hash string

// NewHash creates a new hash from data
func NewHash(data []byte) Hash {
	sum := sha256.Sum256(data)
	return Hash(hex.EncodeToString(sum[:]))
}

// String returns the string representation
func (h Hash) String() string {
	return string(h)
}

// IsEmpty checks if the hash is empty
func (h Hash) IsEmpty() bool {
	return h == ""
}

// Domain-specific hash types
type (
	DatasetHash Hash
	SpecHash    Hash
)

func (h DatasetHash) String() string { return Hash(h).String() }
func (h SpecHash) String() string    { return Hash(h).String() }

// ComputeDatasetHash fingerprints the loaded trial data so a run manifest can
// record exactly which rows the posterior was conditioned on.
func ComputeDatasetHash(source string, rts []float64, predictors []float64) DatasetHash {
	var data strings.Builder
	data.WriteString(source)
	for i := range rts {
		fmt.Fprintf(&data, "|%.9g,%.9g", rts[i], predictors[i])
	}
	return DatasetHash(NewHash([]byte(data.String())))
}

// ComputeSpecHash fingerprints a chapter specification for run provenance.
func ComputeSpecHash(parts ...string) SpecHash {
	return SpecHash(NewHash([]byte(strings.Join(parts, "|"))))
}
