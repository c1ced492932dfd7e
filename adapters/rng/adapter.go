package rng

import (
	"fmt"
	"math/rand/v2"

	"stratsim/ports"
)

// Adapter implements ports.RNGPort with PCG streams derived from hashed names.
// Streams are stateless with respect to the adapter: every call constructs a
// fresh generator, so concurrent callers never share RNG state.
type Adapter struct{}

// New creates an RNG adapter
func New() *Adapter {
	return &Adapter{}
}

var _ ports.RNGPort = (*Adapter)(nil)

// SeededStream creates a deterministic random number generator for a named operation
func (a *Adapter) SeededStream(name string, seed int64) *rand.Rand {
	return rand.New(rand.NewPCG(uint64(seed), uint64(hashString(name))))
}

// ReplicationStream derives an independent stream for one replication of one scenario
func (a *Adapter) ReplicationStream(scenario, replication int, baseSeed int64) *rand.Rand {
	key := fmt.Sprintf("scenario-%d/replication-%d", scenario, replication)
	return a.SeededStream(key, baseSeed)
}

// hashString creates a simple hash for deterministic stream derivation
func hashString(s string) uint32 {
	var hash uint32 = 5381
	for _, c := range s {
		hash = ((hash << 5) + hash) + uint32(c) // djb2 algorithm
	}
	return hash
}
