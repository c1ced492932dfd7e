package ports

import (
	"math/rand/v2"
)

// RNGPort provides seeded random number generation for deterministic simulation
type RNGPort interface {
	// SeededStream creates a deterministic random number generator for a named operation
	SeededStream(name string, seed int64) *rand.Rand

	// ReplicationStream derives an independent stream for one replication of one
	// scenario. Streams for distinct (scenario, replication) pairs do not overlap,
	// so sequential and parallel execution produce identical draws.
	ReplicationStream(scenario, replication int, baseSeed int64) *rand.Rand
}
