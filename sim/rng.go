package sim

import (
	"hash/fnv"
	"math/rand"
)

// Subsystem names for PartitionedRNG streams.
const (
	// SubsystemChart drives the decorative chart samples.
	SubsystemChart = "chart"
)

// PartitionedRNG hands out one deterministically seeded *rand.Rand per
// subsystem, so that draws in one subsystem never shift another's sequence.
//
// Derived seed: seed XOR fnv1a64(subsystem).
//
// Thread-safety: NOT thread-safe. The driver only touches it under its lock.
type PartitionedRNG struct {
	seed    int64
	streams map[string]*rand.Rand
}

// NewPartitionedRNG creates a PartitionedRNG from a master seed.
func NewPartitionedRNG(seed int64) *PartitionedRNG {
	return &PartitionedRNG{
		seed:    seed,
		streams: make(map[string]*rand.Rand),
	}
}

// ForSubsystem returns the cached stream for name, creating it on first use.
// Never returns nil.
func (p *PartitionedRNG) ForSubsystem(name string) *rand.Rand {
	if rng, ok := p.streams[name]; ok {
		return rng
	}
	rng := rand.New(rand.NewSource(p.seed ^ fnv1a64(name)))
	p.streams[name] = rng
	return rng
}

// Seed returns the master seed.
func (p *PartitionedRNG) Seed() int64 {
	return p.seed
}

func fnv1a64(s string) int64 {
	h := fnv.New64a()
	h.Write([]byte(s))
	return int64(h.Sum64())
}
