// Package idgen generates identifiers for stored dungeons.
package idgen

import (
	"fmt"
	"sync/atomic"

	"github.com/google/uuid"
)

// DungeonPrefix is prepended to dungeon IDs.
const DungeonPrefix = "dgn"

// Generator produces unique string IDs
type Generator interface {
	Generate() string
}

// UUIDGenerator produces "<prefix>_<uuid>" IDs
type UUIDGenerator struct {
	prefix string
}

// NewUUID creates a UUID generator. An empty prefix yields bare UUIDs.
func NewUUID(prefix string) *UUIDGenerator {
	return &UUIDGenerator{prefix: prefix}
}

// Generate returns a new random ID
func (g *UUIDGenerator) Generate() string {
	id := uuid.NewString()
	if g.prefix == "" {
		return id
	}
	return fmt.Sprintf("%s_%s", g.prefix, id)
}

// SequentialGenerator produces "<prefix>_1", "<prefix>_2", ... and is meant
// for tests and local runs where stable IDs matter.
type SequentialGenerator struct {
	prefix  string
	counter atomic.Uint64
}

// NewSequential creates a sequential generator
func NewSequential(prefix string) *SequentialGenerator {
	return &SequentialGenerator{prefix: prefix}
}

// Generate returns the next ID in sequence
func (g *SequentialGenerator) Generate() string {
	n := g.counter.Add(1)
	if g.prefix == "" {
		return fmt.Sprintf("%d", n)
	}
	return fmt.Sprintf("%s_%d", g.prefix, n)
}
