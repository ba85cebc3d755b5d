// Package rng provides reproducible dice rolls for layout generation.
package rng

import (
	"math/rand/v2"
	"sync"

	"github.com/KirkDiggler/rpg-toolkit/dice"

	"github.com/KirkDiggler/dungeon-api/internal/errors"
	"github.com/KirkDiggler/dungeon-api/internal/pkg/clock"
)

// MaxSeed bounds freshly drawn seeds to [0, MaxSeed).
const MaxSeed = 1000

// SeededRoller is a dice.Roller whose sequence is fixed by its seed.
// It is not safe for concurrent use.
type SeededRoller struct {
	r *rand.Rand
}

var _ dice.Roller = (*SeededRoller)(nil)

// NewSeeded returns a roller seeded with seed.
func NewSeeded(seed int64) *SeededRoller {
	return &SeededRoller{r: rand.New(rand.NewPCG(uint64(seed), 0))}
}

// Roll returns a value in [1, size].
func (s *SeededRoller) Roll(size int) (int, error) {
	if size <= 0 {
		return 0, errors.InvalidArgumentf("die size must be positive, got %d", size)
	}
	return s.r.IntN(size) + 1, nil
}

// RollN rolls count dice of the given size.
func (s *SeededRoller) RollN(count, size int) ([]int, error) {
	if count < 0 {
		return nil, errors.InvalidArgumentf("count must not be negative, got %d", count)
	}
	out := make([]int, count)
	for i := range out {
		v, err := s.Roll(size)
		if err != nil {
			return nil, err
		}
		out[i] = v
	}
	return out, nil
}

//go:generate mockgen -destination=mock/mock_seed_source.go -package=rngmock github.com/KirkDiggler/dungeon-api/internal/pkg/rng SeedSource

// SeedSource draws fresh generation seeds.
type SeedSource interface {
	NewSeed() int64
}

type clockSeedSource struct {
	mu sync.Mutex
	r  *rand.Rand
}

// NewSeedSource returns a SeedSource seeded from the clock.
func NewSeedSource(c clock.Clock) SeedSource {
	return &clockSeedSource{
		r: rand.New(rand.NewPCG(uint64(c.Now().UnixNano()), 0)),
	}
}

func (s *clockSeedSource) NewSeed() int64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.r.Int64N(MaxSeed)
}
