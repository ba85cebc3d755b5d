package dungeon

import (
	"time"

	"github.com/KirkDiggler/dungeon-api/internal/entities"
)

// GenerateDungeonInput defines the request for generating a new dungeon
type GenerateDungeonInput struct {
	// Seed to generate from. Ignored when nil or when NewSeed is set.
	Seed    *int64
	NewSeed bool
	// Params left at zero take their defaults.
	Params entities.GenerationParams
	// TTL overrides the orchestrator default for this dungeon.
	TTL time.Duration
}

// GenerateDungeonOutput defines the response for generating a dungeon
type GenerateDungeonOutput struct {
	Layout *entities.DungeonLayout
}

// GetDungeonInput defines the request for loading a dungeon
type GetDungeonInput struct {
	DungeonID string
}

// GetDungeonOutput defines the response for loading a dungeon
type GetDungeonOutput struct {
	Layout *entities.DungeonLayout
}

// RegenerateDungeonInput reruns a stored dungeon with its stored parameters.
// Without NewSeed or Seed the stored seed is reused and the layout comes
// back unchanged.
type RegenerateDungeonInput struct {
	DungeonID string
	Seed      *int64
	NewSeed   bool
}

// RegenerateDungeonOutput defines the response for regenerating a dungeon
type RegenerateDungeonOutput struct {
	Layout *entities.DungeonLayout
}

// DeleteDungeonInput defines the request for deleting a dungeon
type DeleteDungeonInput struct {
	DungeonID string
}

// DeleteDungeonOutput defines the response for deleting a dungeon
type DeleteDungeonOutput struct {
	Deleted bool
}

// ListDungeonsInput defines the request for listing dungeons
type ListDungeonsInput struct {
	Limit int
}

// ListDungeonsOutput lists stored dungeon IDs, newest first
type ListDungeonsOutput struct {
	DungeonIDs []string
}
