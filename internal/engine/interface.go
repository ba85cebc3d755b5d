// Package engine runs the dungeon layout pipeline: placement, triangulation,
// spanning tree selection and corridor carving over a single grid.
package engine

//go:generate mockgen -destination=mock/mock_engine.go -package=enginemock github.com/KirkDiggler/dungeon-api/internal/engine Engine

import (
	"context"
)

// Engine generates dungeon layouts
type Engine interface {
	// Regenerate wipes the grid and lays out a new dungeon. The same seed and
	// parameters always produce the same layout.
	Regenerate(ctx context.Context, input *RegenerateInput) (*RegenerateOutput, error)
}
