// Package dungeonlayout stores generated dungeon layouts
package dungeonlayout

import (
	"context"
	"time"

	"github.com/KirkDiggler/dungeon-api/internal/entities"
)

//go:generate mockgen -destination=mock/mock_repository.go -package=dungeonlayoutmock github.com/KirkDiggler/dungeon-api/internal/repositories/dungeon_layout Repository

// DefaultTTL is how long a stored layout lives when the caller does not say.
const DefaultTTL = 24 * time.Hour

// SaveInput contains the layout to store. Saving an existing ID replaces it
// and restarts its TTL.
type SaveInput struct {
	Layout *entities.DungeonLayout
	TTL    time.Duration
}

// SaveOutput returns the stored layout with ExpiresAt filled in
type SaveOutput struct {
	Layout *entities.DungeonLayout
}

// GetInput identifies the layout to load
type GetInput struct {
	ID string
}

// GetOutput contains the loaded layout
type GetOutput struct {
	Layout *entities.DungeonLayout
}

// DeleteInput identifies the layout to remove
type DeleteInput struct {
	ID string
}

// DeleteOutput reports the removal
type DeleteOutput struct {
	Deleted bool
}

// ListInput limits the listing. Zero means no limit.
type ListInput struct {
	Limit int
}

// ListOutput lists stored layout IDs, most recently saved first
type ListOutput struct {
	IDs []string
}

// Repository defines storage for dungeon layouts
type Repository interface {
	// Save stores a layout under its ID
	Save(ctx context.Context, input *SaveInput) (*SaveOutput, error)

	// Get loads a layout by ID
	Get(ctx context.Context, input *GetInput) (*GetOutput, error)

	// Delete removes a layout
	Delete(ctx context.Context, input *DeleteInput) (*DeleteOutput, error)

	// List returns the IDs of live layouts
	List(ctx context.Context, input *ListInput) (*ListOutput, error)
}
