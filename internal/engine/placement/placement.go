// Package placement scatters rooms over a grid by rejection sampling.
package placement

import (
	"fmt"

	"github.com/KirkDiggler/rpg-toolkit/core"
	"github.com/KirkDiggler/rpg-toolkit/dice"

	"github.com/KirkDiggler/dungeon-api/internal/engine/geometry"
	"github.com/KirkDiggler/dungeon-api/internal/engine/grid"
	"github.com/KirkDiggler/dungeon-api/internal/errors"
)

// Placement defaults, in world units
const (
	DefaultMinRoomSize = 300
	DefaultMaxRoomSize = 600
	DefaultMargin      = 200
	DefaultMaxAttempts = 1000
)

// EntityType is reported by Room.GetType.
const EntityType = "room"

// Room is a placed room. Its center sits on the center of Cell.
type Room struct {
	ID     string
	Center geometry.Point
	Width  float64
	Depth  float64
	Cell   int
}

var _ core.Entity = (*Room)(nil)

// GetID returns the room ID
func (r *Room) GetID() string { return r.ID }

// GetType returns EntityType
func (r *Room) GetType() string { return EntityType }

// Config controls a placement run.
type Config struct {
	NumberOfRooms int
	MinRoomSize   int
	MaxRoomSize   int
	Margin        int
	// MaxAttempts bounds the samples drawn for each room.
	MaxAttempts int
}

// Validate checks the placement parameters
func (c *Config) Validate() error {
	vb := errors.NewParameterValidationBuilder()
	if c.NumberOfRooms < 1 {
		vb.Field("number_of_rooms", "must be at least 1")
	}
	if c.MinRoomSize < 1 {
		vb.Field("min_room_size", "must be at least 1")
	}
	if c.MaxRoomSize < c.MinRoomSize {
		vb.Fieldf("max_room_size", "must be at least min_room_size (%d)", c.MinRoomSize)
	}
	if c.Margin < 0 {
		vb.Field("margin", "must not be negative")
	}
	if c.MaxAttempts < 1 {
		vb.Field("max_attempts", "must be at least 1")
	}
	return vb.Build()
}

// Placer draws room positions and sizes from a dice.Roller.
type Placer struct {
	grid   *grid.Grid
	roller dice.Roller
}

// NewPlacer creates a placer writing into g.
func NewPlacer(g *grid.Grid, roller dice.Roller) *Placer {
	return &Placer{grid: g, roller: roller}
}

// Place puts cfg.NumberOfRooms rooms on the grid and marks their cells as
// rooms. A candidate is rejected when its cell is occupied or severed, or its
// center is within MaxRoomSize+Margin of an accepted room. If any room runs out of
// attempts the grid is emptied and a placement exhausted error is returned.
func (p *Placer) Place(cfg Config) ([]Room, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	spacing := float64(cfg.MaxRoomSize + cfg.Margin)
	spacingSq := spacing * spacing
	width, depth := p.grid.Bounds()
	rooms := make([]Room, 0, cfg.NumberOfRooms)

	for i := 0; i < cfg.NumberOfRooms; i++ {
		room, err := p.placeOne(cfg, i, width, depth, spacingSq, rooms)
		if err != nil {
			p.grid.EmptyAll()
			return nil, err
		}
		p.grid.CellAt(room.Cell).State = grid.StateRoom
		rooms = append(rooms, room)
	}

	return rooms, nil
}

func (p *Placer) placeOne(cfg Config, index int, width, depth, spacingSq float64, placed []Room) (Room, error) {
	for attempt := 0; attempt < cfg.MaxAttempts; attempt++ {
		x, err := p.roll(int(width))
		if err != nil {
			return Room{}, err
		}
		y, err := p.roll(int(depth))
		if err != nil {
			return Room{}, err
		}
		roomWidth, err := p.rollBetween(cfg.MinRoomSize, cfg.MaxRoomSize)
		if err != nil {
			return Room{}, err
		}
		roomDepth, err := p.rollBetween(cfg.MinRoomSize, cfg.MaxRoomSize)
		if err != nil {
			return Room{}, err
		}

		idx := p.grid.IndexAt(geometry.Point{X: float64(x), Y: float64(y)})
		cell := p.grid.CellAt(idx)
		if !cell.IsEmpty() || cell.IsIsolated() || tooClose(cell.Center, placed, spacingSq) {
			continue
		}

		return Room{
			ID:     fmt.Sprintf("room-%d", index+1),
			Center: cell.Center,
			Width:  float64(roomWidth),
			Depth:  float64(roomDepth),
			Cell:   idx,
		}, nil
	}

	return Room{}, errors.PlacementExhaustedf("room %d not placed after %d attempts", index+1, cfg.MaxAttempts).
		WithMeta("room_index", index).
		WithMeta("attempts", cfg.MaxAttempts)
}

// roll returns a value in [0, n).
func (p *Placer) roll(n int) (int, error) {
	v, err := p.roller.Roll(n)
	if err != nil {
		return 0, errors.Wrap(err, "failed to roll position")
	}
	return v - 1, nil
}

// rollBetween returns a value in [lo, hi].
func (p *Placer) rollBetween(lo, hi int) (int, error) {
	v, err := p.roller.Roll(hi - lo + 1)
	if err != nil {
		return 0, errors.Wrap(err, "failed to roll size")
	}
	return lo + v - 1, nil
}

func tooClose(center geometry.Point, placed []Room, spacingSq float64) bool {
	for i := range placed {
		if geometry.DistanceSq(center, placed[i].Center) <= spacingSq {
			return true
		}
	}
	return false
}
