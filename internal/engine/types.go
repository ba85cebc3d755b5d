package engine

import (
	"fmt"

	"github.com/KirkDiggler/dungeon-api/internal/engine/geometry"
	"github.com/KirkDiggler/dungeon-api/internal/engine/graph"
	"github.com/KirkDiggler/dungeon-api/internal/engine/grid"
	"github.com/KirkDiggler/dungeon-api/internal/engine/pathfind"
	"github.com/KirkDiggler/dungeon-api/internal/engine/placement"
	"github.com/KirkDiggler/dungeon-api/internal/errors"
)

// Room count limits. Requests outside the range are clamped.
const (
	MinRooms     = 3
	MaxRooms     = 20
	DefaultRooms = 8
)

// Params are the per-run generation parameters. Zero values take defaults.
type Params struct {
	NumberOfRooms int
	MinRoomSize   int
	MaxRoomSize   int
	Margin        int
	MaxAttempts   int
}

// DefaultParams returns the default generation parameters
func DefaultParams() Params {
	return Params{
		NumberOfRooms: DefaultRooms,
		MinRoomSize:   placement.DefaultMinRoomSize,
		MaxRoomSize:   placement.DefaultMaxRoomSize,
		Margin:        placement.DefaultMargin,
		MaxAttempts:   placement.DefaultMaxAttempts,
	}
}

// Normalize fills zero values with defaults and clamps the room count into
// [MinRooms, MaxRooms]. It returns a warning for every adjustment that was not
// a plain default.
func (p Params) Normalize() (Params, []string) {
	def := DefaultParams()
	var warnings []string

	if p.NumberOfRooms == 0 {
		p.NumberOfRooms = def.NumberOfRooms
	}
	if p.NumberOfRooms < MinRooms || p.NumberOfRooms > MaxRooms {
		clamped := min(max(p.NumberOfRooms, MinRooms), MaxRooms)
		warnings = append(warnings, fmt.Sprintf("number_of_rooms %d clamped to %d", p.NumberOfRooms, clamped))
		p.NumberOfRooms = clamped
	}
	if p.MinRoomSize == 0 {
		p.MinRoomSize = def.MinRoomSize
	}
	if p.MaxRoomSize == 0 {
		p.MaxRoomSize = def.MaxRoomSize
	}
	if p.Margin == 0 {
		p.Margin = def.Margin
	}
	if p.MaxAttempts == 0 {
		p.MaxAttempts = def.MaxAttempts
	}

	return p, warnings
}

// Validate checks normalized parameters.
func (p *Params) Validate() error {
	vb := errors.NewParameterValidationBuilder()
	errors.ValidateRange("number_of_rooms", p.NumberOfRooms, MinRooms, MaxRooms, vb)
	if p.MinRoomSize < 1 {
		vb.Field("min_room_size", "must be at least 1")
	}
	if p.MaxRoomSize < p.MinRoomSize {
		vb.Fieldf("max_room_size", "must be at least min_room_size (%d)", p.MinRoomSize)
	}
	if p.Margin < 0 {
		vb.Field("margin", "must not be negative")
	}
	if p.MaxAttempts < 1 {
		vb.Field("max_attempts", "must be at least 1")
	}
	return vb.Build()
}

func (p Params) placementConfig() placement.Config {
	return placement.Config{
		NumberOfRooms: p.NumberOfRooms,
		MinRoomSize:   p.MinRoomSize,
		MaxRoomSize:   p.MaxRoomSize,
		Margin:        p.Margin,
		MaxAttempts:   p.MaxAttempts,
	}
}

// RegenerateInput selects the seed and parameters of a run
type RegenerateInput struct {
	Seed   int64
	Params Params
}

// RegenerateOutput carries the finished layout
type RegenerateOutput struct {
	Layout *Layout
	// Warnings lists parameter adjustments made before the run.
	Warnings []string
}

// Layout is the result of one pipeline run. Cells is a copy of the grid
// taken after carving.
type Layout struct {
	Seed      int64
	Params    Params
	Grid      grid.Config
	Cells     []grid.Cell
	Rooms     []placement.Room
	Triangles []geometry.Triangle
	Graph     *graph.Graph
	MST       graph.MST
	Corridors []pathfind.Corridor
	// Failures are spanning tree edges no corridor could be routed for.
	Failures            []pathfind.Failure
	DegenerateTriangles int
	CarvedCells         int
}

// TriangulationEdges returns every graph edge as a segment.
func (l *Layout) TriangulationEdges() []geometry.Edge {
	out := make([]geometry.Edge, len(l.Graph.Edges))
	for i := range l.Graph.Edges {
		out[i] = l.Graph.Segment(i)
	}
	return out
}

// MSTEdges returns the selected spanning tree edges as segments.
func (l *Layout) MSTEdges() []geometry.Edge {
	out := make([]geometry.Edge, len(l.MST.Edges))
	for i, ei := range l.MST.Edges {
		out[i] = l.Graph.Segment(ei)
	}
	return out
}
