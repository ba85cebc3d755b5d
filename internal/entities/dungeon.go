// Package entities provides core data structures for dungeon-api.
package entities

import (
	"time"

	"github.com/KirkDiggler/rpg-toolkit/core"
)

// RoomEntityType is the toolkit entity type of a room
const RoomEntityType = "room"

// DungeonLayout is a stored snapshot of one generated dungeon
type DungeonLayout struct {
	ID     string           `json:"id"`
	Seed   int64            `json:"seed"`
	Params GenerationParams `json:"params"`
	Grid   GridInformation  `json:"grid"`
	Rooms  []Room           `json:"rooms"`
	// Cells lists only occupied cells; any index not present is empty.
	Cells              []Cell      `json:"cells"`
	TriangulationEdges []Edge      `json:"triangulation_edges"`
	MSTEdges           []Edge      `json:"mst_edges"`
	Corridors          []Corridor  `json:"corridors"`
	Diagnostics        Diagnostics `json:"diagnostics"`
	CreatedAt          time.Time   `json:"created_at"`
	UpdatedAt          time.Time   `json:"updated_at"`
	ExpiresAt          time.Time   `json:"expires_at"`
}

// GenerationParams are the parameters a layout was generated with
type GenerationParams struct {
	NumberOfRooms int `json:"number_of_rooms"`
	MinRoomSize   int `json:"min_room_size"`
	MaxRoomSize   int `json:"max_room_size"`
	Margin        int `json:"margin"`
	MaxAttempts   int `json:"max_attempts"`
}

// GridInformation describes the grid the layout was carved into
type GridInformation struct {
	Rows      int     `json:"rows"`
	Cols      int     `json:"cols"`
	CellWidth float64 `json:"cell_width"`
	CellDepth float64 `json:"cell_depth"`
}

// Position is a point in world units
type Position struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Room is a placed room
type Room struct {
	ID     string   `json:"id"`
	Center Position `json:"center"`
	Width  float64  `json:"width"`
	Depth  float64  `json:"depth"`
	Cell   int      `json:"cell"`
}

// GetID returns the room ID
func (r *Room) GetID() string { return r.ID }

// GetType returns RoomEntityType
func (r *Room) GetType() string { return RoomEntityType }

// GetCenter returns the room center
func (r *Room) GetCenter() Position { return r.Center }

// GetSize returns the room footprint
func (r *Room) GetSize() (width, depth float64) { return r.Width, r.Depth }

var _ core.Entity = (*Room)(nil)

// Entities returns the rooms as toolkit entities
func (d *DungeonLayout) Entities() []core.Entity {
	out := make([]core.Entity, len(d.Rooms))
	for i := range d.Rooms {
		out[i] = &d.Rooms[i]
	}
	return out
}

// Cell state values
const (
	CellStateRoom     = "room"
	CellStateCorridor = "corridor"
)

// Cell is an occupied grid cell
type Cell struct {
	Index    int    `json:"index"`
	Row      int    `json:"row"`
	Col      int    `json:"col"`
	State    string `json:"state"`
	Corridor bool   `json:"corridor,omitempty"`
	Visible  bool   `json:"visible,omitempty"`
}

// Edge joins two room centers
type Edge struct {
	From Position `json:"from"`
	To   Position `json:"to"`
	Cost float64  `json:"cost"`
}

// Corridor is the cell path carved for one spanning tree edge
type Corridor struct {
	Edge  Edge  `json:"edge"`
	Cells []int `json:"cells"`
}

// Diagnostics records recoverable problems hit during generation
type Diagnostics struct {
	DegenerateTriangles int      `json:"degenerate_triangles"`
	UnroutedEdges       []Edge   `json:"unrouted_edges,omitempty"`
	CarvedCells         int      `json:"carved_cells"`
	Warnings            []string `json:"warnings,omitempty"`
}
