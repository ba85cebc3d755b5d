// Package grid models the dungeon floor as a fixed rectangle of cells joined by
// 4-neighbour connections. Cell indices are row-major: row*cols + col.
package grid

import (
	"github.com/KirkDiggler/dungeon-api/internal/engine/geometry"
	"github.com/KirkDiggler/dungeon-api/internal/errors"
)

// Default dimensions
const (
	DefaultRows      = 100
	DefaultCols      = 100
	DefaultCellWidth = 100.0
	DefaultCellDepth = 100.0
)

// Connection costs one step regardless of direction.
const ConnectionCost = 1.0

// neighbour offsets in (col, row), in the order connections are created
var directions = [4][2]int{{1, 0}, {0, 1}, {-1, 0}, {0, -1}}

// Connection is a directed link between two adjacent cells.
type Connection struct {
	From int
	To   int
	Cost float64
}

// Cell is a single grid square. Origin is its bottom-left corner.
type Cell struct {
	Index       int
	Row         int
	Col         int
	Origin      geometry.Point
	Center      geometry.Point
	Width       float64
	Depth       float64
	State       State
	Corridor    bool
	Visible     bool
	Connections []Connection
}

// IsEmpty reports whether nothing has been placed on the cell.
func (c *Cell) IsEmpty() bool {
	return c.State == StateEmpty
}

// IsIsolated reports whether the cell has no connections, as after Sever.
func (c *Cell) IsIsolated() bool {
	return len(c.Connections) == 0
}

// Config describes the grid dimensions
type Config struct {
	Rows      int
	Cols      int
	CellWidth float64
	CellDepth float64
}

// DefaultConfig returns a 100x100 grid of 100x100 cells.
func DefaultConfig() Config {
	return Config{
		Rows:      DefaultRows,
		Cols:      DefaultCols,
		CellWidth: DefaultCellWidth,
		CellDepth: DefaultCellDepth,
	}
}

// Validate ensures the grid has a positive size.
func (c *Config) Validate() error {
	vb := errors.NewParameterValidationBuilder()
	if c.Rows <= 0 {
		vb.Field("rows", "must be positive")
	}
	if c.Cols <= 0 {
		vb.Field("cols", "must be positive")
	}
	errors.ValidatePositive("cell_width", c.CellWidth, vb)
	errors.ValidatePositive("cell_depth", c.CellDepth, vb)
	return vb.Build()
}

// Grid owns its cells. The cell count never changes after New.
type Grid struct {
	cfg   Config
	cells []Cell
}

// New builds every cell and its connections.
func New(cfg Config) (*Grid, error) {
	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid grid config")
	}

	g := &Grid{
		cfg:   cfg,
		cells: make([]Cell, cfg.Rows*cfg.Cols),
	}

	for row := 0; row < cfg.Rows; row++ {
		for col := 0; col < cfg.Cols; col++ {
			i := g.Index(row, col)
			origin := geometry.Point{X: float64(col) * cfg.CellWidth, Y: float64(row) * cfg.CellDepth}
			g.cells[i] = Cell{
				Index:  i,
				Row:    row,
				Col:    col,
				Origin: origin,
				Center: geometry.Point{X: origin.X + cfg.CellWidth/2, Y: origin.Y + cfg.CellDepth/2},
				Width:  cfg.CellWidth,
				Depth:  cfg.CellDepth,
			}
		}
	}

	for i := range g.cells {
		c := &g.cells[i]
		for _, d := range directions {
			col, row := c.Col+d[0], c.Row+d[1]
			if col < 0 || col >= cfg.Cols || row < 0 || row >= cfg.Rows {
				continue
			}
			c.Connections = append(c.Connections, Connection{
				From: i,
				To:   g.Index(row, col),
				Cost: ConnectionCost,
			})
		}
	}

	return g, nil
}

// Rows returns the number of rows
func (g *Grid) Rows() int { return g.cfg.Rows }

// Cols returns the number of columns
func (g *Grid) Cols() int { return g.cfg.Cols }

// Size returns the number of cells.
func (g *Grid) Size() int { return len(g.cells) }

// Config returns the dimensions the grid was built with.
func (g *Grid) Config() Config { return g.cfg }

// Bounds returns the world-space extent of the grid.
func (g *Grid) Bounds() (width, depth float64) {
	return float64(g.cfg.Cols) * g.cfg.CellWidth, float64(g.cfg.Rows) * g.cfg.CellDepth
}

// Index converts a row and column to a cell index.
func (g *Grid) Index(row, col int) int {
	return row*g.cfg.Cols + col
}

// IndexAt returns the index of the cell under p. Points outside the grid
// resolve to the nearest edge cell.
func (g *Grid) IndexAt(p geometry.Point) int {
	col := clamp(int(p.X/g.cfg.CellWidth), 0, g.cfg.Cols-1)
	row := clamp(int(p.Y/g.cfg.CellDepth), 0, g.cfg.Rows-1)
	return g.Index(row, col)
}

// CellAt returns the cell at index i, or nil if i is out of range.
// The returned cell is owned by the grid.
func (g *Grid) CellAt(i int) *Cell {
	if i < 0 || i >= len(g.cells) {
		return nil
	}
	return &g.cells[i]
}

// Cells exposes the backing slice for read-only iteration.
func (g *Grid) Cells() []Cell {
	return g.cells
}

// EmptyAll clears occupancy, corridor and visibility flags. Connections are
// structural and survive.
func (g *Grid) EmptyAll() {
	for i := range g.cells {
		c := &g.cells[i]
		c.State = StateEmpty
		c.Corridor = false
		c.Visible = false
	}
}

// Sever removes every connection into and out of cell i, making it a wall.
func (g *Grid) Sever(i int) {
	c := g.CellAt(i)
	if c == nil {
		return
	}
	for _, conn := range c.Connections {
		n := &g.cells[conn.To]
		kept := n.Connections[:0]
		for _, back := range n.Connections {
			if back.To != i {
				kept = append(kept, back)
			}
		}
		n.Connections = kept
	}
	c.Connections = nil
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
