// Package render draws stored dungeon layouts as text.
package render

import (
	"fmt"
	"strings"

	"github.com/KirkDiggler/rpg-toolkit/core"
	"github.com/gookit/color"

	"github.com/KirkDiggler/dungeon-api/internal/engine/grid"
	"github.com/KirkDiggler/dungeon-api/internal/entities"
)

// Map icons
const (
	IconRoom     = "■"
	IconCorridor = "░"
	IconGrid     = "·"
	IconVoid     = " "

	// Edges are drawn beneath rooms and corridors.
	IconTriangulation = "+"
	IconMST           = "*"
)

// Options toggle what is drawn. They never change the layout itself.
type Options struct {
	ShowGrid          bool
	ShowRooms         bool
	ShowCorridors     bool
	ShowTriangulation bool
	ShowMST           bool
	Color             bool
}

// DefaultOptions draws rooms and corridors over a blank background
func DefaultOptions() Options {
	return Options{ShowRooms: true, ShowCorridors: true}
}

// located is an entity with a footprint on the map.
type located interface {
	core.Entity
	GetCenter() entities.Position
	GetSize() (width, depth float64)
}

// Renderer draws layouts
type Renderer struct {
	opts          Options
	colorRoom     color.Style
	colorCorridor color.Style
	colorGrid     color.Style
	colorTri      color.Style
	colorMST      color.Style
	colorLabel    color.Style
}

// New creates a renderer
func New(opts Options) *Renderer {
	return &Renderer{
		opts:          opts,
		colorRoom:     color.Style{color.FgYellow, color.OpBold},
		colorCorridor: color.Style{color.FgCyan},
		colorGrid:     color.Style{color.FgGray},
		colorTri:      color.Style{color.FgBlue},
		colorMST:      color.Style{color.FgMagenta, color.OpBold},
		colorLabel:    color.Style{color.FgGreen, color.OpBold},
	}
}

func (r *Renderer) paint(style color.Style, s string) string {
	if !r.opts.Color {
		return s
	}
	return style.Sprint(s)
}

// Map draws one character per cell, row 0 first.
func (r *Renderer) Map(l *entities.DungeonLayout) string {
	rows, cols := l.Grid.Rows, l.Grid.Cols
	if rows <= 0 || cols <= 0 {
		return ""
	}

	background := IconVoid
	if r.opts.ShowGrid {
		background = r.paint(r.colorGrid, IconGrid)
	}

	canvas := make([][]string, rows)
	for row := range canvas {
		canvas[row] = make([]string, cols)
		for col := range canvas[row] {
			canvas[row][col] = background
		}
	}

	if r.opts.ShowTriangulation {
		for _, e := range l.TriangulationEdges {
			r.line(canvas, l.Grid, e, r.paint(r.colorTri, IconTriangulation))
		}
	}
	if r.opts.ShowMST {
		for _, e := range l.MSTEdges {
			r.line(canvas, l.Grid, e, r.paint(r.colorMST, IconMST))
		}
	}

	for _, c := range l.Cells {
		if c.Row < 0 || c.Row >= rows || c.Col < 0 || c.Col >= cols {
			continue
		}
		switch grid.ParseState(c.State) {
		case grid.StateRoom:
			if r.opts.ShowRooms {
				canvas[c.Row][c.Col] = r.paint(r.colorRoom, IconRoom)
			}
		case grid.StateCorridor:
			if r.opts.ShowCorridors && c.Visible {
				canvas[c.Row][c.Col] = r.paint(r.colorCorridor, IconCorridor)
			}
		}
	}

	var b strings.Builder
	for _, line := range canvas {
		b.WriteString(strings.Join(line, ""))
		b.WriteByte('\n')
	}
	return b.String()
}

// line rasterises e between the cells under its endpoints.
func (r *Renderer) line(canvas [][]string, g entities.GridInformation, e entities.Edge, icon string) {
	if g.CellWidth <= 0 || g.CellDepth <= 0 {
		return
	}
	row0, col0 := cellOf(g, e.From)
	row1, col1 := cellOf(g, e.To)

	dc, dr := abs(col1-col0), -abs(row1-row0)
	sc, sr := step(col0, col1), step(row0, row1)
	diff := dc + dr
	for {
		canvas[row0][col0] = icon
		if row0 == row1 && col0 == col1 {
			return
		}
		e2 := 2 * diff
		if e2 >= dr {
			diff += dr
			col0 += sc
		}
		if e2 <= dc {
			diff += dc
			row0 += sr
		}
	}
}

func cellOf(g entities.GridInformation, p entities.Position) (row, col int) {
	row = min(max(int(p.Y/g.CellDepth), 0), g.Rows-1)
	col = min(max(int(p.X/g.CellWidth), 0), g.Cols-1)
	return row, col
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}

func step(from, to int) int {
	if from < to {
		return 1
	}
	return -1
}

// Summary lists rooms, edge totals and diagnostics. Edge lists are included
// when ShowTriangulation or ShowMST is set.
func (r *Renderer) Summary(l *entities.DungeonLayout) string {
	var b strings.Builder

	fmt.Fprintf(&b, "%s %s (seed %d)\n", r.paint(r.colorLabel, "Dungeon"), l.ID, l.Seed)
	fmt.Fprintf(&b, "Grid: %dx%d cells of %.0fx%.0f\n", l.Grid.Rows, l.Grid.Cols, l.Grid.CellWidth, l.Grid.CellDepth)

	fmt.Fprintf(&b, "\n%s (%d):\n", r.paint(r.colorLabel, "Rooms"), len(l.Rooms))
	for _, e := range l.Entities() {
		fmt.Fprintf(&b, "  %-8s %s", e.GetID(), e.GetType())
		if loc, ok := e.(located); ok {
			center := loc.GetCenter()
			width, depth := loc.GetSize()
			fmt.Fprintf(&b, " at (%.0f, %.0f) %.0fx%.0f", center.X, center.Y, width, depth)
		}
		b.WriteByte('\n')
	}

	if r.opts.ShowTriangulation {
		fmt.Fprintf(&b, "\n%s (%d edges):\n", r.paint(r.colorLabel, "Triangulation"), len(l.TriangulationEdges))
		writeEdges(&b, l.TriangulationEdges)
	}

	total := 0.0
	for _, e := range l.MSTEdges {
		total += e.Cost
	}
	fmt.Fprintf(&b, "\n%s (%d of %d edges):\n", r.paint(r.colorLabel, "Spanning tree"), len(l.MSTEdges), len(l.TriangulationEdges))
	if r.opts.ShowMST {
		writeEdges(&b, l.MSTEdges)
	}
	fmt.Fprintf(&b, "  total %.1f\n", total)

	d := l.Diagnostics
	fmt.Fprintf(&b, "\nCorridors: %d, carved cells: %d, degenerate triangles skipped: %d\n",
		len(l.Corridors), d.CarvedCells, d.DegenerateTriangles)
	for _, e := range d.UnroutedEdges {
		fmt.Fprintf(&b, "  no path: (%.0f, %.0f) - (%.0f, %.0f)\n", e.From.X, e.From.Y, e.To.X, e.To.Y)
	}
	for _, w := range d.Warnings {
		fmt.Fprintf(&b, "  warning: %s\n", w)
	}

	return b.String()
}

func writeEdges(b *strings.Builder, edges []entities.Edge) {
	for _, e := range edges {
		fmt.Fprintf(b, "  (%.0f, %.0f) - (%.0f, %.0f) %.1f\n", e.From.X, e.From.Y, e.To.X, e.To.Y, e.Cost)
	}
}
