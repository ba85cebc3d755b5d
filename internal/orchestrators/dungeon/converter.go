package dungeon

import (
	"github.com/KirkDiggler/dungeon-api/internal/engine"
	"github.com/KirkDiggler/dungeon-api/internal/engine/geometry"
	"github.com/KirkDiggler/dungeon-api/internal/entities"
)

func paramsToEngine(p entities.GenerationParams) engine.Params {
	return engine.Params{
		NumberOfRooms: p.NumberOfRooms,
		MinRoomSize:   p.MinRoomSize,
		MaxRoomSize:   p.MaxRoomSize,
		Margin:        p.Margin,
		MaxAttempts:   p.MaxAttempts,
	}
}

func paramsFromEngine(p engine.Params) entities.GenerationParams {
	return entities.GenerationParams{
		NumberOfRooms: p.NumberOfRooms,
		MinRoomSize:   p.MinRoomSize,
		MaxRoomSize:   p.MaxRoomSize,
		Margin:        p.Margin,
		MaxAttempts:   p.MaxAttempts,
	}
}

// layoutToEntity flattens an engine run into the stored snapshot. Only
// occupied cells are kept.
func layoutToEntity(id string, out *engine.RegenerateOutput) *entities.DungeonLayout {
	l := out.Layout

	dl := &entities.DungeonLayout{
		ID:     id,
		Seed:   l.Seed,
		Params: paramsFromEngine(l.Params),
		Grid: entities.GridInformation{
			Rows:      l.Grid.Rows,
			Cols:      l.Grid.Cols,
			CellWidth: l.Grid.CellWidth,
			CellDepth: l.Grid.CellDepth,
		},
		Rooms:              make([]entities.Room, 0, len(l.Rooms)),
		Cells:              []entities.Cell{},
		TriangulationEdges: edgesToEntity(l.TriangulationEdges()),
		MSTEdges:           edgesToEntity(l.MSTEdges()),
		Corridors:          make([]entities.Corridor, 0, len(l.Corridors)),
		Diagnostics: entities.Diagnostics{
			DegenerateTriangles: l.DegenerateTriangles,
			CarvedCells:         l.CarvedCells,
			Warnings:            out.Warnings,
		},
	}

	for _, r := range l.Rooms {
		dl.Rooms = append(dl.Rooms, entities.Room{
			ID:     r.ID,
			Center: positionToEntity(r.Center),
			Width:  r.Width,
			Depth:  r.Depth,
			Cell:   r.Cell,
		})
	}

	for i := range l.Cells {
		c := &l.Cells[i]
		if c.IsEmpty() {
			continue
		}
		dl.Cells = append(dl.Cells, entities.Cell{
			Index:    c.Index,
			Row:      c.Row,
			Col:      c.Col,
			State:    c.State.String(),
			Corridor: c.Corridor,
			Visible:  c.Visible,
		})
	}

	for _, c := range l.Corridors {
		dl.Corridors = append(dl.Corridors, entities.Corridor{
			Edge:  edgeToEntity(l.Graph.Segment(c.Edge)),
			Cells: c.Cells,
		})
	}

	for _, f := range l.Failures {
		dl.Diagnostics.UnroutedEdges = append(dl.Diagnostics.UnroutedEdges, edgeToEntity(l.Graph.Segment(f.Edge)))
	}

	return dl
}

func edgesToEntity(edges []geometry.Edge) []entities.Edge {
	out := make([]entities.Edge, len(edges))
	for i, e := range edges {
		out[i] = edgeToEntity(e)
	}
	return out
}

func edgeToEntity(e geometry.Edge) entities.Edge {
	return entities.Edge{
		From: positionToEntity(e.A),
		To:   positionToEntity(e.B),
		Cost: e.Cost,
	}
}

func positionToEntity(p geometry.Point) entities.Position {
	return entities.Position{X: p.X, Y: p.Y}
}
