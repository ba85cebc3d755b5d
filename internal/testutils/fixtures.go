package testutils

import (
	"time"

	"github.com/KirkDiggler/dungeon-api/internal/entities"
)

// Fixture identifiers
const (
	TestLayoutID = "dgn_test-001"
	TestSeed     = int64(42)
)

// TestTime is the instant fixtures are stamped with.
var TestTime = time.Date(2024, time.March, 1, 12, 0, 0, 0, time.UTC)

// CreateTestLayout returns a small three room layout with one corridor.
func CreateTestLayout(id string) *entities.DungeonLayout {
	a := entities.Position{X: 1050, Y: 1050}
	b := entities.Position{X: 5050, Y: 1050}
	c := entities.Position{X: 2050, Y: 6050}

	ab := entities.Edge{From: a, To: b, Cost: 4000}
	ac := entities.Edge{From: a, To: c, Cost: 5099.019513592785}
	bc := entities.Edge{From: b, To: c, Cost: 5830.951894845300}

	return &entities.DungeonLayout{
		ID:   id,
		Seed: TestSeed,
		Params: entities.GenerationParams{
			NumberOfRooms: 3,
			MinRoomSize:   300,
			MaxRoomSize:   600,
			Margin:        200,
			MaxAttempts:   1000,
		},
		Grid: entities.GridInformation{Rows: 100, Cols: 100, CellWidth: 100, CellDepth: 100},
		Rooms: []entities.Room{
			{ID: "room-0", Center: a, Width: 400, Depth: 400, Cell: 1010},
			{ID: "room-1", Center: b, Width: 400, Depth: 400, Cell: 1050},
			{ID: "room-2", Center: c, Width: 400, Depth: 400, Cell: 6020},
		},
		Cells: []entities.Cell{
			{Index: 1010, Row: 10, Col: 10, State: entities.CellStateRoom},
			{Index: 1011, Row: 10, Col: 11, State: entities.CellStateCorridor, Corridor: true, Visible: true},
			{Index: 1050, Row: 10, Col: 50, State: entities.CellStateRoom},
			{Index: 6020, Row: 60, Col: 20, State: entities.CellStateRoom},
		},
		TriangulationEdges: []entities.Edge{ab, bc, ac},
		MSTEdges:           []entities.Edge{ab, ac},
		Corridors: []entities.Corridor{
			{Edge: ab, Cells: []int{1010, 1011, 1050}},
		},
		Diagnostics: entities.Diagnostics{CarvedCells: 1},
		CreatedAt:   TestTime,
		UpdatedAt:   TestTime,
	}
}
