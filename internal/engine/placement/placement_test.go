package placement_test

import (
	"testing"

	"github.com/stretchr/testify/suite"

	"github.com/KirkDiggler/dungeon-api/internal/engine/geometry"
	"github.com/KirkDiggler/dungeon-api/internal/engine/grid"
	"github.com/KirkDiggler/dungeon-api/internal/engine/placement"
	"github.com/KirkDiggler/dungeon-api/internal/errors"
	"github.com/KirkDiggler/dungeon-api/internal/pkg/rng"
	"github.com/KirkDiggler/dungeon-api/internal/testutils"
)

type PlacementTestSuite struct {
	suite.Suite
	grid *grid.Grid
	cfg  placement.Config
}

func TestPlacementSuite(t *testing.T) {
	suite.Run(t, new(PlacementTestSuite))
}

func (s *PlacementTestSuite) SetupTest() {
	g, err := grid.New(grid.DefaultConfig())
	s.Require().NoError(err)
	s.grid = g
	s.cfg = placement.Config{
		NumberOfRooms: 3,
		MinRoomSize:   placement.DefaultMinRoomSize,
		MaxRoomSize:   placement.DefaultMaxRoomSize,
		Margin:        placement.DefaultMargin,
		MaxAttempts:   placement.DefaultMaxAttempts,
	}
}

func (s *PlacementTestSuite) script(attempts ...[]int) *testutils.ScriptedRoller {
	var rolls []int
	for _, a := range attempts {
		rolls = append(rolls, a...)
	}
	return testutils.NewScriptedRoller(rolls...)
}

func (s *PlacementTestSuite) TestPlaceSnapsToCellCenters() {
	roller := s.script(
		testutils.RoomRolls(1010, 1020, 300, 600, 300),
		testutils.RoomRolls(5099, 1000, 450, 450, 300),
		testutils.RoomRolls(3000, 6000, 600, 300, 300),
	)

	rooms, err := placement.NewPlacer(s.grid, roller).Place(s.cfg)
	s.Require().NoError(err)
	s.Require().Len(rooms, 3)
	s.Assert().Zero(roller.Remaining())

	s.Assert().Equal("room-1", rooms[0].ID)
	s.Assert().Equal(geometry.Point{X: 1050, Y: 1050}, rooms[0].Center)
	s.Assert().Equal(300.0, rooms[0].Width)
	s.Assert().Equal(600.0, rooms[0].Depth)
	s.Assert().Equal(geometry.Point{X: 5050, Y: 1050}, rooms[1].Center)
	s.Assert().Equal(geometry.Point{X: 3050, Y: 6050}, rooms[2].Center)

	for _, r := range rooms {
		s.Assert().Equal(grid.StateRoom, s.grid.CellAt(r.Cell).State)
		s.Assert().Equal(r.Cell, s.grid.IndexAt(r.Center))
		s.Assert().Equal(placement.EntityType, r.GetType())
		s.Assert().Equal(r.ID, r.GetID())
	}
}

func (s *PlacementTestSuite) TestRejectsCandidatesWithinSpacing() {
	// spacing is 600+200 = 800; a distance of exactly 800 is still rejected
	roller := s.script(
		testutils.RoomRolls(1050, 1050, 300, 300, 300),
		testutils.RoomRolls(1850, 1050, 300, 300, 300),
		testutils.RoomRolls(1050, 1050, 300, 300, 300),
		testutils.RoomRolls(1950, 1050, 300, 300, 300),
	)
	s.cfg.NumberOfRooms = 2

	rooms, err := placement.NewPlacer(s.grid, roller).Place(s.cfg)
	s.Require().NoError(err)
	s.Require().Len(rooms, 2)
	s.Assert().Equal(geometry.Point{X: 1950, Y: 1050}, rooms[1].Center)
}

func (s *PlacementTestSuite) TestRejectsSeveredCells() {
	wall := s.grid.IndexAt(geometry.Point{X: 1050, Y: 1050})
	s.grid.Sever(wall)
	roller := s.script(
		testutils.RoomRolls(1050, 1050, 300, 300, 300),
		testutils.RoomRolls(2050, 1050, 300, 300, 300),
		testutils.RoomRolls(6050, 6050, 300, 300, 300),
	)
	s.cfg.NumberOfRooms = 2

	rooms, err := placement.NewPlacer(s.grid, roller).Place(s.cfg)
	s.Require().NoError(err)
	s.Require().Len(rooms, 2)
	s.Assert().Zero(roller.Remaining())
	s.Assert().Equal(geometry.Point{X: 2050, Y: 1050}, rooms[0].Center)
	s.Assert().Equal(grid.StateEmpty, s.grid.CellAt(wall).State)
}

func (s *PlacementTestSuite) TestExhaustionResetsGrid() {
	s.cfg.NumberOfRooms = 2
	s.cfg.MaxAttempts = 3
	roller := s.script(
		testutils.RoomRolls(1050, 1050, 300, 300, 300),
		testutils.RoomRolls(1060, 1060, 300, 300, 300),
		testutils.RoomRolls(1100, 1500, 300, 300, 300),
		testutils.RoomRolls(1500, 1100, 300, 300, 300),
	)

	rooms, err := placement.NewPlacer(s.grid, roller).Place(s.cfg)
	s.Require().Error(err)
	s.Assert().Nil(rooms)
	s.Assert().True(errors.IsPlacementExhausted(err))
	s.Assert().Equal(1, errors.GetMeta(err)["room_index"])
	s.Assert().Equal(3, errors.GetMeta(err)["attempts"])

	for _, c := range s.grid.Cells() {
		s.Assert().True(c.IsEmpty())
	}
}

func (s *PlacementTestSuite) TestImpossibleDensityExhausts() {
	small, err := grid.New(grid.Config{Rows: 10, Cols: 10, CellWidth: 100, CellDepth: 100})
	s.Require().NoError(err)
	s.cfg.NumberOfRooms = 20
	s.cfg.MaxAttempts = 50

	_, err = placement.NewPlacer(small, rng.NewSeeded(3)).Place(s.cfg)
	s.Assert().True(errors.IsPlacementExhausted(err))
}

func (s *PlacementTestSuite) TestRollerErrorsPropagate() {
	_, err := placement.NewPlacer(s.grid, testutils.NewScriptedRoller(1)).Place(s.cfg)
	s.Require().Error(err)
	s.Assert().False(errors.IsPlacementExhausted(err))
}

func (s *PlacementTestSuite) TestSeededPlacementIsSeparated() {
	s.cfg.NumberOfRooms = 12
	rooms, err := placement.NewPlacer(s.grid, rng.NewSeeded(99)).Place(s.cfg)
	s.Require().NoError(err)
	s.Require().Len(rooms, 12)

	spacing := float64(s.cfg.MaxRoomSize + s.cfg.Margin)
	for i := range rooms {
		s.Assert().GreaterOrEqual(rooms[i].Width, float64(s.cfg.MinRoomSize))
		s.Assert().LessOrEqual(rooms[i].Width, float64(s.cfg.MaxRoomSize))
		for j := i + 1; j < len(rooms); j++ {
			s.Assert().Greater(geometry.Distance(rooms[i].Center, rooms[j].Center), spacing)
			s.Assert().NotEqual(rooms[i].Cell, rooms[j].Cell)
		}
	}
}

func (s *PlacementTestSuite) TestValidate() {
	testCases := []struct {
		name   string
		modify func(*placement.Config)
	}{
		{"no rooms", func(c *placement.Config) { c.NumberOfRooms = 0 }},
		{"inverted sizes", func(c *placement.Config) { c.MinRoomSize, c.MaxRoomSize = 600, 300 }},
		{"negative margin", func(c *placement.Config) { c.Margin = -1 }},
		{"no attempts", func(c *placement.Config) { c.MaxAttempts = 0 }},
	}

	for _, tc := range testCases {
		s.Run(tc.name, func() {
			cfg := s.cfg
			tc.modify(&cfg)
			_, err := placement.NewPlacer(s.grid, rng.NewSeeded(1)).Place(cfg)
			s.Assert().True(errors.IsInvalidParameter(err))
		})
	}
}
