package dungeon_test

import (
	"context"
	"testing"
	"time"

	"github.com/KirkDiggler/rpg-toolkit/dice"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"

	"github.com/KirkDiggler/dungeon-api/internal/engine"
	enginemock "github.com/KirkDiggler/dungeon-api/internal/engine/mock"
	"github.com/KirkDiggler/dungeon-api/internal/entities"
	"github.com/KirkDiggler/dungeon-api/internal/errors"
	"github.com/KirkDiggler/dungeon-api/internal/orchestrators/dungeon"
	"github.com/KirkDiggler/dungeon-api/internal/pkg/idgen"
	rngmock "github.com/KirkDiggler/dungeon-api/internal/pkg/rng/mock"
	dungeonlayout "github.com/KirkDiggler/dungeon-api/internal/repositories/dungeon_layout"
	dungeonlayoutmock "github.com/KirkDiggler/dungeon-api/internal/repositories/dungeon_layout/mock"
	"github.com/KirkDiggler/dungeon-api/internal/testutils"
	"github.com/KirkDiggler/dungeon-api/internal/testutils/mocks"
)

type OrchestratorTestSuite struct {
	suite.Suite
	ctrl         *gomock.Controller
	mockEngine   *enginemock.MockEngine
	mockRepo     *dungeonlayoutmock.MockRepository
	mockSeeds    *rngmock.MockSeedSource
	orchestrator dungeon.Service
	ctx          context.Context
}

func TestOrchestratorSuite(t *testing.T) {
	suite.Run(t, new(OrchestratorTestSuite))
}

func (s *OrchestratorTestSuite) SetupTest() {
	s.ctrl = gomock.NewController(s.T())
	s.mockEngine = enginemock.NewMockEngine(s.ctrl)
	s.mockRepo = dungeonlayoutmock.NewMockRepository(s.ctrl)
	s.mockSeeds = rngmock.NewMockSeedSource(s.ctrl)
	s.ctx = context.Background()

	var err error
	s.orchestrator, err = dungeon.NewOrchestrator(&dungeon.Config{
		Engine:      s.mockEngine,
		Repository:  s.mockRepo,
		IDGenerator: idgen.NewSequential(idgen.DungeonPrefix),
		SeedSource:  s.mockSeeds,
		TTL:         time.Hour,
	})
	s.Require().NoError(err)
}

func (s *OrchestratorTestSuite) TearDownTest() {
	s.ctrl.Finish()
}

// engineOutput runs a real engine over three scripted rooms so the mocked
// engine can hand back a complete layout.
func (s *OrchestratorTestSuite) engineOutput(seed int64) *engine.RegenerateOutput {
	var rolls []int
	rolls = append(rolls, testutils.RoomRolls(1050, 1050, 400, 400, 300)...)
	rolls = append(rolls, testutils.RoomRolls(5050, 1050, 400, 400, 300)...)
	rolls = append(rolls, testutils.RoomRolls(2050, 6050, 400, 400, 300)...)
	roller := testutils.NewScriptedRoller(rolls...)

	cfg := engine.DefaultConfig()
	cfg.NewRoller = func(int64) dice.Roller { return roller }
	e, err := engine.New(cfg)
	s.Require().NoError(err)

	out, err := e.Regenerate(s.ctx, &engine.RegenerateInput{Seed: seed, Params: engine.Params{NumberOfRooms: 3}})
	s.Require().NoError(err)
	out.Warnings = []string{"number_of_rooms 1 clamped to 3"}
	return out
}

func (s *OrchestratorTestSuite) TestNewOrchestratorValidation() {
	_, err := dungeon.NewOrchestrator(nil)
	s.Assert().True(errors.IsInvalidArgument(err))

	_, err = dungeon.NewOrchestrator(&dungeon.Config{})
	s.Require().Error(err)
	s.Assert().True(errors.IsInvalidArgument(err))
	s.Assert().Contains(err.Error(), "Engine")
	s.Assert().Contains(err.Error(), "SeedSource")

	_, err = dungeon.NewOrchestrator(&dungeon.Config{
		Engine:      s.mockEngine,
		Repository:  s.mockRepo,
		IDGenerator: idgen.NewSequential(""),
		SeedSource:  s.mockSeeds,
		TTL:         -time.Second,
	})
	s.Assert().True(errors.IsInvalidArgument(err))
}

func (s *OrchestratorTestSuite) TestGenerateDungeonWithSeed() {
	seed := int64(7)
	out := s.engineOutput(seed)

	s.mockEngine.EXPECT().
		Regenerate(s.ctx, &engine.RegenerateInput{Seed: 7, Params: engine.Params{NumberOfRooms: 1}}).
		Return(out, nil)

	var saved *entities.DungeonLayout
	s.mockRepo.EXPECT().
		Save(s.ctx, gomock.Any()).
		DoAndReturn(func(_ context.Context, input *dungeonlayout.SaveInput) (*dungeonlayout.SaveOutput, error) {
			s.Assert().Equal(time.Hour, input.TTL)
			saved = input.Layout
			return &dungeonlayout.SaveOutput{Layout: input.Layout}, nil
		})

	result, err := s.orchestrator.GenerateDungeon(s.ctx, &dungeon.GenerateDungeonInput{
		Seed:   &seed,
		Params: entities.GenerationParams{NumberOfRooms: 1},
	})
	s.Require().NoError(err)
	s.Require().NotNil(saved)

	layout := result.Layout
	s.Assert().Equal("dgn_1", layout.ID)
	s.Assert().Equal(int64(7), layout.Seed)
	s.Assert().Equal(3, layout.Params.NumberOfRooms)
	s.Assert().Equal(300, layout.Params.MinRoomSize)
	s.Require().Len(layout.Rooms, 3)
	s.Assert().Equal(entities.Position{X: 1050, Y: 1050}, layout.Rooms[0].Center)
	s.Assert().Len(layout.TriangulationEdges, 3)
	s.Require().Len(layout.MSTEdges, 2)
	s.Assert().InDelta(4000.0, layout.MSTEdges[0].Cost, 1e-9)
	s.Assert().Len(layout.Corridors, 2)
	s.Assert().Empty(layout.Diagnostics.UnroutedEdges)
	s.Assert().Equal([]string{"number_of_rooms 1 clamped to 3"}, layout.Diagnostics.Warnings)
	s.Assert().Equal(100, layout.Grid.Rows)

	rooms, corridors := 0, 0
	for _, c := range layout.Cells {
		switch c.State {
		case entities.CellStateRoom:
			rooms++
		case entities.CellStateCorridor:
			corridors++
			s.Assert().True(c.Corridor)
			s.Assert().True(c.Visible)
		default:
			s.Failf("unexpected cell state", "cell %d has state %q", c.Index, c.State)
		}
	}
	s.Assert().Equal(3, rooms)
	s.Assert().Equal(layout.Diagnostics.CarvedCells, corridors)
}

func (s *OrchestratorTestSuite) TestGenerateDungeonSeedSource() {
	testCases := []struct {
		name  string
		input *dungeon.GenerateDungeonInput
	}{
		{name: "no seed", input: &dungeon.GenerateDungeonInput{}},
		{name: "new seed overrides seed", input: &dungeon.GenerateDungeonInput{Seed: ptr(int64(5)), NewSeed: true}},
	}

	for _, tc := range testCases {
		s.Run(tc.name, func() {
			s.mockSeeds.EXPECT().NewSeed().Return(int64(321))
			s.mockEngine.EXPECT().
				Regenerate(s.ctx, &engine.RegenerateInput{Seed: 321}).
				Return(s.engineOutput(321), nil)
			mocks.ExpectLayoutSave(s.ctx, s.mockRepo, nil)

			result, err := s.orchestrator.GenerateDungeon(s.ctx, tc.input)
			s.Require().NoError(err)
			s.Assert().Equal(int64(321), result.Layout.Seed)
		})
	}
}

func (s *OrchestratorTestSuite) TestGenerateDungeonInvalidInput() {
	_, err := s.orchestrator.GenerateDungeon(s.ctx, nil)
	s.Assert().True(errors.IsInvalidArgument(err))

	_, err = s.orchestrator.GenerateDungeon(s.ctx, &dungeon.GenerateDungeonInput{Seed: ptr(int64(-1))})
	s.Assert().True(errors.IsInvalidParameter(err))

	_, err = s.orchestrator.GenerateDungeon(s.ctx, &dungeon.GenerateDungeonInput{TTL: -time.Minute})
	s.Assert().True(errors.IsInvalidArgument(err))
}

func (s *OrchestratorTestSuite) TestGenerateDungeonEngineFailure() {
	s.mockEngine.EXPECT().
		Regenerate(s.ctx, gomock.Any()).
		Return(nil, errors.PlacementExhaustedf("room 2 could not be placed after 1000 attempts").
			WithMeta("room_index", 2))

	_, err := s.orchestrator.GenerateDungeon(s.ctx, &dungeon.GenerateDungeonInput{Seed: ptr(int64(1))})
	s.Require().Error(err)
	s.Assert().True(errors.IsPlacementExhausted(err))
	s.Assert().Equal(2, errors.GetMeta(err)["room_index"])
}

func (s *OrchestratorTestSuite) TestGenerateDungeonSaveFailure() {
	s.mockEngine.EXPECT().Regenerate(s.ctx, gomock.Any()).Return(s.engineOutput(1), nil)
	s.mockRepo.EXPECT().Save(s.ctx, gomock.Any()).Return(nil, errors.Unavailable("redis down"))

	_, err := s.orchestrator.GenerateDungeon(s.ctx, &dungeon.GenerateDungeonInput{Seed: ptr(int64(1))})
	s.Require().Error(err)
	s.Assert().Equal(errors.CodeUnavailable, errors.GetCode(err))
}

func (s *OrchestratorTestSuite) TestGetDungeon() {
	layout := testutils.CreateTestLayout(testutils.TestLayoutID)
	mocks.ExpectLayoutGet(s.ctx, s.mockRepo, layout)

	result, err := s.orchestrator.GetDungeon(s.ctx, &dungeon.GetDungeonInput{DungeonID: testutils.TestLayoutID})
	s.Require().NoError(err)
	s.Assert().Equal(layout, result.Layout)
}

func (s *OrchestratorTestSuite) TestGetDungeonErrors() {
	_, err := s.orchestrator.GetDungeon(s.ctx, nil)
	s.Assert().True(errors.IsInvalidArgument(err))

	_, err = s.orchestrator.GetDungeon(s.ctx, &dungeon.GetDungeonInput{})
	s.Assert().True(errors.IsInvalidArgument(err))

	mocks.ExpectLayoutNotFound(s.ctx, s.mockRepo, "dgn_missing")
	_, err = s.orchestrator.GetDungeon(s.ctx, &dungeon.GetDungeonInput{DungeonID: "dgn_missing"})
	s.Assert().True(errors.IsNotFound(err))
}

func (s *OrchestratorTestSuite) TestRegenerateDungeonKeepsSeed() {
	stored := testutils.CreateTestLayout(testutils.TestLayoutID)
	mocks.ExpectLayoutGet(s.ctx, s.mockRepo, stored)

	s.mockEngine.EXPECT().
		Regenerate(s.ctx, &engine.RegenerateInput{
			Seed: testutils.TestSeed,
			Params: engine.Params{
				NumberOfRooms: 3,
				MinRoomSize:   300,
				MaxRoomSize:   600,
				Margin:        200,
				MaxAttempts:   1000,
			},
		}).
		Return(s.engineOutput(testutils.TestSeed), nil)

	var saved *entities.DungeonLayout
	mocks.ExpectLayoutSave(s.ctx, s.mockRepo, &saved)

	result, err := s.orchestrator.RegenerateDungeon(s.ctx, &dungeon.RegenerateDungeonInput{DungeonID: testutils.TestLayoutID})
	s.Require().NoError(err)
	s.Require().NotNil(saved)
	s.Assert().Equal(testutils.TestLayoutID, result.Layout.ID)
	s.Assert().Equal(testutils.TestSeed, result.Layout.Seed)
	s.Assert().True(testutils.TestTime.Equal(saved.CreatedAt))
}

func (s *OrchestratorTestSuite) TestRegenerateDungeonNewSeed() {
	stored := testutils.CreateTestLayout(testutils.TestLayoutID)
	mocks.ExpectLayoutGet(s.ctx, s.mockRepo, stored)
	s.mockSeeds.EXPECT().NewSeed().Return(int64(999))
	s.mockEngine.EXPECT().
		Regenerate(s.ctx, gomock.Any()).
		DoAndReturn(func(_ context.Context, input *engine.RegenerateInput) (*engine.RegenerateOutput, error) {
			s.Assert().Equal(int64(999), input.Seed)
			return s.engineOutput(input.Seed), nil
		})
	mocks.ExpectLayoutSave(s.ctx, s.mockRepo, nil)

	result, err := s.orchestrator.RegenerateDungeon(s.ctx, &dungeon.RegenerateDungeonInput{
		DungeonID: testutils.TestLayoutID,
		NewSeed:   true,
	})
	s.Require().NoError(err)
	s.Assert().Equal(int64(999), result.Layout.Seed)
}

func (s *OrchestratorTestSuite) TestRegenerateDungeonMissing() {
	mocks.ExpectLayoutNotFound(s.ctx, s.mockRepo, "dgn_missing")

	_, err := s.orchestrator.RegenerateDungeon(s.ctx, &dungeon.RegenerateDungeonInput{DungeonID: "dgn_missing"})
	s.Assert().True(errors.IsNotFound(err))

	_, err = s.orchestrator.RegenerateDungeon(s.ctx, &dungeon.RegenerateDungeonInput{})
	s.Assert().True(errors.IsInvalidArgument(err))
}

func (s *OrchestratorTestSuite) TestDeleteDungeon() {
	s.mockRepo.EXPECT().
		Delete(s.ctx, &dungeonlayout.DeleteInput{ID: testutils.TestLayoutID}).
		Return(&dungeonlayout.DeleteOutput{Deleted: true}, nil)

	result, err := s.orchestrator.DeleteDungeon(s.ctx, &dungeon.DeleteDungeonInput{DungeonID: testutils.TestLayoutID})
	s.Require().NoError(err)
	s.Assert().True(result.Deleted)

	_, err = s.orchestrator.DeleteDungeon(s.ctx, &dungeon.DeleteDungeonInput{})
	s.Assert().True(errors.IsInvalidArgument(err))
}

func (s *OrchestratorTestSuite) TestListDungeons() {
	s.mockRepo.EXPECT().
		List(s.ctx, &dungeonlayout.ListInput{Limit: 5}).
		Return(&dungeonlayout.ListOutput{IDs: []string{"dgn_2", "dgn_1"}}, nil)

	result, err := s.orchestrator.ListDungeons(s.ctx, &dungeon.ListDungeonsInput{Limit: 5})
	s.Require().NoError(err)
	s.Assert().Equal([]string{"dgn_2", "dgn_1"}, result.DungeonIDs)

	_, err = s.orchestrator.ListDungeons(s.ctx, &dungeon.ListDungeonsInput{Limit: -1})
	s.Assert().True(errors.IsInvalidArgument(err))
}

func ptr[T any](v T) *T {
	return &v
}
