package dungeonlayout_test

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"

	"github.com/KirkDiggler/dungeon-api/internal/errors"
	mockclock "github.com/KirkDiggler/dungeon-api/internal/pkg/clock/mock"
	redisclient "github.com/KirkDiggler/dungeon-api/internal/redis"
	dungeonlayout "github.com/KirkDiggler/dungeon-api/internal/repositories/dungeon_layout"
	"github.com/KirkDiggler/dungeon-api/internal/testutils"
)

type RedisRepositoryTestSuite struct {
	suite.Suite
	ctrl      *gomock.Controller
	mockClock *mockclock.MockClock
	client    redisclient.Client
	mr        *miniredis.Miniredis
	repo      dungeonlayout.Repository
	ctx       context.Context
}

func TestRedisRepositorySuite(t *testing.T) {
	suite.Run(t, new(RedisRepositoryTestSuite))
}

func (s *RedisRepositoryTestSuite) SetupTest() {
	s.ctrl = gomock.NewController(s.T())
	s.mockClock = mockclock.NewMockClock(s.ctrl)
	s.client, s.mr = testutils.CreateTestRedisClient(s.T())
	s.ctx = context.Background()

	repo, err := dungeonlayout.NewRedisRepository(&dungeonlayout.Config{
		Client: s.client,
		Clock:  s.mockClock,
	})
	s.Require().NoError(err)
	s.repo = repo
}

func (s *RedisRepositoryTestSuite) TearDownTest() {
	s.ctrl.Finish()
}

func (s *RedisRepositoryTestSuite) TestNewRedisRepository() {
	testCases := []struct {
		name   string
		config *dungeonlayout.Config
	}{
		{name: "nil config", config: nil},
		{name: "missing client", config: &dungeonlayout.Config{Clock: s.mockClock}},
		{name: "missing clock", config: &dungeonlayout.Config{Client: s.client}},
	}

	for _, tc := range testCases {
		s.Run(tc.name, func() {
			repo, err := dungeonlayout.NewRedisRepository(tc.config)
			s.Assert().Nil(repo)
			s.Assert().True(errors.IsInvalidArgument(err))
		})
	}
}

func (s *RedisRepositoryTestSuite) TestSaveAndGet() {
	s.mockClock.EXPECT().Now().Return(testutils.TestTime).AnyTimes()
	layout := testutils.CreateTestLayout(testutils.TestLayoutID)

	saved, err := s.repo.Save(s.ctx, &dungeonlayout.SaveInput{Layout: layout, TTL: time.Hour})
	s.Require().NoError(err)
	s.Assert().True(testutils.TestTime.Add(time.Hour).Equal(saved.Layout.ExpiresAt))
	s.Assert().True(layout.ExpiresAt.IsZero(), "input must not be mutated")

	s.Assert().True(s.mr.Exists("dungeon_layout:" + testutils.TestLayoutID))
	s.Assert().Equal(time.Hour, s.mr.TTL("dungeon_layout:"+testutils.TestLayoutID))

	got, err := s.repo.Get(s.ctx, &dungeonlayout.GetInput{ID: testutils.TestLayoutID})
	s.Require().NoError(err)
	s.Assert().Equal(layout.Rooms, got.Layout.Rooms)
	s.Assert().Equal(layout.Corridors, got.Layout.Corridors)
	s.Assert().Equal(layout.MSTEdges, got.Layout.MSTEdges)
	s.Assert().Equal(layout.Seed, got.Layout.Seed)
	s.Assert().True(saved.Layout.ExpiresAt.Equal(got.Layout.ExpiresAt))
}

func (s *RedisRepositoryTestSuite) TestSaveDefaultTTL() {
	s.mockClock.EXPECT().Now().Return(testutils.TestTime)

	_, err := s.repo.Save(s.ctx, &dungeonlayout.SaveInput{Layout: testutils.CreateTestLayout("dgn_ttl")})
	s.Require().NoError(err)
	s.Assert().Equal(dungeonlayout.DefaultTTL, s.mr.TTL("dungeon_layout:dgn_ttl"))
}

func (s *RedisRepositoryTestSuite) TestSaveValidation() {
	testCases := []struct {
		name  string
		input *dungeonlayout.SaveInput
	}{
		{name: "nil input", input: nil},
		{name: "nil layout", input: &dungeonlayout.SaveInput{}},
		{name: "empty id", input: &dungeonlayout.SaveInput{Layout: testutils.CreateTestLayout("")}},
		{name: "negative ttl", input: &dungeonlayout.SaveInput{Layout: testutils.CreateTestLayout("x"), TTL: -time.Second}},
	}

	for _, tc := range testCases {
		s.Run(tc.name, func() {
			_, err := s.repo.Save(s.ctx, tc.input)
			s.Assert().True(errors.IsInvalidArgument(err))
		})
	}
}

func (s *RedisRepositoryTestSuite) TestGetNotFound() {
	_, err := s.repo.Get(s.ctx, &dungeonlayout.GetInput{ID: "dgn_missing"})
	s.Assert().True(errors.IsNotFound(err))

	_, err = s.repo.Get(s.ctx, &dungeonlayout.GetInput{})
	s.Assert().True(errors.IsInvalidArgument(err))
}

func (s *RedisRepositoryTestSuite) TestGetAfterTTL() {
	s.mockClock.EXPECT().Now().Return(testutils.TestTime)
	_, err := s.repo.Save(s.ctx, &dungeonlayout.SaveInput{
		Layout: testutils.CreateTestLayout(testutils.TestLayoutID),
		TTL:    time.Minute,
	})
	s.Require().NoError(err)

	s.mr.FastForward(2 * time.Minute)

	_, err = s.repo.Get(s.ctx, &dungeonlayout.GetInput{ID: testutils.TestLayoutID})
	s.Assert().True(errors.IsNotFound(err))
}

func (s *RedisRepositoryTestSuite) TestGetStaleByClock() {
	gomock.InOrder(
		s.mockClock.EXPECT().Now().Return(testutils.TestTime),
		s.mockClock.EXPECT().Now().Return(testutils.TestTime.Add(2*time.Hour)),
	)
	_, err := s.repo.Save(s.ctx, &dungeonlayout.SaveInput{
		Layout: testutils.CreateTestLayout(testutils.TestLayoutID),
		TTL:    time.Hour,
	})
	s.Require().NoError(err)

	_, err = s.repo.Get(s.ctx, &dungeonlayout.GetInput{ID: testutils.TestLayoutID})
	s.Assert().True(errors.IsNotFound(err))
	s.Assert().False(s.mr.Exists("dungeon_layout:" + testutils.TestLayoutID))
}

func (s *RedisRepositoryTestSuite) TestDelete() {
	s.mockClock.EXPECT().Now().Return(testutils.TestTime)
	_, err := s.repo.Save(s.ctx, &dungeonlayout.SaveInput{Layout: testutils.CreateTestLayout(testutils.TestLayoutID)})
	s.Require().NoError(err)

	out, err := s.repo.Delete(s.ctx, &dungeonlayout.DeleteInput{ID: testutils.TestLayoutID})
	s.Require().NoError(err)
	s.Assert().True(out.Deleted)
	s.Assert().False(s.mr.Exists("dungeon_layout:" + testutils.TestLayoutID))

	_, err = s.repo.Delete(s.ctx, &dungeonlayout.DeleteInput{ID: testutils.TestLayoutID})
	s.Assert().True(errors.IsNotFound(err))
}

func (s *RedisRepositoryTestSuite) TestListNewestFirst() {
	gomock.InOrder(
		s.mockClock.EXPECT().Now().Return(testutils.TestTime),
		s.mockClock.EXPECT().Now().Return(testutils.TestTime.Add(time.Second)),
		s.mockClock.EXPECT().Now().Return(testutils.TestTime.Add(2*time.Second)),
	)
	for _, id := range []string{"dgn_a", "dgn_b", "dgn_c"} {
		_, err := s.repo.Save(s.ctx, &dungeonlayout.SaveInput{Layout: testutils.CreateTestLayout(id)})
		s.Require().NoError(err)
	}

	out, err := s.repo.List(s.ctx, &dungeonlayout.ListInput{})
	s.Require().NoError(err)
	s.Assert().Equal([]string{"dgn_c", "dgn_b", "dgn_a"}, out.IDs)

	out, err = s.repo.List(s.ctx, &dungeonlayout.ListInput{Limit: 2})
	s.Require().NoError(err)
	s.Assert().Equal([]string{"dgn_c", "dgn_b"}, out.IDs)
}

func (s *RedisRepositoryTestSuite) TestListPrunesExpired() {
	gomock.InOrder(
		s.mockClock.EXPECT().Now().Return(testutils.TestTime),
		s.mockClock.EXPECT().Now().Return(testutils.TestTime.Add(time.Second)),
	)
	_, err := s.repo.Save(s.ctx, &dungeonlayout.SaveInput{Layout: testutils.CreateTestLayout("dgn_short"), TTL: time.Minute})
	s.Require().NoError(err)
	_, err = s.repo.Save(s.ctx, &dungeonlayout.SaveInput{Layout: testutils.CreateTestLayout("dgn_long"), TTL: time.Hour})
	s.Require().NoError(err)

	s.mr.FastForward(5 * time.Minute)

	out, err := s.repo.List(s.ctx, &dungeonlayout.ListInput{})
	s.Require().NoError(err)
	s.Assert().Equal([]string{"dgn_long"}, out.IDs)

	members, err := s.mr.ZMembers("dungeon_layout_index")
	s.Require().NoError(err)
	s.Assert().Equal([]string{"dgn_long"}, members)
}

func (s *RedisRepositoryTestSuite) TestListEmptyAndInvalid() {
	out, err := s.repo.List(s.ctx, &dungeonlayout.ListInput{})
	s.Require().NoError(err)
	s.Assert().Empty(out.IDs)

	_, err = s.repo.List(s.ctx, &dungeonlayout.ListInput{Limit: -1})
	s.Assert().True(errors.IsInvalidArgument(err))
}
