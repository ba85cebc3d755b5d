package v1alpha1_test

import (
	"context"
	"net"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/grpc/status"
	"google.golang.org/grpc/test/bufconn"
	"google.golang.org/protobuf/types/known/structpb"

	"github.com/KirkDiggler/dungeon-api/internal/engine"
	"github.com/KirkDiggler/dungeon-api/internal/errors"
	"github.com/KirkDiggler/dungeon-api/internal/handlers/dungeon/v1alpha1"
	"github.com/KirkDiggler/dungeon-api/internal/orchestrators/dungeon"
	"github.com/KirkDiggler/dungeon-api/internal/pkg/clock"
	"github.com/KirkDiggler/dungeon-api/internal/pkg/idgen"
	"github.com/KirkDiggler/dungeon-api/internal/pkg/rng"
	dungeonlayout "github.com/KirkDiggler/dungeon-api/internal/repositories/dungeon_layout"
	"github.com/KirkDiggler/dungeon-api/internal/testutils"
)

const bufSize = 1024 * 1024

// ServerTestSuite exercises the service end to end over an in-process
// listener.
type ServerTestSuite struct {
	suite.Suite
	server *grpc.Server
	conn   *grpc.ClientConn
	client v1alpha1.DungeonServiceClient
	ctx    context.Context
	cancel context.CancelFunc
}

func TestServerTestSuite(t *testing.T) {
	suite.Run(t, new(ServerTestSuite))
}

func (s *ServerTestSuite) SetupTest() {
	fixed := clock.Fixed(testutils.TestTime)

	e, err := engine.New(engine.DefaultConfig())
	s.Require().NoError(err)

	svc, err := dungeon.NewOrchestrator(&dungeon.Config{
		Engine:      e,
		Repository:  dungeonlayout.NewInMemory(fixed),
		IDGenerator: idgen.NewSequential(idgen.DungeonPrefix),
		SeedSource:  rng.NewSeedSource(fixed),
	})
	s.Require().NoError(err)

	handler, err := v1alpha1.NewHandler(&v1alpha1.HandlerConfig{DungeonService: svc})
	s.Require().NoError(err)

	lis := bufconn.Listen(bufSize)
	s.server = grpc.NewServer()
	v1alpha1.RegisterDungeonServiceServer(s.server, handler)
	go func() {
		_ = s.server.Serve(lis)
	}()

	s.conn, err = grpc.NewClient("passthrough:///bufnet",
		grpc.WithContextDialer(func(ctx context.Context, _ string) (net.Conn, error) {
			return lis.DialContext(ctx)
		}),
		grpc.WithTransportCredentials(insecure.NewCredentials()),
	)
	s.Require().NoError(err)

	s.client = v1alpha1.NewDungeonServiceClient(s.conn)
	s.ctx, s.cancel = context.WithTimeout(context.Background(), 10*time.Second)
}

func (s *ServerTestSuite) TearDownTest() {
	s.cancel()
	_ = s.conn.Close()
	s.server.Stop()
}

func (s *ServerTestSuite) call(
	fn func(context.Context, *structpb.Struct, ...grpc.CallOption) (*structpb.Struct, error),
	req any,
	resp any,
) error {
	in, err := v1alpha1.Encode(req)
	s.Require().NoError(err)

	out, err := fn(s.ctx, in)
	if err != nil {
		return err
	}
	s.Require().NoError(v1alpha1.Decode(out, resp))
	return nil
}

func (s *ServerTestSuite) TestRoundTrip() {
	seed := int64(11)
	var generated v1alpha1.DungeonResponse
	s.Require().NoError(s.call(s.client.GenerateDungeon, &v1alpha1.GenerateDungeonRequest{Seed: &seed}, &generated))
	s.Require().NotNil(generated.Dungeon)
	s.Assert().Equal("dgn_1", generated.Dungeon.ID)
	s.Assert().Equal(seed, generated.Dungeon.Seed)
	s.Assert().Len(generated.Dungeon.Rooms, engine.DefaultRooms)

	var fetched v1alpha1.DungeonResponse
	s.Require().NoError(s.call(s.client.GetDungeon, &v1alpha1.GetDungeonRequest{DungeonID: "dgn_1"}, &fetched))
	s.Assert().Equal(generated.Dungeon.Rooms, fetched.Dungeon.Rooms)

	var regenerated v1alpha1.DungeonResponse
	s.Require().NoError(s.call(s.client.RegenerateDungeon, &v1alpha1.RegenerateDungeonRequest{DungeonID: "dgn_1"}, &regenerated))
	s.Assert().Equal(generated.Dungeon.Corridors, regenerated.Dungeon.Corridors)

	var listed v1alpha1.ListDungeonsResponse
	s.Require().NoError(s.call(s.client.ListDungeons, &v1alpha1.ListDungeonsRequest{}, &listed))
	s.Assert().Equal([]string{"dgn_1"}, listed.DungeonIDs)

	var deleted v1alpha1.DeleteDungeonResponse
	s.Require().NoError(s.call(s.client.DeleteDungeon, &v1alpha1.DeleteDungeonRequest{DungeonID: "dgn_1"}, &deleted))
	s.Assert().True(deleted.Deleted)

	err := s.call(s.client.GetDungeon, &v1alpha1.GetDungeonRequest{DungeonID: "dgn_1"}, &fetched)
	s.Assert().Equal(codes.NotFound, status.Code(err))
}

func (s *ServerTestSuite) TestInvalidParameterCarriesReason() {
	var resp v1alpha1.DungeonResponse
	err := s.call(s.client.GenerateDungeon, map[string]any{
		"params": map[string]any{"min_room_size": 500, "max_room_size": 400},
	}, &resp)
	s.Require().Error(err)
	s.Assert().Equal(codes.InvalidArgument, status.Code(err))
	s.Assert().True(errors.IsInvalidParameter(errors.FromGRPCError(err)))
}
