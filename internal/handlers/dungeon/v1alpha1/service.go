package v1alpha1

import (
	"context"

	"google.golang.org/grpc"
	"google.golang.org/protobuf/types/known/structpb"
)

// ServiceName is the fully qualified gRPC service name
const ServiceName = "dungeon.api.v1alpha1.DungeonService"

// Full method names
const (
	GenerateDungeonFullMethodName   = "/" + ServiceName + "/GenerateDungeon"
	GetDungeonFullMethodName        = "/" + ServiceName + "/GetDungeon"
	RegenerateDungeonFullMethodName = "/" + ServiceName + "/RegenerateDungeon"
	DeleteDungeonFullMethodName     = "/" + ServiceName + "/DeleteDungeon"
	ListDungeonsFullMethodName      = "/" + ServiceName + "/ListDungeons"
)

// DungeonServiceServer is the server API for DungeonService. Every message is
// a google.protobuf.Struct carrying the JSON shapes in messages.go.
type DungeonServiceServer interface {
	GenerateDungeon(context.Context, *structpb.Struct) (*structpb.Struct, error)
	GetDungeon(context.Context, *structpb.Struct) (*structpb.Struct, error)
	RegenerateDungeon(context.Context, *structpb.Struct) (*structpb.Struct, error)
	DeleteDungeon(context.Context, *structpb.Struct) (*structpb.Struct, error)
	ListDungeons(context.Context, *structpb.Struct) (*structpb.Struct, error)
}

// RegisterDungeonServiceServer registers srv on s
func RegisterDungeonServiceServer(s grpc.ServiceRegistrar, srv DungeonServiceServer) {
	s.RegisterService(&DungeonServiceDesc, srv)
}

func unaryHandler(
	fullMethod string,
	call func(DungeonServiceServer, context.Context, *structpb.Struct) (*structpb.Struct, error),
) func(any, context.Context, func(any) error, grpc.UnaryServerInterceptor) (any, error) {
	return func(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
		in := new(structpb.Struct)
		if err := dec(in); err != nil {
			return nil, err
		}
		if interceptor == nil {
			return call(srv.(DungeonServiceServer), ctx, in)
		}
		info := &grpc.UnaryServerInfo{
			Server:     srv,
			FullMethod: fullMethod,
		}
		handler := func(ctx context.Context, req any) (any, error) {
			return call(srv.(DungeonServiceServer), ctx, req.(*structpb.Struct))
		}
		return interceptor(ctx, in, info, handler)
	}
}

// DungeonServiceDesc is the grpc.ServiceDesc for DungeonService
var DungeonServiceDesc = grpc.ServiceDesc{
	ServiceName: ServiceName,
	HandlerType: (*DungeonServiceServer)(nil),
	Methods: []grpc.MethodDesc{
		{
			MethodName: "GenerateDungeon",
			Handler:    unaryHandler(GenerateDungeonFullMethodName, DungeonServiceServer.GenerateDungeon),
		},
		{
			MethodName: "GetDungeon",
			Handler:    unaryHandler(GetDungeonFullMethodName, DungeonServiceServer.GetDungeon),
		},
		{
			MethodName: "RegenerateDungeon",
			Handler:    unaryHandler(RegenerateDungeonFullMethodName, DungeonServiceServer.RegenerateDungeon),
		},
		{
			MethodName: "DeleteDungeon",
			Handler:    unaryHandler(DeleteDungeonFullMethodName, DungeonServiceServer.DeleteDungeon),
		},
		{
			MethodName: "ListDungeons",
			Handler:    unaryHandler(ListDungeonsFullMethodName, DungeonServiceServer.ListDungeons),
		},
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "dungeon/api/v1alpha1/dungeon.proto",
}

// DungeonServiceClient is the client API for DungeonService
type DungeonServiceClient interface {
	GenerateDungeon(ctx context.Context, in *structpb.Struct, opts ...grpc.CallOption) (*structpb.Struct, error)
	GetDungeon(ctx context.Context, in *structpb.Struct, opts ...grpc.CallOption) (*structpb.Struct, error)
	RegenerateDungeon(ctx context.Context, in *structpb.Struct, opts ...grpc.CallOption) (*structpb.Struct, error)
	DeleteDungeon(ctx context.Context, in *structpb.Struct, opts ...grpc.CallOption) (*structpb.Struct, error)
	ListDungeons(ctx context.Context, in *structpb.Struct, opts ...grpc.CallOption) (*structpb.Struct, error)
}

type dungeonServiceClient struct {
	cc grpc.ClientConnInterface
}

// NewDungeonServiceClient creates a client over cc
func NewDungeonServiceClient(cc grpc.ClientConnInterface) DungeonServiceClient {
	return &dungeonServiceClient{cc: cc}
}

func (c *dungeonServiceClient) invoke(ctx context.Context, method string, in *structpb.Struct, opts []grpc.CallOption) (*structpb.Struct, error) {
	out := new(structpb.Struct)
	if err := c.cc.Invoke(ctx, method, in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *dungeonServiceClient) GenerateDungeon(ctx context.Context, in *structpb.Struct, opts ...grpc.CallOption) (*structpb.Struct, error) {
	return c.invoke(ctx, GenerateDungeonFullMethodName, in, opts)
}

func (c *dungeonServiceClient) GetDungeon(ctx context.Context, in *structpb.Struct, opts ...grpc.CallOption) (*structpb.Struct, error) {
	return c.invoke(ctx, GetDungeonFullMethodName, in, opts)
}

func (c *dungeonServiceClient) RegenerateDungeon(ctx context.Context, in *structpb.Struct, opts ...grpc.CallOption) (*structpb.Struct, error) {
	return c.invoke(ctx, RegenerateDungeonFullMethodName, in, opts)
}

func (c *dungeonServiceClient) DeleteDungeon(ctx context.Context, in *structpb.Struct, opts ...grpc.CallOption) (*structpb.Struct, error) {
	return c.invoke(ctx, DeleteDungeonFullMethodName, in, opts)
}

func (c *dungeonServiceClient) ListDungeons(ctx context.Context, in *structpb.Struct, opts ...grpc.CallOption) (*structpb.Struct, error) {
	return c.invoke(ctx, ListDungeonsFullMethodName, in, opts)
}
