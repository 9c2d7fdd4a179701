package almanac

import (
	"context"

	"google.golang.org/grpc"
	"google.golang.org/protobuf/types/known/structpb"
)

// ServiceName is the fully qualified gRPC service name.
const ServiceName = "almanac.v1.AlmanacService"

// Full method names.
const (
	ComputeEventMethod = "/" + ServiceName + "/ComputeEvent"
	ComputeDayMethod   = "/" + ServiceName + "/ComputeDay"
)

// AlmanacServiceServer is the server API for AlmanacService.
type AlmanacServiceServer interface {
	// ComputeEvent answers a single rise or set query.
	ComputeEvent(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error)
	// ComputeDay answers both events of the requested date.
	ComputeDay(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error)
}

// ServiceDesc describes AlmanacService for grpc.ServiceRegistrar.
//
//nolint:gochecknoglobals // Registered by address, like generated descriptors.
var ServiceDesc = grpc.ServiceDesc{
	ServiceName: ServiceName,
	HandlerType: (*AlmanacServiceServer)(nil),
	Methods: []grpc.MethodDesc{
		{
			MethodName: "ComputeEvent",
			Handler:    computeEventHandler,
		},
		{
			MethodName: "ComputeDay",
			Handler:    computeDayHandler,
		},
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "almanac/v1/almanac.proto",
}

// RegisterAlmanacServiceServer registers srv on the given registrar.
func RegisterAlmanacServiceServer(s grpc.ServiceRegistrar, srv AlmanacServiceServer) {
	s.RegisterService(&ServiceDesc, srv)
}

func computeEventHandler(
	srv any,
	ctx context.Context, //nolint:revive // Signature fixed by grpc.MethodHandler.
	dec func(any) error,
	interceptor grpc.UnaryServerInterceptor,
) (any, error) {
	in := new(structpb.Struct)
	if err := dec(in); err != nil {
		return nil, err
	}

	if interceptor == nil {
		return srv.(AlmanacServiceServer).ComputeEvent(ctx, in) //nolint:forcetypeassert // Guaranteed by HandlerType.
	}

	info := &grpc.UnaryServerInfo{
		Server:     srv,
		FullMethod: ComputeEventMethod,
	}

	handler := func(ctx context.Context, req any) (any, error) {
		return srv.(AlmanacServiceServer).ComputeEvent(ctx, req.(*structpb.Struct)) //nolint:forcetypeassert // Same as above.
	}

	return interceptor(ctx, in, info, handler)
}

func computeDayHandler(
	srv any,
	ctx context.Context, //nolint:revive // Signature fixed by grpc.MethodHandler.
	dec func(any) error,
	interceptor grpc.UnaryServerInterceptor,
) (any, error) {
	in := new(structpb.Struct)
	if err := dec(in); err != nil {
		return nil, err
	}

	if interceptor == nil {
		return srv.(AlmanacServiceServer).ComputeDay(ctx, in) //nolint:forcetypeassert // Guaranteed by HandlerType.
	}

	info := &grpc.UnaryServerInfo{
		Server:     srv,
		FullMethod: ComputeDayMethod,
	}

	handler := func(ctx context.Context, req any) (any, error) {
		return srv.(AlmanacServiceServer).ComputeDay(ctx, req.(*structpb.Struct)) //nolint:forcetypeassert // Same as above.
	}

	return interceptor(ctx, in, info, handler)
}

// AlmanacServiceClient is the client API for AlmanacService.
type AlmanacServiceClient interface {
	ComputeEvent(ctx context.Context, in *structpb.Struct, opts ...grpc.CallOption) (*structpb.Struct, error)
	ComputeDay(ctx context.Context, in *structpb.Struct, opts ...grpc.CallOption) (*structpb.Struct, error)
}

type almanacServiceClient struct {
	cc grpc.ClientConnInterface
}

// NewAlmanacServiceClient returns a client stub bound to cc.
//
//nolint:ireturn // Mirrors generated client constructors.
func NewAlmanacServiceClient(cc grpc.ClientConnInterface) AlmanacServiceClient {
	return &almanacServiceClient{cc: cc}
}

func (c *almanacServiceClient) ComputeEvent(
	ctx context.Context,
	in *structpb.Struct,
	opts ...grpc.CallOption,
) (*structpb.Struct, error) {
	out := new(structpb.Struct)
	if err := c.cc.Invoke(ctx, ComputeEventMethod, in, out, opts...); err != nil {
		return nil, err
	}

	return out, nil
}

func (c *almanacServiceClient) ComputeDay(
	ctx context.Context,
	in *structpb.Struct,
	opts ...grpc.CallOption,
) (*structpb.Struct, error) {
	out := new(structpb.Struct)
	if err := c.cc.Invoke(ctx, ComputeDayMethod, in, out, opts...); err != nil {
		return nil, err
	}

	return out, nil
}
