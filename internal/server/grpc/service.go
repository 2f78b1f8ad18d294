package grpc

import (
	"context"

	"google.golang.org/grpc"
	"google.golang.org/protobuf/types/known/structpb"
)

const (
	serviceName = "gameauth.v1.AccountService"

	// HandleMethod is the full method name of the single unary RPC.
	HandleMethod = "/" + serviceName + "/Handle"
)

// accountServer is the handler type for the account service. Requests and
// responses are google.protobuf.Struct values holding the same JSON envelope
// the HTTP transport accepts, so no generated stubs are needed.
type accountServer interface {
	Handle(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error)
}

func handleHandler(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
	in := new(structpb.Struct)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(accountServer).Handle(ctx, in)
	}
	info := &grpc.UnaryServerInfo{
		Server:     srv,
		FullMethod: HandleMethod,
	}
	handler := func(ctx context.Context, req any) (any, error) {
		return srv.(accountServer).Handle(ctx, req.(*structpb.Struct))
	}
	return interceptor(ctx, in, info, handler)
}

var accountServiceDesc = grpc.ServiceDesc{
	ServiceName: serviceName,
	HandlerType: (*accountServer)(nil),
	Methods: []grpc.MethodDesc{
		{
			MethodName: "Handle",
			Handler:    handleHandler,
		},
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "gameauth/v1/account.proto",
}
