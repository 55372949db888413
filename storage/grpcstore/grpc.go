package grpcstore

import (
	"context"

	"google.golang.org/grpc"
	"google.golang.org/protobuf/types/known/wrapperspb"
)

// The wire surface uses protobuf well-known wrapper types so this package
// needs no protoc/codegen toolchain. Chunk methods move raw bytes keyed by
// CID string; blob methods move canonical blob bytes keyed by base58 blob
// address, so the XOR naming rules are enforced on both ends of the wire.
//
// Proto definition: chunkservice.proto.
const serviceName = "xdao.xordata.v1.ChunkService"

// ChunkServiceServer is the server API for the ChunkService gRPC service.
type ChunkServiceServer interface {
	PutChunk(context.Context, *wrapperspb.BytesValue) (*wrapperspb.StringValue, error)
	GetChunk(context.Context, *wrapperspb.StringValue) (*wrapperspb.BytesValue, error)
	HasChunk(context.Context, *wrapperspb.StringValue) (*wrapperspb.BoolValue, error)

	PutBlob(context.Context, *wrapperspb.BytesValue) (*wrapperspb.StringValue, error)
	GetBlob(context.Context, *wrapperspb.StringValue) (*wrapperspb.BytesValue, error)
	HasBlob(context.Context, *wrapperspb.StringValue) (*wrapperspb.BoolValue, error)
}

// RegisterChunkServiceServer registers the ChunkService on a gRPC server.
func RegisterChunkServiceServer(s grpc.ServiceRegistrar, srv ChunkServiceServer) {
	s.RegisterService(&ChunkService_ServiceDesc, srv)
}

// unary builds the grpc.MethodDesc for one unary method from its interface
// method expression, replacing the per-method handler boilerplate protoc
// would generate.
func unary[In, Out any](method string, call func(ChunkServiceServer, context.Context, *In) (*Out, error)) grpc.MethodDesc {
	full := "/" + serviceName + "/" + method
	return grpc.MethodDesc{
		MethodName: method,
		Handler: func(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpc.UnaryServerInterceptor) (interface{}, error) {
			in := new(In)
			if err := dec(in); err != nil {
				return nil, err
			}
			if interceptor == nil {
				return call(srv.(ChunkServiceServer), ctx, in)
			}
			info := &grpc.UnaryServerInfo{Server: srv, FullMethod: full}
			return interceptor(ctx, in, info, func(ctx context.Context, req interface{}) (interface{}, error) {
				return call(srv.(ChunkServiceServer), ctx, req.(*In))
			})
		},
	}
}

// invokeUnary performs one unary RPC against the ChunkService.
func invokeUnary[Out, In any](ctx context.Context, cc grpc.ClientConnInterface, method string, in *In) (*Out, error) {
	out := new(Out)
	if err := cc.Invoke(ctx, "/"+serviceName+"/"+method, in, out); err != nil {
		return nil, err
	}
	return out, nil
}

// ChunkService_ServiceDesc is the grpc.ServiceDesc for the ChunkService.
var ChunkService_ServiceDesc = grpc.ServiceDesc{
	ServiceName: serviceName,
	HandlerType: (*ChunkServiceServer)(nil),
	Methods: []grpc.MethodDesc{
		unary("PutChunk", ChunkServiceServer.PutChunk),
		unary("GetChunk", ChunkServiceServer.GetChunk),
		unary("HasChunk", ChunkServiceServer.HasChunk),
		unary("PutBlob", ChunkServiceServer.PutBlob),
		unary("GetBlob", ChunkServiceServer.GetBlob),
		unary("HasBlob", ChunkServiceServer.HasBlob),
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "chunkservice.proto",
}
