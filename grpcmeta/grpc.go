package grpcmeta

import (
	"context"

	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/types/known/structpb"
	"google.golang.org/protobuf/types/known/wrapperspb"
)

const (
	serviceName      = "xdao.solcmeta.v1.Metadata"
	decodeMethodName = "/" + serviceName + "/Decode"
	digestMethodName = "/" + serviceName + "/Digest"
)

// MetadataServer is the server API for the Metadata gRPC service.
//
// We use protobuf well-known types (wrappers and Struct) so this package does
// not require a protoc/codegen toolchain.
//
// Proto definition: metadata.proto.
type MetadataServer interface {
	// Decode takes contract bytecode and returns the model.Metadata view as a Struct.
	Decode(context.Context, *wrapperspb.BytesValue) (*structpb.Struct, error)
	// Digest takes contract bytecode and returns the canonical digest URI, or "".
	Digest(context.Context, *wrapperspb.BytesValue) (*wrapperspb.StringValue, error)
}

// UnimplementedMetadataServer can be embedded to have forward compatible implementations.
type UnimplementedMetadataServer struct{}

func (UnimplementedMetadataServer) Decode(context.Context, *wrapperspb.BytesValue) (*structpb.Struct, error) {
	return nil, status.Error(codes.Unimplemented, "method Decode not implemented")
}
func (UnimplementedMetadataServer) Digest(context.Context, *wrapperspb.BytesValue) (*wrapperspb.StringValue, error) {
	return nil, status.Error(codes.Unimplemented, "method Digest not implemented")
}

// RegisterMetadataServer registers the Metadata service on a gRPC server.
func RegisterMetadataServer(s grpc.ServiceRegistrar, srv MetadataServer) {
	s.RegisterService(&Metadata_ServiceDesc, srv)
}

// MetadataClient is the client API for the Metadata gRPC service.
type MetadataClient interface {
	Decode(ctx context.Context, in *wrapperspb.BytesValue, opts ...grpc.CallOption) (*structpb.Struct, error)
	Digest(ctx context.Context, in *wrapperspb.BytesValue, opts ...grpc.CallOption) (*wrapperspb.StringValue, error)
}

type metadataClient struct{ cc grpc.ClientConnInterface }

func NewMetadataClient(cc grpc.ClientConnInterface) MetadataClient { return &metadataClient{cc: cc} }

func (c *metadataClient) Decode(ctx context.Context, in *wrapperspb.BytesValue, opts ...grpc.CallOption) (*structpb.Struct, error) {
	out := new(structpb.Struct)
	err := c.cc.Invoke(ctx, decodeMethodName, in, out, opts...)
	if err != nil {
		return nil, err
	}
	return out, nil
}

func (c *metadataClient) Digest(ctx context.Context, in *wrapperspb.BytesValue, opts ...grpc.CallOption) (*wrapperspb.StringValue, error) {
	out := new(wrapperspb.StringValue)
	err := c.cc.Invoke(ctx, digestMethodName, in, out, opts...)
	if err != nil {
		return nil, err
	}
	return out, nil
}

func _Metadata_Decode_Handler(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpc.UnaryServerInterceptor) (interface{}, error) {
	in := new(wrapperspb.BytesValue)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(MetadataServer).Decode(ctx, in)
	}
	info := &grpc.UnaryServerInfo{Server: srv, FullMethod: decodeMethodName}
	handler := func(ctx context.Context, req interface{}) (interface{}, error) {
		return srv.(MetadataServer).Decode(ctx, req.(*wrapperspb.BytesValue))
	}
	return interceptor(ctx, in, info, handler)
}

func _Metadata_Digest_Handler(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpc.UnaryServerInterceptor) (interface{}, error) {
	in := new(wrapperspb.BytesValue)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(MetadataServer).Digest(ctx, in)
	}
	info := &grpc.UnaryServerInfo{Server: srv, FullMethod: digestMethodName}
	handler := func(ctx context.Context, req interface{}) (interface{}, error) {
		return srv.(MetadataServer).Digest(ctx, req.(*wrapperspb.BytesValue))
	}
	return interceptor(ctx, in, info, handler)
}

// Metadata_ServiceDesc is the grpc.ServiceDesc for Metadata service.
var Metadata_ServiceDesc = grpc.ServiceDesc{
	ServiceName: serviceName,
	HandlerType: (*MetadataServer)(nil),
	Methods: []grpc.MethodDesc{
		{MethodName: "Decode", Handler: _Metadata_Decode_Handler},
		{MethodName: "Digest", Handler: _Metadata_Digest_Handler},
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "metadata.proto",
}
