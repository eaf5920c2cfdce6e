package service

// SailService is the store RPC contract shared by the proxy's public
// surface and its per-shard backend clients (spec §6). This file is
// written by hand in the shape protoc-gen-go-grpc would produce, since
// the RDF wire schema is out of scope of this proxy and no protobuf
// toolchain is part of this exercise (see pkg/proto/service/codec.go).

import (
	"context"

	"github.com/marmotta/rdf-sharding-proxy/pkg/proto/rdf"

	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

const (
	SailServiceName = "marmotta.sharding.SailService"

	SailService_AddNamespaces_FullMethodName    = "/" + SailServiceName + "/AddNamespaces"
	SailService_AddStatements_FullMethodName    = "/" + SailServiceName + "/AddStatements"
	SailService_GetStatements_FullMethodName    = "/" + SailServiceName + "/GetStatements"
	SailService_RemoveStatements_FullMethodName = "/" + SailServiceName + "/RemoveStatements"
	SailService_Update_FullMethodName           = "/" + SailServiceName + "/Update"
	SailService_Clear_FullMethodName            = "/" + SailServiceName + "/Clear"
	SailService_Size_FullMethodName              = "/" + SailServiceName + "/Size"
)

// SailServiceClient is the client API for SailService, implemented both
// by the proxy's connections to its backend shards and by any regular
// client of the proxy itself (they speak the same contract).
type SailServiceClient interface {
	AddNamespaces(ctx context.Context, opts ...grpc.CallOption) (SailService_AddNamespacesClient, error)
	AddStatements(ctx context.Context, opts ...grpc.CallOption) (SailService_AddStatementsClient, error)
	GetStatements(ctx context.Context, in *rdf.Statement, opts ...grpc.CallOption) (SailService_GetStatementsClient, error)
	RemoveStatements(ctx context.Context, in *rdf.Statement, opts ...grpc.CallOption) (*Int64Value, error)
	Update(ctx context.Context, opts ...grpc.CallOption) (SailService_UpdateClient, error)
	Clear(ctx context.Context, in *rdf.ContextRequest, opts ...grpc.CallOption) (*Int64Value, error)
	Size(ctx context.Context, in *rdf.ContextRequest, opts ...grpc.CallOption) (*Int64Value, error)
}

type sailServiceClient struct {
	cc grpc.ClientConnInterface
}

// NewSailServiceClient wraps a connection (a per-shard channel, or the
// channel a bulk-import client dials) with the typed SailService API.
func NewSailServiceClient(cc grpc.ClientConnInterface) SailServiceClient {
	return &sailServiceClient{cc}
}

func (c *sailServiceClient) AddNamespaces(ctx context.Context, opts ...grpc.CallOption) (SailService_AddNamespacesClient, error) {
	stream, err := c.cc.NewStream(ctx, &SailService_ServiceDesc.Streams[0], SailService_AddNamespaces_FullMethodName, opts...)
	if err != nil {
		return nil, err
	}
	return &sailServiceAddNamespacesClient{stream}, nil
}

type SailService_AddNamespacesClient interface {
	Send(*rdf.Namespace) error
	CloseAndRecv() (*Int64Value, error)
	grpc.ClientStream
}

type sailServiceAddNamespacesClient struct {
	grpc.ClientStream
}

func (x *sailServiceAddNamespacesClient) Send(m *rdf.Namespace) error {
	return x.ClientStream.SendMsg(m)
}

func (x *sailServiceAddNamespacesClient) CloseAndRecv() (*Int64Value, error) {
	if err := x.ClientStream.CloseSend(); err != nil {
		return nil, err
	}
	m := new(Int64Value)
	if err := x.ClientStream.RecvMsg(m); err != nil {
		return nil, err
	}
	return m, nil
}

func (c *sailServiceClient) AddStatements(ctx context.Context, opts ...grpc.CallOption) (SailService_AddStatementsClient, error) {
	stream, err := c.cc.NewStream(ctx, &SailService_ServiceDesc.Streams[1], SailService_AddStatements_FullMethodName, opts...)
	if err != nil {
		return nil, err
	}
	return &sailServiceAddStatementsClient{stream}, nil
}

type SailService_AddStatementsClient interface {
	Send(*rdf.Statement) error
	CloseAndRecv() (*Int64Value, error)
	grpc.ClientStream
}

type sailServiceAddStatementsClient struct {
	grpc.ClientStream
}

func (x *sailServiceAddStatementsClient) Send(m *rdf.Statement) error {
	return x.ClientStream.SendMsg(m)
}

func (x *sailServiceAddStatementsClient) CloseAndRecv() (*Int64Value, error) {
	if err := x.ClientStream.CloseSend(); err != nil {
		return nil, err
	}
	m := new(Int64Value)
	if err := x.ClientStream.RecvMsg(m); err != nil {
		return nil, err
	}
	return m, nil
}

func (c *sailServiceClient) GetStatements(ctx context.Context, in *rdf.Statement, opts ...grpc.CallOption) (SailService_GetStatementsClient, error) {
	stream, err := c.cc.NewStream(ctx, &SailService_ServiceDesc.Streams[2], SailService_GetStatements_FullMethodName, opts...)
	if err != nil {
		return nil, err
	}
	x := &sailServiceGetStatementsClient{stream}
	if err := x.ClientStream.SendMsg(in); err != nil {
		return nil, err
	}
	if err := x.ClientStream.CloseSend(); err != nil {
		return nil, err
	}
	return x, nil
}

type SailService_GetStatementsClient interface {
	Recv() (*rdf.Statement, error)
	grpc.ClientStream
}

type sailServiceGetStatementsClient struct {
	grpc.ClientStream
}

func (x *sailServiceGetStatementsClient) Recv() (*rdf.Statement, error) {
	m := new(rdf.Statement)
	if err := x.ClientStream.RecvMsg(m); err != nil {
		return nil, err
	}
	return m, nil
}

func (c *sailServiceClient) RemoveStatements(ctx context.Context, in *rdf.Statement, opts ...grpc.CallOption) (*Int64Value, error) {
	out := new(Int64Value)
	if err := c.cc.Invoke(ctx, SailService_RemoveStatements_FullMethodName, in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *sailServiceClient) Update(ctx context.Context, opts ...grpc.CallOption) (SailService_UpdateClient, error) {
	stream, err := c.cc.NewStream(ctx, &SailService_ServiceDesc.Streams[3], SailService_Update_FullMethodName, opts...)
	if err != nil {
		return nil, err
	}
	return &sailServiceUpdateClient{stream}, nil
}

type SailService_UpdateClient interface {
	Send(*UpdateRequest) error
	CloseAndRecv() (*UpdateResponse, error)
	grpc.ClientStream
}

type sailServiceUpdateClient struct {
	grpc.ClientStream
}

func (x *sailServiceUpdateClient) Send(m *UpdateRequest) error {
	return x.ClientStream.SendMsg(m)
}

func (x *sailServiceUpdateClient) CloseAndRecv() (*UpdateResponse, error) {
	if err := x.ClientStream.CloseSend(); err != nil {
		return nil, err
	}
	m := new(UpdateResponse)
	if err := x.ClientStream.RecvMsg(m); err != nil {
		return nil, err
	}
	return m, nil
}

func (c *sailServiceClient) Clear(ctx context.Context, in *rdf.ContextRequest, opts ...grpc.CallOption) (*Int64Value, error) {
	out := new(Int64Value)
	if err := c.cc.Invoke(ctx, SailService_Clear_FullMethodName, in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *sailServiceClient) Size(ctx context.Context, in *rdf.ContextRequest, opts ...grpc.CallOption) (*Int64Value, error) {
	out := new(Int64Value)
	if err := c.cc.Invoke(ctx, SailService_Size_FullMethodName, in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

// SailServiceServer is the server API for SailService. The routing
// service (pkg/sharding) is the proxy's implementation; the backend
// shards implement it too, on the other end of the wire.
type SailServiceServer interface {
	AddNamespaces(SailService_AddNamespacesServer) error
	AddStatements(SailService_AddStatementsServer) error
	GetStatements(*rdf.Statement, SailService_GetStatementsServer) error
	RemoveStatements(context.Context, *rdf.Statement) (*Int64Value, error)
	Update(SailService_UpdateServer) error
	Clear(context.Context, *rdf.ContextRequest) (*Int64Value, error)
	Size(context.Context, *rdf.ContextRequest) (*Int64Value, error)
}

// RegisterSailServiceServer registers srv with s.
func RegisterSailServiceServer(s grpc.ServiceRegistrar, srv SailServiceServer) {
	s.RegisterService(&SailService_ServiceDesc, srv)
}

type SailService_AddNamespacesServer interface {
	SendAndClose(*Int64Value) error
	Recv() (*rdf.Namespace, error)
	grpc.ServerStream
}

type sailServiceAddNamespacesServer struct {
	grpc.ServerStream
}

func (x *sailServiceAddNamespacesServer) SendAndClose(m *Int64Value) error {
	return x.ServerStream.SendMsg(m)
}

func (x *sailServiceAddNamespacesServer) Recv() (*rdf.Namespace, error) {
	m := new(rdf.Namespace)
	if err := x.ServerStream.RecvMsg(m); err != nil {
		return nil, err
	}
	return m, nil
}

func _SailService_AddNamespaces_Handler(srv any, stream grpc.ServerStream) error {
	return srv.(SailServiceServer).AddNamespaces(&sailServiceAddNamespacesServer{stream})
}

type SailService_AddStatementsServer interface {
	SendAndClose(*Int64Value) error
	Recv() (*rdf.Statement, error)
	grpc.ServerStream
}

type sailServiceAddStatementsServer struct {
	grpc.ServerStream
}

func (x *sailServiceAddStatementsServer) SendAndClose(m *Int64Value) error {
	return x.ServerStream.SendMsg(m)
}

func (x *sailServiceAddStatementsServer) Recv() (*rdf.Statement, error) {
	m := new(rdf.Statement)
	if err := x.ServerStream.RecvMsg(m); err != nil {
		return nil, err
	}
	return m, nil
}

func _SailService_AddStatements_Handler(srv any, stream grpc.ServerStream) error {
	return srv.(SailServiceServer).AddStatements(&sailServiceAddStatementsServer{stream})
}

type SailService_GetStatementsServer interface {
	Send(*rdf.Statement) error
	grpc.ServerStream
}

type sailServiceGetStatementsServer struct {
	grpc.ServerStream
}

func (x *sailServiceGetStatementsServer) Send(m *rdf.Statement) error {
	return x.ServerStream.SendMsg(m)
}

func _SailService_GetStatements_Handler(srv any, stream grpc.ServerStream) error {
	m := new(rdf.Statement)
	if err := stream.RecvMsg(m); err != nil {
		return err
	}
	return srv.(SailServiceServer).GetStatements(m, &sailServiceGetStatementsServer{stream})
}

func _SailService_RemoveStatements_Handler(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
	in := new(rdf.Statement)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(SailServiceServer).RemoveStatements(ctx, in)
	}
	info := &grpc.UnaryServerInfo{
		Server:     srv,
		FullMethod: SailService_RemoveStatements_FullMethodName,
	}
	handler := func(ctx context.Context, req any) (any, error) {
		return srv.(SailServiceServer).RemoveStatements(ctx, req.(*rdf.Statement))
	}
	return interceptor(ctx, in, info, handler)
}

type SailService_UpdateServer interface {
	SendAndClose(*UpdateResponse) error
	Recv() (*UpdateRequest, error)
	grpc.ServerStream
}

type sailServiceUpdateServer struct {
	grpc.ServerStream
}

func (x *sailServiceUpdateServer) SendAndClose(m *UpdateResponse) error {
	return x.ServerStream.SendMsg(m)
}

func (x *sailServiceUpdateServer) Recv() (*UpdateRequest, error) {
	m := new(UpdateRequest)
	if err := x.ServerStream.RecvMsg(m); err != nil {
		return nil, err
	}
	return m, nil
}

func _SailService_Update_Handler(srv any, stream grpc.ServerStream) error {
	return srv.(SailServiceServer).Update(&sailServiceUpdateServer{stream})
}

func _SailService_Clear_Handler(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
	in := new(rdf.ContextRequest)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(SailServiceServer).Clear(ctx, in)
	}
	info := &grpc.UnaryServerInfo{
		Server:     srv,
		FullMethod: SailService_Clear_FullMethodName,
	}
	handler := func(ctx context.Context, req any) (any, error) {
		return srv.(SailServiceServer).Clear(ctx, req.(*rdf.ContextRequest))
	}
	return interceptor(ctx, in, info, handler)
}

func _SailService_Size_Handler(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
	in := new(rdf.ContextRequest)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(SailServiceServer).Size(ctx, in)
	}
	info := &grpc.UnaryServerInfo{
		Server:     srv,
		FullMethod: SailService_Size_FullMethodName,
	}
	handler := func(ctx context.Context, req any) (any, error) {
		return srv.(SailServiceServer).Size(ctx, req.(*rdf.ContextRequest))
	}
	return interceptor(ctx, in, info, handler)
}

// SailService_ServiceDesc is the grpc.ServiceDesc for SailService. Its
// Streams index order (AddNamespaces=0, AddStatements=1,
// GetStatements=2, Update=3) must match the indices used above.
var SailService_ServiceDesc = grpc.ServiceDesc{
	ServiceName: SailServiceName,
	HandlerType: (*SailServiceServer)(nil),
	Methods: []grpc.MethodDesc{
		{MethodName: "RemoveStatements", Handler: _SailService_RemoveStatements_Handler},
		{MethodName: "Clear", Handler: _SailService_Clear_Handler},
		{MethodName: "Size", Handler: _SailService_Size_Handler},
	},
	Streams: []grpc.StreamDesc{
		{StreamName: "AddNamespaces", Handler: _SailService_AddNamespaces_Handler, ClientStreams: true},
		{StreamName: "AddStatements", Handler: _SailService_AddStatements_Handler, ClientStreams: true},
		{StreamName: "GetStatements", Handler: _SailService_GetStatements_Handler, ServerStreams: true},
		{StreamName: "Update", Handler: _SailService_Update_Handler, ClientStreams: true},
	},
	Metadata: "sail.proto",
}

// StatusFromError is a small helper used by the sharding package to
// make sure every shard-originated error is a proper gRPC status
// (shard backends are assumed to return one, but defend against a
// plain error making it across a fake/test client).
func StatusFromError(err error) error {
	if err == nil {
		return nil
	}
	if _, ok := status.FromError(err); ok {
		return err
	}
	return status.Error(codes.Unknown, err.Error())
}
