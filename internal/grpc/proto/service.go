package proto

import (
	"context"

	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

// ServiceName - полное имя gRPC сервиса
const ServiceName = "linkvault.v1.LinkService"

// Полные имена методов
const (
	CreateLinkFullMethod = "/" + ServiceName + "/CreateLink"
	GetLinksFullMethod   = "/" + ServiceName + "/GetLinks"
	GetLinkFullMethod    = "/" + ServiceName + "/GetLink"
	DeleteLinkFullMethod = "/" + ServiceName + "/DeleteLink"
	PingFullMethod       = "/" + ServiceName + "/Ping"
)

// LinkServiceServer - серверная сторона сервиса ссылок
type LinkServiceServer interface {
	CreateLink(ctx context.Context, req *CreateLinkRequest) (*CreateLinkResponse, error)
	GetLinks(ctx context.Context, req *GetLinksRequest) (*GetLinksResponse, error)
	GetLink(ctx context.Context, req *GetLinkRequest) (*GetLinkResponse, error)
	DeleteLink(ctx context.Context, req *DeleteLinkRequest) (*DeleteLinkResponse, error)
	Ping(ctx context.Context, req *PingRequest) (*PingResponse, error)
}

// UnimplementedLinkServiceServer отвечает codes.Unimplemented на все методы
type UnimplementedLinkServiceServer struct{}

func (UnimplementedLinkServiceServer) CreateLink(context.Context, *CreateLinkRequest) (*CreateLinkResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method CreateLink not implemented")
}

func (UnimplementedLinkServiceServer) GetLinks(context.Context, *GetLinksRequest) (*GetLinksResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method GetLinks not implemented")
}

func (UnimplementedLinkServiceServer) GetLink(context.Context, *GetLinkRequest) (*GetLinkResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method GetLink not implemented")
}

func (UnimplementedLinkServiceServer) DeleteLink(context.Context, *DeleteLinkRequest) (*DeleteLinkResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method DeleteLink not implemented")
}

func (UnimplementedLinkServiceServer) Ping(context.Context, *PingRequest) (*PingResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method Ping not implemented")
}

// unaryHandler строит обработчик метода: декодирует запрос и пропускает его через интерцептор
func unaryHandler[Req, Resp any](fullMethod string, call func(LinkServiceServer, context.Context, *Req) (*Resp, error)) grpc.MethodHandler {
	return func(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
		in := new(Req)
		if err := dec(in); err != nil {
			return nil, err
		}
		if interceptor == nil {
			return call(srv.(LinkServiceServer), ctx, in)
		}
		info := &grpc.UnaryServerInfo{Server: srv, FullMethod: fullMethod}
		return interceptor(ctx, in, info, func(ctx context.Context, req any) (any, error) {
			return call(srv.(LinkServiceServer), ctx, req.(*Req))
		})
	}
}

// LinkServiceDesc описывает сервис для grpc.Server
var LinkServiceDesc = grpc.ServiceDesc{
	ServiceName: ServiceName,
	HandlerType: (*LinkServiceServer)(nil),
	Methods: []grpc.MethodDesc{
		{MethodName: "CreateLink", Handler: unaryHandler(CreateLinkFullMethod, LinkServiceServer.CreateLink)},
		{MethodName: "GetLinks", Handler: unaryHandler(GetLinksFullMethod, LinkServiceServer.GetLinks)},
		{MethodName: "GetLink", Handler: unaryHandler(GetLinkFullMethod, LinkServiceServer.GetLink)},
		{MethodName: "DeleteLink", Handler: unaryHandler(DeleteLinkFullMethod, LinkServiceServer.DeleteLink)},
		{MethodName: "Ping", Handler: unaryHandler(PingFullMethod, LinkServiceServer.Ping)},
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "linkvault/v1/links.proto",
}

// RegisterLinkServiceServer регистрирует реализацию сервиса в gRPC сервере
func RegisterLinkServiceServer(s grpc.ServiceRegistrar, srv LinkServiceServer) {
	s.RegisterService(&LinkServiceDesc, srv)
}

// LinkServiceClient - клиентская сторона сервиса ссылок
type LinkServiceClient struct {
	cc grpc.ClientConnInterface
}

// NewLinkServiceClient создаёт клиента поверх соединения
func NewLinkServiceClient(cc grpc.ClientConnInterface) *LinkServiceClient {
	return &LinkServiceClient{cc: cc}
}

func invoke[Resp any](ctx context.Context, cc grpc.ClientConnInterface, method string, in any, opts []grpc.CallOption) (*Resp, error) {
	out := new(Resp)
	opts = append([]grpc.CallOption{grpc.CallContentSubtype(CodecName)}, opts...)
	if err := cc.Invoke(ctx, method, in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *LinkServiceClient) CreateLink(ctx context.Context, in *CreateLinkRequest, opts ...grpc.CallOption) (*CreateLinkResponse, error) {
	return invoke[CreateLinkResponse](ctx, c.cc, CreateLinkFullMethod, in, opts)
}

func (c *LinkServiceClient) GetLinks(ctx context.Context, in *GetLinksRequest, opts ...grpc.CallOption) (*GetLinksResponse, error) {
	return invoke[GetLinksResponse](ctx, c.cc, GetLinksFullMethod, in, opts)
}

func (c *LinkServiceClient) GetLink(ctx context.Context, in *GetLinkRequest, opts ...grpc.CallOption) (*GetLinkResponse, error) {
	return invoke[GetLinkResponse](ctx, c.cc, GetLinkFullMethod, in, opts)
}

func (c *LinkServiceClient) DeleteLink(ctx context.Context, in *DeleteLinkRequest, opts ...grpc.CallOption) (*DeleteLinkResponse, error) {
	return invoke[DeleteLinkResponse](ctx, c.cc, DeleteLinkFullMethod, in, opts)
}

func (c *LinkServiceClient) Ping(ctx context.Context, in *PingRequest, opts ...grpc.CallOption) (*PingResponse, error) {
	return invoke[PingResponse](ctx, c.cc, PingFullMethod, in, opts)
}
