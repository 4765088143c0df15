// Package grpc содержит gRPC сервер сервиса ссылок и его интерцепторы.
package grpc

import (
	"context"

	"go.uber.org/zap"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/tempizhere/linkvault/internal/apierror"
	"github.com/tempizhere/linkvault/internal/grpc/proto"
	"github.com/tempizhere/linkvault/internal/middleware"
	"github.com/tempizhere/linkvault/internal/service"
)

// Server реализует gRPC сервис ссылок поверх service.Service
type Server struct {
	proto.UnimplementedLinkServiceServer
	svc    *service.Service
	logger *zap.Logger
}

// NewServer создаёт новый gRPC сервер
func NewServer(svc *service.Service, logger *zap.Logger) *Server {
	return &Server{svc: svc, logger: logger}
}

// CreateLink создаёт ссылку со статусом и классификацией
func (s *Server) CreateLink(ctx context.Context, req *proto.CreateLinkRequest) (*proto.CreateLinkResponse, error) {
	link := req.Link
	if link.UserID == nil {
		if userID, ok := middleware.UserIDFromContext(ctx); ok {
			link.UserID = &userID
		}
	}

	created, err := s.svc.CreateLinkWithAssociations(ctx, link)
	if err != nil {
		return nil, s.mapError(err)
	}
	return &proto.CreateLinkResponse{ID: created.ID}, nil
}

// GetLinks возвращает все ссылки со связанными записями
func (s *Server) GetLinks(ctx context.Context, _ *proto.GetLinksRequest) (*proto.GetLinksResponse, error) {
	links, err := s.svc.ListLinksWithAssociations(ctx)
	if err != nil {
		return nil, s.mapError(err)
	}
	return &proto.GetLinksResponse{Links: links}, nil
}

// GetLink возвращает ссылку по id
func (s *Server) GetLink(ctx context.Context, req *proto.GetLinkRequest) (*proto.GetLinkResponse, error) {
	if req.ID == 0 {
		return nil, status.Error(codes.InvalidArgument, "link ID is required")
	}
	link, err := s.svc.GetLinkWithAssociations(ctx, req.ID)
	if err != nil {
		return nil, s.mapError(err)
	}
	return &proto.GetLinkResponse{Link: link}, nil
}

// DeleteLink удаляет основную запись ссылки
func (s *Server) DeleteLink(ctx context.Context, req *proto.DeleteLinkRequest) (*proto.DeleteLinkResponse, error) {
	if req.ID == 0 {
		return nil, status.Error(codes.InvalidArgument, "link ID is required")
	}
	if err := s.svc.DeleteLink(ctx, req.ID); err != nil {
		return nil, s.mapError(err)
	}
	return &proto.DeleteLinkResponse{Success: true}, nil
}

// Ping проверяет состояние хранилища
func (s *Server) Ping(ctx context.Context, _ *proto.PingRequest) (*proto.PingResponse, error) {
	err := s.svc.Ping(ctx)
	if err != nil {
		s.logger.Warn("Store ping failed", zap.Error(err))
	}
	return &proto.PingResponse{StoreAvailable: err == nil}, nil
}

// mapError преобразует ошибки сервиса в gRPC статусы
func (s *Server) mapError(err error) error {
	apiErr := apierror.From(err)

	var code codes.Code
	switch apiErr.Kind {
	case apierror.KindClientInput:
		code = codes.InvalidArgument
	case apierror.KindNotFound:
		code = codes.NotFound
	case apierror.KindRouting:
		code = codes.Unimplemented
	case apierror.KindAccess:
		code = codes.PermissionDenied
	default:
		s.logger.Error("Unexpected error", zap.Error(err))
		code = codes.Internal
	}
	return status.Error(code, apiErr.Error())
}
