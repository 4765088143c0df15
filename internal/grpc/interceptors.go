package grpc

import (
	"context"
	"strings"
	"time"

	"go.uber.org/zap"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/peer"
	"google.golang.org/grpc/status"

	"github.com/tempizhere/linkvault/internal/auth"
	"github.com/tempizhere/linkvault/internal/grpc/proto"
	"github.com/tempizhere/linkvault/internal/middleware"
)

// publicMethods не требуют пользователя
var publicMethods = map[string]bool{
	proto.GetLinksFullMethod: true,
	proto.GetLinkFullMethod:  true,
	proto.PingFullMethod:     true,
}

// AuthInterceptor проверяет токен из metadata authorization. Если токена нет
// или он недействителен, создаёт пользователя и возвращает новый токен в заголовке ответа.
func AuthInterceptor(mgr *auth.Manager, logger *zap.Logger) grpc.UnaryServerInterceptor {
	return func(ctx context.Context, req any, info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (any, error) {
		if publicMethods[info.FullMethod] {
			return handler(ctx, req)
		}

		var userID string
		if md, ok := metadata.FromIncomingContext(ctx); ok {
			if values := md.Get("authorization"); len(values) > 0 {
				if token, found := strings.CutPrefix(values[0], "Bearer "); found {
					id, err := mgr.Parse(token)
					if err != nil {
						logger.Warn("Invalid JWT token", zap.Error(err))
					}
					userID = id
				}
			}
		}

		if userID == "" {
			id, err := mgr.NewUserID()
			if err != nil {
				logger.Error("Failed to generate user ID", zap.Error(err))
				return nil, status.Error(codes.Internal, "failed to generate user ID")
			}
			token, err := mgr.Issue(id)
			if err != nil {
				logger.Error("Failed to generate JWT", zap.Error(err))
				return nil, status.Error(codes.Internal, "failed to generate JWT")
			}
			if err := grpc.SetHeader(ctx, metadata.Pairs("authorization", "Bearer "+token)); err != nil {
				logger.Warn("Failed to set response header", zap.Error(err))
			}
			logger.Info("Generated new JWT for gRPC", zap.String("user_id", id))
			userID = id
		}

		return handler(middleware.WithUserID(ctx, userID), req)
	}
}

// LoggingInterceptor пишет в лог метод, адрес клиента, код ответа и длительность
func LoggingInterceptor(logger *zap.Logger) grpc.UnaryServerInterceptor {
	return func(ctx context.Context, req any, info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (any, error) {
		start := time.Now()

		resp, err := handler(ctx, req)

		var clientIP string
		if p, ok := peer.FromContext(ctx); ok {
			clientIP = p.Addr.String()
		}

		logger.Info("gRPC request",
			zap.String("method", info.FullMethod),
			zap.String("client_ip", clientIP),
			zap.String("status_code", status.Code(err).String()),
			zap.Duration("duration", time.Since(start)),
			zap.Error(err),
		)

		return resp, err
	}
}

// NewGRPCServer создаёт grpc.Server с интерцепторами и зарегистрированным сервисом ссылок
func NewGRPCServer(srv *Server, mgr *auth.Manager, logger *zap.Logger) *grpc.Server {
	s := grpc.NewServer(grpc.ChainUnaryInterceptor(
		LoggingInterceptor(logger),
		AuthInterceptor(mgr, logger),
	))
	proto.RegisterLinkServiceServer(s, srv)
	return s
}
