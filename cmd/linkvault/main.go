// Package main запускает сервер linkvault: HTTP API ссылок, списков и коллекций и, опционально, gRPC.
package main

import (
	"context"
	"errors"
	"net"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/tempizhere/linkvault/internal/app"
	"github.com/tempizhere/linkvault/internal/auth"
	"github.com/tempizhere/linkvault/internal/config"
	grpcserver "github.com/tempizhere/linkvault/internal/grpc"
	"github.com/tempizhere/linkvault/internal/log"
	"github.com/tempizhere/linkvault/internal/service"
	"github.com/tempizhere/linkvault/internal/store"
)

const (
	shutdownTimeout = 10 * time.Second
	badgerGCPeriod  = 5 * time.Minute
)

func main() {
	cfg, err := config.NewConfig()
	if err != nil {
		panic(err)
	}

	logger := log.NewLogger(cfg.LogLevel)
	defer logger.Sync()

	if err := run(cfg, logger); err != nil {
		logger.Fatal("Server stopped with error", zap.Error(err))
	}
}

func run(cfg *config.Config, logger *zap.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)
	defer stop()

	st, err := openStore(ctx, cfg, logger)
	if err != nil {
		return err
	}
	defer func() {
		if err := st.Close(); err != nil {
			logger.Error("Failed to close store", zap.Error(err))
		}
	}()

	if cfg.CompensateWrites {
		logger.Warn("Compensating deletes enabled for partial link writes")
	}
	svc := service.NewService(st, logger, service.WithCompensation(cfg.CompensateWrites))

	policy, err := app.ParseBodyPolicy(cfg.BodyPolicy)
	if err != nil {
		return err
	}
	mgr := auth.NewManager(cfg.JWTSecret, cfg.CookieTTL)
	handler := app.NewApp(svc, logger, app.WithBodyPolicy(policy)).NewRouter(app.RouterConfig{
		Auth:          mgr,
		TrustedSubnet: cfg.TrustedSubnet,
	})

	httpServer := &http.Server{
		Addr:              cfg.RunAddr,
		Handler:           handler,
		ReadHeaderTimeout: 5 * time.Second,
	}

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		logger.Info("Starting HTTP server",
			zap.String("address", cfg.RunAddr),
			zap.String("store", cfg.StoreKind()),
			zap.String("body_policy", policy.String()),
		)
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})

	if cfg.GRPCAddr != "" {
		grpcSrv := grpcserver.NewGRPCServer(grpcserver.NewServer(svc, logger), mgr, logger)
		g.Go(func() error {
			lis, err := net.Listen("tcp", cfg.GRPCAddr)
			if err != nil {
				return err
			}
			logger.Info("Starting gRPC server", zap.String("address", cfg.GRPCAddr))
			return grpcSrv.Serve(lis)
		})
		g.Go(func() error {
			<-gctx.Done()
			grpcSrv.GracefulStop()
			return nil
		})
	}

	g.Go(func() error {
		<-gctx.Done()
		logger.Info("Shutting down servers")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		return httpServer.Shutdown(shutdownCtx)
	})

	return g.Wait()
}

// openStore выбирает хранилище: база данных, badger, файл или память
func openStore(ctx context.Context, cfg *config.Config, logger *zap.Logger) (store.Store, error) {
	switch cfg.StoreKind() {
	case "sql":
		db, err := store.OpenDB(ctx, cfg.DatabaseDSN)
		if err != nil {
			return nil, err
		}
		logger.Info("Using SQL store", zap.String("dialect", db.Dialect().String()))
		return store.NewSQLStore(db, db.Dialect(), logger), nil
	case "badger":
		bs, err := store.NewBadgerStore(cfg.BadgerPath, logger)
		if err != nil {
			return nil, err
		}
		go bs.RunGC(ctx, badgerGCPeriod)
		logger.Info("Using badger store", zap.String("path", cfg.BadgerPath))
		return bs, nil
	case "file":
		fs, err := store.NewFileStore(cfg.FileStoragePath, logger)
		if err != nil {
			return nil, err
		}
		logger.Info("Using file store", zap.String("path", cfg.FileStoragePath))
		return fs, nil
	default:
		logger.Info("Using in-memory store")
		return store.NewMemoryStore(), nil
	}
}
