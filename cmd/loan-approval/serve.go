package main

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/platformbuilds/loan-approval/internal/api"
	"github.com/platformbuilds/loan-approval/internal/metrics"
	"github.com/platformbuilds/loan-approval/internal/services"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve loan decisions over gRPC and REST",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()
		return runServe(ctx)
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
}

func runServe(ctx context.Context) error {
	logger.Info("starting loan-approval",
		zap.String("grpc_address", cfg.Server.GRPCAddress),
		zap.String("http_address", cfg.Server.HTTPAddress))

	if err := metrics.Register(prometheus.DefaultRegisterer); err != nil {
		return eris.Wrap(err, "register metrics")
	}

	provider := newCacheProvider(cfg, logger)
	defer provider.Close()

	store, err := newModeStore(cfg, provider, logger)
	if err != nil {
		return err
	}
	if _, err := store.Seed(ctx); err != nil {
		logger.Warn("seed active mode", zap.Error(err))
	}

	accessor := newAccessor(cfg, logger)
	if cfg.Models.EagerLoad {
		if _, err := accessor.Get(); err != nil {
			return err
		}
	}

	svc := services.NewApprovalService(logger, accessor, store)

	grpcServer, err := api.NewServer(cfg.Server, svc)
	if err != nil {
		return err
	}

	var httpServers []*http.Server
	if cfg.Server.HTTPAddress != "" {
		httpServers = append(httpServers, &http.Server{
			Addr: cfg.Server.HTTPAddress,
			Handler: api.NewRouter(svc, api.RouterOptions{
				CORSOrigins:    cfg.Server.CORSOrigins,
				RateLimitRPS:   cfg.Server.RateLimitRPS,
				RateLimitBurst: cfg.Server.RateLimitBurst,
				Logger:         logger,
			}),
			ReadHeaderTimeout: 5 * time.Second,
			ReadTimeout:       10 * time.Second,
			WriteTimeout:      15 * time.Second,
		})
	}
	if cfg.Server.MetricsAddress != "" {
		mux := http.NewServeMux()
		mux.Handle("/metrics", promhttp.Handler())
		httpServers = append(httpServers, &http.Server{
			Addr:         cfg.Server.MetricsAddress,
			Handler:      mux,
			ReadTimeout:  5 * time.Second,
			WriteTimeout: 15 * time.Second,
		})
	}

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		logger.Info("gRPC server listening", zap.String("address", grpcServer.Address()))
		if err := grpcServer.Start(); err != nil {
			return eris.Wrap(err, "gRPC server")
		}
		return nil
	})
	for _, srv := range httpServers {
		srv := srv
		g.Go(func() error {
			logger.Info("HTTP server listening", zap.String("address", srv.Addr))
			if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				return eris.Wrapf(err, "HTTP server %s", srv.Addr)
			}
			return nil
		})
	}

	g.Go(func() error {
		<-gctx.Done()
		logger.Info("shutdown signal received")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.GracefulTimeout)
		defer cancel()
		grpcServer.Shutdown(shutdownCtx)
		for _, srv := range httpServers {
			if err := srv.Shutdown(shutdownCtx); err != nil && !errors.Is(err, http.ErrServerClosed) {
				logger.Warn("HTTP server shutdown", zap.String("address", srv.Addr), zap.Error(err))
			}
		}
		return nil
	})

	if err := g.Wait(); err != nil {
		logger.Error("loan-approval exited", zap.Error(err))
		return err
	}
	logger.Info("loan-approval stopped")
	return nil
}
