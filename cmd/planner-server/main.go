package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"go.opentelemetry.io/contrib/instrumentation/google.golang.org/grpc/otelgrpc"
	"google.golang.org/grpc"

	"github.com/signalsfoundry/constellation-deployment/internal/config"
	"github.com/signalsfoundry/constellation-deployment/internal/logging"
	"github.com/signalsfoundry/constellation-deployment/internal/observability"
	"github.com/signalsfoundry/constellation-deployment/internal/service"
	"github.com/signalsfoundry/constellation-deployment/kb"
)

func main() {
	log := logging.NewFromEnv()
	ctx := context.Background()

	cfg, err := config.Load()
	if err != nil {
		log.Error(ctx, "failed to load configuration", logging.Err(err))
		os.Exit(1)
	}
	flag.StringVar(&cfg.GRPCAddr, "grpc-addr", cfg.GRPCAddr, "TCP address the planner gRPC server listens on")
	flag.StringVar(&cfg.MetricsAddr, "metrics-addr", cfg.MetricsAddr, "HTTP address for Prometheus /metrics (empty disables)")
	flag.StringVar(&cfg.LaunchSite, "launch-site", cfg.LaunchSite, "Default launch site name")
	flag.IntVar(&cfg.Workers, "workers", cfg.Workers, "Concurrent candidates per request (0 = GOMAXPROCS)")
	flag.Parse()

	tracingCfg, err := observability.TracingConfigFromEnv()
	if err != nil {
		log.Error(ctx, "invalid tracing configuration", logging.Err(err))
		os.Exit(1)
	}
	shutdownTracing, err := observability.InitTracing(ctx, tracingCfg, log)
	if err != nil {
		log.Error(ctx, "failed to initialise tracing", logging.Err(err))
		os.Exit(1)
	}
	defer observability.ShutdownWithTimeout(ctx, shutdownTracing, log)

	lis, err := net.Listen("tcp", cfg.GRPCAddr)
	if err != nil {
		log.Error(ctx, "failed to listen for gRPC", logging.String("addr", cfg.GRPCAddr), logging.Err(err))
		os.Exit(1)
	}

	stopCtx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(stopCtx, cfg, log, lis); err != nil {
		log.Error(ctx, "planner server exited", logging.Err(err))
		os.Exit(1)
	}
}

// run serves the planner on lis until ctx is done, then drains in-flight
// requests.
func run(ctx context.Context, cfg config.Config, log logging.Logger, lis net.Listener) error {
	reg := prometheus.NewRegistry()
	rpcMetrics, err := observability.NewRPCCollector(reg)
	if err != nil {
		return fmt.Errorf("rpc metrics: %w", err)
	}
	planMetrics, err := observability.NewPlannerCollector(reg)
	if err != nil {
		return fmt.Errorf("planner metrics: %w", err)
	}

	catalog := kb.DefaultCatalog()
	plannerCfg, err := cfg.PlannerConfig(catalog)
	if err != nil {
		return err
	}
	svc, err := service.NewPlannerService(plannerCfg, log,
		service.WithCatalog(catalog),
		service.WithMetricsRecorder(planMetrics))
	if err != nil {
		return err
	}

	server := grpc.NewServer(
		grpc.StatsHandler(otelgrpc.NewServerHandler()),
		grpc.ChainUnaryInterceptor(
			service.RequestIDUnaryServerInterceptor(log),
			service.TracingUnaryServerInterceptor(),
			rpcMetrics.UnaryServerInterceptor(),
			service.StatusUnaryServerInterceptor(),
		),
	)
	health := service.Register(server, svc)

	metricsSrv := serveMetrics(cfg.MetricsAddr, rpcMetrics.Handler(), log)

	log.Info(ctx, "starting planner gRPC server",
		logging.String("addr", lis.Addr().String()),
		logging.Float("tug_delta_v_limit", plannerCfg.TugDeltaVLimit),
		logging.Float("launch_latitude", plannerCfg.LaunchLatitude))

	errCh := make(chan error, 1)
	go func() {
		errCh <- server.Serve(lis)
	}()

	select {
	case err := <-errCh:
		return fmt.Errorf("serve: %w", err)
	case <-ctx.Done():
	}

	log.Info(context.Background(), "shutting down planner server")
	health.Shutdown()
	server.GracefulStop()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if metricsSrv != nil {
		_ = metricsSrv.Shutdown(shutdownCtx)
	}
	return nil
}

func serveMetrics(addr string, handler http.Handler, log logging.Logger) *http.Server {
	if addr == "" {
		return nil
	}
	mux := http.NewServeMux()
	mux.Handle("/metrics", handler)

	srv := &http.Server{
		Addr:              addr,
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Warn(context.Background(), "metrics server exited", logging.Err(err))
		}
	}()

	log.Info(context.Background(), "serving Prometheus metrics", logging.String("addr", addr))
	return srv
}
