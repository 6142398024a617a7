package main

import (
	"context"
	"errors"
	"flag"
	"log/slog"
	"net"
	"net/http"
	"os"
	"os/signal"
	"sync/atomic"
	"syscall"
	"time"

	grpc_prometheus "github.com/grpc-ecosystem/go-grpc-prometheus"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"golang.org/x/sync/errgroup"
	"google.golang.org/grpc"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"

	"github.com/pribylovaa/trending-curator/internal/cache"
	"github.com/pribylovaa/trending-curator/internal/config"
	"github.com/pribylovaa/trending-curator/internal/curation"
	"github.com/pribylovaa/trending-curator/internal/metrics"
	"github.com/pribylovaa/trending-curator/internal/registry"
	"github.com/pribylovaa/trending-curator/internal/service"
	"github.com/pribylovaa/trending-curator/internal/source/topics"
	curatorgrpc "github.com/pribylovaa/trending-curator/internal/transport/grpc"
	curatorhttp "github.com/pribylovaa/trending-curator/internal/transport/http"
	logctx "github.com/pribylovaa/trending-curator/pkg/log"
)

// Константы для определения окружения.
const (
	envLocal = "local"
	envDev   = "dev"
	envProd  = "prod"
)

func main() {
	var configPath string
	flag.StringVar(&configPath, "config", "", "path to config file (overrides CONFIG_PATH env)")
	flag.Parse()

	cfg := config.MustLoad(configPath)

	log := setupLogger(cfg.Env)
	slog.SetDefault(log)
	log.Info("starting trending-curator", "env", cfg.Env)

	if err := run(cfg, log); err != nil {
		log.Error("service_failed", slog.String("err", err.Error()))
		os.Exit(1)
	}

	log.Info("service_stopped")
}

func run(cfg *config.Config, log *slog.Logger) error {
	rootCtx, rootCancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer rootCancel()

	rootCtx = logctx.Into(rootCtx, log)

	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	m := metrics.New(reg)

	grpcMetrics := grpc_prometheus.NewServerMetrics()
	grpcMetrics.EnableHandlingTimeHistogram()
	reg.MustRegister(grpcMetrics)

	deps := registry.Deps{Observer: m}

	if cfg.Sources.Topics.DatabaseURL != "" {
		dbCtx, dbCancel := context.WithTimeout(rootCtx, 10*time.Second)
		store, err := topics.NewPostgresStore(dbCtx, cfg.Sources.Topics.DatabaseURL)
		dbCancel()
		if err != nil {
			return err
		}
		defer store.Close()

		deps.Topics = store
		log.Info("postgres_connected")
	}

	var resultCache cache.ResultCache
	if cfg.Cache.RedisURL != "" {
		rc, err := cache.NewRedisCache(cfg.Cache.RedisURL, cfg.Cache.Prefix)
		if err != nil {
			return err
		}
		defer func() {
			if cerr := rc.Close(); cerr != nil {
				log.Warn("redis_close_failed", slog.String("err", cerr.Error()))
			}
		}()

		resultCache = rc
		log.Info("redis_connected")
	}

	sources, err := registry.Build(rootCtx, cfg.Sources, cfg.Cache.SourceTTL, deps)
	if err != nil {
		return err
	}

	engine, err := curation.NewEngine(cfg.Curation)
	if err != nil {
		return err
	}

	svc := service.New(sources, engine, service.Options{
		Cache:    resultCache,
		CacheTTL: cfg.Cache.ResultTTL,
		Observer: m,
	})
	log.Info("service_initialized")

	// HTTP
	var ready atomic.Bool

	mux := http.NewServeMux()
	mux.HandleFunc("/livez", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})
	mux.HandleFunc("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		if ready.Load() {
			w.WriteHeader(http.StatusOK)
			_, _ = w.Write([]byte("ok"))
			return
		}

		http.Error(w, "not ready", http.StatusServiceUnavailable)
	})
	mux.Handle("/metrics", promhttp.HandlerFor(reg, promhttp.HandlerOpts{}))
	mux.Handle("/", curatorhttp.NewRouter(svc, curatorhttp.Options{
		Logger:  log,
		Timeout: cfg.Timeouts.Service,
	}))

	httpSrv := &http.Server{
		Addr:              cfg.HTTP.Addr(),
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
	}

	httpLn, err := net.Listen("tcp", httpSrv.Addr)
	if err != nil {
		log.Error("http_listen_failed", slog.String("addr", httpSrv.Addr), slog.String("err", err.Error()))
		return err
	}
	log.Info("http_listen_start", slog.String("addr", httpSrv.Addr))

	// gRPC health
	grpcSrv, hs := curatorgrpc.NewServer(curatorgrpc.ServerOptions{
		Logger:     log,
		Timeout:    cfg.Timeouts.Service,
		Reflection: cfg.Env == envLocal || cfg.Env == envDev,
		Metrics:    grpcMetrics,
	})

	grpcAddr := cfg.GRPC.Addr()
	grpcLn, err := net.Listen("tcp", grpcAddr)
	if err != nil {
		log.Error("grpc_listen_failed", slog.String("addr", grpcAddr), slog.String("err", err.Error()))
		_ = httpLn.Close()
		return err
	}
	log.Info("grpc_listen_start", slog.String("addr", grpcAddr))

	hs.SetServingStatus("", healthpb.HealthCheckResponse_SERVING)

	g, gctx := errgroup.WithContext(rootCtx)

	g.Go(func() error {
		if err := httpSrv.Serve(httpLn); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		if err := grpcSrv.Serve(grpcLn); err != nil && !errors.Is(err, grpc.ErrServerStopped) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		return curatorgrpc.NewHealthReporter(svc, hs, m, cfg.Health.Interval).Run(gctx)
	})
	g.Go(func() error {
		<-gctx.Done()
		log.Info("shutdown_requested")
		ready.Store(false)
		hs.SetServingStatus("", healthpb.HealthCheckResponse_NOT_SERVING)
		shutdown(log, httpSrv, grpcSrv)
		return nil
	})

	ready.Store(true)
	log.Info("curator_ready")

	return g.Wait()
}

// shutdown останавливает оба сервера с общим дедлайном.
func shutdown(log *slog.Logger, httpSrv *http.Server, grpcSrv *grpc.Server) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := httpSrv.Shutdown(ctx); err != nil {
		log.Warn("http_shutdown_incomplete", slog.String("err", err.Error()))
	} else {
		log.Info("http_stopped")
	}

	done := make(chan struct{})
	go func() {
		grpcSrv.GracefulStop()
		close(done)
	}()

	select {
	case <-done:
		log.Info("grpc_stopped")
	case <-ctx.Done():
		log.Warn("grpc_force_stop")
		grpcSrv.Stop()
	}
}

// setupLogger настраивает slog по окружению.
func setupLogger(env string) *slog.Logger {
	switch env {
	case envDev:
		return slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug}))
	case envProd:
		return slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}))
	default:
		return slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug}))
	}
}
