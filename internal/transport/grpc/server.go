// grpc поднимает служебный gRPC-сервер curator: стандартный grpc.health.v1
// со статусом процесса ("") и статусами источников ("source.<id>").
package grpc

import (
	"log/slog"
	"time"

	grpc_prometheus "github.com/grpc-ecosystem/go-grpc-prometheus"
	"google.golang.org/grpc"
	"google.golang.org/grpc/health"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
	"google.golang.org/grpc/reflection"

	"github.com/pribylovaa/trending-curator/pkg/interceptors"
)

// ServerOptions — параметры сборки gRPC-сервера.
type ServerOptions struct {
	Logger  *slog.Logger
	Timeout time.Duration
	// Reflection включает grpc reflection (local/dev).
	Reflection bool
	// Metrics — серверные gRPC-метрики; nil — без них.
	Metrics *grpc_prometheus.ServerMetrics
}

// NewServer собирает gRPC-сервер с интерсепторами и health-сервисом.
// Общий статус "" выставляет вызывающий: SERVING после Listen, NOT_SERVING при остановке.
func NewServer(opts ServerOptions) (*grpc.Server, *health.Server) {
	chain := []grpc.UnaryServerInterceptor{
		interceptors.Recover(opts.Logger),
		interceptors.UnaryLoggingInterceptor(opts.Logger),
		interceptors.WithTimeout(opts.Timeout),
	}
	if opts.Metrics != nil {
		chain = append(chain, opts.Metrics.UnaryServerInterceptor())
	}

	srv := grpc.NewServer(grpc.ChainUnaryInterceptor(chain...))

	hs := health.NewServer()
	healthpb.RegisterHealthServer(srv, hs)

	if opts.Metrics != nil {
		opts.Metrics.InitializeMetrics(srv)
	}

	if opts.Reflection {
		reflection.Register(srv)
	}

	return srv, hs
}
