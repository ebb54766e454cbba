package grpc

import (
	"context"
	"fmt"
	"log/slog"
	"net"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
	grpclib "google.golang.org/grpc"
	"google.golang.org/grpc/credentials"
	"google.golang.org/grpc/health"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
	"google.golang.org/grpc/reflection"
	"google.golang.org/grpc/status"

	"github.com/tradercheck/tradercheck/pkg/auth"
)

// ServerConfig configures the gRPC server.
type ServerConfig struct {
	Address string
	JWT     *auth.JWTService
	Logger  *slog.Logger

	// Creds enables TLS. Nil serves plaintext.
	Creds credentials.TransportCredentials

	Reflection bool
}

// Server wraps the gRPC server with TraderCheck handlers.
type Server struct {
	address    string
	grpcServer *grpclib.Server
	health     *health.Server
	logger     *slog.Logger
}

// NewServer creates a new gRPC server. Health checks bypass authentication.
func NewServer(handler *Handler, cfg ServerConfig) (*Server, error) {
	authInterceptor := auth.UnaryAuthInterceptor(cfg.JWT, []string{
		"/grpc.health.v1.Health/Check",
		"/grpc.health.v1.Health/Watch",
	})

	metricsInterceptor, err := newMetricsInterceptor()
	if err != nil {
		return nil, err
	}

	serverOpts := []grpclib.ServerOption{
		grpclib.ChainUnaryInterceptor(metricsInterceptor, authInterceptor),
	}
	if cfg.Creds != nil {
		serverOpts = append(serverOpts, grpclib.Creds(cfg.Creds))
		cfg.Logger.Info("gRPC TLS enabled")
	} else {
		cfg.Logger.Info("gRPC TLS not configured, running without TLS")
	}

	grpcServer := grpclib.NewServer(serverOpts...)

	healthServer := health.NewServer()
	healthpb.RegisterHealthServer(grpcServer, healthServer)
	healthServer.SetServingStatus(ServiceName, healthpb.HealthCheckResponse_SERVING)

	RegisterTraderCheckServiceServer(grpcServer, handler)

	if cfg.Reflection {
		reflection.Register(grpcServer)
	}

	return &Server{
		address:    cfg.Address,
		grpcServer: grpcServer,
		health:     healthServer,
		logger:     cfg.Logger,
	}, nil
}

// Serve accepts connections on lis until Stop is called.
func (s *Server) Serve(lis net.Listener) error {
	s.logger.Info("gRPC server starting", slog.String("address", lis.Addr().String()))
	return s.grpcServer.Serve(lis)
}

// Start begins listening and serving gRPC requests.
func (s *Server) Start() error {
	listener, err := net.Listen("tcp", s.address)
	if err != nil {
		return fmt.Errorf("failed to listen on %s: %w", s.address, err)
	}
	return s.Serve(listener)
}

// Stop marks the service not serving and drains in-flight calls.
func (s *Server) Stop() {
	s.logger.Info("gRPC server shutting down")
	s.health.Shutdown()
	s.grpcServer.GracefulStop()
}

// newMetricsInterceptor counts calls and records their latency per method
// and status code on the global OpenTelemetry meter.
func newMetricsInterceptor() (grpclib.UnaryServerInterceptor, error) {
	meter := otel.Meter("github.com/tradercheck/tradercheck/internal/presentation/grpc")

	calls, err := meter.Int64Counter("tradercheck.grpc.server.calls",
		metric.WithDescription("gRPC calls handled"))
	if err != nil {
		return nil, fmt.Errorf("create grpc call counter: %w", err)
	}
	latency, err := meter.Float64Histogram("tradercheck.grpc.server.duration",
		metric.WithDescription("gRPC call latency"), metric.WithUnit("s"))
	if err != nil {
		return nil, fmt.Errorf("create grpc latency histogram: %w", err)
	}

	return func(ctx context.Context, req any, info *grpclib.UnaryServerInfo, handler grpclib.UnaryHandler) (any, error) {
		start := time.Now()
		resp, err := handler(ctx, req)

		attrs := metric.WithAttributes(
			attribute.String("rpc.method", info.FullMethod),
			attribute.String("rpc.grpc.status_code", status.Code(err).String()),
		)
		calls.Add(ctx, 1, attrs)
		latency.Record(ctx, time.Since(start).Seconds(), attrs)
		return resp, err
	}, nil
}
