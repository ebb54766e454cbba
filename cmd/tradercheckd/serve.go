package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/spf13/cobra"
	"go.opentelemetry.io/otel"
	"golang.org/x/sync/errgroup"

	"github.com/tradercheck/tradercheck/internal/application/usecase"
	"github.com/tradercheck/tradercheck/internal/domain/port"
	"github.com/tradercheck/tradercheck/internal/domain/service"
	"github.com/tradercheck/tradercheck/internal/infrastructure/config"
	"github.com/tradercheck/tradercheck/internal/infrastructure/kafka"
	"github.com/tradercheck/tradercheck/internal/infrastructure/memory"
	"github.com/tradercheck/tradercheck/internal/infrastructure/postgres"
	"github.com/tradercheck/tradercheck/internal/infrastructure/ratelimit"
	"github.com/tradercheck/tradercheck/internal/metrics"
	grpcserver "github.com/tradercheck/tradercheck/internal/presentation/grpc"
	"github.com/tradercheck/tradercheck/internal/presentation/rest"
	pkgkafka "github.com/tradercheck/tradercheck/pkg/kafka"
	"github.com/tradercheck/tradercheck/pkg/observability"
	pgutil "github.com/tradercheck/tradercheck/pkg/postgres"
	"github.com/tradercheck/tradercheck/pkg/tlsutil"
)

const shutdownTimeout = 15 * time.Second

// httpWriteTimeout must exceed the API request timeout plus the time a
// search may spend on its log append and event publish.
const httpWriteTimeout = rest.DefaultRequestTimeout + usecase.DefaultSideEffectTimeout + 3*time.Second

var serveMigrate bool

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the HTTP and gRPC servers",
	Long: `Run the HTTP API, the gRPC API and the metrics endpoint until
SIGINT or SIGTERM, then drain both servers.`,
	RunE: runServe,
}

func init() {
	serveCmd.Flags().BoolVar(&serveMigrate, "migrate", false, "Apply database migrations before serving (postgres store only)")
}

// closer releases one adapter on shutdown.
type closer func() error

func runServe(cmd *cobra.Command, _ []string) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	logger := observability.InitLogger(observability.LogConfig{
		Level:   cfg.LogLevel,
		Format:  cfg.LogFormat,
		Service: cfg.Telemetry.ServiceName,
	})

	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	shutdownTracer, err := observability.InitTracer(ctx, observability.TracerConfig{
		ServiceName: cfg.Telemetry.ServiceName,
		Version:     version,
		Endpoint:    cfg.Telemetry.OTLPEndpoint,
		Insecure:    cfg.Telemetry.Insecure,
		SampleRatio: cfg.Telemetry.SampleRatio,
	})
	if err != nil {
		return err
	}

	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	meterProvider, metricsHandler, err := observability.InitMetrics(observability.MetricsConfig{Registry: reg})
	if err != nil {
		return err
	}
	otel.SetMeterProvider(meterProvider)
	m := metrics.New(reg)

	var closers []closer
	defer func() {
		for i := len(closers) - 1; i >= 0; i-- {
			if err := closers[i](); err != nil {
				logger.Warn("shutdown", "error", err)
			}
		}
	}()
	closers = append(closers,
		func() error { return shutdownTracer(context.Background()) },
		func() error { return meterProvider.Shutdown(context.Background()) },
	)

	readiness := map[string]rest.ReadinessCheck{}

	repos, err := openStore(ctx, cfg, logger, readiness, &closers)
	if err != nil {
		return err
	}

	limiter, err := openLimiter(ctx, cfg, logger, readiness, &closers)
	if err != nil {
		return err
	}

	publisher, err := openPublisher(cfg, logger, &closers)
	if err != nil {
		return err
	}

	jwtService, err := newJWTService(cfg.Auth)
	if err != nil {
		return fmt.Errorf("failed to configure jwt: %w", err)
	}

	engine, err := service.NewRiskEngine(cfg.Scoring)
	if err != nil {
		return err
	}

	uc := usecase.NewSet(usecase.Dependencies{
		Repos:     repos,
		Publisher: publisher,
		Limiter:   limiter,
		Engine:    engine,
		Metrics:   m,
		Logger:    logger,
	})

	router := rest.NewRouter(rest.RouterConfig{
		UseCases:  uc,
		JWT:       jwtService,
		Logger:    logger,
		Metrics:   metricsHandler,
		Readiness: readiness,

		RequestTimeout: rest.DefaultRequestTimeout,
	})
	httpServer := &http.Server{
		Addr:              cfg.HTTPAddress(),
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       5 * time.Second,
		WriteTimeout:      httpWriteTimeout,
		IdleTimeout:       120 * time.Second,
	}

	grpcCfg := grpcserver.ServerConfig{
		Address:    cfg.GRPCAddress(),
		JWT:        jwtService,
		Logger:     logger,
		Reflection: cfg.GRPCReflection,
	}
	if cfg.TLS.Enabled() {
		tlsCfg, err := tlsutil.LoadServerConfig(cfg.TLS.CertFile, cfg.TLS.KeyFile)
		if err != nil {
			return err
		}
		httpServer.TLSConfig = tlsCfg

		creds, err := tlsutil.ServerCredentials(cfg.TLS.CertFile, cfg.TLS.KeyFile)
		if err != nil {
			return err
		}
		grpcCfg.Creds = creds
	}
	grpcSrv, err := grpcserver.NewServer(grpcserver.NewHandler(uc.SearchRecords, uc.ClassifyScore, logger), grpcCfg)
	if err != nil {
		return err
	}

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		logger.Info("http server starting", "addr", httpServer.Addr, "tls", cfg.TLS.Enabled())
		var err error
		if cfg.TLS.Enabled() {
			err = httpServer.ListenAndServeTLS("", "")
		} else {
			err = httpServer.ListenAndServe()
		}
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("http server: %w", err)
	})

	g.Go(func() error {
		if err := grpcSrv.Start(); err != nil {
			return fmt.Errorf("grpc server: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		<-gctx.Done()
		logger.Info("shutting down servers")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()

		grpcSrv.Stop()
		if err := httpServer.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("http shutdown: %w", err)
		}
		return nil
	})

	if err := g.Wait(); err != nil {
		return err
	}
	logger.Info("servers stopped")
	return nil
}

func openStore(ctx context.Context, cfg config.Config, logger *slog.Logger, readiness map[string]rest.ReadinessCheck, closers *[]closer) (port.Repositories, error) {
	switch cfg.Store {
	case config.StorePostgres:
		if serveMigrate {
			if err := pgutil.RunMigrations(cfg.DB.DSN(), cfg.MigrationsPath); err != nil {
				return port.Repositories{}, err
			}
			logger.Info("migrations applied", "source", cfg.MigrationsPath)
		}

		pool, err := pgutil.NewPool(ctx, cfg.DB)
		if err != nil {
			return port.Repositories{}, err
		}
		*closers = append(*closers, func() error { pool.Close(); return nil })
		readiness["postgres"] = func(ctx context.Context) error { return pgutil.HealthCheck(ctx, pool) }

		repos := postgres.NewRepositories(pool)
		if cfg.Seed {
			if err := postgres.SeedInTx(ctx, pool, memory.Seed); err != nil {
				return port.Repositories{}, fmt.Errorf("failed to seed postgres: %w", err)
			}
			logger.Info("demo data seeded", "store", cfg.Store)
		}
		logger.Info("store ready", "store", cfg.Store, "host", cfg.DB.Host, "database", cfg.DB.Database)
		return repos, nil

	default:
		repos := memory.NewStore().Repositories()
		if cfg.Seed {
			if err := memory.Seed(ctx, repos); err != nil {
				return port.Repositories{}, fmt.Errorf("failed to seed memory store: %w", err)
			}
			logger.Info("demo data seeded", "store", cfg.Store)
		}
		logger.Info("store ready", "store", cfg.Store)
		return repos, nil
	}
}

func openLimiter(ctx context.Context, cfg config.Config, logger *slog.Logger, readiness map[string]rest.ReadinessCheck, closers *[]closer) (port.RateLimiter, error) {
	if cfg.Redis.URL == "" {
		logger.Info("rate limiter ready", "backend", "memory", "searches", cfg.RateLimit.Searches, "window", cfg.RateLimit.Window)
		return ratelimit.NewMemoryLimiter(cfg.RateLimit.Searches, cfg.RateLimit.Window), nil
	}

	client, err := ratelimit.NewRedisClient(ctx, cfg.Redis.URL)
	if err != nil {
		return nil, err
	}
	*closers = append(*closers, client.Close)
	readiness["redis"] = func(ctx context.Context) error { return client.Ping(ctx).Err() }

	logger.Info("rate limiter ready", "backend", "redis", "searches", cfg.RateLimit.Searches, "window", cfg.RateLimit.Window)
	return ratelimit.NewRedisLimiter(client, cfg.RateLimit.Searches, cfg.RateLimit.Window), nil
}

func openPublisher(cfg config.Config, logger *slog.Logger, closers *[]closer) (port.EventPublisher, error) {
	if !cfg.Kafka.Enabled() {
		logger.Info("event publishing to log only")
		return kafka.NewLogPublisher(logger), nil
	}

	producer, err := pkgkafka.NewProducer(kafkaConfig(cfg.Kafka))
	if err != nil {
		return nil, fmt.Errorf("failed to create kafka producer: %w", err)
	}
	*closers = append(*closers, producer.Close)

	logger.Info("event publishing to kafka", "brokers", cfg.Kafka.Brokers, "topic", cfg.Kafka.Topic)
	return kafka.NewPublisher(producer, cfg.Kafka.Topic, logger), nil
}

func kafkaConfig(k config.KafkaConfig) pkgkafka.Config {
	return pkgkafka.Config{
		Brokers:       k.Brokers,
		ConsumerGroup: k.ConsumerGroup,
		TLS:           k.TLS,
		CAFile:        k.CAFile,
		SASLEnabled:   k.SASLMechanism != "",
		SASLMechanism: k.SASLMechanism,
		SASLUsername:  k.SASLUsername,
		SASLPassword:  k.SASLPassword,
	}
}
