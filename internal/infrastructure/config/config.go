package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"

	"github.com/tradercheck/tradercheck/internal/domain/service"
	"github.com/tradercheck/tradercheck/pkg/postgres"
)

// Store backends.
const (
	StoreMemory   = "memory"
	StorePostgres = "postgres"
)

// Config holds all service configuration loaded from environment variables.
type Config struct {
	Environment string
	LogLevel    string
	LogFormat   string

	HTTPPort       int
	GRPCPort       int
	GRPCReflection bool
	TLS            TLSConfig

	Store          string
	Seed           bool
	DB             postgres.Config
	MigrationsPath string

	Kafka     KafkaConfig
	Redis     RedisConfig
	RateLimit RateLimitConfig
	Auth      AuthConfig
	Telemetry TelemetryConfig

	ScoringFile string
	Scoring     service.SeverityScores
}

// TLSConfig enables TLS on both listeners when both files are set.
type TLSConfig struct {
	CertFile string
	KeyFile  string
}

// Enabled reports whether a certificate pair is configured.
func (t TLSConfig) Enabled() bool { return t.CertFile != "" && t.KeyFile != "" }

// KafkaConfig holds event publishing configuration. Publishing is off
// unless brokers are configured.
type KafkaConfig struct {
	Brokers       []string
	Topic         string
	ConsumerGroup string
	TLS           bool
	CAFile        string
	SASLMechanism string
	SASLUsername  string
	SASLPassword  string
}

// Enabled reports whether any broker is configured.
func (k KafkaConfig) Enabled() bool { return len(k.Brokers) > 0 }

// RedisConfig holds the rate limiter backend. An empty URL selects the
// in-process limiter.
type RedisConfig struct {
	URL string
}

// RateLimitConfig bounds searches per broker per window. Zero disables it.
type RateLimitConfig struct {
	Searches int
	Window   time.Duration
}

// AuthConfig holds JWT settings.
type AuthConfig struct {
	JWTSecret      string
	PrivateKeyFile string
	PublicKeyFile  string
	Issuer         string
	TokenTTL       time.Duration
}

// TelemetryConfig holds OpenTelemetry configuration.
type TelemetryConfig struct {
	OTLPEndpoint string
	Insecure     bool
	ServiceName  string
	SampleRatio  float64
}

// Load reads an optional dotenv file, then environment variables with
// defaults, then the scoring file when one is configured.
func Load() (Config, error) {
	if err := LoadDotEnv(getEnv("DOTENV_PATH", ".env")); err != nil {
		return Config{}, err
	}

	cfg := Config{
		Environment:    getEnv("ENVIRONMENT", "development"),
		LogLevel:       getEnv("LOG_LEVEL", "info"),
		LogFormat:      getEnv("LOG_FORMAT", "json"),
		HTTPPort:       getEnvInt("HTTP_PORT", 8080),
		GRPCPort:       getEnvInt("GRPC_PORT", 9090),
		GRPCReflection: getEnvBool("GRPC_REFLECTION", false),
		TLS: TLSConfig{
			CertFile: getEnv("TLS_CERT_FILE", ""),
			KeyFile:  getEnv("TLS_KEY_FILE", ""),
		},
		Store: strings.ToLower(getEnv("STORE", StoreMemory)),
		Seed:  getEnvBool("SEED_DEMO_DATA", false),
		DB: postgres.Config{
			Host:     getEnv("DB_HOST", "localhost"),
			Port:     getEnvInt("DB_PORT", 5432),
			User:     getEnv("DB_USER", "tradercheck"),
			Password: getEnv("DB_PASSWORD", ""),
			Database: getEnv("DB_NAME", "tradercheck"),
			SSLMode:  getEnv("DB_SSLMODE", "require"),
			MaxConns: int32(getEnvInt("DB_MAX_CONNS", 20)),
			MinConns: int32(getEnvInt("DB_MIN_CONNS", 2)),

			ApplicationName: "tradercheckd",
			ConnectAttempts: getEnvInt("DB_CONNECT_ATTEMPTS", 5),
			ConnectBackoff:  getEnvDuration("DB_CONNECT_BACKOFF", time.Second),
		},
		MigrationsPath: getEnv("MIGRATIONS_PATH", "file://migrations"),
		Kafka: KafkaConfig{
			Brokers:       getEnvList("KAFKA_BROKERS"),
			Topic:         getEnv("KAFKA_TOPIC", "tradercheck.events"),
			ConsumerGroup: getEnv("KAFKA_CONSUMER_GROUP", ""),
			TLS:           getEnvBool("KAFKA_TLS", false),
			CAFile:        getEnv("KAFKA_CA_FILE", ""),
			SASLMechanism: getEnv("KAFKA_SASL_MECHANISM", ""),
			SASLUsername:  getEnv("KAFKA_SASL_USERNAME", ""),
			SASLPassword:  getEnv("KAFKA_SASL_PASSWORD", ""),
		},
		Redis: RedisConfig{
			URL: getEnv("REDIS_URL", ""),
		},
		RateLimit: RateLimitConfig{
			Searches: getEnvInt("SEARCH_RATE_LIMIT", 60),
			Window:   getEnvDuration("SEARCH_RATE_WINDOW", time.Minute),
		},
		Auth: AuthConfig{
			JWTSecret:      getEnv("JWT_SECRET", ""),
			PrivateKeyFile: getEnv("JWT_PRIVATE_KEY_FILE", ""),
			PublicKeyFile:  getEnv("JWT_PUBLIC_KEY_FILE", ""),
			Issuer:         getEnv("JWT_ISSUER", "tradercheck"),
			TokenTTL:       getEnvDuration("JWT_TTL", 12*time.Hour),
		},
		Telemetry: TelemetryConfig{
			OTLPEndpoint: getEnv("OTEL_EXPORTER_OTLP_ENDPOINT", ""),
			Insecure:     getEnvBool("OTEL_EXPORTER_OTLP_INSECURE", true),
			ServiceName:  getEnv("OTEL_SERVICE_NAME", "tradercheck"),
			SampleRatio:  getEnvFloat("OTEL_SAMPLE_RATIO", 1),
		},
		ScoringFile: getEnv("SCORING_FILE", ""),
		Scoring:     service.DefaultSeverityScores,
	}

	if cfg.ScoringFile != "" {
		scores, err := LoadScoring(cfg.ScoringFile)
		if err != nil {
			return Config{}, err
		}
		cfg.Scoring = scores
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// LoadDotEnv populates unset environment variables from path. A missing
// file is not an error.
func LoadDotEnv(path string) error {
	if path == "" {
		return nil
	}
	if err := godotenv.Load(path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("config: load %s: %w", path, err)
	}
	return nil
}

// Validate checks required configuration values.
func (c Config) Validate() error {
	var errs []error
	switch c.Store {
	case StoreMemory:
	case StorePostgres:
		if c.DB.Password == "" {
			errs = append(errs, errors.New("DB_PASSWORD is required with STORE=postgres"))
		}
	default:
		errs = append(errs, fmt.Errorf("STORE must be %q or %q, got %q", StoreMemory, StorePostgres, c.Store))
	}
	if c.Auth.JWTSecret == "" && c.Auth.PrivateKeyFile == "" && c.Auth.PublicKeyFile == "" {
		errs = append(errs, errors.New("one of JWT_SECRET, JWT_PRIVATE_KEY_FILE or JWT_PUBLIC_KEY_FILE is required"))
	}
	if (c.TLS.CertFile == "") != (c.TLS.KeyFile == "") {
		errs = append(errs, errors.New("TLS_CERT_FILE and TLS_KEY_FILE must be set together"))
	}
	if c.RateLimit.Searches < 0 {
		errs = append(errs, errors.New("SEARCH_RATE_LIMIT must not be negative"))
	}
	if c.RateLimit.Searches > 0 && c.RateLimit.Window <= 0 {
		errs = append(errs, errors.New("SEARCH_RATE_WINDOW must be positive"))
	}
	if err := c.Scoring.Validate(); err != nil {
		errs = append(errs, err)
	}
	if err := errors.Join(errs...); err != nil {
		return fmt.Errorf("config: %w", err)
	}
	return nil
}

// HTTPAddress returns the full HTTP listen address.
func (c Config) HTTPAddress() string {
	return fmt.Sprintf(":%d", c.HTTPPort)
}

// GRPCAddress returns the full gRPC listen address.
func (c Config) GRPCAddress() string {
	return fmt.Sprintf(":%d", c.GRPCPort)
}

func getEnv(key, defaultVal string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return defaultVal
}

func getEnvInt(key string, defaultVal int) int {
	if val := os.Getenv(key); val != "" {
		if i, err := strconv.Atoi(val); err == nil {
			return i
		}
	}
	return defaultVal
}

func getEnvFloat(key string, defaultVal float64) float64 {
	if val := os.Getenv(key); val != "" {
		if f, err := strconv.ParseFloat(val, 64); err == nil {
			return f
		}
	}
	return defaultVal
}

func getEnvBool(key string, defaultVal bool) bool {
	if val := os.Getenv(key); val != "" {
		if b, err := strconv.ParseBool(val); err == nil {
			return b
		}
	}
	return defaultVal
}

func getEnvDuration(key string, defaultVal time.Duration) time.Duration {
	if val := os.Getenv(key); val != "" {
		if d, err := time.ParseDuration(val); err == nil {
			return d
		}
	}
	return defaultVal
}

func getEnvList(key string) []string {
	var out []string
	for _, part := range strings.Split(os.Getenv(key), ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
