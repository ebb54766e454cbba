package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tradercheck/tradercheck/internal/domain/service"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("DOTENV_PATH", filepath.Join(t.TempDir(), "absent.env"))
	t.Setenv("JWT_SECRET", "test-secret")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, StoreMemory, cfg.Store)
	assert.Equal(t, ":8080", cfg.HTTPAddress())
	assert.Equal(t, ":9090", cfg.GRPCAddress())
	assert.Equal(t, "tradercheck.events", cfg.Kafka.Topic)
	assert.False(t, cfg.Kafka.Enabled())
	assert.Equal(t, 60, cfg.RateLimit.Searches)
	assert.Equal(t, time.Minute, cfg.RateLimit.Window)
	assert.Equal(t, 12*time.Hour, cfg.Auth.TokenTTL)
	assert.Equal(t, service.DefaultSeverityScores, cfg.Scoring)
	assert.False(t, cfg.TLS.Enabled())
}

func TestLoad_FromEnvironment(t *testing.T) {
	t.Setenv("DOTENV_PATH", "")
	t.Setenv("JWT_SECRET", "s")
	t.Setenv("STORE", "Postgres")
	t.Setenv("DB_PASSWORD", "pw")
	t.Setenv("HTTP_PORT", "8181")
	t.Setenv("KAFKA_BROKERS", "k1:9092, k2:9092,")
	t.Setenv("SEARCH_RATE_WINDOW", "30s")
	t.Setenv("GRPC_REFLECTION", "true")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, StorePostgres, cfg.Store)
	assert.Equal(t, 8181, cfg.HTTPPort)
	assert.Equal(t, []string{"k1:9092", "k2:9092"}, cfg.Kafka.Brokers)
	assert.Equal(t, 30*time.Second, cfg.RateLimit.Window)
	assert.True(t, cfg.GRPCReflection)
}

func TestLoad_DotEnvDoesNotOverrideEnvironment(t *testing.T) {
	path := filepath.Join(t.TempDir(), ".env")
	require.NoError(t, os.WriteFile(path, []byte("JWT_SECRET=from-file\nLOG_LEVEL=debug\n"), 0o600))
	t.Setenv("DOTENV_PATH", path)
	t.Setenv("LOG_LEVEL", "warn")
	t.Setenv("JWT_SECRET", "")
	require.NoError(t, os.Unsetenv("JWT_SECRET"))

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "from-file", cfg.Auth.JWTSecret)
	assert.Equal(t, "warn", cfg.LogLevel)
}

func TestValidate(t *testing.T) {
	base := Config{
		Store:     StoreMemory,
		Auth:      AuthConfig{JWTSecret: "s"},
		RateLimit: RateLimitConfig{Searches: 10, Window: time.Minute},
		Scoring:   service.DefaultSeverityScores,
	}
	require.NoError(t, base.Validate())

	tests := []struct {
		name   string
		mutate func(*Config)
		want   string
	}{
		{"unknown store", func(c *Config) { c.Store = "sqlite" }, "STORE must be"},
		{"postgres without password", func(c *Config) { c.Store = StorePostgres }, "DB_PASSWORD"},
		{"no signing key", func(c *Config) { c.Auth = AuthConfig{} }, "JWT_SECRET"},
		{"half tls", func(c *Config) { c.TLS.CertFile = "cert.pem" }, "TLS_CERT_FILE"},
		{"zero window", func(c *Config) { c.RateLimit.Window = 0 }, "SEARCH_RATE_WINDOW"},
		{"negative weight", func(c *Config) { c.Scoring.High = -1 }, "severity high"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := base
			tt.mutate(&cfg)
			assert.ErrorContains(t, cfg.Validate(), tt.want)
		})
	}
}

func TestParseScoring(t *testing.T) {
	scores, err := ParseScoring([]byte("severity_scores:\n  low: 1\n  medium: 7\n  high: 25\n"))
	require.NoError(t, err)
	assert.Equal(t, service.SeverityScores{Low: 1, Medium: 7, High: 25}, scores)

	_, err = ParseScoring([]byte("severity_scores:\n  low: 1\n  high: 25\n"))
	assert.ErrorContains(t, err, "severity_scores.medium is missing")

	_, err = ParseScoring([]byte("severity_scores:\n  low: -1\n  medium: 7\n  high: 25\n"))
	assert.ErrorContains(t, err, "negative")

	_, err = ParseScoring([]byte("severity_scores:\n  low: 1\n  medium: 7\n  high: 25\n  critical: 40\n"))
	assert.Error(t, err)
}

func TestLoadScoring_RepositoryFile(t *testing.T) {
	scores, err := LoadScoring(filepath.Join("..", "..", "..", "configs", "scoring.yaml"))
	require.NoError(t, err)
	assert.Equal(t, service.DefaultSeverityScores, scores)
}
