package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tradercheck/tradercheck/internal/application/usecase"
	"github.com/tradercheck/tradercheck/internal/infrastructure/config"
	"github.com/tradercheck/tradercheck/internal/presentation/rest"
	"github.com/tradercheck/tradercheck/pkg/auth"
)

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetArgs(args)
	t.Cleanup(func() { rootCmd.SetArgs(nil) })
	err := rootCmd.Execute()
	return out.String(), err
}

func TestClassifyCommand(t *testing.T) {
	tests := []struct {
		score string
		want  string
	}{
		{score: "0", want: "low"},
		{score: "5", want: "low"},
		{score: "6", want: "medium"},
		{score: "15", want: "medium"},
		{score: "16", want: "high"},
	}
	for _, tt := range tests {
		t.Run(tt.score, func(t *testing.T) {
			out, err := execute(t, "classify", tt.score)
			require.NoError(t, err)
			assert.Equal(t, tt.want, strings.TrimSpace(out))
		})
	}
}

func TestClassifyCommand_RejectsBadScores(t *testing.T) {
	_, err := execute(t, "classify", "abc")
	assert.Error(t, err)

	_, err = execute(t, "classify", "-3")
	assert.Error(t, err)
}

func TestTokenCommand(t *testing.T) {
	t.Setenv("JWT_SECRET", "cli-secret")

	brokerID := uuid.New()
	out, err := execute(t, "token", "--role", "broker", "--user", brokerID.String(), "--name", "John")
	require.NoError(t, err)

	jwtService, err := auth.NewJWTService(auth.JWTConfig{Secret: "cli-secret", Issuer: "tradercheck"})
	require.NoError(t, err)
	claims, err := jwtService.ValidateToken(strings.TrimSpace(out))
	require.NoError(t, err)
	assert.Equal(t, brokerID, claims.UserID)
	assert.True(t, claims.HasRole(auth.RoleBroker))
}

func TestTokenCommand_RejectsUnknownRole(t *testing.T) {
	t.Cleanup(func() { tokenRole = auth.RoleBroker })
	_, err := execute(t, "token", "--role", "auditor")
	assert.ErrorContains(t, err, "unknown role")
}

func TestDevCertsCommand(t *testing.T) {
	dir := t.TempDir()
	_, err := execute(t, "dev-certs", "--out", dir)
	require.NoError(t, err)

	for _, name := range []string{"ca.pem", "server.pem", "server-key.pem"} {
		_, err := os.Stat(filepath.Join(dir, name))
		assert.NoError(t, err, name)
	}
}

func TestNewJWTService_PrefersKeyFiles(t *testing.T) {
	priv, _, err := auth.GenerateKeyPair()
	require.NoError(t, err)
	path := filepath.Join(t.TempDir(), "jwt.pem")
	require.NoError(t, os.WriteFile(path, priv, 0o600))

	svc, err := newJWTService(config.AuthConfig{JWTSecret: "ignored", PrivateKeyFile: path})
	require.NoError(t, err)

	token, err := svc.GenerateToken(uuid.New(), "admin", []string{auth.RoleAdmin})
	require.NoError(t, err)

	hmacOnly, err := auth.NewJWTService(auth.JWTConfig{Secret: "ignored"})
	require.NoError(t, err)
	_, err = hmacOnly.ValidateToken(token)
	assert.Error(t, err)
}

func TestHTTPWriteTimeoutCoversSearchBudget(t *testing.T) {
	assert.Greater(t, httpWriteTimeout, rest.DefaultRequestTimeout+usecase.DefaultSideEffectTimeout)
}
