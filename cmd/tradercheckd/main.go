// Command tradercheckd runs the TraderCheck risk service and its operator tooling.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/tradercheck/tradercheck/internal/infrastructure/config"
	"github.com/tradercheck/tradercheck/pkg/auth"
)

var version = "dev"

var rootCmd = &cobra.Command{
	Use:   "tradercheckd",
	Short: "TraderCheck trader risk service",
	Long: `tradercheckd serves the TraderCheck HTTP and gRPC APIs.

Brokers search for traders and report abuse; admins review records and
manage reference data. Configuration comes from environment variables,
optionally seeded from a dotenv file.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	Version:       version,
}

func init() {
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(migrateCmd)
	rootCmd.AddCommand(classifyCmd)
	rootCmd.AddCommand(tokenCmd)
	rootCmd.AddCommand(tailSearchesCmd)
	rootCmd.AddCommand(devCertsCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// newJWTService prefers RSA key files over the shared secret.
func newJWTService(cfg config.AuthConfig) (*auth.JWTService, error) {
	jwtCfg := auth.JWTConfig{
		Secret:     cfg.JWTSecret,
		Issuer:     cfg.Issuer,
		Expiration: cfg.TokenTTL,
	}
	if cfg.PrivateKeyFile != "" {
		key, err := auth.LoadKeyFromFile(cfg.PrivateKeyFile)
		if err != nil {
			return nil, err
		}
		jwtCfg.PrivateKeyPEM = string(key)
	}
	if cfg.PublicKeyFile != "" {
		key, err := auth.LoadKeyFromFile(cfg.PublicKeyFile)
		if err != nil {
			return nil, err
		}
		jwtCfg.PublicKeyPEM = string(key)
	}
	return auth.NewJWTService(jwtCfg)
}
