package main

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/tradercheck/tradercheck/internal/infrastructure/config"
	"github.com/tradercheck/tradercheck/pkg/auth"
)

var (
	tokenRole string
	tokenUser string
	tokenName string
)

var tokenCmd = &cobra.Command{
	Use:   "token",
	Short: "Issue a bearer token for local testing",
	Long: `Sign a JWT with the configured key. Broker tokens must carry the
broker's id in --user so reports and searches are attributed to it.`,
	Args: cobra.NoArgs,
	RunE: runToken,
}

func init() {
	tokenCmd.Flags().StringVar(&tokenRole, "role", auth.RoleBroker, "Token role (broker or admin)")
	tokenCmd.Flags().StringVar(&tokenUser, "user", "", "Subject id (default: random)")
	tokenCmd.Flags().StringVar(&tokenName, "name", "", "Display name carried in the token")
}

func runToken(cmd *cobra.Command, _ []string) error {
	if !auth.ValidRole(tokenRole) {
		return fmt.Errorf("unknown role %q", tokenRole)
	}

	userID := uuid.New()
	if tokenUser != "" {
		id, err := uuid.Parse(tokenUser)
		if err != nil {
			return fmt.Errorf("invalid --user: %w", err)
		}
		userID = id
	}

	cfg, err := config.Load()
	if err != nil {
		return err
	}
	jwtService, err := newJWTService(cfg.Auth)
	if err != nil {
		return err
	}

	token, err := jwtService.GenerateToken(userID, tokenName, []string{tokenRole})
	if err != nil {
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout(), token)
	return nil
}
