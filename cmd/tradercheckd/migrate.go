package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/tradercheck/tradercheck/internal/infrastructure/config"
	pgutil "github.com/tradercheck/tradercheck/pkg/postgres"
)

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Manage the postgres schema",
	Long: `Apply or roll back the schema migrations under MIGRATIONS_PATH
against the database described by the DB_* variables.`,
}

var migrateUpCmd = &cobra.Command{
	Use:   "up",
	Short: "Apply all pending migrations",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		cfg, err := config.Load()
		if err != nil {
			return err
		}
		if err := pgutil.RunMigrations(cfg.DB.DSN(), cfg.MigrationsPath); err != nil {
			return err
		}
		return printVersion(cmd, cfg)
	},
}

var migrateDownCmd = &cobra.Command{
	Use:   "down",
	Short: "Roll back every applied migration",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		cfg, err := config.Load()
		if err != nil {
			return err
		}
		if err := pgutil.RunMigrationsDown(cfg.DB.DSN(), cfg.MigrationsPath); err != nil {
			return err
		}
		return printVersion(cmd, cfg)
	},
}

var migrateVersionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the current schema version",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		cfg, err := config.Load()
		if err != nil {
			return err
		}
		return printVersion(cmd, cfg)
	},
}

func init() {
	migrateCmd.AddCommand(migrateUpCmd, migrateDownCmd, migrateVersionCmd)
}

func printVersion(cmd *cobra.Command, cfg config.Config) error {
	version, dirty, err := pgutil.MigrationVersion(cfg.DB.DSN(), cfg.MigrationsPath)
	if err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "schema version %d (dirty=%t)\n", version, dirty)
	return nil
}
