package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/simaogato/mortgagecalc-backend/internal/adapter/repository/postgres"
	"github.com/simaogato/mortgagecalc-backend/internal/adapter/repository/sqlite"
	"github.com/simaogato/mortgagecalc-backend/internal/config"
)

func migrateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Manage database migrations",
	}
	cmd.AddCommand(migrateUpCmd(), migrateDownCmd())
	return cmd
}

func migrateUpCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "up",
		Short: "Apply all pending migrations",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, _, err := setup()
			if err != nil {
				return err
			}

			switch cfg.StoreDriver {
			case config.StoreDriverSQLite:
				err = sqlite.RunMigrations(cfg.SQLitePath)
			default:
				err = postgres.RunMigrations(cfg.DBConnStr)
			}
			if err != nil {
				return err
			}

			fmt.Fprintln(cmd.OutOrStdout(), "Migrations applied.")
			return nil
		},
	}
}

func migrateDownCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "down",
		Short: "Roll back migrations",
		RunE: func(cmd *cobra.Command, args []string) error {
			steps, _ := cmd.Flags().GetInt("steps")
			if steps < 1 {
				return fmt.Errorf("--steps must be at least 1, got %d", steps)
			}

			cfg, _, err := setup()
			if err != nil {
				return err
			}

			switch cfg.StoreDriver {
			case config.StoreDriverSQLite:
				err = sqlite.RollbackMigrations(cfg.SQLitePath, steps)
			default:
				err = postgres.RollbackMigrations(cfg.DBConnStr, steps)
			}
			if err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Rolled back %d migration(s).\n", steps)
			return nil
		},
	}
	cmd.Flags().Int("steps", 1, "number of migrations to roll back")
	return cmd
}
