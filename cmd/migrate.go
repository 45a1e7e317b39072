package main

import (
	"errors"

	"fxconvert/internal/config"
	"fxconvert/internal/platform/db"

	"github.com/spf13/cobra"
)

var errSQLiteMigrations = errors.New("the sqlite store migrates itself on open; migrate only manages postgres")

func newMigrateCmd() *cobra.Command {
	migrate := &cobra.Command{
		Use:   "migrate",
		Short: "Manage the postgres schema",
	}

	run := func(apply func(cmd *cobra.Command, dsn string) error) func(*cobra.Command, []string) error {
		return func(cmd *cobra.Command, _ []string) error {
			appCfg, err := loadConfig()
			if err != nil {
				return err
			}
			if appCfg.Store.Driver != config.StoreDriverPostgres {
				return errSQLiteMigrations
			}
			return apply(cmd, appCfg.DbServer.GetConnectionStr())
		}
	}

	migrate.AddCommand(
		&cobra.Command{
			Use:   "up",
			Short: "Apply all pending migrations",
			Args:  cobra.NoArgs,
			RunE: run(func(cmd *cobra.Command, dsn string) error {
				return db.MigrateUp(cmd.Context(), dsn)
			}),
		},
		&cobra.Command{
			Use:   "down",
			Short: "Roll back the latest migration",
			Args:  cobra.NoArgs,
			RunE: run(func(cmd *cobra.Command, dsn string) error {
				return db.MigrateDown(cmd.Context(), dsn)
			}),
		},
		&cobra.Command{
			Use:   "status",
			Short: "Print applied and pending migrations",
			Args:  cobra.NoArgs,
			RunE: run(func(cmd *cobra.Command, dsn string) error {
				return db.MigrationStatus(cmd.Context(), dsn)
			}),
		},
	)
	return migrate
}
