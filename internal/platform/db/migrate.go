package db

import (
	"context"
	"database/sql"
	"embed"
	"fmt"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"
)

//go:embed migrations/*.sql
var embedMigrations embed.FS

const migrationsDir = "migrations"

func openGoose(dsn string) (*sql.DB, error) {
	goose.SetBaseFS(embedMigrations)
	if err := goose.SetDialect("postgres"); err != nil {
		return nil, err
	}
	db, err := goose.OpenDBWithDriver("pgx", dsn)
	if err != nil {
		return nil, fmt.Errorf("open migrations connection failed: %w", err)
	}
	return db, nil
}

// MigrateUp applies every pending migration.
func MigrateUp(ctx context.Context, dsn string) error {
	db, err := openGoose(dsn)
	if err != nil {
		return err
	}
	defer db.Close()
	return goose.UpContext(ctx, db, migrationsDir)
}

// MigrateDown rolls back the latest migration.
func MigrateDown(ctx context.Context, dsn string) error {
	db, err := openGoose(dsn)
	if err != nil {
		return err
	}
	defer db.Close()
	return goose.DownContext(ctx, db, migrationsDir)
}

func MigrationStatus(ctx context.Context, dsn string) error {
	db, err := openGoose(dsn)
	if err != nil {
		return err
	}
	defer db.Close()
	return goose.StatusContext(ctx, db, migrationsDir)
}
