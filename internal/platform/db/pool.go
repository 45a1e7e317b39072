package db

import (
	"context"
	"fmt"
	"time"

	"fxconvert/internal/config"

	"github.com/jackc/pgx/v5/pgxpool"
)

const applicationName = "fxconvert"

// Connect opens a pgx pool for the configured database and verifies it answers.
func Connect(ctx context.Context, cfg config.DbServer) (*pgxpool.Pool, error) {
	poolCfg, err := pgxpool.ParseConfig(cfg.GetConnectionStr())
	if err != nil {
		return nil, fmt.Errorf("parse db config failed: %w", err)
	}
	if cfg.MaxConns > 0 {
		poolCfg.MaxConns = cfg.MaxConns
	}
	poolCfg.MaxConnIdleTime = 5 * time.Minute
	poolCfg.ConnConfig.RuntimeParams["application_name"] = applicationName

	pool, err := pgxpool.NewWithConfig(ctx, poolCfg)
	if err != nil {
		return nil, fmt.Errorf("create db pool failed: %w", err)
	}
	if err = pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("ping db failed: %w", err)
	}
	return pool, nil
}
