package db

import (
	"context"
	"fmt"

	"arbscanner/internal/config"

	"github.com/jackc/pgx/v5/pgxpool"
)

// CreatePoolAndPing opens a pgx pool and verifies the server answers before returning it.
func CreatePoolAndPing(ctx context.Context, cfg config.DbServer) (*pgxpool.Pool, error) {
	poolCfg, err := pgxpool.ParseConfig(cfg.GetConnectionStr())
	if err != nil {
		return nil, fmt.Errorf("failed to parse db config: %w", err)
	}
	if cfg.MaxConns > 0 {
		poolCfg.MaxConns = cfg.MaxConns
	}
	pool, err := pgxpool.NewWithConfig(ctx, poolCfg)
	if err != nil {
		return nil, fmt.Errorf("failed to create pool: %w", err)
	}
	if err = pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to ping %s:%s/%s: %w", cfg.Host, cfg.Port, cfg.Name, err)
	}
	return pool, nil
}
