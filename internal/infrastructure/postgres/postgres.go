package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"

	"orderflow/internal/config"
)

const createOrdersTable = `
CREATE TABLE IF NOT EXISTS orders (
    id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
    customer_name VARCHAR(200) NOT NULL,
    product VARCHAR(200) NOT NULL,
    quantity INT NOT NULL,
    price DECIMAL(10,2),
    status VARCHAR(50) NOT NULL DEFAULT 'pending',
    enrichment_data JSONB,
    created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
    updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
)`

const (
	initMaxAttempts = 10
	initRetryDelay  = 2 * time.Second
)

func NewPool(ctx context.Context, cfg config.DatabaseConfig) (*pgxpool.Pool, error) {
	poolCfg, err := pgxpool.ParseConfig(cfg.URL)
	if err != nil {
		return nil, fmt.Errorf("parsing database url: %w", err)
	}

	poolCfg.MaxConns = int32(cfg.MaxConns)
	poolCfg.MaxConnLifetime = cfg.ConnMaxLifetime

	pool, err := pgxpool.NewWithConfig(ctx, poolCfg)
	if err != nil {
		return nil, fmt.Errorf("creating pool: %w", err)
	}

	return pool, nil
}

// InitSchema creates the orders table if it does not exist yet. The store
// may still be starting up, so the statement is retried with a fixed delay.
func InitSchema(ctx context.Context, pool *pgxpool.Pool, logger *zap.Logger) error {
	var lastErr error

	for attempt := 1; attempt <= initMaxAttempts; attempt++ {
		_, err := pool.Exec(ctx, createOrdersTable)
		if err == nil {
			logger.Info("database initialized")
			return nil
		}

		lastErr = err
		logger.Warn("database init attempt failed, retrying",
			zap.Int("attempt", attempt),
			zap.Error(err),
		)

		if attempt < initMaxAttempts {
			select {
			case <-time.After(initRetryDelay):
			case <-ctx.Done():
				return ctx.Err()
			}
		}
	}

	return fmt.Errorf("initializing database after %d attempts: %w", initMaxAttempts, lastErr)
}
