package database

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
)

// minConns keeps a couple of warm connections so the first request after an
// idle period does not pay the connect handshake.
const minConns = 2

// Pool is the subset of pgxpool.Pool the server needs for readiness checks.
type Pool interface {
	Ping(ctx context.Context) error
	Close()
}

// PoolConfig sizes the pgx connection pool. Every request handler borrows at
// most one connection, so MaxConns caps concurrent database work.
type PoolConfig struct {
	MaxConns    int32
	MaxIdleTime time.Duration
	MaxLifetime time.Duration
}

// NewPool opens a connection pool against connString and verifies
// connectivity with a ping before returning it.
func NewPool(ctx context.Context, connString string, pc PoolConfig) (*pgxpool.Pool, error) {
	cfg, err := pgxpool.ParseConfig(connString)
	if err != nil {
		return nil, fmt.Errorf("failed to parse connection string: %w", err)
	}

	cfg.MaxConns = pc.MaxConns
	cfg.MinConns = minConns
	cfg.MaxConnIdleTime = pc.MaxIdleTime
	cfg.MaxConnLifetime = pc.MaxLifetime

	pool, err := pgxpool.NewWithConfig(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to create connection pool: %w", err)
	}

	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	slog.Info("Connected to the database", "max_conns", pc.MaxConns)
	return pool, nil
}
