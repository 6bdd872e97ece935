// Package dbpool owns the PostgreSQL connection pool behind the document store.
package dbpool

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Options tunes the pool. Zero fields take the defaults below.
type Options struct {
	MaxConns         int32
	StatementTimeout time.Duration
}

const (
	defaultMaxConns         = 10
	defaultStatementTimeout = 30 * time.Second
)

// Pool is the only path to the database; pgxpool stays unexported.
type Pool struct {
	pool *pgxpool.Pool
}

// NewPool connects to databaseURL and pings it before returning.
func NewPool(ctx context.Context, databaseURL string, opts Options) (*Pool, error) {
	cfg, err := pgxpool.ParseConfig(databaseURL)
	if err != nil {
		return nil, fmt.Errorf("parsing database URL: %w", err)
	}

	if opts.MaxConns <= 0 {
		opts.MaxConns = defaultMaxConns
	}

	if opts.StatementTimeout <= 0 {
		opts.StatementTimeout = defaultStatementTimeout
	}

	cfg.ConnConfig.RuntimeParams["application_name"] = "tenantadmin"
	cfg.ConnConfig.RuntimeParams["statement_timeout"] = fmt.Sprint(opts.StatementTimeout.Milliseconds())

	cfg.MaxConns = opts.MaxConns
	cfg.MinConns = 1
	cfg.MaxConnLifetime = 30 * time.Minute
	cfg.MaxConnIdleTime = 5 * time.Minute
	cfg.HealthCheckPeriod = 30 * time.Second

	pool, err := pgxpool.NewWithConfig(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("creating connection pool: %w", err)
	}

	if err := pool.Ping(ctx); err != nil {
		pool.Close()

		return nil, fmt.Errorf("pinging database: %w", err)
	}

	return &Pool{pool: pool}, nil
}

// Exec runs a statement that returns no rows.
func (p *Pool) Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error) {
	return p.pool.Exec(ctx, sql, args...)
}

// Query runs a statement that returns rows.
func (p *Pool) Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error) {
	return p.pool.Query(ctx, sql, args...)
}

// HealthCheck round-trips a trivial query. Used by /ready.
func (p *Pool) HealthCheck(ctx context.Context) error {
	var one int
	if err := p.pool.QueryRow(ctx, "SELECT 1").Scan(&one); err != nil {
		return fmt.Errorf("health check query: %w", err)
	}

	return nil
}

// ConnString returns the URL the pool was built from; goose opens its own
// database/sql handle with it.
func (p *Pool) ConnString() string {
	return p.pool.Config().ConnString()
}

// Stat returns a snapshot of pool usage.
func (p *Pool) Stat() *pgxpool.Stat {
	return p.pool.Stat()
}

func (p *Pool) Close() {
	p.pool.Close()
}
