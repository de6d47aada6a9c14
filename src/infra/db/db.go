package db

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"pgbridge/src/infra/config"
)

// Lifecycle guard errors. Every other failure is the driver's, passed through.
var (
	// ErrAlreadyInitialized is returned by Setup when the pool is already up.
	ErrAlreadyInitialized = errors.New("db: pool already initialized")

	// ErrNotInitialized is returned when the pool has not been set up yet.
	ErrNotInitialized = errors.New("db: pool not initialized")
)

// returningClause is appended verbatim to every Insert statement.
const returningClause = " RETURNING id"

// The one process-wide pool handle. Lifecycle is unset -> set, once, until
// Teardown resets it.
var (
	mu   sync.Mutex
	pool *pgxpool.Pool
	log  *slog.Logger
)

// Setup creates the process-wide connection pool and verifies it with a ping.
// Calling Setup again before Teardown fails with ErrAlreadyInitialized.
func Setup(ctx context.Context, cfg config.DatabaseConfig, logger *slog.Logger) error {
	mu.Lock()
	defer mu.Unlock()

	if pool != nil {
		return ErrAlreadyInitialized
	}

	poolCfg, err := pgxpool.ParseConfig(cfg.DSN())
	if err != nil {
		return fmt.Errorf("failed to parse database config: %w", err)
	}

	// Apply connection pool settings
	poolCfg.MaxConns = int32(cfg.MaxOpenConns)
	poolCfg.MinConns = int32(cfg.MaxIdleConns)
	poolCfg.MaxConnLifetime = cfg.ConnMaxLifetime

	p, err := pgxpool.NewWithConfig(ctx, poolCfg)
	if err != nil {
		return fmt.Errorf("failed to create connection pool: %w", err)
	}

	// Verify connection
	if err := p.Ping(ctx); err != nil {
		p.Close()
		return fmt.Errorf("failed to ping database: %w", err)
	}

	pool = p
	log = logger
	log.Info("database connection established",
		"host", cfg.Host,
		"port", cfg.Port,
		"database", cfg.Name,
	)
	return nil
}

// Teardown closes the pool and clears the process-wide handle.
// Calling Teardown before a successful Setup fails with ErrNotInitialized.
func Teardown() error {
	mu.Lock()
	defer mu.Unlock()

	if pool == nil {
		return ErrNotInitialized
	}

	pool.Close()
	if log != nil {
		log.Info("database connection closed")
	}
	pool = nil
	log = nil
	return nil
}

// current returns the pool handle or ErrNotInitialized.
func current() (*pgxpool.Pool, error) {
	mu.Lock()
	defer mu.Unlock()
	if pool == nil {
		return nil, ErrNotInitialized
	}
	return pool, nil
}

// Ping checks if the database is reachable.
// Returns nil if healthy, error otherwise.
func Ping(ctx context.Context) error {
	p, err := current()
	if err != nil {
		return err
	}
	return p.Ping(ctx)
}

// Stat returns a snapshot of the pool's statistics.
func Stat() (*pgxpool.Stat, error) {
	p, err := current()
	if err != nil {
		return nil, err
	}
	return p.Stat(), nil
}

// Query runs a statement on a connection acquired from the pool and returns
// all result rows, one map per row keyed by column name. The connection is
// released exactly once, whether the query succeeds or fails.
func Query(ctx context.Context, sql string, args ...any) ([]map[string]any, error) {
	p, err := current()
	if err != nil {
		return nil, err
	}

	conn, err := p.Acquire(ctx)
	if err != nil {
		return nil, err
	}
	defer conn.Release()

	return collectRows(conn.Query(ctx, sql, args...))
}

// Insert runs an insert statement with " RETURNING id" appended and returns
// the generated identifier from the first result row. The statement is not
// inspected; inserting into a table without a bigint id column surfaces the
// driver's error unchanged.
func Insert(ctx context.Context, sql string, args ...any) (int64, error) {
	p, err := current()
	if err != nil {
		return 0, err
	}

	conn, err := p.Acquire(ctx)
	if err != nil {
		return 0, err
	}
	defer conn.Release()

	var id int64
	if err := conn.QueryRow(ctx, appendReturning(sql), args...).Scan(&id); err != nil {
		return 0, err
	}
	return id, nil
}

// appendReturning tacks the fixed returning clause onto an insert statement.
func appendReturning(sql string) string {
	return sql + returningClause
}

// collectRows materializes a pgx result set so the underlying connection can
// be released before the rows are handed to the caller.
func collectRows(rows pgx.Rows, err error) ([]map[string]any, error) {
	if err != nil {
		return nil, err
	}
	return pgx.CollectRows(rows, pgx.RowToMap)
}
