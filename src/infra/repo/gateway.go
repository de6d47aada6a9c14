package repo

import (
	"context"
	"log/slog"

	"pgbridge/src/core/domain"
	"pgbridge/src/core/ports"
	"pgbridge/src/infra/db"
)

// Gateway adapts the db convenience layer to the SQLExecutor and
// DatabaseStatus ports.
type Gateway struct {
	log *slog.Logger
}

// NewGateway constructs the gateway. The process-wide pool must be set up
// before any of its methods are called.
func NewGateway(log *slog.Logger) *Gateway {
	return &Gateway{log: log}
}

var (
	_ ports.SQLExecutor    = (*Gateway)(nil)
	_ ports.DatabaseStatus = (*Gateway)(nil)
)

func (g *Gateway) Query(ctx context.Context, sql string, args []any) ([]map[string]any, error) {
	return db.Query(ctx, sql, args...)
}

func (g *Gateway) Insert(ctx context.Context, sql string, args []any) (int64, error) {
	return db.Insert(ctx, sql, args...)
}

// Batch runs the statements on one manually acquired connection inside a
// single transaction, rolling back on the first failure.
func (g *Gateway) Batch(ctx context.Context, stmts []domain.Statement) ([]domain.StatementResult, error) {
	conn, err := db.Acquire(ctx)
	if err != nil {
		return nil, err
	}
	defer conn.Release()

	if err := conn.Begin(ctx); err != nil {
		return nil, err
	}

	results := make([]domain.StatementResult, 0, len(stmts))
	for _, stmt := range stmts {
		rows, err := conn.Query(ctx, stmt.SQL, stmt.Args...)
		if err != nil {
			if rbErr := conn.Rollback(ctx); rbErr != nil {
				g.log.Warn("rollback failed after batch error", "error", rbErr)
			}
			return nil, err
		}
		results = append(results, domain.StatementResult{Rows: rows})
	}

	if err := conn.Commit(ctx); err != nil {
		return nil, err
	}
	return results, nil
}

// Health reports whether the database answers a ping.
func (g *Gateway) Health(ctx context.Context) error {
	return db.Ping(ctx)
}

// Stats snapshots the connection pool.
func (g *Gateway) Stats() (domain.PoolStats, error) {
	stat, err := db.Stat()
	if err != nil {
		return domain.PoolStats{}, err
	}
	return domain.PoolStats{
		TotalConns:    stat.TotalConns(),
		IdleConns:     stat.IdleConns(),
		AcquiredConns: stat.AcquiredConns(),
		MaxConns:      stat.MaxConns(),
	}, nil
}
