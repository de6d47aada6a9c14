// Package ports defines the interfaces between the core use cases and the
// infrastructure layer. Implementations live in src/infra.
package ports

import (
	"context"

	"pgbridge/src/core/domain"
)

// SQLExecutor runs statements against the database on behalf of use cases.
// Arguments are forwarded positionally and untouched; errors come back from
// the driver unchanged.
type SQLExecutor interface {
	// Query runs one statement and returns all of its rows.
	Query(ctx context.Context, sql string, args []any) ([]map[string]any, error)

	// Insert runs an insert statement with the returning clause appended and
	// returns the generated identifier.
	Insert(ctx context.Context, sql string, args []any) (int64, error)

	// Batch runs the statements on one connection inside a single
	// transaction. The transaction is rolled back on the first failure.
	Batch(ctx context.Context, stmts []domain.Statement) ([]domain.StatementResult, error)
}

// AuditRepository persists and lists the gateway's statement audit trail.
type AuditRepository interface {
	// Record stores one audit entry and returns its generated id.
	Record(ctx context.Context, entry *domain.AuditEntry) (int64, error)

	// Recent returns the most recent entries, newest first.
	Recent(ctx context.Context, limit int) ([]domain.AuditEntry, error)
}
