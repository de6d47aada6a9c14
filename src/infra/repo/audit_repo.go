package repo

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"pgbridge/src/core/domain"
	"pgbridge/src/core/ports"
	"pgbridge/src/infra/db"
)

// AuditRepository persists the statement audit trail in the query_audit
// table, writing and reading through the db convenience helpers.
type AuditRepository struct {
	log *slog.Logger
}

// NewAuditRepository constructs the repository.
func NewAuditRepository(log *slog.Logger) *AuditRepository {
	return &AuditRepository{log: log}
}

var _ ports.AuditRepository = (*AuditRepository)(nil)

// Record stores one audit entry and returns its generated id.
func (r *AuditRepository) Record(ctx context.Context, entry *domain.AuditEntry) (int64, error) {
	q := fmt.Sprintf(
		"INSERT INTO query_audit (request_id, statement, arg_count, duration_ms, succeeded) VALUES (%s)",
		db.Placeholders(5),
	)
	return db.Insert(ctx, q,
		entry.RequestID,
		entry.Statement,
		entry.ArgCount,
		durationMillis(entry.Duration),
		entry.Succeeded,
	)
}

// Recent returns the most recent entries, newest first.
func (r *AuditRepository) Recent(ctx context.Context, limit int) ([]domain.AuditEntry, error) {
	const q = `
		SELECT id, request_id, statement, arg_count, duration_ms, succeeded, created_at
		FROM query_audit
		ORDER BY created_at DESC, id DESC
		LIMIT $1
	`
	rows, err := db.Query(ctx, q, limit)
	if err != nil {
		return nil, err
	}

	entries := make([]domain.AuditEntry, 0, len(rows))
	for _, row := range rows {
		entries = append(entries, auditEntryFromRow(row))
	}
	return entries, nil
}

func durationMillis(d time.Duration) float64 {
	return float64(d) / float64(time.Millisecond)
}

// auditEntryFromRow maps one helper result row onto the domain entity. The
// helpers return driver-typed values, hence the per-column assertions.
func auditEntryFromRow(row map[string]any) domain.AuditEntry {
	var e domain.AuditEntry
	if v, ok := row["id"].(int64); ok {
		e.ID = v
	}
	if v, ok := row["request_id"].(string); ok {
		e.RequestID = v
	}
	if v, ok := row["statement"].(string); ok {
		e.Statement = v
	}
	if v, ok := row["arg_count"].(int32); ok {
		e.ArgCount = int(v)
	}
	if v, ok := row["duration_ms"].(float64); ok {
		e.Duration = time.Duration(v * float64(time.Millisecond))
	}
	if v, ok := row["succeeded"].(bool); ok {
		e.Succeeded = v
	}
	if v, ok := row["created_at"].(time.Time); ok {
		e.CreatedAt = v
	}
	return e
}
