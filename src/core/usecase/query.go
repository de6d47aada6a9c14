// Package usecase contains the application services sitting between the HTTP
// layer and the database gateway.
package usecase

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"pgbridge/src/core/domain"
	"pgbridge/src/core/ports"
)

// QueryService passes statements through to the database and records an
// audit entry for each one.
type QueryService struct {
	exec         ports.SQLExecutor
	audit        ports.AuditRepository
	auditEnabled bool
	log          *slog.Logger
}

// NewQueryService creates a new QueryService.
func NewQueryService(exec ports.SQLExecutor, audit ports.AuditRepository, auditEnabled bool, log *slog.Logger) *QueryService {
	return &QueryService{
		exec:         exec,
		audit:        audit,
		auditEnabled: auditEnabled,
		log:          log,
	}
}

// Run executes one query and returns its rows.
func (s *QueryService) Run(ctx context.Context, requestID, sql string, args []any) ([]map[string]any, error) {
	if strings.TrimSpace(sql) == "" {
		return nil, domain.NewValidationError("statement", "cannot be empty")
	}

	start := time.Now()
	rows, err := s.exec.Query(ctx, sql, args)
	s.record(ctx, requestID, sql, len(args), time.Since(start), err == nil)
	if err != nil {
		return nil, err
	}
	return rows, nil
}

// RunInsert executes one insert and returns the generated identifier.
func (s *QueryService) RunInsert(ctx context.Context, requestID, sql string, args []any) (int64, error) {
	if strings.TrimSpace(sql) == "" {
		return 0, domain.NewValidationError("statement", "cannot be empty")
	}

	start := time.Now()
	id, err := s.exec.Insert(ctx, sql, args)
	s.record(ctx, requestID, sql, len(args), time.Since(start), err == nil)
	if err != nil {
		return 0, err
	}
	return id, nil
}

// RunBatch executes the statements transactionally on one connection.
func (s *QueryService) RunBatch(ctx context.Context, requestID string, stmts []domain.Statement) ([]domain.StatementResult, error) {
	if len(stmts) == 0 {
		return nil, domain.NewValidationError("statements", "cannot be empty")
	}
	argCount := 0
	for i, stmt := range stmts {
		if strings.TrimSpace(stmt.SQL) == "" {
			return nil, domain.NewValidationError(fmt.Sprintf("statements[%d]", i), "cannot be empty")
		}
		argCount += len(stmt.Args)
	}

	start := time.Now()
	results, err := s.exec.Batch(ctx, stmts)
	s.record(ctx, requestID, fmt.Sprintf("batch of %d statements", len(stmts)), argCount, time.Since(start), err == nil)
	if err != nil {
		return nil, err
	}
	return results, nil
}

// record stores an audit entry. Audit failures are logged, never surfaced:
// the statement's own outcome is what the caller gets.
func (s *QueryService) record(ctx context.Context, requestID, sql string, argCount int, took time.Duration, succeeded bool) {
	if !s.auditEnabled || s.audit == nil {
		return
	}

	entry := &domain.AuditEntry{
		RequestID: requestID,
		Statement: sql,
		ArgCount:  argCount,
		Duration:  took,
		Succeeded: succeeded,
	}
	if _, err := s.audit.Record(ctx, entry); err != nil {
		s.log.Warn("failed to record audit entry",
			"request_id", requestID,
			"error", err,
		)
	}
}
