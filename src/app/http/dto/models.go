package dto

import (
	"time"

	"pgbridge/src/core/domain"
)

// QueryRequest is the payload for /v1/query and /v1/insert.
type QueryRequest struct {
	Statement string `json:"statement" binding:"required"`
	Args      []any  `json:"args"`
}

// BatchRequest is the payload for /v1/batch.
type BatchRequest struct {
	Statements []BatchStatement `json:"statements" binding:"required,min=1,dive"`
}

// BatchStatement is one statement inside a batch.
type BatchStatement struct {
	Statement string `json:"statement" binding:"required"`
	Args      []any  `json:"args"`
}

// ToDomain converts the batch payload into domain statements.
func (r *BatchRequest) ToDomain() []domain.Statement {
	stmts := make([]domain.Statement, 0, len(r.Statements))
	for _, s := range r.Statements {
		stmts = append(stmts, domain.Statement{SQL: s.Statement, Args: s.Args})
	}
	return stmts
}

// QueryResponse carries the rows a statement produced.
type QueryResponse struct {
	Rows     []map[string]any `json:"rows"`
	RowCount int              `json:"row_count"`
}

// InsertResponse carries the generated identifier of an insert.
type InsertResponse struct {
	ID int64 `json:"id"`
}

// BatchResponse carries per-statement results of a batch.
type BatchResponse struct {
	Results []QueryResponse `json:"results"`
}

// AuditEntryResponse is one audit trail entry.
type AuditEntryResponse struct {
	ID         int64     `json:"id"`
	RequestID  string    `json:"request_id"`
	Statement  string    `json:"statement"`
	ArgCount   int       `json:"arg_count"`
	DurationMS float64   `json:"duration_ms"`
	Succeeded  bool      `json:"succeeded"`
	CreatedAt  time.Time `json:"created_at"`
}

// AuditEntryFromDomain maps a domain audit entry onto its response shape.
func AuditEntryFromDomain(e domain.AuditEntry) AuditEntryResponse {
	return AuditEntryResponse{
		ID:         e.ID,
		RequestID:  e.RequestID,
		Statement:  e.Statement,
		ArgCount:   e.ArgCount,
		DurationMS: float64(e.Duration) / float64(time.Millisecond),
		Succeeded:  e.Succeeded,
		CreatedAt:  e.CreatedAt,
	}
}
