package domain

import "time"

// Statement is one SQL statement with its positional arguments, passed
// through to the database unchanged.
type Statement struct {
	SQL  string
	Args []any
}

// StatementResult holds the rows a single statement produced, one map per
// row keyed by column name.
type StatementResult struct {
	Rows []map[string]any
}

// AuditEntry records one statement executed through the gateway.
type AuditEntry struct {
	ID        int64
	RequestID string
	Statement string
	ArgCount  int
	Duration  time.Duration
	Succeeded bool
	CreatedAt time.Time
}

// PoolStats is a snapshot of the connection pool, as reported by the driver.
type PoolStats struct {
	TotalConns    int32 `json:"total_conns"`
	IdleConns     int32 `json:"idle_conns"`
	AcquiredConns int32 `json:"acquired_conns"`
	MaxConns      int32 `json:"max_conns"`
}
