package db

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Transaction state errors for manually acquired connections.
var (
	// ErrTxInProgress is returned by Begin when a transaction is already open.
	ErrTxInProgress = errors.New("db: transaction already in progress")

	// ErrNoTx is returned by Commit or Rollback without an open transaction.
	ErrNoTx = errors.New("db: no transaction in progress")
)

// Conn is a single connection checked out of the pool for manual control,
// typically to run several statements inside one transaction. Callers must
// call Release when done or the connection never returns to the pool.
type Conn struct {
	conn *pgxpool.Conn
	tx   pgx.Tx
}

// Acquire checks a connection out of the process-wide pool.
func Acquire(ctx context.Context) (*Conn, error) {
	p, err := current()
	if err != nil {
		return nil, err
	}

	conn, err := p.Acquire(ctx)
	if err != nil {
		return nil, err
	}
	return &Conn{conn: conn}, nil
}

// querier is the query surface shared by *pgxpool.Conn and pgx.Tx.
type querier interface {
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// active returns the open transaction when there is one, the raw connection
// otherwise. Statements issued after Begin run inside the transaction.
func (c *Conn) active() querier {
	if c.tx != nil {
		return c.tx
	}
	return c.conn
}

// Query runs a statement on this connection and returns all result rows.
func (c *Conn) Query(ctx context.Context, sql string, args ...any) ([]map[string]any, error) {
	return collectRows(c.active().Query(ctx, sql, args...))
}

// Insert runs an insert statement with " RETURNING id" appended and returns
// the generated identifier.
func (c *Conn) Insert(ctx context.Context, sql string, args ...any) (int64, error) {
	var id int64
	if err := c.active().QueryRow(ctx, appendReturning(sql), args...).Scan(&id); err != nil {
		return 0, err
	}
	return id, nil
}

// Begin opens a transaction on this connection.
func (c *Conn) Begin(ctx context.Context) error {
	if c.tx != nil {
		return ErrTxInProgress
	}

	tx, err := c.conn.Begin(ctx)
	if err != nil {
		return err
	}
	c.tx = tx
	return nil
}

// Commit commits the open transaction.
func (c *Conn) Commit(ctx context.Context) error {
	if c.tx == nil {
		return ErrNoTx
	}

	err := c.tx.Commit(ctx)
	c.tx = nil
	return err
}

// Rollback aborts the open transaction.
func (c *Conn) Rollback(ctx context.Context) error {
	if c.tx == nil {
		return ErrNoTx
	}

	err := c.tx.Rollback(ctx)
	c.tx = nil
	return err
}

// Release returns the connection to the pool. An open transaction is rolled
// back first so the connection goes back clean. Release is safe to call more
// than once.
func (c *Conn) Release() {
	if c.tx != nil {
		_ = c.tx.Rollback(context.Background())
		c.tx = nil
	}
	if c.conn != nil {
		c.conn.Release()
		c.conn = nil
	}
}
