package db

import (
	"context"
	"errors"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeRows is a minimal in-memory pgx.Rows for exercising row collection.
type fakeRows struct {
	fields []pgconn.FieldDescription
	rows   [][]any
	idx    int
	closed bool
}

func (r *fakeRows) Close()                                       { r.closed = true }
func (r *fakeRows) Err() error                                   { return nil }
func (r *fakeRows) CommandTag() pgconn.CommandTag                { return pgconn.CommandTag{} }
func (r *fakeRows) FieldDescriptions() []pgconn.FieldDescription { return r.fields }
func (r *fakeRows) RawValues() [][]byte                          { return nil }
func (r *fakeRows) Conn() *pgx.Conn                              { return nil }

func (r *fakeRows) Next() bool {
	if r.idx >= len(r.rows) {
		return false
	}
	r.idx++
	return true
}

func (r *fakeRows) Values() ([]any, error) {
	return r.rows[r.idx-1], nil
}

func (r *fakeRows) Scan(dest ...any) error {
	if len(dest) == 1 {
		if rs, ok := dest[0].(pgx.RowScanner); ok {
			return rs.ScanRow(r)
		}
	}
	return errors.New("fakeRows: unsupported scan target")
}

// fakeRow scans a fixed identifier, mimicking a RETURNING id result.
type fakeRow struct {
	id int64
}

func (r fakeRow) Scan(dest ...any) error {
	if len(dest) != 1 {
		return errors.New("fakeRow: expected one scan target")
	}
	p, ok := dest[0].(*int64)
	if !ok {
		return errors.New("fakeRow: expected *int64 scan target")
	}
	*p = r.id
	return nil
}

// fakeTx records transaction outcomes and the last statement it saw. The
// embedded pgx.Tx panics on anything not overridden here.
type fakeTx struct {
	pgx.Tx
	rows       pgx.Rows
	row        pgx.Row
	committed  bool
	rolledBack bool
	lastSQL    string
}

func (f *fakeTx) Query(_ context.Context, sql string, _ ...any) (pgx.Rows, error) {
	f.lastSQL = sql
	return f.rows, nil
}

func (f *fakeTx) QueryRow(_ context.Context, sql string, _ ...any) pgx.Row {
	f.lastSQL = sql
	return f.row
}

func (f *fakeTx) Commit(context.Context) error {
	f.committed = true
	return nil
}

func (f *fakeTx) Rollback(context.Context) error {
	f.rolledBack = true
	return nil
}

func TestConnBeginFailsWhenTxOpen(t *testing.T) {
	c := &Conn{tx: &fakeTx{}}

	require.ErrorIs(t, c.Begin(context.Background()), ErrTxInProgress)
}

func TestConnCommitWithoutTx(t *testing.T) {
	c := &Conn{}

	require.ErrorIs(t, c.Commit(context.Background()), ErrNoTx)
}

func TestConnRollbackWithoutTx(t *testing.T) {
	c := &Conn{}

	require.ErrorIs(t, c.Rollback(context.Background()), ErrNoTx)
}

func TestConnCommitClearsTx(t *testing.T) {
	tx := &fakeTx{}
	c := &Conn{tx: tx}

	require.NoError(t, c.Commit(context.Background()))
	assert.True(t, tx.committed)
	assert.Nil(t, c.tx)

	// A second commit has nothing left to commit.
	require.ErrorIs(t, c.Commit(context.Background()), ErrNoTx)
}

func TestConnRollbackClearsTx(t *testing.T) {
	tx := &fakeTx{}
	c := &Conn{tx: tx}

	require.NoError(t, c.Rollback(context.Background()))
	assert.True(t, tx.rolledBack)
	assert.Nil(t, c.tx)
}

func TestConnQueryRoutesThroughOpenTx(t *testing.T) {
	rows := &fakeRows{
		fields: []pgconn.FieldDescription{{Name: "id"}, {Name: "statement"}},
		rows:   [][]any{{int64(42), "SELECT 1"}},
	}
	tx := &fakeTx{rows: rows}
	c := &Conn{tx: tx}

	got, err := c.Query(context.Background(), "SELECT id, statement FROM query_audit")
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, int64(42), got[0]["id"])
	assert.Equal(t, "SELECT 1", got[0]["statement"])
	assert.True(t, rows.closed)
	assert.Equal(t, "SELECT id, statement FROM query_audit", tx.lastSQL)
}

func TestConnInsertAppendsReturningClause(t *testing.T) {
	tx := &fakeTx{row: fakeRow{id: 7}}
	c := &Conn{tx: tx}

	id, err := c.Insert(context.Background(), "INSERT INTO query_audit (statement) VALUES ($1)", "SELECT 1")
	require.NoError(t, err)
	assert.Equal(t, int64(7), id)
	assert.Equal(t, "INSERT INTO query_audit (statement) VALUES ($1) RETURNING id", tx.lastSQL)
}

func TestConnReleaseRollsBackOpenTx(t *testing.T) {
	tx := &fakeTx{}
	c := &Conn{tx: tx}

	c.Release()
	assert.True(t, tx.rolledBack)
	assert.Nil(t, c.tx)

	// Release is idempotent.
	c.Release()
}
