package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pgbridge/src/app/middleware"
	"pgbridge/src/core/domain"
	"pgbridge/src/core/usecase"
)

// fakeExecutor returns canned results for handler tests.
type fakeExecutor struct {
	rows     []map[string]any
	insertID int64
	results  []domain.StatementResult
	err      error
}

func (f *fakeExecutor) Query(context.Context, string, []any) ([]map[string]any, error) {
	return f.rows, f.err
}

func (f *fakeExecutor) Insert(context.Context, string, []any) (int64, error) {
	return f.insertID, f.err
}

func (f *fakeExecutor) Batch(context.Context, []domain.Statement) ([]domain.StatementResult, error) {
	return f.results, f.err
}

// nopAudit discards audit entries.
type nopAudit struct{}

func (nopAudit) Record(context.Context, *domain.AuditEntry) (int64, error) { return 1, nil }
func (nopAudit) Recent(context.Context, int) ([]domain.AuditEntry, error) {
	return nil, nil
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func queryRouter(exec *fakeExecutor) *gin.Engine {
	gin.SetMode(gin.TestMode)
	svc := usecase.NewQueryService(exec, nopAudit{}, true, discardLogger())
	h := NewQueryHandler(svc)

	r := gin.New()
	r.Use(middleware.RequestID())
	r.POST("/v1/query", h.Query)
	r.POST("/v1/insert", h.Insert)
	r.POST("/v1/batch", h.Batch)
	return r
}

func postJSON(t *testing.T, r *gin.Engine, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, path, bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestQueryEndpoint(t *testing.T) {
	exec := &fakeExecutor{rows: []map[string]any{{"one": 1}}}
	r := queryRouter(exec)

	w := postJSON(t, r, "/v1/query", `{"statement":"SELECT 1 AS one"}`)
	require.Equal(t, http.StatusOK, w.Code)

	var body struct {
		Data struct {
			Rows     []map[string]any `json:"rows"`
			RowCount int              `json:"row_count"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, 1, body.Data.RowCount)
	require.Len(t, body.Data.Rows, 1)
}

func TestQueryEndpointRejectsMissingStatement(t *testing.T) {
	r := queryRouter(&fakeExecutor{})

	w := postJSON(t, r, "/v1/query", `{"args":[1]}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "BAD_REQUEST")
}

func TestQueryEndpointPassesDriverErrorThrough(t *testing.T) {
	exec := &fakeExecutor{err: errors.New(`relation "nope" does not exist`)}
	r := queryRouter(exec)

	w := postJSON(t, r, "/v1/query", `{"statement":"SELECT * FROM nope"}`)
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
	assert.Contains(t, w.Body.String(), "QUERY_FAILED")
	assert.Contains(t, w.Body.String(), "does not exist")
}

func TestInsertEndpoint(t *testing.T) {
	exec := &fakeExecutor{insertID: 12}
	r := queryRouter(exec)

	w := postJSON(t, r, "/v1/insert", `{"statement":"INSERT INTO t (v) VALUES ($1)","args":["x"]}`)
	require.Equal(t, http.StatusCreated, w.Code)

	var body struct {
		Data struct {
			ID int64 `json:"id"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, int64(12), body.Data.ID)
}

func TestBatchEndpoint(t *testing.T) {
	exec := &fakeExecutor{results: []domain.StatementResult{{}, {Rows: []map[string]any{{"id": 1}}}}}
	r := queryRouter(exec)

	w := postJSON(t, r, "/v1/batch", `{"statements":[{"statement":"INSERT INTO t (v) VALUES ($1)","args":[1]},{"statement":"SELECT * FROM t"}]}`)
	require.Equal(t, http.StatusOK, w.Code)

	var body struct {
		Data struct {
			Results []struct {
				RowCount int `json:"row_count"`
			} `json:"results"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	require.Len(t, body.Data.Results, 2)
	assert.Equal(t, 1, body.Data.Results[1].RowCount)
}

func TestBatchEndpointRejectsEmptyList(t *testing.T) {
	r := queryRouter(&fakeExecutor{})

	w := postJSON(t, r, "/v1/batch", `{"statements":[]}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}
