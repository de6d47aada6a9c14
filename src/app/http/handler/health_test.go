package handler

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"

	"pgbridge/src/core/domain"
	"pgbridge/src/core/usecase"
)

// fakeDatabaseStatus simulates the database health adapter.
type fakeDatabaseStatus struct {
	pingErr error
}

func (f *fakeDatabaseStatus) Health(context.Context) error {
	return f.pingErr
}

func (f *fakeDatabaseStatus) Stats() (domain.PoolStats, error) {
	return domain.PoolStats{MaxConns: 25}, nil
}

func healthRouter(db *fakeDatabaseStatus) *gin.Engine {
	gin.SetMode(gin.TestMode)
	h := NewHealthHandler(usecase.NewHealthService(db, discardLogger()))

	r := gin.New()
	r.GET("/health", h.Health)
	r.GET("/health/detailed", h.DetailedHealth)
	return r
}

func TestHealthEndpoint(t *testing.T) {
	r := healthRouter(&fakeDatabaseStatus{})

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/health", nil))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"status":"ok"`)
}

func TestDetailedHealthEndpoint(t *testing.T) {
	r := healthRouter(&fakeDatabaseStatus{})

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/health/detailed", nil))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"database"`)
	assert.Contains(t, w.Body.String(), `"max_conns":25`)
}

func TestDetailedHealthEndpointDegraded(t *testing.T) {
	r := healthRouter(&fakeDatabaseStatus{pingErr: errors.New("connection refused")})

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/health/detailed", nil))
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
	assert.Contains(t, w.Body.String(), `"degraded"`)
}
