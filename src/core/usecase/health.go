package usecase

import (
	"context"
	"log/slog"

	"pgbridge/src/core/domain"
	"pgbridge/src/core/ports"
)

// HealthService handles health check logic.
type HealthService struct {
	db  ports.DatabaseStatus
	log *slog.Logger
}

// NewHealthService creates a new HealthService.
func NewHealthService(db ports.DatabaseStatus, log *slog.Logger) *HealthService {
	return &HealthService{
		db:  db,
		log: log,
	}
}

// HealthStatus represents the health of the application.
type HealthStatus struct {
	Status     string                     `json:"status"`
	Components map[string]ComponentHealth `json:"components,omitempty"`
	Pool       *domain.PoolStats          `json:"pool,omitempty"`
}

// ComponentHealth represents the health of a single component.
type ComponentHealth struct {
	Status  string `json:"status"`
	Message string `json:"message,omitempty"`
}

// Check performs a health check of all application components.
// Returns the overall health status.
func (s *HealthService) Check(ctx context.Context) *HealthStatus {
	status := &HealthStatus{
		Status:     "ok",
		Components: make(map[string]ComponentHealth),
	}

	if err := s.db.Health(ctx); err != nil {
		status.Status = "degraded"
		status.Components["database"] = ComponentHealth{
			Status:  "unhealthy",
			Message: err.Error(),
		}
		s.log.Warn("database health check failed", "error", err)
		return status
	}
	status.Components["database"] = ComponentHealth{Status: "healthy"}

	if stats, err := s.db.Stats(); err == nil {
		status.Pool = &stats
	}

	return status
}

// Compile-time check: the health adapter satisfies the service port.
var _ ports.ExternalService = (*HealthService)(nil)

// Health reports overall health as an error, for callers that only need a
// reachable/unreachable signal.
func (s *HealthService) Health(ctx context.Context) error {
	status := s.Check(ctx)
	if status.Status != "ok" {
		return domain.NewUnavailableError("health check failed: " + status.Status)
	}
	return nil
}
