package ports

import (
	"context"

	"pgbridge/src/core/domain"
)

// ExternalService is the base interface for external service adapters.
type ExternalService interface {
	// Health checks if the external service is reachable.
	Health(ctx context.Context) error
}

// DatabaseStatus reports health and pool statistics for the database.
type DatabaseStatus interface {
	ExternalService

	// Stats returns a snapshot of the connection pool.
	Stats() (domain.PoolStats, error)
}
