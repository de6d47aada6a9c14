package usecase

import (
	"context"
	"log/slog"

	"pgbridge/src/core/domain"
	"pgbridge/src/core/ports"
)

// defaultAuditLimit is used when a list request does not specify one.
const defaultAuditLimit = 20

// AuditService lists the recorded statement audit trail.
type AuditService struct {
	repo     ports.AuditRepository
	maxLimit int
	log      *slog.Logger
}

// NewAuditService creates a new AuditService. maxLimit caps how many entries
// a single call may return.
func NewAuditService(repo ports.AuditRepository, maxLimit int, log *slog.Logger) *AuditService {
	return &AuditService{
		repo:     repo,
		maxLimit: maxLimit,
		log:      log,
	}
}

// Recent returns the most recent audit entries, newest first. A zero limit
// falls back to the default; anything above the configured cap is clamped.
func (s *AuditService) Recent(ctx context.Context, limit int) ([]domain.AuditEntry, error) {
	if limit < 0 {
		return nil, domain.NewValidationError("limit", "cannot be negative")
	}
	if limit == 0 {
		limit = defaultAuditLimit
	}
	if s.maxLimit > 0 && limit > s.maxLimit {
		limit = s.maxLimit
	}

	return s.repo.Recent(ctx, limit)
}
