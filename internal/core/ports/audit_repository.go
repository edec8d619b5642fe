package ports

import (
	"context"

	"github.com/nexaa/auth-service/internal/core/domain"
)

// AuditRepository persists the authentication audit trail.
type AuditRepository interface {
	InsertEvent(ctx context.Context, event *domain.AuthEvent) error

	// ListRecent returns up to limit events, newest first.
	ListRecent(ctx context.Context, limit int64) ([]domain.AuthEvent, error)
}
