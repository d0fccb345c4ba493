package ports

import (
	"context"

	"github.com/cymbol-superstore/marketplace-api/internal/core/domain"
)

// AuthEventRepository persists login audit records.
type AuthEventRepository interface {
	InsertEvent(ctx context.Context, event *domain.AuthEvent) error
}

// AuditSink accepts audit events without blocking the caller.
type AuditSink interface {
	Record(event domain.AuthEvent)
}
