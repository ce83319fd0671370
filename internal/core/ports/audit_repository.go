package ports

import (
	"context"

	"github.com/buildhub/module-catalog/internal/core/domain"
)

// AuditRepository persists moderation events to the audit trail.
type AuditRepository interface {
	InsertModerationEvent(ctx context.Context, event *domain.ModerationEvent) error
}
