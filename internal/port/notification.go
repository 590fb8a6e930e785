package port

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/SistemasXL/auditoria-recepcion-sistema-sub000/internal/domain"
)

// NotificationPublisher delivers a workflow event to its audience.
type NotificationPublisher interface {
	Publish(ctx context.Context, event domain.NotificationEvent) error
}

// OutboxRepository queues events written alongside the transition that produced them.
// ClaimBatch marks up to limit due rows as processing for lease; rows whose
// lease expires become claimable again.
type OutboxRepository interface {
	Enqueue(ctx context.Context, entry *domain.OutboxEntry) error
	ClaimBatch(ctx context.Context, limit int, lease time.Duration) ([]domain.OutboxEntry, error)
	MarkSent(ctx context.Context, id uuid.UUID) error
	MarkFailed(ctx context.Context, id uuid.UUID, errMsg string, nextAttempt time.Time) error
	MarkDead(ctx context.Context, id uuid.UUID, errMsg string) error
}
