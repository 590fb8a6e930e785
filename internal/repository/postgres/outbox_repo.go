package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/SistemasXL/auditoria-recepcion-sistema-sub000/internal/domain"
	"github.com/SistemasXL/auditoria-recepcion-sistema-sub000/internal/port"
)

type outboxRepo struct {
	db *sqlx.DB
}

// NewOutboxRepo creates a new PostgreSQL-backed OutboxRepository.
func NewOutboxRepo(db *sqlx.DB) port.OutboxRepository {
	return &outboxRepo{db: db}
}

func (r *outboxRepo) Enqueue(ctx context.Context, e *domain.OutboxEntry) error {
	now := time.Now().UTC()
	e.CreatedAt = now
	if e.NextAttemptAt.IsZero() {
		e.NextAttemptAt = now
	}
	if e.Status == "" {
		e.Status = domain.OutboxPending
	}
	_, err := conn(ctx, r.db).ExecContext(ctx,
		`INSERT INTO notification_outbox (id, kind, entity_id, event, status, attempts, last_error, next_attempt_at, created_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`,
		e.ID, e.Kind, e.EntityID, e.Event, e.Status, e.Attempts, e.LastError, e.NextAttemptAt, e.CreatedAt)
	if err != nil {
		return fmt.Errorf("outboxRepo.Enqueue: %w", err)
	}
	return nil
}

// ClaimBatch picks due rows with SKIP LOCKED so several dispatchers can run
// side by side. A processing row whose lease ran out is claimable again.
func (r *outboxRepo) ClaimBatch(ctx context.Context, limit int, lease time.Duration) ([]domain.OutboxEntry, error) {
	var entries []domain.OutboxEntry
	err := r.db.SelectContext(ctx, &entries,
		`UPDATE notification_outbox SET
			status = $1, attempts = attempts + 1, next_attempt_at = NOW() + make_interval(secs => $2)
		 WHERE id IN (
			SELECT id FROM notification_outbox
			WHERE status IN ($3, $4, $1) AND next_attempt_at <= NOW()
			ORDER BY created_at
			LIMIT $5
			FOR UPDATE SKIP LOCKED
		 )
		 RETURNING *`,
		domain.OutboxProcessing, lease.Seconds(), domain.OutboxPending, domain.OutboxFailed, limit)
	if err != nil {
		return nil, fmt.Errorf("outboxRepo.ClaimBatch: %w", err)
	}
	return entries, nil
}

func (r *outboxRepo) MarkSent(ctx context.Context, id uuid.UUID) error {
	_, err := r.db.ExecContext(ctx,
		"UPDATE notification_outbox SET status = $1, sent_at = NOW(), last_error = '' WHERE id = $2",
		domain.OutboxSent, id)
	if err != nil {
		return fmt.Errorf("outboxRepo.MarkSent: %w", err)
	}
	return nil
}

func (r *outboxRepo) MarkFailed(ctx context.Context, id uuid.UUID, errMsg string, nextAttempt time.Time) error {
	_, err := r.db.ExecContext(ctx,
		"UPDATE notification_outbox SET status = $1, last_error = $2, next_attempt_at = $3 WHERE id = $4",
		domain.OutboxFailed, errMsg, nextAttempt, id)
	if err != nil {
		return fmt.Errorf("outboxRepo.MarkFailed: %w", err)
	}
	return nil
}

func (r *outboxRepo) MarkDead(ctx context.Context, id uuid.UUID, errMsg string) error {
	_, err := r.db.ExecContext(ctx,
		"UPDATE notification_outbox SET status = $1, last_error = $2 WHERE id = $3",
		domain.OutboxDead, errMsg, id)
	if err != nil {
		return fmt.Errorf("outboxRepo.MarkDead: %w", err)
	}
	return nil
}
