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

type stateChangeRepo struct {
	db *sqlx.DB
}

// NewStateChangeRepo creates a new PostgreSQL-backed StateChangeRepository.
func NewStateChangeRepo(db *sqlx.DB) port.StateChangeRepository {
	return &stateChangeRepo{db: db}
}

func (r *stateChangeRepo) Create(ctx context.Context, entry *domain.StateChange) error {
	if entry.CreatedAt.IsZero() {
		entry.CreatedAt = time.Now().UTC()
	}
	_, err := conn(ctx, r.db).ExecContext(ctx,
		`INSERT INTO state_changes (id, entity_type, entity_id, from_state, to_state, actor_id, notes, created_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
		entry.ID, entry.EntityType, entry.EntityID, entry.FromState, entry.ToState,
		entry.ActorID, entry.Notes, entry.CreatedAt)
	if err != nil {
		return fmt.Errorf("stateChangeRepo.Create: %w", err)
	}
	return nil
}

func (r *stateChangeRepo) ListByEntity(ctx context.Context, entityType domain.EntityType, entityID uuid.UUID) ([]domain.StateChange, error) {
	var entries []domain.StateChange
	err := conn(ctx, r.db).SelectContext(ctx, &entries,
		`SELECT * FROM state_changes WHERE entity_type = $1 AND entity_id = $2 ORDER BY created_at DESC`,
		entityType, entityID)
	if err != nil {
		return nil, fmt.Errorf("stateChangeRepo.ListByEntity: %w", err)
	}
	return entries, nil
}
