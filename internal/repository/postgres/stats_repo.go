package postgres

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/SistemasXL/auditoria-recepcion-sistema-sub000/internal/domain"
	"github.com/SistemasXL/auditoria-recepcion-sistema-sub000/internal/port"
)

type statsRepo struct {
	db *sqlx.DB
}

// NewStatsRepo creates a new PostgreSQL-backed StatsRepository.
func NewStatsRepo(db *sqlx.DB) port.StatsRepository {
	return &statsRepo{db: db}
}

const auditStatsColumns = `SELECT
	COUNT(*) AS total_audits,
	COUNT(CASE WHEN a.state = 'draft' THEN 1 END) AS audits_draft,
	COUNT(CASE WHEN a.state = 'in_process' THEN 1 END) AS audits_in_process,
	COUNT(CASE WHEN a.state = 'finalized' THEN 1 END) AS audits_finalized,
	COUNT(CASE WHEN a.state = 'closed' THEN 1 END) AS audits_closed,
	COUNT(CASE WHEN a.state = 'cancelled' THEN 1 END) AS audits_cancelled
FROM audits a`

const incidentStatsColumns = `SELECT
	COUNT(*) AS total_incidents,
	COUNT(CASE WHEN i.state = 'open' THEN 1 END) AS incidents_open,
	COUNT(CASE WHEN i.state = 'assigned' THEN 1 END) AS incidents_assigned,
	COUNT(CASE WHEN i.state = 'in_review' THEN 1 END) AS incidents_in_review,
	COUNT(CASE WHEN i.state = 'resolved' THEN 1 END) AS incidents_resolved,
	COUNT(CASE WHEN i.state = 'rejected' THEN 1 END) AS incidents_rejected,
	COUNT(CASE WHEN i.type = 'shortage' THEN 1 END) AS incidents_shortage,
	COUNT(CASE WHEN i.type = 'overage' THEN 1 END) AS incidents_overage,
	COUNT(CASE WHEN i.type = 'damaged' THEN 1 END) AS incidents_damaged,
	COUNT(CASE WHEN i.type = 'wrong_item' THEN 1 END) AS incidents_wrong_item,
	COUNT(CASE WHEN i.type = 'other' THEN 1 END) AS incidents_other
FROM incidents i`

const assignedPendingQuery = `SELECT COUNT(*) FROM incidents
WHERE assignee_id = $1 AND state NOT IN ('resolved', 'rejected')`

func (r *statsRepo) GetGlobalStats(ctx context.Context, userID uuid.UUID) (*domain.Stats, error) {
	var stats domain.Stats
	if err := conn(ctx, r.db).GetContext(ctx, &stats, auditStatsColumns); err != nil {
		return nil, fmt.Errorf("statsRepo.GetGlobalStats audits: %w", err)
	}
	if err := conn(ctx, r.db).GetContext(ctx, &stats, incidentStatsColumns); err != nil {
		return nil, fmt.Errorf("statsRepo.GetGlobalStats incidents: %w", err)
	}
	if err := conn(ctx, r.db).GetContext(ctx, &stats.AssignedPending, assignedPendingQuery, userID); err != nil {
		return nil, fmt.Errorf("statsRepo.GetGlobalStats assigned: %w", err)
	}
	return &stats, nil
}

func (r *statsRepo) GetCreatorStats(ctx context.Context, userID uuid.UUID) (*domain.Stats, error) {
	var stats domain.Stats
	if err := conn(ctx, r.db).GetContext(ctx, &stats, auditStatsColumns+` WHERE a.created_by = $1`, userID); err != nil {
		return nil, fmt.Errorf("statsRepo.GetCreatorStats audits: %w", err)
	}
	if err := conn(ctx, r.db).GetContext(ctx, &stats,
		incidentStatsColumns+` INNER JOIN audits a ON a.id = i.audit_id WHERE a.created_by = $1`, userID); err != nil {
		return nil, fmt.Errorf("statsRepo.GetCreatorStats incidents: %w", err)
	}
	if err := conn(ctx, r.db).GetContext(ctx, &stats.AssignedPending, assignedPendingQuery, userID); err != nil {
		return nil, fmt.Errorf("statsRepo.GetCreatorStats assigned: %w", err)
	}
	return &stats, nil
}
