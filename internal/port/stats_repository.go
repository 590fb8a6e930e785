package port

import (
	"context"

	"github.com/google/uuid"

	"github.com/SistemasXL/auditoria-recepcion-sistema-sub000/internal/domain"
)

// StatsRepository provides aggregate dashboard queries.
type StatsRepository interface {
	// GetGlobalStats counts every audit and incident.
	GetGlobalStats(ctx context.Context, userID uuid.UUID) (*domain.Stats, error)
	// GetCreatorStats counts only audits created by userID and their incidents.
	GetCreatorStats(ctx context.Context, userID uuid.UUID) (*domain.Stats, error)
}
