package service

import (
	"context"

	"github.com/google/uuid"

	"github.com/SistemasXL/auditoria-recepcion-sistema-sub000/internal/domain"
	"github.com/SistemasXL/auditoria-recepcion-sistema-sub000/internal/port"
)

// StatsService provides dashboard statistics.
type StatsService interface {
	GetStats(ctx context.Context, userID uuid.UUID, role domain.UserRole) (*domain.Stats, error)
}

type statsService struct {
	statsRepo port.StatsRepository
}

// NewStatsService creates a new StatsService implementation.
func NewStatsService(statsRepo port.StatsRepository) StatsService {
	return &statsService{statsRepo: statsRepo}
}

// GetStats returns warehouse-wide counts for supervisors and admins. Operators
// only see the audits they registered.
func (s *statsService) GetStats(ctx context.Context, userID uuid.UUID, role domain.UserRole) (*domain.Stats, error) {
	if role == domain.RoleAdmin || role == domain.RoleSupervisor {
		return s.statsRepo.GetGlobalStats(ctx, userID)
	}
	return s.statsRepo.GetCreatorStats(ctx, userID)
}
