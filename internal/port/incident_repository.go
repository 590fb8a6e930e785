package port

import (
	"context"

	"github.com/google/uuid"

	"github.com/SistemasXL/auditoria-recepcion-sistema-sub000/internal/domain"
)

// IncidentRepository defines the contract for incident persistence.
// ListByAudit takes a shared lock on the returned rows when called inside a
// transaction, so a concurrent state change either commits first or waits.
type IncidentRepository interface {
	Create(ctx context.Context, incident *domain.Incident) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Incident, error)
	GetForUpdate(ctx context.Context, id uuid.UUID) (*domain.Incident, error)
	ListByAudit(ctx context.Context, auditID uuid.UUID) ([]domain.Incident, error)
	List(ctx context.Context, filter domain.IncidentFilter) ([]domain.Incident, int, error)
	Update(ctx context.Context, incident *domain.Incident, expectedVersion int) error
	MaxSequence(ctx context.Context, prefix string) (int64, error)
}

// CommentRepository defines the contract for incident comments.
type CommentRepository interface {
	Create(ctx context.Context, comment *domain.IncidentComment) error
	ListByIncident(ctx context.Context, incidentID uuid.UUID) ([]domain.IncidentComment, error)
}
