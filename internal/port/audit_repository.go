package port

import (
	"context"

	"github.com/google/uuid"

	"github.com/SistemasXL/auditoria-recepcion-sistema-sub000/internal/domain"
)

// AuditRepository defines the contract for audit persistence.
// GetForUpdate locks the row for the rest of the ambient transaction.
// Create returns domain.ErrDuplicateNumber when the audit number is taken.
// UpdateState returns domain.ErrConflict when the stored version differs from expectedVersion.
type AuditRepository interface {
	Create(ctx context.Context, audit *domain.Audit) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Audit, error)
	GetForUpdate(ctx context.Context, id uuid.UUID) (*domain.Audit, error)
	List(ctx context.Context, filter domain.AuditFilter) ([]domain.Audit, int, error)
	UpdateState(ctx context.Context, audit *domain.Audit, expectedVersion int) error
	MaxSequence(ctx context.Context, prefix string) (int64, error)
}

// LineItemRepository defines the contract for line item persistence.
type LineItemRepository interface {
	Create(ctx context.Context, item *domain.LineItem) error
	GetByID(ctx context.Context, auditID, itemID uuid.UUID) (*domain.LineItem, error)
	ListByAudit(ctx context.Context, auditID uuid.UUID) ([]domain.LineItem, error)
	CountByAudit(ctx context.Context, auditID uuid.UUID) (int, error)
	Update(ctx context.Context, item *domain.LineItem) error
	Delete(ctx context.Context, auditID, itemID uuid.UUID) error
}

// StateChangeRepository defines the contract for the transition log.
type StateChangeRepository interface {
	Create(ctx context.Context, entry *domain.StateChange) error
	ListByEntity(ctx context.Context, entityType domain.EntityType, entityID uuid.UUID) ([]domain.StateChange, error)
}

// SequenceRepository hands out per-key sequence values. Next is an atomic
// increment; Resync raises the stored value to at least floor.
type SequenceRepository interface {
	Next(ctx context.Context, key string) (int64, error)
	Resync(ctx context.Context, key string, floor int64) error
}
