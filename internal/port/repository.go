package port

import (
	"context"

	"github.com/google/uuid"

	"github.com/SistemasXL/auditoria-recepcion-sistema-sub000/internal/domain"
)

// UserRepository defines the contract for user persistence.
type UserRepository interface {
	Create(ctx context.Context, user *domain.User) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error)
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	List(ctx context.Context, offset, limit int) ([]domain.User, int, error)
	Update(ctx context.Context, user *domain.User) error
}

// SupplierRepository defines the contract for supplier persistence.
type SupplierRepository interface {
	Create(ctx context.Context, supplier *domain.Supplier) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Supplier, error)
	List(ctx context.Context, offset, limit int) ([]domain.Supplier, int, error)
}

// ProductRepository defines the contract for product catalog persistence.
type ProductRepository interface {
	Create(ctx context.Context, product *domain.Product) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Product, error)
	GetByCode(ctx context.Context, code string) (*domain.Product, error)
	List(ctx context.Context, offset, limit int) ([]domain.Product, int, error)
}

// EvidenceRepository defines the contract for evidence metadata persistence.
type EvidenceRepository interface {
	Create(ctx context.Context, ev *domain.Evidence) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Evidence, error)
	ListByIncident(ctx context.Context, incidentID uuid.UUID) ([]domain.Evidence, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, status domain.EvidenceStatus) error
	Delete(ctx context.Context, id uuid.UUID) error
}
