package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"github.com/SistemasXL/auditoria-recepcion-sistema-sub000/internal/domain"
)

// MockStateChangeRepo is a mock implementation of port.StateChangeRepository.
type MockStateChangeRepo struct {
	mock.Mock
}

func (m *MockStateChangeRepo) Create(ctx context.Context, entry *domain.StateChange) error {
	args := m.Called(ctx, entry)
	return args.Error(0)
}

func (m *MockStateChangeRepo) ListByEntity(ctx context.Context, entityType domain.EntityType, entityID uuid.UUID) ([]domain.StateChange, error) {
	args := m.Called(ctx, entityType, entityID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.StateChange), args.Error(1)
}
