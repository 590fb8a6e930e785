package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"github.com/SistemasXL/auditoria-recepcion-sistema-sub000/internal/domain"
)

// MockLineItemRepo is a mock implementation of port.LineItemRepository.
type MockLineItemRepo struct {
	mock.Mock
}

func (m *MockLineItemRepo) Create(ctx context.Context, item *domain.LineItem) error {
	args := m.Called(ctx, item)
	return args.Error(0)
}

func (m *MockLineItemRepo) GetByID(ctx context.Context, auditID uuid.UUID, itemID uuid.UUID) (*domain.LineItem, error) {
	args := m.Called(ctx, auditID, itemID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.LineItem), args.Error(1)
}

func (m *MockLineItemRepo) ListByAudit(ctx context.Context, auditID uuid.UUID) ([]domain.LineItem, error) {
	args := m.Called(ctx, auditID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.LineItem), args.Error(1)
}

func (m *MockLineItemRepo) CountByAudit(ctx context.Context, auditID uuid.UUID) (int, error) {
	args := m.Called(ctx, auditID)
	return args.Int(0), args.Error(1)
}

func (m *MockLineItemRepo) Update(ctx context.Context, item *domain.LineItem) error {
	args := m.Called(ctx, item)
	return args.Error(0)
}

func (m *MockLineItemRepo) Delete(ctx context.Context, auditID uuid.UUID, itemID uuid.UUID) error {
	args := m.Called(ctx, auditID, itemID)
	return args.Error(0)
}
