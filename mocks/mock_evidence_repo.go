package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"github.com/SistemasXL/auditoria-recepcion-sistema-sub000/internal/domain"
)

// MockEvidenceRepo is a mock implementation of port.EvidenceRepository.
type MockEvidenceRepo struct {
	mock.Mock
}

func (m *MockEvidenceRepo) Create(ctx context.Context, ev *domain.Evidence) error {
	args := m.Called(ctx, ev)
	return args.Error(0)
}

func (m *MockEvidenceRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.Evidence, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Evidence), args.Error(1)
}

func (m *MockEvidenceRepo) ListByIncident(ctx context.Context, incidentID uuid.UUID) ([]domain.Evidence, error) {
	args := m.Called(ctx, incidentID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Evidence), args.Error(1)
}

func (m *MockEvidenceRepo) UpdateStatus(ctx context.Context, id uuid.UUID, status domain.EvidenceStatus) error {
	args := m.Called(ctx, id, status)
	return args.Error(0)
}

func (m *MockEvidenceRepo) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}
