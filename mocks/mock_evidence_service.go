package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"github.com/SistemasXL/auditoria-recepcion-sistema-sub000/internal/domain"
	"github.com/SistemasXL/auditoria-recepcion-sistema-sub000/internal/service"
)

// MockEvidenceService is a mock implementation of service.EvidenceService.
type MockEvidenceService struct {
	mock.Mock
}

func (m *MockEvidenceService) Upload(ctx context.Context, input service.EvidenceUploadInput) (*domain.Evidence, error) {
	args := m.Called(ctx, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Evidence), args.Error(1)
}

func (m *MockEvidenceService) GetByID(ctx context.Context, evidenceID uuid.UUID) (*domain.Evidence, error) {
	args := m.Called(ctx, evidenceID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Evidence), args.Error(1)
}

func (m *MockEvidenceService) ListByIncident(ctx context.Context, incidentID uuid.UUID) ([]domain.Evidence, error) {
	args := m.Called(ctx, incidentID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Evidence), args.Error(1)
}

func (m *MockEvidenceService) GetDownloadURL(ctx context.Context, evidenceID uuid.UUID) (string, error) {
	args := m.Called(ctx, evidenceID)
	return args.String(0), args.Error(1)
}

func (m *MockEvidenceService) Delete(ctx context.Context, evidenceID uuid.UUID) error {
	args := m.Called(ctx, evidenceID)
	return args.Error(0)
}
