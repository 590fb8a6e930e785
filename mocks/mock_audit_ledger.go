package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"github.com/SistemasXL/auditoria-recepcion-sistema-sub000/internal/domain"
	"github.com/SistemasXL/auditoria-recepcion-sistema-sub000/internal/service"
)

// MockAuditLedger is a mock implementation of service.AuditLedger.
type MockAuditLedger struct {
	mock.Mock
}

var _ service.AuditLedger = (*MockAuditLedger)(nil)

func (m *MockAuditLedger) NextAuditNumber(ctx context.Context) (string, error) {
	args := m.Called(ctx)
	return args.String(0), args.Error(1)
}

func (m *MockAuditLedger) NextIncidentNumber(ctx context.Context) (string, error) {
	args := m.Called(ctx)
	return args.String(0), args.Error(1)
}

func (m *MockAuditLedger) RegisterAudit(ctx context.Context, audit *domain.Audit) error {
	args := m.Called(ctx, audit)
	return args.Error(0)
}

func (m *MockAuditLedger) RegisterIncident(ctx context.Context, incident *domain.Incident) error {
	args := m.Called(ctx, incident)
	return args.Error(0)
}

func (m *MockAuditLedger) Find(ctx context.Context, auditID uuid.UUID) (*domain.Audit, error) {
	args := m.Called(ctx, auditID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Audit), args.Error(1)
}

func (m *MockAuditLedger) List(ctx context.Context, filter domain.AuditFilter) ([]domain.Audit, int, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Int(1), args.Error(2)
	}
	return args.Get(0).([]domain.Audit), args.Int(1), args.Error(2)
}
