package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"github.com/SistemasXL/auditoria-recepcion-sistema-sub000/internal/domain"
	"github.com/SistemasXL/auditoria-recepcion-sistema-sub000/internal/service"
)

// MockAuditService is a mock implementation of service.AuditService.
type MockAuditService struct {
	mock.Mock
}

func (m *MockAuditService) Create(ctx context.Context, input *service.CreateAuditInput) (*domain.Audit, error) {
	args := m.Called(ctx, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Audit), args.Error(1)
}

func (m *MockAuditService) Start(ctx context.Context, auditID uuid.UUID, actorID uuid.UUID) (*service.AuditResult, error) {
	args := m.Called(ctx, auditID, actorID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.AuditResult), args.Error(1)
}

func (m *MockAuditService) AddLineItem(ctx context.Context, input *service.AddLineItemInput) (*service.LineItemResult, error) {
	args := m.Called(ctx, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.LineItemResult), args.Error(1)
}

func (m *MockAuditService) UpdateLineItem(ctx context.Context, input *service.UpdateLineItemInput) (*domain.LineItem, error) {
	args := m.Called(ctx, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.LineItem), args.Error(1)
}

func (m *MockAuditService) RemoveLineItem(ctx context.Context, auditID uuid.UUID, itemID uuid.UUID, actorID uuid.UUID) error {
	args := m.Called(ctx, auditID, itemID, actorID)
	return args.Error(0)
}

func (m *MockAuditService) Finalize(ctx context.Context, auditID uuid.UUID, actorID uuid.UUID) (*service.AuditResult, error) {
	args := m.Called(ctx, auditID, actorID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.AuditResult), args.Error(1)
}

func (m *MockAuditService) Close(ctx context.Context, auditID uuid.UUID, actorID uuid.UUID) (*service.AuditResult, error) {
	args := m.Called(ctx, auditID, actorID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.AuditResult), args.Error(1)
}

func (m *MockAuditService) Cancel(ctx context.Context, auditID uuid.UUID, reason string, actorID uuid.UUID) (*service.AuditResult, error) {
	args := m.Called(ctx, auditID, reason, actorID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.AuditResult), args.Error(1)
}

func (m *MockAuditService) Get(ctx context.Context, auditID uuid.UUID) (*service.AuditDetail, error) {
	args := m.Called(ctx, auditID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.AuditDetail), args.Error(1)
}

func (m *MockAuditService) List(ctx context.Context, filter domain.AuditFilter) ([]domain.Audit, int, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Int(1), args.Error(2)
	}
	return args.Get(0).([]domain.Audit), args.Int(1), args.Error(2)
}

func (m *MockAuditService) History(ctx context.Context, auditID uuid.UUID) ([]domain.StateChange, error) {
	args := m.Called(ctx, auditID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.StateChange), args.Error(1)
}
