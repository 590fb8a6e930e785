package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"github.com/SistemasXL/auditoria-recepcion-sistema-sub000/internal/domain"
	"github.com/SistemasXL/auditoria-recepcion-sistema-sub000/internal/service"
)

// MockIncidentService is a mock implementation of service.IncidentService.
type MockIncidentService struct {
	mock.Mock
}

func (m *MockIncidentService) Create(ctx context.Context, input *service.CreateIncidentInput) (*service.IncidentResult, error) {
	args := m.Called(ctx, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.IncidentResult), args.Error(1)
}

func (m *MockIncidentService) Assign(ctx context.Context, incidentID uuid.UUID, assigneeID uuid.UUID, actorID uuid.UUID) (*service.IncidentResult, error) {
	args := m.Called(ctx, incidentID, assigneeID, actorID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.IncidentResult), args.Error(1)
}

func (m *MockIncidentService) ChangeState(ctx context.Context, input *service.ChangeIncidentStateInput) (*service.IncidentResult, error) {
	args := m.Called(ctx, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.IncidentResult), args.Error(1)
}

func (m *MockIncidentService) IsPending(ctx context.Context, incidentID uuid.UUID) (bool, error) {
	args := m.Called(ctx, incidentID)
	return args.Bool(0), args.Error(1)
}

func (m *MockIncidentService) GetByID(ctx context.Context, incidentID uuid.UUID) (*domain.Incident, error) {
	args := m.Called(ctx, incidentID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Incident), args.Error(1)
}

func (m *MockIncidentService) List(ctx context.Context, filter domain.IncidentFilter) ([]domain.Incident, int, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Int(1), args.Error(2)
	}
	return args.Get(0).([]domain.Incident), args.Int(1), args.Error(2)
}

func (m *MockIncidentService) AddComment(ctx context.Context, incidentID uuid.UUID, authorID uuid.UUID, body string) (*domain.IncidentComment, error) {
	args := m.Called(ctx, incidentID, authorID, body)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.IncidentComment), args.Error(1)
}

func (m *MockIncidentService) ListComments(ctx context.Context, incidentID uuid.UUID) ([]domain.IncidentComment, error) {
	args := m.Called(ctx, incidentID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.IncidentComment), args.Error(1)
}

func (m *MockIncidentService) History(ctx context.Context, incidentID uuid.UUID) ([]domain.StateChange, error) {
	args := m.Called(ctx, incidentID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.StateChange), args.Error(1)
}
