package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"
)

// MockSequenceRepo is a mock implementation of port.SequenceRepository.
type MockSequenceRepo struct {
	mock.Mock
}

func (m *MockSequenceRepo) Next(ctx context.Context, key string) (int64, error) {
	args := m.Called(ctx, key)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockSequenceRepo) Resync(ctx context.Context, key string, floor int64) error {
	args := m.Called(ctx, key, floor)
	return args.Error(0)
}
