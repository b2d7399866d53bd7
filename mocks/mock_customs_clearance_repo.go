package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"porteo/internal/domain"
)

// MockCustomsClearanceRepo is a mock implementation of port.CustomsClearanceRepository.
type MockCustomsClearanceRepo struct {
	mock.Mock
}

func (m *MockCustomsClearanceRepo) List(ctx context.Context) ([]domain.CustomsClearanceRecord, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.CustomsClearanceRecord), args.Error(1)
}

func (m *MockCustomsClearanceRepo) Upsert(ctx context.Context, r *domain.CustomsClearanceRecord) error {
	args := m.Called(ctx, r)
	return args.Error(0)
}

func (m *MockCustomsClearanceRepo) BulkUpsert(ctx context.Context, batch []domain.CustomsClearanceRecord) error {
	args := m.Called(ctx, batch)
	return args.Error(0)
}

func (m *MockCustomsClearanceRepo) DeleteByBL(ctx context.Context, blNo string) (int64, error) {
	args := m.Called(ctx, blNo)
	return args.Get(0).(int64), args.Error(1)
}
