package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"porteo/internal/domain"
)

// MockCostRepo is a mock implementation of port.CostRepository.
type MockCostRepo struct {
	mock.Mock
}

func (m *MockCostRepo) List(ctx context.Context) ([]domain.CostRecord, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.CostRecord), args.Error(1)
}

func (m *MockCostRepo) Upsert(ctx context.Context, c *domain.CostRecord) error {
	args := m.Called(ctx, c)
	return args.Error(0)
}

func (m *MockCostRepo) BulkUpsert(ctx context.Context, batch []domain.CostRecord) error {
	args := m.Called(ctx, batch)
	return args.Error(0)
}

func (m *MockCostRepo) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockCostRepo) BatchDelete(ctx context.Context, ids []uuid.UUID) (int64, error) {
	args := m.Called(ctx, ids)
	return args.Get(0).(int64), args.Error(1)
}
