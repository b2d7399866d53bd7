package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"porteo/internal/domain"
)

// MockEquipmentTrackingRepo is a mock implementation of port.EquipmentTrackingRepository.
type MockEquipmentTrackingRepo struct {
	mock.Mock
}

func (m *MockEquipmentTrackingRepo) List(ctx context.Context) ([]domain.EquipmentTrackingRecord, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.EquipmentTrackingRecord), args.Error(1)
}

func (m *MockEquipmentTrackingRepo) Upsert(ctx context.Context, r *domain.EquipmentTrackingRecord) error {
	args := m.Called(ctx, r)
	return args.Error(0)
}

func (m *MockEquipmentTrackingRepo) BulkUpsert(ctx context.Context, batch []domain.EquipmentTrackingRecord) error {
	args := m.Called(ctx, batch)
	return args.Error(0)
}

func (m *MockEquipmentTrackingRepo) DeleteByBL(ctx context.Context, blNo string) (int64, error) {
	args := m.Called(ctx, blNo)
	return args.Get(0).(int64), args.Error(1)
}
