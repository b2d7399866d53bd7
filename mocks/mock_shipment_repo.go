package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"porteo/internal/domain"
)

// MockShipmentRepo is a mock implementation of port.ShipmentRepository.
type MockShipmentRepo struct {
	mock.Mock
}

func (m *MockShipmentRepo) List(ctx context.Context) ([]domain.Shipment, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Shipment), args.Error(1)
}

func (m *MockShipmentRepo) Upsert(ctx context.Context, s *domain.Shipment) error {
	args := m.Called(ctx, s)
	return args.Error(0)
}

func (m *MockShipmentRepo) BulkUpsert(ctx context.Context, batch []domain.Shipment) error {
	args := m.Called(ctx, batch)
	return args.Error(0)
}

func (m *MockShipmentRepo) DeleteByBL(ctx context.Context, blNo string) (int64, error) {
	args := m.Called(ctx, blNo)
	return args.Get(0).(int64), args.Error(1)
}
