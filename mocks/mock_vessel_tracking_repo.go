package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"porteo/internal/domain"
)

// MockVesselTrackingRepo is a mock implementation of port.VesselTrackingRepository.
type MockVesselTrackingRepo struct {
	mock.Mock
}

func (m *MockVesselTrackingRepo) List(ctx context.Context) ([]domain.VesselTrackingRecord, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.VesselTrackingRecord), args.Error(1)
}

func (m *MockVesselTrackingRepo) Upsert(ctx context.Context, r *domain.VesselTrackingRecord) error {
	args := m.Called(ctx, r)
	return args.Error(0)
}

func (m *MockVesselTrackingRepo) BulkUpsert(ctx context.Context, batch []domain.VesselTrackingRecord) error {
	args := m.Called(ctx, batch)
	return args.Error(0)
}

func (m *MockVesselTrackingRepo) DeleteByBL(ctx context.Context, blNo string) (int64, error) {
	args := m.Called(ctx, blNo)
	return args.Get(0).(int64), args.Error(1)
}
