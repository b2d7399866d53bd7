package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"porteo/internal/domain"
)

// MockPreAlertRepo is a mock implementation of port.PreAlertRepository.
type MockPreAlertRepo struct {
	mock.Mock
}

func (m *MockPreAlertRepo) List(ctx context.Context) ([]domain.PreAlertRecord, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.PreAlertRecord), args.Error(1)
}

func (m *MockPreAlertRepo) Upsert(ctx context.Context, p *domain.PreAlertRecord) error {
	args := m.Called(ctx, p)
	return args.Error(0)
}

func (m *MockPreAlertRepo) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockPreAlertRepo) DeleteByBooking(ctx context.Context, bookingAbw string) (int64, error) {
	args := m.Called(ctx, bookingAbw)
	return args.Get(0).(int64), args.Error(1)
}
