package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"porteo/internal/port"
)

// MockDocumentExtractor is a mock implementation of port.DocumentExtractor.
type MockDocumentExtractor struct {
	mock.Mock
}

func (m *MockDocumentExtractor) Extract(ctx context.Context, content []byte, contentType string) (*port.ExtractedDocument, error) {
	args := m.Called(ctx, content, contentType)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*port.ExtractedDocument), args.Error(1)
}
