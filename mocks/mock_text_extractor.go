package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"docr/internal/domain"
)

// MockTextExtractor is a mock implementation of port.TextExtractor.
type MockTextExtractor struct {
	mock.Mock
}

func (m *MockTextExtractor) Extract(ctx context.Context, item domain.UploadItem) (string, error) {
	args := m.Called(ctx, item)
	return args.String(0), args.Error(1)
}
