package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"docr/internal/domain"
)

// MockExtractionService is a mock implementation of service.ExtractionService.
type MockExtractionService struct {
	mock.Mock
}

func (m *MockExtractionService) ProcessBatch(ctx context.Context, items []domain.UploadItem) ([]domain.Outcome, error) {
	args := m.Called(ctx, items)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Outcome), args.Error(1)
}
