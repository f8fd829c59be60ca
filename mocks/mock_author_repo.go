package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"docr/internal/domain"
)

// MockAuthorRepo is a mock implementation of port.AuthorRepository.
type MockAuthorRepo struct {
	mock.Mock
}

func (m *MockAuthorRepo) GetByIDs(ctx context.Context, ids []int64) ([]domain.Author, error) {
	args := m.Called(ctx, ids)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Author), args.Error(1)
}

func (m *MockAuthorRepo) List(ctx context.Context, offset, limit int) ([]domain.Author, int, error) {
	args := m.Called(ctx, offset, limit)
	if args.Get(0) == nil {
		return nil, args.Int(1), args.Error(2)
	}
	return args.Get(0).([]domain.Author), args.Int(1), args.Error(2)
}
