package mocks

import (
	"context"
	"encoding/json"

	"github.com/stretchr/testify/mock"

	"docr/internal/port"
)

// MockTextComparer is a mock implementation of port.TextComparer.
type MockTextComparer struct {
	mock.Mock
}

func (m *MockTextComparer) Compare(ctx context.Context, req port.ComparisonRequest) (json.RawMessage, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(json.RawMessage), args.Error(1)
}
