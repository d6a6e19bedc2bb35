package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"docbridge/internal/port"
)

// MockModelInvoker is a mock implementation of port.ModelInvoker.
type MockModelInvoker struct {
	mock.Mock
}

func (m *MockModelInvoker) Converse(ctx context.Context, input port.ConverseInput) (*port.ConverseOutput, error) {
	args := m.Called(ctx, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*port.ConverseOutput), args.Error(1)
}
