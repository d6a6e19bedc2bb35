package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"docbridge/internal/port"
)

// MockTextDetector is a mock implementation of port.TextDetector.
type MockTextDetector struct {
	mock.Mock
}

func (m *MockTextDetector) DetectText(ctx context.Context, input port.DetectTextInput) (*port.DetectTextOutput, error) {
	args := m.Called(ctx, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*port.DetectTextOutput), args.Error(1)
}

func (m *MockTextDetector) StartDetection(ctx context.Context, input port.StartDetectionInput) (string, error) {
	args := m.Called(ctx, input)
	return args.String(0), args.Error(1)
}

func (m *MockTextDetector) GetDetection(ctx context.Context, input port.GetDetectionInput) (*port.DetectionPage, error) {
	args := m.Called(ctx, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*port.DetectionPage), args.Error(1)
}
