package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"docbridge/internal/domain"
	"docbridge/internal/ocr"
)

// MockEngine is a mock implementation of ocr.Engine.
type MockEngine struct {
	mock.Mock
}

func (m *MockEngine) Extract(ctx context.Context, file domain.InputFile, opts ocr.ExtractOptions) (string, []string, error) {
	args := m.Called(ctx, file, opts)
	var warnings []string
	if args.Get(1) != nil {
		warnings = args.Get(1).([]string)
	}
	return args.String(0), warnings, args.Error(2)
}
