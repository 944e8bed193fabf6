package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"
)

// MockPreprocessor is a mock implementation of port.Preprocessor.
type MockPreprocessor struct {
	mock.Mock
}

func (m *MockPreprocessor) Normalize(ctx context.Context, srcPath string) (string, error) {
	args := m.Called(ctx, srcPath)
	return args.String(0), args.Error(1)
}

// MockRecognizer is a mock implementation of port.Recognizer.
type MockRecognizer struct {
	mock.Mock
}

func (m *MockRecognizer) Recognize(ctx context.Context, imagePath string) (string, error) {
	args := m.Called(ctx, imagePath)
	return args.String(0), args.Error(1)
}
