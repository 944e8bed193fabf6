package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"recibo/internal/domain"
)

// MockNotifier is a mock implementation of port.Notifier.
type MockNotifier struct {
	mock.Mock
}

func (m *MockNotifier) SendReviewRequest(ctx context.Context, toEmail string, receipt *domain.Receipt) error {
	args := m.Called(ctx, toEmail, receipt)
	return args.Error(0)
}
