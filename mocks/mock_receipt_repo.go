package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"recibo/internal/domain"
)

// MockReceiptRepo is a mock implementation of port.ReceiptRepository.
type MockReceiptRepo struct {
	mock.Mock
}

func (m *MockReceiptRepo) CreateWithHistory(ctx context.Context, receipt *domain.Receipt, commentary string) (*domain.StatusHistoryEntry, error) {
	args := m.Called(ctx, receipt, commentary)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.StatusHistoryEntry), args.Error(1)
}

func (m *MockReceiptRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.Receipt, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Receipt), args.Error(1)
}

func (m *MockReceiptRepo) List(ctx context.Context, offset, limit int) ([]domain.Receipt, int, error) {
	args := m.Called(ctx, offset, limit)
	if args.Get(0) == nil {
		return nil, args.Int(1), args.Error(2)
	}
	return args.Get(0).([]domain.Receipt), args.Int(1), args.Error(2)
}

func (m *MockReceiptRepo) ListAll(ctx context.Context) ([]domain.Receipt, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Receipt), args.Error(1)
}

func (m *MockReceiptRepo) Transition(ctx context.Context, id uuid.UUID, newStatus domain.ReceiptStatus, commentary string) (*domain.StatusHistoryEntry, error) {
	args := m.Called(ctx, id, newStatus, commentary)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.StatusHistoryEntry), args.Error(1)
}

func (m *MockReceiptRepo) ListHistory(ctx context.Context, receiptID uuid.UUID) ([]domain.StatusHistoryEntry, error) {
	args := m.Called(ctx, receiptID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.StatusHistoryEntry), args.Error(1)
}
