package service

import (
	"context"
	"strings"

	"github.com/google/uuid"

	"recibo/internal/domain"
	"recibo/internal/port"
)

// ReceiptService defines the receipt workflow contract. It is the sole
// writer of receipt status: every transition goes through here and is
// paired with exactly one history entry by the repository.
type ReceiptService interface {
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Receipt, error)
	List(ctx context.Context, offset, limit int) ([]domain.Receipt, int, error)
	History(ctx context.Context, id uuid.UUID) ([]domain.StatusHistoryEntry, error)
	// FileURL returns a short-lived presigned link to the stored
	// original artifact.
	FileURL(ctx context.Context, id uuid.UUID) (string, error)
	Approve(ctx context.Context, id uuid.UUID, comment string) (*domain.StatusHistoryEntry, error)
	Reject(ctx context.Context, id uuid.UUID, reason string) (*domain.StatusHistoryEntry, error)
}

type receiptService struct {
	repo          port.ReceiptRepository
	storage       port.ObjectStorage
	presignExpiry int64
}

// NewReceiptService creates a new ReceiptService implementation.
func NewReceiptService(repo port.ReceiptRepository, storage port.ObjectStorage, presignExpiry int64) ReceiptService {
	return &receiptService{repo: repo, storage: storage, presignExpiry: presignExpiry}
}

func (s *receiptService) GetByID(ctx context.Context, id uuid.UUID) (*domain.Receipt, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *receiptService) List(ctx context.Context, offset, limit int) ([]domain.Receipt, int, error) {
	return s.repo.List(ctx, offset, limit)
}

// History returns the audit trail for a receipt, ordered by timestamp.
// The receipt is looked up first so an unknown ID is reported as
// not-found rather than an empty trail.
func (s *receiptService) History(ctx context.Context, id uuid.UUID) ([]domain.StatusHistoryEntry, error) {
	if _, err := s.repo.GetByID(ctx, id); err != nil {
		return nil, err
	}
	return s.repo.ListHistory(ctx, id)
}

func (s *receiptService) FileURL(ctx context.Context, id uuid.UUID) (string, error) {
	receipt, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return "", err
	}
	return s.storage.GetPresignedURL(ctx, receipt.S3Bucket, receipt.S3Key, s.presignExpiry)
}

func (s *receiptService) Approve(ctx context.Context, id uuid.UUID, comment string) (*domain.StatusHistoryEntry, error) {
	return s.repo.Transition(ctx, id, domain.StatusApproved, comment)
}

// Reject moves a receipt to REJECTED. A non-empty reason is mandatory:
// the audit trail must record why a document was turned down.
func (s *receiptService) Reject(ctx context.Context, id uuid.UUID, reason string) (*domain.StatusHistoryEntry, error) {
	if strings.TrimSpace(reason) == "" {
		return nil, domain.ErrCommentaryRequired
	}
	return s.repo.Transition(ctx, id, domain.StatusRejected, reason)
}
