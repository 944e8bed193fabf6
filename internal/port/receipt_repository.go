package port

import (
	"context"

	"github.com/google/uuid"

	"recibo/internal/domain"
)

// ReceiptRepository defines the contract for receipt persistence.
//
// The two mutating operations pair the receipt write with its history
// entry inside a single storage transaction: a receipt must never be
// observable without its creation entry, and a status change must never
// be observable without the matching audit row.
type ReceiptRepository interface {
	// CreateWithHistory inserts the receipt and its first history entry
	// (previous status N/A) atomically.
	CreateWithHistory(ctx context.Context, receipt *domain.Receipt, commentary string) (*domain.StatusHistoryEntry, error)

	GetByID(ctx context.Context, id uuid.UUID) (*domain.Receipt, error)
	List(ctx context.Context, offset, limit int) ([]domain.Receipt, int, error)
	ListAll(ctx context.Context) ([]domain.Receipt, error)

	// Transition performs the read-check-write of the receipt status and
	// the history append as one atomic unit, serialized per receipt ID.
	// It returns domain.ErrReceiptNotFound for unknown IDs and
	// domain.ErrReceiptFinalized when the receipt is already terminal.
	Transition(ctx context.Context, id uuid.UUID, newStatus domain.ReceiptStatus, commentary string) (*domain.StatusHistoryEntry, error)

	// ListHistory returns a receipt's audit trail ordered by timestamp.
	ListHistory(ctx context.Context, receiptID uuid.UUID) ([]domain.StatusHistoryEntry, error)
}
