package port

import (
	"context"

	"recibo/internal/domain"
)

// Notifier defines the contract for sending review-request emails.
// Delivery is fire-and-forget from the workflow's perspective: failures
// are logged by the caller and never affect the created receipt.
type Notifier interface {
	SendReviewRequest(ctx context.Context, toEmail string, receipt *domain.Receipt) error
}
