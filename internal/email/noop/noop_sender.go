package noop

import (
	"context"
	"log"

	"recibo/internal/domain"
	"recibo/internal/port"
)

type noopSender struct {
	baseURL string
}

// NewNoopSender creates a no-op Notifier that logs review links to stdout.
func NewNoopSender(baseURL string) port.Notifier {
	return &noopSender{baseURL: baseURL}
}

func (s *noopSender) SendReviewRequest(_ context.Context, toEmail string, receipt *domain.Receipt) error {
	log.Printf("[NOOP EMAIL] Review request for receipt %s to %s: approve %s/webhooks/receipts/%s/approve",
		receipt.ID, toEmail, s.baseURL, receipt.ID)
	return nil
}
