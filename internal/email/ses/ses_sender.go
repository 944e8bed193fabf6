package ses

import (
	"context"
	"fmt"

	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/sesv2"
	"github.com/aws/aws-sdk-go-v2/service/sesv2/types"

	"recibo/internal/domain"
	"recibo/internal/port"
)

type sesSender struct {
	client      *sesv2.Client
	fromAddress string
	fromName    string
	baseURL     string
}

// NewSESSender creates a new SES-backed Notifier.
func NewSESSender(region, fromAddress, fromName, baseURL string) (port.Notifier, error) {
	cfg, err := awsconfig.LoadDefaultConfig(context.Background(), awsconfig.WithRegion(region))
	if err != nil {
		return nil, fmt.Errorf("loading AWS config for SES: %w", err)
	}
	client := sesv2.NewFromConfig(cfg)
	return &sesSender{
		client:      client,
		fromAddress: fromAddress,
		fromName:    fromName,
		baseURL:     baseURL,
	}, nil
}

func (s *sesSender) SendReviewRequest(ctx context.Context, toEmail string, receipt *domain.Receipt) error {
	approveURL := fmt.Sprintf("%s/webhooks/receipts/%s/approve", s.baseURL, receipt.ID)
	rejectURL := fmt.Sprintf("%s/webhooks/receipts/%s/reject", s.baseURL, receipt.ID)

	subject := fmt.Sprintf("Receipt %s awaiting review", receipt.ID)
	htmlBody := buildReviewRequestHTML(receipt, approveURL, rejectURL)
	textBody := fmt.Sprintf(
		"A new receipt is awaiting review.\n\nProvider: %s\nInvoice number: %s\nIssue date: %s\nTotal: %.2f\n\nApprove: %s\nReject: %s\n",
		receipt.Provider, receipt.InvoiceNumber, receipt.IssueDate, receipt.TotalAmount,
		approveURL, rejectURL)

	from := fmt.Sprintf("%s <%s>", s.fromName, s.fromAddress)

	_, err := s.client.SendEmail(ctx, &sesv2.SendEmailInput{
		FromEmailAddress: &from,
		Destination: &types.Destination{
			ToAddresses: []string{toEmail},
		},
		Content: &types.EmailContent{
			Simple: &types.Message{
				Subject: &types.Content{Data: &subject},
				Body: &types.Body{
					Html: &types.Content{Data: &htmlBody},
					Text: &types.Content{Data: &textBody},
				},
			},
		},
	})
	if err != nil {
		return fmt.Errorf("SES SendEmail: %w", err)
	}
	return nil
}

func buildReviewRequestHTML(receipt *domain.Receipt, approveURL, rejectURL string) string {
	return fmt.Sprintf(`<html>
<body style="font-family: Arial, sans-serif; color: #333;">
  <h2>New receipt awaiting review</h2>
  <table cellpadding="4">
    <tr><td><b>Provider</b></td><td>%s</td></tr>
    <tr><td><b>Invoice number</b></td><td>%s</td></tr>
    <tr><td><b>Issue date</b></td><td>%s</td></tr>
    <tr><td><b>Total</b></td><td>%.2f</td></tr>
  </table>
  <p>
    <a href="%s" style="background-color: #5cb85c; color: white; padding: 10px 20px; text-decoration: none;">Approve</a>
    &nbsp;
    <a href="%s" style="background-color: #d9534f; color: white; padding: 10px 20px; text-decoration: none;">Reject</a>
  </p>
</body>
</html>`,
		receipt.Provider, receipt.InvoiceNumber, receipt.IssueDate, receipt.TotalAmount,
		approveURL, rejectURL)
}
