package domain

import (
	"time"

	"github.com/google/uuid"
)

// Receipt represents one ingested purchase document and its current
// workflow state. Extracted fields are best-effort; empty strings mean
// the extractor found nothing. RawText keeps the full recognized text
// verbatim as a recovery backstop.
type Receipt struct {
	ID            uuid.UUID     `db:"id" json:"id"`
	Provider      string        `db:"provider" json:"provider"`
	InvoiceNumber string        `db:"invoice_number" json:"invoice_number"`
	IssueDate     string        `db:"issue_date" json:"issue_date"`
	TotalAmount   float64       `db:"total_amount" json:"total_amount"`
	TaxAmount     *float64      `db:"tax_amount" json:"tax_amount"`
	S3Bucket      string        `db:"s3_bucket" json:"s3_bucket"`
	S3Key         string        `db:"s3_key" json:"s3_key"`
	OriginalName  string        `db:"original_name" json:"original_name"`
	RawText       string        `db:"raw_text" json:"raw_text"`
	Status        ReceiptStatus `db:"status" json:"status"`
	CreatedAt     time.Time     `db:"created_at" json:"created_at"`
}

// StatusHistoryEntry is one immutable row of a receipt's audit trail.
// Entries are only ever inserted; there is no update or delete path.
type StatusHistoryEntry struct {
	ID             uuid.UUID     `db:"id" json:"id"`
	ReceiptID      uuid.UUID     `db:"receipt_id" json:"receipt_id"`
	PreviousStatus ReceiptStatus `db:"previous_status" json:"previous_status"`
	NewStatus      ReceiptStatus `db:"new_status" json:"new_status"`
	Commentary     string        `db:"commentary" json:"commentary"`
	CreatedAt      time.Time     `db:"created_at" json:"created_at"`
}
