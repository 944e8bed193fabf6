package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"recibo/internal/domain"
	"recibo/internal/port"
)

type receiptRepo struct {
	db *sqlx.DB
}

// NewReceiptRepo creates a new PostgreSQL-backed ReceiptRepository.
func NewReceiptRepo(db *sqlx.DB) port.ReceiptRepository {
	return &receiptRepo{db: db}
}

func (r *receiptRepo) CreateWithHistory(ctx context.Context, receipt *domain.Receipt, commentary string) (*domain.StatusHistoryEntry, error) {
	now := time.Now().UTC()
	if receipt.ID == uuid.Nil {
		receipt.ID = uuid.New()
	}
	receipt.Status = domain.StatusStarted
	receipt.CreatedAt = now

	entry := &domain.StatusHistoryEntry{
		ID:             uuid.New(),
		ReceiptID:      receipt.ID,
		PreviousStatus: domain.StatusNone,
		NewStatus:      domain.StatusStarted,
		Commentary:     commentary,
		CreatedAt:      now,
	}

	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("receiptRepo.CreateWithHistory begin: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	_, err = tx.ExecContext(ctx,
		`INSERT INTO receipts (
			id, provider, invoice_number, issue_date, total_amount, tax_amount,
			s3_bucket, s3_key, original_name, raw_text, status, created_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)`,
		receipt.ID, receipt.Provider, receipt.InvoiceNumber, receipt.IssueDate,
		receipt.TotalAmount, receipt.TaxAmount,
		receipt.S3Bucket, receipt.S3Key, receipt.OriginalName, receipt.RawText,
		receipt.Status, receipt.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("receiptRepo.CreateWithHistory insert receipt: %w", err)
	}

	if err := insertHistory(ctx, tx, entry); err != nil {
		return nil, fmt.Errorf("receiptRepo.CreateWithHistory insert history: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("receiptRepo.CreateWithHistory commit: %w", err)
	}
	return entry, nil
}

func (r *receiptRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.Receipt, error) {
	var receipt domain.Receipt
	err := r.db.GetContext(ctx, &receipt,
		"SELECT * FROM receipts WHERE id = $1", id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrReceiptNotFound
		}
		return nil, fmt.Errorf("receiptRepo.GetByID: %w", err)
	}
	return &receipt, nil
}

func (r *receiptRepo) List(ctx context.Context, offset, limit int) ([]domain.Receipt, int, error) {
	var total int
	if err := r.db.GetContext(ctx, &total, "SELECT COUNT(*) FROM receipts"); err != nil {
		return nil, 0, fmt.Errorf("receiptRepo.List count: %w", err)
	}

	var receipts []domain.Receipt
	err := r.db.SelectContext(ctx, &receipts,
		`SELECT * FROM receipts ORDER BY created_at DESC LIMIT $1 OFFSET $2`,
		limit, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("receiptRepo.List: %w", err)
	}
	return receipts, total, nil
}

func (r *receiptRepo) ListAll(ctx context.Context) ([]domain.Receipt, error) {
	var receipts []domain.Receipt
	err := r.db.SelectContext(ctx, &receipts,
		"SELECT * FROM receipts ORDER BY created_at ASC")
	if err != nil {
		return nil, fmt.Errorf("receiptRepo.ListAll: %w", err)
	}
	return receipts, nil
}

// Transition moves a receipt to newStatus and appends the matching
// history entry in one transaction. The receipt row is locked with
// FOR UPDATE so concurrent transitions against the same ID serialize;
// transitions against different IDs proceed in parallel.
func (r *receiptRepo) Transition(ctx context.Context, id uuid.UUID, newStatus domain.ReceiptStatus, commentary string) (*domain.StatusHistoryEntry, error) {
	if !domain.ValidStatuses[newStatus] {
		return nil, domain.ErrInvalidStatus
	}

	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("receiptRepo.Transition begin: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	var current domain.ReceiptStatus
	err = tx.GetContext(ctx, &current,
		"SELECT status FROM receipts WHERE id = $1 FOR UPDATE", id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrReceiptNotFound
		}
		return nil, fmt.Errorf("receiptRepo.Transition lock: %w", err)
	}

	if current.IsTerminal() {
		return nil, domain.ErrReceiptFinalized
	}
	if !current.CanTransition(newStatus) {
		return nil, domain.ErrInvalidStatus
	}

	if _, err := tx.ExecContext(ctx,
		"UPDATE receipts SET status = $1 WHERE id = $2", newStatus, id); err != nil {
		return nil, fmt.Errorf("receiptRepo.Transition update: %w", err)
	}

	entry := &domain.StatusHistoryEntry{
		ID:             uuid.New(),
		ReceiptID:      id,
		PreviousStatus: current,
		NewStatus:      newStatus,
		Commentary:     commentary,
		CreatedAt:      time.Now().UTC(),
	}
	if err := insertHistory(ctx, tx, entry); err != nil {
		return nil, fmt.Errorf("receiptRepo.Transition insert history: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("receiptRepo.Transition commit: %w", err)
	}
	return entry, nil
}

func (r *receiptRepo) ListHistory(ctx context.Context, receiptID uuid.UUID) ([]domain.StatusHistoryEntry, error) {
	var entries []domain.StatusHistoryEntry
	err := r.db.SelectContext(ctx, &entries,
		`SELECT * FROM status_history
		 WHERE receipt_id = $1
		 ORDER BY created_at ASC, id ASC`, receiptID)
	if err != nil {
		return nil, fmt.Errorf("receiptRepo.ListHistory: %w", err)
	}
	return entries, nil
}

func insertHistory(ctx context.Context, tx *sqlx.Tx, entry *domain.StatusHistoryEntry) error {
	_, err := tx.ExecContext(ctx,
		`INSERT INTO status_history (
			id, receipt_id, previous_status, new_status, commentary, created_at
		) VALUES ($1, $2, $3, $4, $5, $6)`,
		entry.ID, entry.ReceiptID, entry.PreviousStatus, entry.NewStatus,
		entry.Commentary, entry.CreatedAt)
	return err
}
