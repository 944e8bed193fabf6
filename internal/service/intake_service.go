package service

import (
	"context"
	"fmt"
	"io"
	"log"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"

	"recibo/internal/config"
	"recibo/internal/domain"
	"recibo/internal/extract"
	"recibo/internal/port"
)

// IntakeInput is the DTO for ingesting one uploaded document.
type IntakeInput struct {
	FileName string
	Size     int64
	File     io.ReadSeeker
}

// IntakeService drives the end-to-end ingestion pipeline: store the
// original artifact, normalize it, recognize its text, extract fields
// and create the receipt with its first history entry.
type IntakeService interface {
	Ingest(ctx context.Context, input IntakeInput) (*domain.Receipt, error)
}

type intakeService struct {
	repo         port.ReceiptRepository
	storage      port.ObjectStorage
	preprocessor port.Preprocessor
	recognizer   port.Recognizer
	notifier     port.Notifier
	s3cfg        *config.S3Config
	emailCfg     *config.EmailConfig
	workDir      string
}

// NewIntakeService creates a new IntakeService implementation.
func NewIntakeService(
	repo port.ReceiptRepository,
	storage port.ObjectStorage,
	preprocessor port.Preprocessor,
	recognizer port.Recognizer,
	notifier port.Notifier,
	s3cfg *config.S3Config,
	emailCfg *config.EmailConfig,
	workDir string,
) IntakeService {
	return &intakeService{
		repo:         repo,
		storage:      storage,
		preprocessor: preprocessor,
		recognizer:   recognizer,
		notifier:     notifier,
		s3cfg:        s3cfg,
		emailCfg:     emailCfg,
		workDir:      workDir,
	}
}

func (s *intakeService) Ingest(ctx context.Context, input IntakeInput) (*domain.Receipt, error) {
	// Validate file extension
	ext := strings.ToLower(strings.TrimPrefix(filepath.Ext(input.FileName), "."))
	fileType, ok := domain.AllowedExtensions[ext]
	if !ok {
		return nil, domain.ErrUnsupportedFileType
	}

	// Validate file size
	maxBytes := s.s3cfg.MaxFileSizeMB * 1024 * 1024
	if input.Size > maxBytes {
		return nil, domain.ErrFileTooLarge
	}

	// Read first 512 bytes for magic-byte content type detection
	buf := make([]byte, 512)
	n, err := input.File.Read(buf)
	if err != nil && err != io.EOF {
		return nil, fmt.Errorf("reading file header: %w", err)
	}
	if _, ok := domain.AllowedContentTypes[http.DetectContentType(buf[:n])]; !ok {
		return nil, domain.ErrUnsupportedFileType
	}
	if _, err := input.File.Seek(0, io.SeekStart); err != nil {
		return nil, fmt.Errorf("seeking file: %w", err)
	}

	// Spool the upload to a temp file the recognition binaries can read.
	tmpPath, err := s.spool(input, ext)
	if err != nil {
		return nil, err
	}
	defer func() { _ = os.Remove(tmpPath) }()

	// Normalize and recognize. Any failure here aborts the intake before
	// a receipt exists: no partial or garbage records.
	normalized, err := s.preprocessor.Normalize(ctx, tmpPath)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrRecognitionFailed, err)
	}
	if normalized != tmpPath {
		defer func() { _ = os.Remove(normalized) }()
	}
	rawText, err := s.recognizer.Recognize(ctx, normalized)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrRecognitionFailed, err)
	}

	fields := extract.Extract(rawText)

	// Store the original artifact as provenance.
	if _, err := input.File.Seek(0, io.SeekStart); err != nil {
		return nil, fmt.Errorf("seeking file: %w", err)
	}
	receiptID := uuid.New()
	s3Key := fmt.Sprintf("receipts/%s/%s", receiptID, input.FileName)
	_, err = s.storage.Upload(ctx, port.UploadInput{
		Bucket:      s.s3cfg.Bucket,
		Key:         s3Key,
		Body:        input.File,
		ContentType: domain.AllowedFileTypes[fileType],
		Size:        input.Size,
	})
	if err != nil {
		log.Printf("intakeService.Ingest: upload failed for %s: %v", input.FileName, err)
		return nil, domain.ErrUploadFailed
	}

	receipt := &domain.Receipt{
		ID:            receiptID,
		Provider:      fields.Provider,
		InvoiceNumber: fields.InvoiceNumber,
		IssueDate:     fields.IssueDate,
		TotalAmount:   extract.ParseAmount(fields.TotalAmount),
		S3Bucket:      s.s3cfg.Bucket,
		S3Key:         s3Key,
		OriginalName:  input.FileName,
		RawText:       rawText,
	}

	if _, err := s.repo.CreateWithHistory(ctx, receipt, "Receipt created and processing started."); err != nil {
		// The object was already stored; remove it so a failed create
		// leaves no orphan behind. Cleanup is best-effort.
		if delErr := s.storage.Delete(ctx, s.s3cfg.Bucket, s3Key); delErr != nil {
			log.Printf("intakeService.Ingest: orphan cleanup failed for %s: %v", s3Key, delErr)
		}
		return nil, fmt.Errorf("creating receipt: %w", err)
	}

	// Notification is best-effort: a delivery failure never rolls back
	// the created receipt.
	if s.emailCfg.Reviewer != "" {
		if err := s.notifier.SendReviewRequest(ctx, s.emailCfg.Reviewer, receipt); err != nil {
			log.Printf("intakeService.Ingest: notification failed for receipt %s: %v", receipt.ID, err)
		}
	}

	return receipt, nil
}

func (s *intakeService) spool(input IntakeInput, ext string) (string, error) {
	tmp, err := os.CreateTemp(s.workDir, "intake-*."+ext)
	if err != nil {
		return "", fmt.Errorf("creating temp file: %w", err)
	}
	defer func() { _ = tmp.Close() }()

	if _, err := io.Copy(tmp, input.File); err != nil {
		_ = os.Remove(tmp.Name())
		return "", fmt.Errorf("spooling upload: %w", err)
	}
	return tmp.Name(), nil
}
