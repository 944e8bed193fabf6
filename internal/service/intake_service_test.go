package service_test

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"recibo/internal/config"
	"recibo/internal/domain"
	"recibo/internal/port"
	"recibo/internal/service"
	"recibo/mocks"
)

const sampleText = "ACME Corp\nFactura N° A-1023\nFecha: 05/03/2024\nTotal a Pagar: 1.250,00"

// pdfBody sniffs as application/pdf for the magic-byte check.
var pdfBody = []byte("%PDF-1.4 sample receipt content")

func setupIntakeService(reviewer string) (
	service.IntakeService,
	*mocks.MockReceiptRepo,
	*mocks.MockObjectStorage,
	*mocks.MockPreprocessor,
	*mocks.MockRecognizer,
	*mocks.MockNotifier,
) {
	repo := new(mocks.MockReceiptRepo)
	storage := new(mocks.MockObjectStorage)
	pre := new(mocks.MockPreprocessor)
	rec := new(mocks.MockRecognizer)
	notifier := new(mocks.MockNotifier)

	s3cfg := &config.S3Config{Bucket: "test-bucket", MaxFileSizeMB: 10}
	emailCfg := &config.EmailConfig{Reviewer: reviewer}
	svc := service.NewIntakeService(repo, storage, pre, rec, notifier, s3cfg, emailCfg, "")
	return svc, repo, storage, pre, rec, notifier
}

func pdfInput() service.IntakeInput {
	return service.IntakeInput{
		FileName: "invoice.pdf",
		Size:     int64(len(pdfBody)),
		File:     bytes.NewReader(pdfBody),
	}
}

func TestIntakeService_Ingest_Success(t *testing.T) {
	svc, repo, storage, pre, rec, notifier := setupIntakeService("reviewer@example.com")

	pre.On("Normalize", mock.Anything, mock.AnythingOfType("string")).Return("/tmp/normalized.png", nil)
	rec.On("Recognize", mock.Anything, "/tmp/normalized.png").Return(sampleText, nil)
	storage.On("Upload", mock.Anything, mock.AnythingOfType("port.UploadInput")).
		Return(&port.UploadOutput{Location: "https://test-bucket/receipts/x"}, nil)
	repo.On("CreateWithHistory", mock.Anything, mock.AnythingOfType("*domain.Receipt"), "Receipt created and processing started.").
		Run(func(args mock.Arguments) {
			r := args.Get(1).(*domain.Receipt)
			r.Status = domain.StatusStarted
		}).
		Return(&domain.StatusHistoryEntry{PreviousStatus: domain.StatusNone, NewStatus: domain.StatusStarted}, nil)
	notifier.On("SendReviewRequest", mock.Anything, "reviewer@example.com", mock.AnythingOfType("*domain.Receipt")).Return(nil)

	receipt, err := svc.Ingest(context.Background(), pdfInput())

	assert.NoError(t, err)
	assert.Equal(t, "ACME Corp", receipt.Provider)
	assert.Equal(t, "A-1023", receipt.InvoiceNumber)
	assert.Equal(t, "05/03/2024", receipt.IssueDate)
	assert.Equal(t, 1250.00, receipt.TotalAmount)
	assert.Equal(t, domain.StatusStarted, receipt.Status)
	assert.Equal(t, sampleText, receipt.RawText)
	assert.Equal(t, "test-bucket", receipt.S3Bucket)
	repo.AssertExpectations(t)
	notifier.AssertExpectations(t)
}

func TestIntakeService_Ingest_UnsupportedExtension(t *testing.T) {
	svc, repo, _, _, _, _ := setupIntakeService("")

	_, err := svc.Ingest(context.Background(), service.IntakeInput{
		FileName: "notes.txt",
		Size:     5,
		File:     bytes.NewReader([]byte("hello")),
	})

	assert.ErrorIs(t, err, domain.ErrUnsupportedFileType)
	repo.AssertNotCalled(t, "CreateWithHistory", mock.Anything, mock.Anything, mock.Anything)
}

func TestIntakeService_Ingest_FileTooLarge(t *testing.T) {
	svc, _, _, _, _, _ := setupIntakeService("")

	_, err := svc.Ingest(context.Background(), service.IntakeInput{
		FileName: "huge.pdf",
		Size:     11 * 1024 * 1024,
		File:     bytes.NewReader(pdfBody),
	})

	assert.ErrorIs(t, err, domain.ErrFileTooLarge)
}

func TestIntakeService_Ingest_PreprocessFailureAborts(t *testing.T) {
	svc, repo, storage, pre, _, _ := setupIntakeService("")

	pre.On("Normalize", mock.Anything, mock.AnythingOfType("string")).
		Return("", errors.New("cannot decode source"))

	_, err := svc.Ingest(context.Background(), pdfInput())

	assert.ErrorIs(t, err, domain.ErrRecognitionFailed)
	repo.AssertNotCalled(t, "CreateWithHistory", mock.Anything, mock.Anything, mock.Anything)
	storage.AssertNotCalled(t, "Upload", mock.Anything, mock.Anything)
}

func TestIntakeService_Ingest_RecognizeFailureAborts(t *testing.T) {
	svc, repo, _, pre, rec, _ := setupIntakeService("")

	pre.On("Normalize", mock.Anything, mock.AnythingOfType("string")).Return("/tmp/normalized.png", nil)
	rec.On("Recognize", mock.Anything, "/tmp/normalized.png").
		Return("", errors.New("tesseract exited 1"))

	_, err := svc.Ingest(context.Background(), pdfInput())

	assert.ErrorIs(t, err, domain.ErrRecognitionFailed)
	repo.AssertNotCalled(t, "CreateWithHistory", mock.Anything, mock.Anything, mock.Anything)
}

func TestIntakeService_Ingest_UploadFailureAborts(t *testing.T) {
	svc, repo, storage, pre, rec, _ := setupIntakeService("")

	pre.On("Normalize", mock.Anything, mock.AnythingOfType("string")).Return("/tmp/normalized.png", nil)
	rec.On("Recognize", mock.Anything, "/tmp/normalized.png").Return(sampleText, nil)
	storage.On("Upload", mock.Anything, mock.AnythingOfType("port.UploadInput")).
		Return(nil, errors.New("connection reset"))

	_, err := svc.Ingest(context.Background(), pdfInput())

	assert.ErrorIs(t, err, domain.ErrUploadFailed)
	repo.AssertNotCalled(t, "CreateWithHistory", mock.Anything, mock.Anything, mock.Anything)
}

func TestIntakeService_Ingest_CreateFailureRemovesUpload(t *testing.T) {
	svc, repo, storage, pre, rec, _ := setupIntakeService("")

	pre.On("Normalize", mock.Anything, mock.AnythingOfType("string")).Return("/tmp/normalized.png", nil)
	rec.On("Recognize", mock.Anything, "/tmp/normalized.png").Return(sampleText, nil)
	storage.On("Upload", mock.Anything, mock.AnythingOfType("port.UploadInput")).
		Return(&port.UploadOutput{}, nil)
	repo.On("CreateWithHistory", mock.Anything, mock.AnythingOfType("*domain.Receipt"), mock.AnythingOfType("string")).
		Return(nil, errors.New("database is down"))
	storage.On("Delete", mock.Anything, "test-bucket", mock.AnythingOfType("string")).Return(nil)

	_, err := svc.Ingest(context.Background(), pdfInput())

	// A failed create must not strand the already-stored object.
	assert.Error(t, err)
	storage.AssertCalled(t, "Delete", mock.Anything, "test-bucket", mock.AnythingOfType("string"))
}

func TestIntakeService_Ingest_NotifierFailureTolerated(t *testing.T) {
	svc, repo, storage, pre, rec, notifier := setupIntakeService("reviewer@example.com")

	pre.On("Normalize", mock.Anything, mock.AnythingOfType("string")).Return("/tmp/normalized.png", nil)
	rec.On("Recognize", mock.Anything, "/tmp/normalized.png").Return(sampleText, nil)
	storage.On("Upload", mock.Anything, mock.AnythingOfType("port.UploadInput")).
		Return(&port.UploadOutput{}, nil)
	repo.On("CreateWithHistory", mock.Anything, mock.AnythingOfType("*domain.Receipt"), mock.AnythingOfType("string")).
		Return(&domain.StatusHistoryEntry{}, nil)
	notifier.On("SendReviewRequest", mock.Anything, "reviewer@example.com", mock.AnythingOfType("*domain.Receipt")).
		Return(errors.New("smtp unreachable"))

	receipt, err := svc.Ingest(context.Background(), pdfInput())

	// Notification is best-effort: the created receipt survives.
	assert.NoError(t, err)
	assert.NotNil(t, receipt)
}

func TestIntakeService_Ingest_EmptyRecognizedText(t *testing.T) {
	svc, repo, storage, pre, rec, _ := setupIntakeService("")

	pre.On("Normalize", mock.Anything, mock.AnythingOfType("string")).Return("/tmp/normalized.png", nil)
	rec.On("Recognize", mock.Anything, "/tmp/normalized.png").Return("", nil)
	storage.On("Upload", mock.Anything, mock.AnythingOfType("port.UploadInput")).
		Return(&port.UploadOutput{}, nil)
	repo.On("CreateWithHistory", mock.Anything, mock.AnythingOfType("*domain.Receipt"), mock.AnythingOfType("string")).
		Return(&domain.StatusHistoryEntry{}, nil)

	receipt, err := svc.Ingest(context.Background(), pdfInput())

	// Garbled or empty recognition is not an error: the receipt is
	// created with absent fields and a zero total for a human to review.
	assert.NoError(t, err)
	assert.Empty(t, receipt.Provider)
	assert.Empty(t, receipt.InvoiceNumber)
	assert.Zero(t, receipt.TotalAmount)
}
