package service_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"recibo/internal/domain"
	"recibo/internal/service"
	"recibo/mocks"
)

func setupReceiptService() (service.ReceiptService, *mocks.MockReceiptRepo, *mocks.MockObjectStorage) {
	repo := new(mocks.MockReceiptRepo)
	storage := new(mocks.MockObjectStorage)
	return service.NewReceiptService(repo, storage, 900), repo, storage
}

func TestReceiptService_Approve_Success(t *testing.T) {
	svc, repo, _ := setupReceiptService()
	id := uuid.New()

	expected := &domain.StatusHistoryEntry{
		ID:             uuid.New(),
		ReceiptID:      id,
		PreviousStatus: domain.StatusStarted,
		NewStatus:      domain.StatusApproved,
		CreatedAt:      time.Now().UTC(),
	}
	repo.On("Transition", mock.Anything, id, domain.StatusApproved, "looks good").Return(expected, nil)

	entry, err := svc.Approve(context.Background(), id, "looks good")

	assert.NoError(t, err)
	assert.Equal(t, expected, entry)
	repo.AssertExpectations(t)
}

func TestReceiptService_Approve_EmptyCommentAllowed(t *testing.T) {
	svc, repo, _ := setupReceiptService()
	id := uuid.New()

	repo.On("Transition", mock.Anything, id, domain.StatusApproved, "").
		Return(&domain.StatusHistoryEntry{NewStatus: domain.StatusApproved}, nil)

	_, err := svc.Approve(context.Background(), id, "")
	assert.NoError(t, err)
}

func TestReceiptService_Reject_Success(t *testing.T) {
	svc, repo, _ := setupReceiptService()
	id := uuid.New()

	expected := &domain.StatusHistoryEntry{
		ReceiptID:      id,
		PreviousStatus: domain.StatusStarted,
		NewStatus:      domain.StatusRejected,
		Commentary:     "illegible totals",
	}
	repo.On("Transition", mock.Anything, id, domain.StatusRejected, "illegible totals").Return(expected, nil)

	entry, err := svc.Reject(context.Background(), id, "illegible totals")

	assert.NoError(t, err)
	assert.Equal(t, expected, entry)
}

func TestReceiptService_Reject_MissingReason(t *testing.T) {
	svc, repo, _ := setupReceiptService()

	for _, reason := range []string{"", "   ", "\n\t"} {
		_, err := svc.Reject(context.Background(), uuid.New(), reason)
		assert.ErrorIs(t, err, domain.ErrCommentaryRequired)
	}

	// A failed validation must leave no trace in the ledger.
	repo.AssertNotCalled(t, "Transition", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestReceiptService_Approve_AlreadyFinalized(t *testing.T) {
	svc, repo, _ := setupReceiptService()
	id := uuid.New()

	repo.On("Transition", mock.Anything, id, domain.StatusApproved, "").
		Return(nil, domain.ErrReceiptFinalized)

	_, err := svc.Approve(context.Background(), id, "")
	assert.ErrorIs(t, err, domain.ErrReceiptFinalized)
}

func TestReceiptService_Approve_NotFound(t *testing.T) {
	svc, repo, _ := setupReceiptService()
	id := uuid.New()

	repo.On("Transition", mock.Anything, id, domain.StatusApproved, "").
		Return(nil, domain.ErrReceiptNotFound)

	_, err := svc.Approve(context.Background(), id, "")
	assert.ErrorIs(t, err, domain.ErrReceiptNotFound)
}

func TestReceiptService_History(t *testing.T) {
	svc, repo, _ := setupReceiptService()
	id := uuid.New()

	receipt := &domain.Receipt{ID: id, Status: domain.StatusApproved}
	entries := []domain.StatusHistoryEntry{
		{ReceiptID: id, PreviousStatus: domain.StatusNone, NewStatus: domain.StatusStarted},
		{ReceiptID: id, PreviousStatus: domain.StatusStarted, NewStatus: domain.StatusApproved},
	}
	repo.On("GetByID", mock.Anything, id).Return(receipt, nil)
	repo.On("ListHistory", mock.Anything, id).Return(entries, nil)

	got, err := svc.History(context.Background(), id)

	assert.NoError(t, err)
	assert.Equal(t, entries, got)
	assert.Equal(t, domain.StatusNone, got[0].PreviousStatus)
}

func TestReceiptService_History_NotFound(t *testing.T) {
	svc, repo, _ := setupReceiptService()
	id := uuid.New()

	repo.On("GetByID", mock.Anything, id).Return(nil, domain.ErrReceiptNotFound)

	_, err := svc.History(context.Background(), id)
	assert.ErrorIs(t, err, domain.ErrReceiptNotFound)
	repo.AssertNotCalled(t, "ListHistory", mock.Anything, mock.Anything)
}

func TestReceiptService_FileURL(t *testing.T) {
	svc, repo, storage := setupReceiptService()
	id := uuid.New()

	receipt := &domain.Receipt{
		ID:       id,
		S3Bucket: "recibo-artifacts",
		S3Key:    "receipts/" + id.String() + "/scan.png",
	}
	repo.On("GetByID", mock.Anything, id).Return(receipt, nil)
	storage.On("GetPresignedURL", mock.Anything, receipt.S3Bucket, receipt.S3Key, int64(900)).
		Return("https://example.com/signed", nil)

	url, err := svc.FileURL(context.Background(), id)

	assert.NoError(t, err)
	assert.Equal(t, "https://example.com/signed", url)
}

func TestReceiptService_FileURL_NotFound(t *testing.T) {
	svc, repo, storage := setupReceiptService()
	id := uuid.New()

	repo.On("GetByID", mock.Anything, id).Return(nil, domain.ErrReceiptNotFound)

	_, err := svc.FileURL(context.Background(), id)
	assert.ErrorIs(t, err, domain.ErrReceiptNotFound)
	storage.AssertNotCalled(t, "GetPresignedURL",
		mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}
