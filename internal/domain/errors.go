package domain

import "errors"

var (
	ErrReceiptNotFound     = errors.New("receipt not found")
	ErrReceiptFinalized    = errors.New("receipt is already finalized")
	ErrInvalidStatus       = errors.New("invalid target status")
	ErrCommentaryRequired  = errors.New("rejection requires a commentary")
	ErrUnsupportedFileType = errors.New("unsupported file type")
	ErrFileTooLarge        = errors.New("file exceeds maximum allowed size")
	ErrUploadFailed        = errors.New("file upload to storage failed")
	ErrRecognitionFailed   = errors.New("text recognition failed")
)
