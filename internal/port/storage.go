package port

import (
	"context"
	"io"
)

// UploadInput carries one receipt artifact to object storage. Size is
// advisory; the adapter streams Body regardless.
type UploadInput struct {
	Bucket      string
	Key         string
	Body        io.Reader
	ContentType string
	Size        int64
}

// UploadOutput describes the stored object.
type UploadOutput struct {
	Location string
	ETag     string
}

// ObjectStorage abstracts the artifact store holding uploaded receipt
// originals. Keys are written once at intake and never overwritten;
// presigned URLs let reviewers fetch the original without credentials.
type ObjectStorage interface {
	Upload(ctx context.Context, input UploadInput) (*UploadOutput, error)
	Download(ctx context.Context, bucket, key string) ([]byte, error)
	Delete(ctx context.Context, bucket, key string) error
	GetPresignedURL(ctx context.Context, bucket, key string, expirySeconds int64) (string, error)
}
