package port

import (
	"context"
	"io"
)

// UploadInput encapsulates the parameters needed to upload a rendered
// artifact.
type UploadInput struct {
	Bucket      string
	Key         string
	Body        io.Reader
	ContentType string
}

// UploadOutput contains the result of a successful upload.
type UploadOutput struct {
	Location string
	ETag     string
}

// ObjectStorage abstracts the cloud object store exported artifacts are
// written to. Artifacts are write-once; expiry is left to bucket lifecycle
// rules rather than application-side deletes.
type ObjectStorage interface {
	Upload(ctx context.Context, input UploadInput) (*UploadOutput, error)
	GetPresignedURL(ctx context.Context, bucket, key string, expirySeconds int64) (string, error)
}
