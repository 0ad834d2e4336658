package ports

import (
	"context"
	"io"
)

// S3Client is the low-level object store client.
type S3Client interface {
	PutObject(ctx context.Context, key string, r io.Reader, size int64, contentType string) (publicURL string, err error)
}

// ArtifactService stores generated documents and returns a download URL.
type ArtifactService interface {
	ObjectKey(sessionID, filename string) string
	SaveFilled(ctx context.Context, sessionID, filename string, data []byte) (string, error)
}
