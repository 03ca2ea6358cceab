package storage

import (
	"context"
	"errors"
	"io"
)

var ErrObjectNotFound = errors.New("object not found")

type PutResult struct {
	Key      string
	Location string // публичный URL, пустой без PublicBaseURL
	ETag     string
}

// ObjectStorage - S3-совместимое хранилище объектов (Cloudflare R2, AWS S3, MinIO).
type ObjectStorage interface {
	Put(ctx context.Context, key string, contentType string, reader io.Reader) (*PutResult, error)

	// Get returns ErrObjectNotFound when the key does not exist.
	Get(ctx context.Context, key string) ([]byte, error)
}
