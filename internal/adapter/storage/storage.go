package storage

import (
	"context"
	"io"
	"time"
)

// ObjectStore blob storage used for project files
type ObjectStore interface {
	// Put uploads body under key
	Put(ctx context.Context, key string, body io.Reader, size int64, contentType string) error
	// PresignGet returns a time-limited download link for key
	PresignGet(ctx context.Context, key string, ttl time.Duration) (string, error)
	// Delete removes key; deleting a missing key is not an error
	Delete(ctx context.Context, key string) error
}
