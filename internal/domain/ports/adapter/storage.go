package adapter

import (
	"context"
	"time"
)

// ObjectStorage is the durable store artifacts are re-hosted into.
type ObjectStorage interface {
	Put(ctx context.Context, path string, body []byte, contentType string) error
	SignedURL(ctx context.Context, path string, ttl time.Duration) (string, error)
}
