package storage

import (
	"context"
	"errors"
	"time"
)

// ErrNotFound is returned when a key does not resolve to a stored object.
var ErrNotFound = errors.New("object not found")

// ObjectStore defines the boundary to a remote object store.
type ObjectStore interface {
	// Put stores the object bytes under key.
	Put(ctx context.Context, key string, data []byte, contentType string) error

	// Delete removes the object under key.
	Delete(ctx context.Context, key string) error

	// SignedGetURL returns a time-limited URL granting read access to key.
	SignedGetURL(ctx context.Context, key string, ttl time.Duration) (string, error)
}
