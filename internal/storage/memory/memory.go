package memory

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/spec-kit/workforce-directory/internal/storage"
)

// Store is an in-memory implementation of storage.ObjectStore used in tests
// and local development.
type Store struct {
	mu      sync.RWMutex
	objects map[string][]byte
}

// New creates an empty in-memory object store.
func New() *Store {
	return &Store{objects: make(map[string][]byte)}
}

// Put stores the object bytes under key.
func (s *Store) Put(ctx context.Context, key string, data []byte, contentType string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	buf := make([]byte, len(data))
	copy(buf, data)
	s.objects[key] = buf
	return nil
}

// Delete deletes the object under key.
func (s *Store) Delete(ctx context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.objects[key]; !exists {
		return storage.ErrNotFound
	}
	delete(s.objects, key)
	return nil
}

// SignedGetURL returns a fake signed URL carrying the key and expiry.
func (s *Store) SignedGetURL(ctx context.Context, key string, ttl time.Duration) (string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if _, exists := s.objects[key]; !exists {
		return "", storage.ErrNotFound
	}
	expires := time.Now().Add(ttl).Unix()
	return fmt.Sprintf("memory://%s?expires=%d", key, expires), nil
}

// Get returns stored bytes, for test assertions.
func (s *Store) Get(key string) ([]byte, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	data, ok := s.objects[key]
	return data, ok
}

// Len reports the number of stored objects.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.objects)
}
