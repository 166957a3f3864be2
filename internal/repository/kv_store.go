package repository

import (
	"context"
	"errors"
	"sync"
)

var ErrKeyNotFound = errors.New("key not found")

// KVStore is the persistent string key-value substrate shared by user
// acquisitions and background sync. Writes fully replace the stored value.
type KVStore interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key, value string) error
	Delete(ctx context.Context, key string) error
	Close() error
}

type memoryKVStore struct {
	mu    sync.RWMutex
	items map[string]string
}

// NewMemoryKVStore returns a process-local store. Nothing survives a restart.
func NewMemoryKVStore() KVStore {
	return &memoryKVStore{items: make(map[string]string)}
}

func (s *memoryKVStore) Get(_ context.Context, key string) (string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	v, ok := s.items[key]
	if !ok {
		return "", ErrKeyNotFound
	}
	return v, nil
}

func (s *memoryKVStore) Set(_ context.Context, key, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.items[key] = value
	return nil
}

func (s *memoryKVStore) Delete(_ context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.items, key)
	return nil
}

func (s *memoryKVStore) Close() error {
	return nil
}
