// Package memory provides an in-process KeyValueStore. Nothing survives a
// restart; it backs tests and throwaway sessions.
package memory

import (
	"context"
	"sync"

	"docdesk/internal/domain"
	"docdesk/internal/port"
)

type kvStore struct {
	mu      sync.RWMutex
	entries map[string][]byte
}

// NewKVStore creates an empty in-memory KeyValueStore.
func NewKVStore() port.KeyValueStore {
	return &kvStore{entries: make(map[string][]byte)}
}

func (s *kvStore) Get(_ context.Context, key string) ([]byte, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	v, ok := s.entries[key]
	if !ok {
		return nil, domain.ErrKeyNotFound
	}
	return append([]byte(nil), v...), nil
}

func (s *kvStore) Put(_ context.Context, key string, value []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries[key] = append([]byte(nil), value...)
	return nil
}

func (s *kvStore) Delete(_ context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.entries, key)
	return nil
}

func (s *kvStore) Close() error {
	return nil
}
