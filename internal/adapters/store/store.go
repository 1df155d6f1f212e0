// Package store implements the in-memory cache entry store.
package store

import (
	"sync"

	"go.trai.ch/lesscache/internal/core/domain"
	"go.trai.ch/lesscache/internal/core/ports"
)

var _ ports.EntryStore = (*Store)(nil)

// Store implements ports.EntryStore with a map guarded by a RWMutex.
//
// Entries are published fully built and never mutated afterwards, so readers
// may use a returned entry without holding the lock.
type Store struct {
	mu      sync.RWMutex
	entries map[domain.SourceKey]*domain.CacheEntry
}

// NewStore creates an empty Store.
func NewStore() *Store {
	return &Store{
		entries: make(map[domain.SourceKey]*domain.CacheEntry),
	}
}

// Get retrieves the entry for a given key.
func (s *Store) Get(key domain.SourceKey) (*domain.CacheEntry, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	entry, ok := s.entries[key]
	return entry, ok
}

// Put stores the entry, replacing any previous one.
func (s *Store) Put(key domain.SourceKey, entry *domain.CacheEntry) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.entries[key] = entry
}

// Clear drops every entry.
func (s *Store) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.entries = make(map[domain.SourceKey]*domain.CacheEntry)
}

// Len returns the number of entries.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return len(s.entries)
}

// Keys returns the keys of all entries in no particular order.
func (s *Store) Keys() []domain.SourceKey {
	s.mu.RLock()
	defer s.mu.RUnlock()

	keys := make([]domain.SourceKey, 0, len(s.entries))
	for k := range s.entries {
		keys = append(keys, k)
	}
	return keys
}
