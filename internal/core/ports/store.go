package ports

import "go.trai.ch/lesscache/internal/core/domain"

// EntryStore maps source identities to cache entries.
//
//go:generate go run go.uber.org/mock/mockgen -source=store.go -destination=mocks/mock_store.go -package=mocks
type EntryStore interface {
	// Get returns the entry stored for key.
	Get(key domain.SourceKey) (*domain.CacheEntry, bool)

	// Put stores entry under key, replacing any previous entry.
	Put(key domain.SourceKey, entry *domain.CacheEntry)

	// Clear removes all entries.
	Clear()

	// Len returns the number of stored entries.
	Len() int

	// Keys returns the keys of all stored entries.
	Keys() []domain.SourceKey
}
