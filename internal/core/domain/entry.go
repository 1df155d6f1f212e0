package domain

import (
	"slices"
	"strings"
	"time"
)

// CacheEntry holds the last compiled output of a source together with the
// timestamps it was validated against. Entries are immutable once stored.
type CacheEntry struct {
	// Output is the compiled result.
	Output CompiledOutput
	// Modified is the root source's modification time sampled for this compilation.
	Modified time.Time
	// Imports maps every transitively imported source to its modification time at compile time.
	Imports map[SourceKey]time.Time
}

// NewCacheEntry builds a complete entry. The imports map is copied.
func NewCacheEntry(output CompiledOutput, modified time.Time, imports map[SourceKey]time.Time) *CacheEntry {
	copied := make(map[SourceKey]time.Time, len(imports))
	for k, v := range imports {
		copied[k] = v
	}
	return &CacheEntry{
		Output:   output,
		Modified: modified,
		Imports:  copied,
	}
}

// ImportKeys returns the tracked import keys sorted by location.
func (e *CacheEntry) ImportKeys() []SourceKey {
	keys := make([]SourceKey, 0, len(e.Imports))
	for k := range e.Imports {
		keys = append(keys, k)
	}
	slices.SortFunc(keys, func(a, b SourceKey) int {
		return strings.Compare(a.String(), b.String())
	})
	return keys
}
