package ports

import "time"

// Cache miss reasons reported to Metrics.
const (
	MissAbsent  = "absent"
	MissStale   = "stale"
	MissCleared = "cleared"
)

// Metrics records cache behaviour.
//
//go:generate go run go.uber.org/mock/mockgen -source=metrics.go -destination=mocks/mock_metrics.go -package=mocks
type Metrics interface {
	// CacheHit records a lookup answered from the store.
	CacheHit()
	// CacheMiss records a lookup that needed a compilation.
	CacheMiss(reason string)
	// CompileDuration records how long a compilation took and whether it failed.
	CompileDuration(d time.Duration, err error)
	// Cleared records a bulk invalidation.
	Cleared()
	// EntryCount reports the current number of stored entries.
	EntryCount(n int)
}
