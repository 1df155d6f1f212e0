// Package refresher recompiles cached sources in the background when one of
// the files they were built from changes.
package refresher

import (
	"context"
	"fmt"
	"path/filepath"
	"slices"
	"strings"
	"sync"

	"go.trai.ch/lesscache/internal/core/domain"
	"go.trai.ch/lesscache/internal/core/ports"
	"go.trai.ch/zerr"
)

// Cache is the part of the cache manager the refresher drives.
type Cache interface {
	// Refresh recompiles src and replaces its entry.
	Refresh(ctx context.Context, src ports.Source) (domain.CompiledOutput, error)
	// TrackedImports returns the imports recorded for key.
	TrackedImports(key domain.SourceKey) []domain.SourceKey
}

// Refresher keeps an index from every tracked path to the roots built from it.
type Refresher struct {
	cache  Cache
	logger ports.Logger

	mu         sync.RWMutex
	roots      map[domain.SourceKey]ports.Source
	deps       map[domain.SourceKey][]domain.SourceKey
	dependents map[domain.SourceKey]map[domain.SourceKey]struct{}
	rebuilds   int
}

// New creates a Refresher.
func New(cache Cache, logger ports.Logger) *Refresher {
	return &Refresher{
		cache:      cache,
		logger:     logger,
		roots:      make(map[domain.SourceKey]ports.Source),
		deps:       make(map[domain.SourceKey][]domain.SourceKey),
		dependents: make(map[domain.SourceKey]map[domain.SourceKey]struct{}),
	}
}

// Track records src as a root and indexes the imports of its current entry.
// Calling Track again replaces the previous index for src. It only takes the
// write lock when the import set changed.
func (r *Refresher) Track(src ports.Source) {
	key := src.Key()
	deps := append([]domain.SourceKey{key}, r.cache.TrackedImports(key)...)

	r.mu.RLock()
	unchanged := r.roots[key] == src && slices.Equal(r.deps[key], deps)
	r.mu.RUnlock()
	if unchanged {
		return
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	r.unlink(key)
	r.rebuilds++
	r.roots[key] = src
	r.deps[key] = deps
	for _, dep := range deps {
		set, ok := r.dependents[dep]
		if !ok {
			set = make(map[domain.SourceKey]struct{})
			r.dependents[dep] = set
		}
		set[key] = struct{}{}
	}
}

// Forget stops tracking the root with the given key.
func (r *Refresher) Forget(key domain.SourceKey) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.unlink(key)
	delete(r.roots, key)
}

// unlink removes the index entries of root. r.mu must be held.
func (r *Refresher) unlink(root domain.SourceKey) {
	for _, dep := range r.deps[root] {
		set := r.dependents[dep]
		delete(set, root)
		if len(set) == 0 {
			delete(r.dependents, dep)
		}
	}
	delete(r.deps, root)
}

// Affected returns the tracked roots depending on any of paths, sorted by key.
func (r *Refresher) Affected(paths []string) []ports.Source {
	r.mu.RLock()
	defer r.mu.RUnlock()

	seen := make(map[domain.SourceKey]struct{})
	var affected []ports.Source
	for _, path := range paths {
		for root := range r.dependents[keyFor(path)] {
			if _, ok := seen[root]; ok {
				continue
			}
			seen[root] = struct{}{}
			affected = append(affected, r.roots[root])
		}
	}

	slices.SortFunc(affected, func(a, b ports.Source) int {
		return strings.Compare(a.Key().String(), b.Key().String())
	})
	return affected
}

// Invalidate recompiles every root depending on one of paths and returns how
// many were refreshed. A failed compilation keeps the previous entry.
func (r *Refresher) Invalidate(ctx context.Context, paths []string) int {
	refreshed := 0
	for _, src := range r.Affected(paths) {
		if ctx.Err() != nil {
			return refreshed
		}

		if _, err := r.cache.Refresh(ctx, src); err != nil {
			r.logger.Error(zerr.With(err, "source", src.Key().String()))
			continue
		}

		r.Track(src)
		refreshed++
		r.logger.Info(fmt.Sprintf("refreshed %s", src.Key()))
	}
	return refreshed
}

// Len returns the number of tracked roots.
func (r *Refresher) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.roots)
}

func keyFor(path string) domain.SourceKey {
	if abs, err := filepath.Abs(path); err == nil {
		path = abs
	}
	return domain.NewSourceKey(filepath.Clean(path))
}
