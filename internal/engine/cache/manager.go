// Package cache implements the compilation cache manager.
package cache

import (
	"context"
	"strconv"
	"sync"
	"sync/atomic"
	"time"

	"go.trai.ch/lesscache/internal/core/domain"
	"go.trai.ch/lesscache/internal/core/ports"
	"golang.org/x/sync/singleflight"
)

// Manager answers compiled output for sources, recompiling only when a source
// or one of its transitive imports changed since the stored compilation.
//
// Validation is timestamp based. The root timestamp is sampled before the
// content is read, so an edit racing a compilation leaves an older timestamp
// in the entry and the next lookup recompiles.
type Manager struct {
	store    ports.EntryStore
	compiler ports.Compiler
	factory  ports.ConfigurationFactory
	logger   ports.Logger
	tracer   ports.Tracer
	metrics  ports.Metrics
	now      func() time.Time

	generation atomic.Uint64
	flights    singleflight.Group

	mu      sync.RWMutex
	handles map[domain.SourceKey]ports.Source
}

// NewManager creates a Manager. A nil factory is replaced by one returning
// domain.DefaultConfiguration.
func NewManager(
	store ports.EntryStore,
	compiler ports.Compiler,
	factory ports.ConfigurationFactory,
	logger ports.Logger,
	opts ...Option,
) *Manager {
	if factory == nil {
		factory = DefaultFactory
	}
	m := &Manager{
		store:    store,
		compiler: compiler,
		factory:  factory,
		logger:   logger,
		tracer:   nopTracer{},
		metrics:  nopMetrics{},
		now:      time.Now,
		handles:  make(map[domain.SourceKey]ports.Source),
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// DefaultFactory builds the standard configuration.
var DefaultFactory ports.ConfigurationFactory = ports.ConfigurationFactoryFunc(domain.DefaultConfiguration)

// CompiledOutput returns the compiled output for src, compiling it when no
// fresh entry exists. Failures leave the stored entry untouched.
func (m *Manager) CompiledOutput(ctx context.Context, src ports.Source) (domain.CompiledOutput, error) {
	key := src.Key()
	ctx, span := m.tracer.Start(ctx, "cache.lookup", ports.WithAttribute("lesscache.source", key.String()))
	defer span.End()

	gen := m.generation.Load()
	output, reason, err := m.lookup(src, gen)
	if err != nil {
		span.RecordError(err)
		return domain.CompiledOutput{}, err
	}
	if reason == "" {
		span.SetAttribute("lesscache.hit", true)
		m.metrics.CacheHit()
		return output, nil
	}
	span.SetAttribute("lesscache.hit", false)
	span.SetAttribute("lesscache.miss_reason", reason)
	m.metrics.CacheMiss(reason)

	v, err, _ := m.flights.Do(flightKey(gen, key), func() (any, error) {
		// A caller that finished compiling this key just before us already stored it.
		if output, again, err := m.lookup(src, gen); err == nil && again == "" {
			return output, nil
		}
		return m.compile(ctx, src)
	})
	if err != nil {
		span.RecordError(err)
		return domain.CompiledOutput{}, err
	}
	return v.(domain.CompiledOutput), nil
}

// Refresh recompiles src regardless of the stored entry.
func (m *Manager) Refresh(ctx context.Context, src ports.Source) (domain.CompiledOutput, error) {
	gen := m.generation.Load()
	v, err, _ := m.flights.Do(flightKey(gen, src.Key()), func() (any, error) {
		return m.compile(ctx, src)
	})
	if err != nil {
		return domain.CompiledOutput{}, err
	}
	return v.(domain.CompiledOutput), nil
}

// LastModifiedTime returns the current modification time of src.
// It neither reads nor populates the cache.
func (m *Manager) LastModifiedTime(src ports.Source) (time.Time, error) {
	return src.LastModified()
}

// Clear drops every entry. Lookups that read an entry before Clear returns
// treat it as absent.
func (m *Manager) Clear() {
	m.generation.Add(1)
	m.store.Clear()

	m.mu.Lock()
	m.handles = make(map[domain.SourceKey]ports.Source)
	m.mu.Unlock()

	m.metrics.Cleared()
	m.metrics.EntryCount(0)
}

// Fresh reports whether a lookup of src would currently be answered from the store.
func (m *Manager) Fresh(src ports.Source) bool {
	_, reason, err := m.lookup(src, m.generation.Load())
	return err == nil && reason == ""
}

// Len returns the number of stored entries.
func (m *Manager) Len() int {
	return m.store.Len()
}

// TrackedImports returns the transitive imports recorded for key, sorted.
func (m *Manager) TrackedImports(key domain.SourceKey) []domain.SourceKey {
	entry, ok := m.store.Get(key)
	if !ok {
		return nil
	}
	return entry.ImportKeys()
}

// lookup returns the stored output if it is fresh. Otherwise it returns the miss reason.
func (m *Manager) lookup(src ports.Source, gen uint64) (domain.CompiledOutput, string, error) {
	entry, ok := m.store.Get(src.Key())
	if !ok {
		return domain.CompiledOutput{}, ports.MissAbsent, nil
	}

	fresh, err := m.isFresh(src, entry)
	if err != nil {
		return domain.CompiledOutput{}, "", err
	}
	if m.generation.Load() != gen {
		return domain.CompiledOutput{}, ports.MissCleared, nil
	}
	if !fresh {
		return domain.CompiledOutput{}, ports.MissStale, nil
	}
	return entry.Output, "", nil
}

// isFresh compares the recorded timestamps with the current ones. Imports are
// re-resolved by the identities recorded in the entry, not re-walked. An import
// recorded with a zero timestamp was unreadable when compiled and stays
// unchanged while it remains unreadable.
func (m *Manager) isFresh(src ports.Source, entry *domain.CacheEntry) (bool, error) {
	modified, err := src.LastModified()
	if err != nil {
		return false, err
	}
	if !modified.Equal(entry.Modified) {
		return false, nil
	}

	m.mu.RLock()
	defer m.mu.RUnlock()

	for key, recorded := range entry.Imports {
		handle, ok := m.handles[key]
		if !ok {
			return false, nil
		}
		current, err := handle.LastModified()
		if err != nil {
			// Missing at compile time and still missing.
			if recorded.IsZero() {
				continue
			}
			return false, nil
		}
		if !current.Equal(recorded) {
			return false, nil
		}
	}
	return true, nil
}

// compile builds a new entry for src and publishes it.
func (m *Manager) compile(ctx context.Context, src ports.Source) (domain.CompiledOutput, error) {
	key := src.Key()
	ctx, span := m.tracer.Start(ctx, "cache.compile", ports.WithAttribute("lesscache.source", key.String()))
	defer span.End()

	cfg := m.factory.NewConfiguration()

	modified, err := src.LastModified()
	if err != nil {
		span.RecordError(err)
		return domain.CompiledOutput{}, err
	}

	content, err := src.Content()
	if err != nil {
		span.RecordError(err)
		return domain.CompiledOutput{}, err
	}

	start := m.now()
	css, err := m.compiler.Compile(ctx, src, content, cfg)
	m.metrics.CompileDuration(m.now().Sub(start), err)
	if err != nil {
		span.RecordError(err)
		return domain.CompiledOutput{}, err
	}

	imports := collectImports(src)
	stamps := make(map[domain.SourceKey]time.Time, len(imports))
	newest := modified
	for importKey, handle := range imports {
		stamp, err := handle.LastModified()
		if err != nil {
			// Recorded as zero; the entry goes stale once the import becomes readable.
			m.logger.Warn("import " + importKey.String() + " of " + key.String() + " is unreadable: " + err.Error())
		}
		stamps[importKey] = stamp
		if stamp.After(newest) {
			newest = stamp
		}
	}

	output := domain.NewCompiledOutput(css, len(imports))
	output.Modified = newest
	entry := domain.NewCacheEntry(output, modified, stamps)

	m.mu.Lock()
	for importKey, handle := range imports {
		m.handles[importKey] = handle
	}
	m.mu.Unlock()

	m.store.Put(key, entry)
	m.metrics.EntryCount(m.store.Len())
	span.SetAttribute("lesscache.imports", len(imports))
	return output, nil
}

// collectImports walks the imports exposed by src, keyed by identity. The root is excluded.
func collectImports(src ports.Source) map[domain.SourceKey]ports.Source {
	root := src.Key()
	seen := make(map[domain.SourceKey]ports.Source)
	queue := src.ImportedSources()
	for len(queue) > 0 {
		next := queue[0]
		queue = queue[1:]

		key := next.Key()
		if key == root {
			continue
		}
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = next
		queue = append(queue, next.ImportedSources()...)
	}
	return seen
}

func flightKey(gen uint64, key domain.SourceKey) string {
	return strconv.FormatUint(gen, 10) + "|" + key.String()
}
