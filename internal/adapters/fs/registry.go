package fs

import (
	"os"
	"path/filepath"
	"sync"

	"go.trai.ch/lesscache/internal/core/domain"
	"go.trai.ch/zerr"
)

// Registry hands out a single FileSource per path.
type Registry struct {
	mu      sync.Mutex
	sources map[string]*FileSource
}

// NewRegistry creates an empty Registry.
func NewRegistry() *Registry {
	return &Registry{
		sources: make(map[string]*FileSource),
	}
}

// Open returns the source for path, creating it on first use.
// The file does not need to exist.
func (r *Registry) Open(path string) (*FileSource, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, zerr.With(zerr.Wrap(err, "failed to resolve source path"), "path", path)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if src, ok := r.sources[abs]; ok {
		return src, nil
	}

	src := &FileSource{
		path:     abs,
		key:      domain.NewSourceKey(abs),
		registry: r,
	}
	r.sources[abs] = src
	return src, nil
}

// OpenExisting is Open for paths named by untrusted callers. A path that is
// neither known nor present on disk fails with a SourceError and is not registered.
func (r *Registry) OpenExisting(path string) (*FileSource, error) {
	if src, ok := r.Lookup(path); ok {
		return src, nil
	}
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, zerr.With(zerr.Wrap(err, "failed to resolve source path"), "path", path)
	}
	if _, err := os.Stat(abs); err != nil {
		return nil, &domain.SourceError{Source: abs, Op: "stat", Err: err}
	}
	return r.Open(abs)
}

// Lookup returns the source for path if it has been opened before.
func (r *Registry) Lookup(path string) (*FileSource, bool) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, false
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	src, ok := r.sources[abs]
	return src, ok
}

// Len returns the number of known sources.
func (r *Registry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()

	return len(r.sources)
}
