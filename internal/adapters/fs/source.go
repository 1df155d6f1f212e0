// Package fs implements style-sheet sources backed by the local file system.
package fs

import (
	"os"
	"path/filepath"
	"slices"
	"sync"
	"time"

	"go.trai.ch/lesscache/internal/core/domain"
	"go.trai.ch/lesscache/internal/core/ports"
)

// Extension is appended to import references that name no extension.
const Extension = ".less"

var _ ports.ImportingSource = (*FileSource)(nil)

// FileSource is a style-sheet file. Handles are obtained from a Registry so
// that the import graph discovered by a compilation is shared by later lookups.
type FileSource struct {
	path     string
	key      domain.SourceKey
	registry *Registry

	mu      sync.RWMutex
	imports []ports.Source
}

// Path returns the absolute path of the file.
func (s *FileSource) Path() string {
	return s.path
}

// Key returns the cleaned absolute path as the source identity.
func (s *FileSource) Key() domain.SourceKey {
	return s.key
}

// Content reads the whole file.
func (s *FileSource) Content() (string, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		return "", &domain.SourceError{Source: s.path, Op: "read", Err: err}
	}
	return string(data), nil
}

// LastModified returns the file's modification time.
func (s *FileSource) LastModified() (time.Time, error) {
	info, err := os.Stat(s.path)
	if err != nil {
		return time.Time{}, &domain.SourceError{Source: s.path, Op: "stat", Err: err}
	}
	return info.ModTime(), nil
}

// ImportedSources returns the direct imports recorded by the last successful compilation.
func (s *FileSource) ImportedSources() []ports.Source {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return slices.Clone(s.imports)
}

// SetImports replaces the direct imports.
func (s *FileSource) SetImports(imports []ports.Source) {
	imports = slices.Clone(imports)

	s.mu.Lock()
	defer s.mu.Unlock()

	s.imports = imports
}

// Relative resolves ref against the directory of this file.
// A ref without an extension gets Extension appended.
func (s *FileSource) Relative(ref string) (ports.Source, error) {
	if filepath.Ext(ref) == "" {
		ref += Extension
	}
	if !filepath.IsAbs(ref) {
		ref = filepath.Join(filepath.Dir(s.path), filepath.FromSlash(ref))
	}
	return s.registry.Open(ref)
}
