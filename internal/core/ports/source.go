// Package ports defines the core interfaces for the application.
package ports

import (
	"time"

	"go.trai.ch/lesscache/internal/core/domain"
)

// Source is a handle to a style-sheet source.
//
//go:generate go run go.uber.org/mock/mockgen -source=source.go -destination=mocks/mock_source.go -package=mocks
type Source interface {
	// Key returns the stable identity of the source.
	Key() domain.SourceKey

	// Content reads the source text.
	// It fails with domain.ErrSourceUnreadable when the underlying resource cannot be read.
	Content() (string, error)

	// LastModified returns the current modification time of the source.
	// It fails with domain.ErrSourceUnreadable when the timestamp cannot be obtained.
	LastModified() (time.Time, error)

	// ImportedSources returns the direct imports discovered by the last successful
	// compilation. It is empty before the first compilation.
	ImportedSources() []Source
}

// ImportingSource is a Source that a compiler can resolve imports against.
type ImportingSource interface {
	Source

	// Relative resolves an import reference relative to this source.
	Relative(ref string) (Source, error)

	// SetImports replaces the direct imports of this source.
	SetImports(imports []Source)
}
