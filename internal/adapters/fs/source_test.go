package fs_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/lesscache/internal/adapters/fs"
	"go.trai.ch/lesscache/internal/core/domain"
	"go.trai.ch/lesscache/internal/core/ports"
)

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o750))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
}

func TestFileSource_ContentAndLastModified(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "root.less")
	writeFile(t, path, "a { color: red; }")
	mtime := time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC)
	require.NoError(t, os.Chtimes(path, mtime, mtime))

	src, err := fs.NewRegistry().Open(path)
	require.NoError(t, err)

	content, err := src.Content()
	require.NoError(t, err)
	assert.Equal(t, "a { color: red; }", content)

	modified, err := src.LastModified()
	require.NoError(t, err)
	assert.True(t, mtime.Equal(modified))
	assert.Equal(t, domain.NewSourceKey(path), src.Key())
	assert.Empty(t, src.ImportedSources())
}

func TestFileSource_MissingFile(t *testing.T) {
	src, err := fs.NewRegistry().Open(filepath.Join(t.TempDir(), "missing.less"))
	require.NoError(t, err)

	_, err = src.Content()
	require.ErrorIs(t, err, domain.ErrSourceUnreadable)
	require.ErrorIs(t, err, os.ErrNotExist)

	_, err = src.LastModified()
	require.ErrorIs(t, err, domain.ErrSourceUnreadable)
}

func TestFileSource_Relative(t *testing.T) {
	dir := t.TempDir()
	reg := fs.NewRegistry()
	root, err := reg.Open(filepath.Join(dir, "styles", "root.less"))
	require.NoError(t, err)

	tests := []struct {
		name     string
		ref      string
		expected string
	}{
		{"adds extension", "imported1", filepath.Join(dir, "styles", "imported1.less")},
		{"keeps extension", "theme.less", filepath.Join(dir, "styles", "theme.less")},
		{"parent directory", "../shared/mixins", filepath.Join(dir, "shared", "mixins.less")},
		{"absolute", filepath.Join(dir, "abs.less"), filepath.Join(dir, "abs.less")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			imported, err := root.Relative(tt.ref)
			require.NoError(t, err)
			assert.Equal(t, domain.NewSourceKey(tt.expected), imported.Key())
		})
	}
}

func TestFileSource_SetImports(t *testing.T) {
	dir := t.TempDir()
	reg := fs.NewRegistry()
	root, err := reg.Open(filepath.Join(dir, "root.less"))
	require.NoError(t, err)
	child, err := root.Relative("imported1")
	require.NoError(t, err)

	imports := []ports.Source{child}
	root.SetImports(imports)
	imports[0] = nil

	got := root.ImportedSources()
	require.Len(t, got, 1)
	assert.Same(t, child, got[0])

	root.SetImports(nil)
	assert.Empty(t, root.ImportedSources())
}

func TestRegistry_OpenReturnsSameHandle(t *testing.T) {
	dir := t.TempDir()
	reg := fs.NewRegistry()

	a, err := reg.Open(filepath.Join(dir, "root.less"))
	require.NoError(t, err)
	b, err := reg.Open(filepath.Join(dir, "nested", "..", "root.less"))
	require.NoError(t, err)
	assert.Same(t, a, b)

	imported, err := a.Relative("root")
	require.NoError(t, err)
	assert.Same(t, a, imported)

	found, ok := reg.Lookup(filepath.Join(dir, "root.less"))
	require.True(t, ok)
	assert.Same(t, a, found)

	_, ok = reg.Lookup(filepath.Join(dir, "other.less"))
	assert.False(t, ok)
	assert.Equal(t, 1, reg.Len())
}

func TestRegistry_OpenExisting(t *testing.T) {
	dir := t.TempDir()
	reg := fs.NewRegistry()

	_, err := reg.OpenExisting(filepath.Join(dir, "absent.less"))
	require.ErrorIs(t, err, domain.ErrSourceUnreadable)
	require.ErrorIs(t, err, os.ErrNotExist)
	assert.Zero(t, reg.Len())

	writeFile(t, filepath.Join(dir, "site.less"), "a { }\n")
	src, err := reg.OpenExisting(filepath.Join(dir, "site.less"))
	require.NoError(t, err)
	assert.Equal(t, 1, reg.Len())

	again, err := reg.OpenExisting(filepath.Join(dir, "site.less"))
	require.NoError(t, err)
	assert.Same(t, src, again)

	// Known handles are returned even after the file is removed.
	require.NoError(t, os.Remove(filepath.Join(dir, "site.less")))
	again, err = reg.OpenExisting(filepath.Join(dir, "site.less"))
	require.NoError(t, err)
	assert.Same(t, src, again)
}
