// Package domain contains the core domain models of the compilation cache.
package domain

import "unique"

// SourceKey is the stable identity of a style-sheet source.
// It wraps a unique.Handle[string] so keys for the same underlying resource
// compare equal with == and stay cheap to use as map keys.
type SourceKey struct {
	h unique.Handle[string]
}

// NewSourceKey creates a SourceKey from the resource location, e.g. a cleaned absolute path.
func NewSourceKey(location string) SourceKey {
	return SourceKey{
		h: unique.Make(location),
	}
}

// String returns the underlying location.
func (k SourceKey) String() string {
	var zero unique.Handle[string]
	if k.h == zero {
		return ""
	}
	return k.h.Value()
}

// IsZero reports whether the key was never initialized.
func (k SourceKey) IsZero() bool {
	var zero unique.Handle[string]
	return k.h == zero
}

// MarshalText implements encoding.TextMarshaler.
func (k SourceKey) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (k *SourceKey) UnmarshalText(text []byte) error {
	k.h = unique.Make(string(text))
	return nil
}
