package domain

import (
	"fmt"
	"time"

	"github.com/cespare/xxhash/v2"
)

// CompiledOutput is the result of compiling a source.
type CompiledOutput struct {
	// CSS is the compiled style sheet.
	CSS string
	// Digest is the XXHash of CSS, formatted as 16 hex digits.
	Digest string
	// Imports is the number of transitively imported sources at compile time.
	Imports int
	// Modified is the newest timestamp among the root and its imports at compile time.
	Modified time.Time
}

// NewCompiledOutput creates a CompiledOutput and computes its digest.
func NewCompiledOutput(css string, imports int) CompiledOutput {
	return CompiledOutput{
		CSS:     css,
		Digest:  Digest(css),
		Imports: imports,
	}
}

// Digest returns the XXHash of content as a zero-padded hex string.
func Digest(content string) string {
	return fmt.Sprintf("%016x", xxhash.Sum64String(content))
}

// ETag returns the strong HTTP entity tag for the output.
func (o CompiledOutput) ETag() string {
	return `"` + o.Digest + `"`
}
