package domain

import (
	"fmt"
	"strings"
)

// CompileError is a compiler diagnostic for malformed input.
// It matches ErrCompileFailed and its Cause with errors.Is.
type CompileError struct {
	// Source is the location of the source the diagnostic points into.
	Source string
	// Line is 1-based; zero when unknown.
	Line int
	// Column is 1-based; zero when unknown.
	Column int
	// Message describes the problem.
	Message string
	// Cause is the sentinel classifying the problem, e.g. ErrUndefinedVariable.
	Cause error
}

// Error implements error.
func (e *CompileError) Error() string {
	var b strings.Builder
	if e.Source != "" {
		b.WriteString(e.Source)
		if e.Line > 0 {
			fmt.Fprintf(&b, ":%d", e.Line)
			if e.Column > 0 {
				fmt.Fprintf(&b, ":%d", e.Column)
			}
		}
		b.WriteString(": ")
	}
	b.WriteString(e.Message)
	return b.String()
}

// Unwrap exposes the classification sentinels.
func (e *CompileError) Unwrap() []error {
	if e.Cause == nil {
		return []error{ErrCompileFailed}
	}
	return []error{ErrCompileFailed, e.Cause}
}

// ImportChain is the stack of sources currently being inlined by a compiler.
type ImportChain struct {
	keys []SourceKey
}

// Push appends key to the chain. It fails with ErrImportCycle if key is already on the chain.
func (c *ImportChain) Push(key SourceKey) error {
	for i, k := range c.keys {
		if k == key {
			return c.cycleError(i, key)
		}
	}
	c.keys = append(c.keys, key)
	return nil
}

// Pop removes the innermost source.
func (c *ImportChain) Pop() {
	if len(c.keys) > 0 {
		c.keys = c.keys[:len(c.keys)-1]
	}
}

// Depth returns the number of sources on the chain.
func (c *ImportChain) Depth() int {
	return len(c.keys)
}

// cycleError constructs an error with cycle path metadata.
func (c *ImportChain) cycleError(startIdx int, dep SourceKey) error {
	var cyclePath strings.Builder
	for _, k := range c.keys[startIdx:] {
		cyclePath.WriteString(k.String() + " -> ")
	}
	cyclePath.WriteString(dep.String())
	return Annotate(ErrImportCycle, "cycle", cyclePath.String())
}
