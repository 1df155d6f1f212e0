package ports

import (
	"context"

	"go.trai.ch/lesscache/internal/core/domain"
)

// Compiler turns source text into a compiled style sheet.
//
//go:generate go run go.uber.org/mock/mockgen -source=compiler.go -destination=mocks/mock_compiler.go -package=mocks
type Compiler interface {
	// Compile compiles content, which was read from src, with the given configuration.
	//
	// src is used to resolve imports; a successful compilation records the
	// discovered imports on it. Malformed input fails with *domain.CompileError.
	Compile(ctx context.Context, src Source, content string, cfg *domain.Configuration) (string, error)
}

// ConfigurationFactory builds the configuration for a single compilation.
type ConfigurationFactory interface {
	// NewConfiguration returns a fresh configuration. It is called once per compilation.
	NewConfiguration() *domain.Configuration
}

// ConfigurationFactoryFunc adapts a function to ConfigurationFactory.
type ConfigurationFactoryFunc func() *domain.Configuration

// NewConfiguration calls f.
func (f ConfigurationFactoryFunc) NewConfiguration() *domain.Configuration {
	return f()
}
