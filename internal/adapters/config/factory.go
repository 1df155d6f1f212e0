package config

import (
	"sync"

	"go.trai.ch/lesscache/internal/core/domain"
	"go.trai.ch/lesscache/internal/core/ports"
)

var _ ports.ConfigurationFactory = (*Factory)(nil)

// Factory hands out a copy of the configured compiler settings for every compilation.
type Factory struct {
	mu   sync.RWMutex
	base *domain.Configuration
}

// NewFactory creates a Factory around base. A nil base means the default configuration.
func NewFactory(base *domain.Configuration) *Factory {
	return &Factory{base: base.Clone()}
}

// NewConfiguration returns a fresh copy of the current settings.
func (f *Factory) NewConfiguration() *domain.Configuration {
	f.mu.RLock()
	defer f.mu.RUnlock()

	return f.base.Clone()
}

// Update changes the settings used by later compilations.
func (f *Factory) Update(fn func(cfg *domain.Configuration)) {
	f.mu.Lock()
	defer f.mu.Unlock()

	fn(f.base)
}
