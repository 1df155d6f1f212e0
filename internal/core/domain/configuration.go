package domain

// DefaultMaxImportDepth bounds nested imports when a configuration does not set a limit.
const DefaultMaxImportDepth = 32

// Configuration controls a single compilation.
// A fresh value is built for every compilation, so compilers may mutate it.
type Configuration struct {
	// Compress collapses whitespace and drops block comments.
	Compress bool `yaml:"compress"`
	// StrictImports makes a missing import a compile error instead of a plain CSS import.
	StrictImports bool `yaml:"strictImports"`
	// MaxImportDepth caps nested imports. Zero means DefaultMaxImportDepth.
	MaxImportDepth int `yaml:"maxImportDepth"`
	// Variables are global variables defined ahead of the source's own declarations.
	Variables map[string]string `yaml:"variables"`
}

// DefaultConfiguration returns the standard compiler configuration.
func DefaultConfiguration() *Configuration {
	return &Configuration{
		MaxImportDepth: DefaultMaxImportDepth,
		Variables:      make(map[string]string),
	}
}

// Clone returns a deep copy of c.
func (c *Configuration) Clone() *Configuration {
	if c == nil {
		return DefaultConfiguration()
	}
	clone := *c
	clone.Variables = make(map[string]string, len(c.Variables))
	for k, v := range c.Variables {
		clone.Variables[k] = v
	}
	return &clone
}

// ImportDepth returns the effective import depth limit.
func (c *Configuration) ImportDepth() int {
	if c == nil || c.MaxImportDepth <= 0 {
		return DefaultMaxImportDepth
	}
	return c.MaxImportDepth
}
