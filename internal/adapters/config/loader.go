// Package config provides the configuration loader for lesscache.
package config

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/caarlos0/env/v11"
	"go.trai.ch/lesscache/internal/core/domain"
	"go.trai.ch/lesscache/internal/core/ports"
	"go.trai.ch/zerr"
	"gopkg.in/yaml.v3"
)

// Loader reads Settings from lesscache.yaml and the environment.
type Loader struct {
	Logger ports.Logger
	// Environment replaces the process environment when set.
	Environment map[string]string
}

// NewLoader creates a new Loader with the given logger.
func NewLoader(logger ports.Logger) *Loader {
	return &Loader{Logger: logger}
}

// Load searches cwd and its parents for FileName and applies environment
// overrides. A missing file yields the defaults.
func (l *Loader) Load(cwd string) (*Settings, error) {
	path, err := findConfiguration(cwd)
	if err != nil {
		return nil, err
	}
	if path == "" {
		return l.finish(defaults(), cwd)
	}
	return l.LoadFile(path)
}

// LoadFile reads the settings from path and applies environment overrides.
func (l *Loader) LoadFile(path string) (*Settings, error) {
	settings := defaults()
	if err := readAndUnmarshalYAML(path, settings); err != nil {
		return nil, zerr.With(err, "path", path)
	}
	settings.Path = path
	return l.finish(settings, filepath.Dir(path))
}

func (l *Loader) finish(settings *Settings, base string) (*Settings, error) {
	if err := l.applyEnvironment(settings); err != nil {
		return nil, err
	}

	if settings.Server.Addr == "" {
		settings.Server.Addr = DefaultAddr
	}
	if settings.Server.MetricsPath == "" {
		settings.Server.MetricsPath = DefaultMetricsPath
	}
	if settings.Server.Root == "" {
		settings.Server.Root = "."
	}
	if !filepath.IsAbs(settings.Server.Root) {
		settings.Server.Root = filepath.Join(base, settings.Server.Root)
	}
	if settings.Compiler.Variables == nil {
		settings.Compiler.Variables = make(map[string]string)
	}
	if settings.Compiler.MaxImportDepth < 0 && l.Logger != nil {
		l.Logger.Warn("compiler.maxImportDepth is negative, using the default")
	}
	return settings, nil
}

func (l *Loader) applyEnvironment(settings *Settings) error {
	var o overrides
	opts := env.Options{Prefix: EnvPrefix}
	if l.Environment != nil {
		opts.Environment = l.Environment
	}
	if err := env.ParseWithOptions(&o, opts); err != nil {
		return zerr.Wrap(err, domain.ErrConfigParseFailed.Error())
	}

	if o.Addr != nil {
		settings.Server.Addr = *o.Addr
	}
	if o.Root != nil {
		settings.Server.Root = *o.Root
	}
	if o.Compress != nil {
		settings.Compiler.Compress = *o.Compress
	}
	if o.Strict != nil {
		settings.Compiler.StrictImports = *o.Strict
	}
	if o.Watch != nil {
		settings.Server.Watch = *o.Watch
	}
	if o.LogJSON != nil {
		settings.LogJSON = *o.LogJSON
	}
	if o.Slow != nil {
		settings.SlowCompile = *o.Slow
	}
	return nil
}

func defaults() *Settings {
	return &Settings{
		Compiler: *domain.DefaultConfiguration(),
	}
}

// findConfiguration returns the nearest FileName at or above cwd, or "" if there is none.
func findConfiguration(cwd string) (string, error) {
	currentDir := cwd
	for {
		candidate := filepath.Join(currentDir, FileName)
		_, err := os.Stat(candidate)
		if err == nil {
			return candidate, nil
		}
		if !errors.Is(err, fs.ErrNotExist) {
			return "", zerr.With(zerr.Wrap(err, domain.ErrConfigReadFailed.Error()), "path", candidate)
		}

		parentDir := filepath.Dir(currentDir)
		if parentDir == currentDir {
			// Reached root
			return "", nil
		}
		currentDir = parentDir
	}
}

func readAndUnmarshalYAML[T any](configPath string, target *T) error {
	// #nosec G304 -- configPath is validated by caller
	configFile, err := os.ReadFile(configPath)
	if err != nil {
		return zerr.Wrap(err, domain.ErrConfigReadFailed.Error())
	}

	if parseErr := yaml.Unmarshal(configFile, target); parseErr != nil {
		return zerr.Wrap(parseErr, domain.ErrConfigParseFailed.Error())
	}

	return nil
}
