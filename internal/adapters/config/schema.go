package config

import (
	"time"

	"go.trai.ch/lesscache/internal/core/domain"
)

// FileName is the name of the configuration file searched for from the working directory upwards.
const FileName = "lesscache.yaml"

// Defaults applied when neither the file nor the environment set a value.
const (
	DefaultAddr        = "127.0.0.1:8080"
	DefaultMetricsPath = "/metrics"
)

// Settings is the structure of the lesscache.yaml configuration file.
type Settings struct {
	Compiler domain.Configuration `yaml:"compiler"`
	Server   ServerSettings       `yaml:"server"`
	LogJSON  bool                 `yaml:"logJSON"`
	// SlowCompile logs compilations that take at least this long. Zero disables it.
	SlowCompile time.Duration `yaml:"slowCompile"`

	// Path is the file the settings were read from. Empty when no file was found.
	Path string `yaml:"-"`
}

// ServerSettings configures the HTTP server.
type ServerSettings struct {
	Addr        string `yaml:"addr"`
	Root        string `yaml:"root"`
	Watch       bool   `yaml:"watch"`
	MetricsPath string `yaml:"metricsPath"`
}

// overrides are read from LESSCACHE_* environment variables. Unset variables stay nil.
type overrides struct {
	Addr     *string        `env:"ADDR"`
	Root     *string        `env:"ROOT"`
	Compress *bool          `env:"COMPRESS"`
	Strict   *bool          `env:"STRICT_IMPORTS"`
	Watch    *bool          `env:"WATCH"`
	LogJSON  *bool          `env:"LOG_JSON"`
	Slow     *time.Duration `env:"SLOW_COMPILE"`
}

// EnvPrefix prefixes every environment override.
const EnvPrefix = "LESSCACHE_"
