package app

import (
	"go.trai.ch/lesscache/internal/adapters/config"    //nolint:depguard // Wired in app layer
	"go.trai.ch/lesscache/internal/adapters/telemetry" //nolint:depguard // Wired in app layer
	"go.trai.ch/lesscache/internal/core/ports"
)

// Components contains all the initialized application components.
// This struct provides controlled access to components needed by the CLI layer.
type Components struct {
	App       *App
	Logger    ports.Logger
	Settings  *config.Settings
	Telemetry *telemetry.Provider
}
