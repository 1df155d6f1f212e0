// Package wiring registers all Graft nodes for the application.
package wiring

import (
	// Register adapter nodes.
	_ "go.trai.ch/lesscache/internal/adapters/compiler"
	_ "go.trai.ch/lesscache/internal/adapters/config"
	_ "go.trai.ch/lesscache/internal/adapters/fs"
	_ "go.trai.ch/lesscache/internal/adapters/httpserver"
	_ "go.trai.ch/lesscache/internal/adapters/logger"
	_ "go.trai.ch/lesscache/internal/adapters/metrics"
	_ "go.trai.ch/lesscache/internal/adapters/store"
	_ "go.trai.ch/lesscache/internal/adapters/telemetry"
	_ "go.trai.ch/lesscache/internal/adapters/watcher"
	// Register app and engine nodes.
	_ "go.trai.ch/lesscache/internal/app"
	_ "go.trai.ch/lesscache/internal/engine/cache"
	_ "go.trai.ch/lesscache/internal/engine/refresher"
)
