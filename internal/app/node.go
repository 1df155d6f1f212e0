package app

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/lesscache/internal/adapters/config"     //nolint:depguard // Wired in app layer
	"go.trai.ch/lesscache/internal/adapters/fs"         //nolint:depguard // Wired in app layer
	"go.trai.ch/lesscache/internal/adapters/httpserver" //nolint:depguard // Wired in app layer
	"go.trai.ch/lesscache/internal/adapters/logger"     //nolint:depguard // Wired in app layer
	"go.trai.ch/lesscache/internal/adapters/telemetry"  //nolint:depguard // Wired in app layer
	"go.trai.ch/lesscache/internal/adapters/watcher"    //nolint:depguard // Wired in app layer
	"go.trai.ch/lesscache/internal/core/ports"
	"go.trai.ch/lesscache/internal/engine/cache"
	"go.trai.ch/lesscache/internal/engine/refresher"
)

const (
	// AppNodeID is the unique identifier for the main App Graft node.
	AppNodeID graft.ID = "app.main"
	// ComponentsNodeID is the unique identifier for the App components Graft node.
	ComponentsNodeID graft.ID = "app.components"
)

func init() {
	graft.Register(graft.Node[*App]{
		ID:        AppNodeID,
		Cacheable: true,
		DependsOn: []graft.ID{
			cache.NodeID,
			config.FactoryNodeID,
			fs.RegistryNodeID,
			logger.NodeID,
			httpserver.NodeID,
			refresher.NodeID,
			watcher.NodeID,
		},
		Run: runAppNode,
	})

	graft.Register(graft.Node[*Components]{
		ID:        ComponentsNodeID,
		Cacheable: true,
		DependsOn: []graft.ID{
			AppNodeID,
			logger.NodeID,
			config.NodeID,
			telemetry.ProviderNodeID,
		},
		Run: runComponentsNode,
	})
}

func runAppNode(ctx context.Context) (*App, error) {
	manager, err := graft.Dep[*cache.Manager](ctx)
	if err != nil {
		return nil, err
	}

	factory, err := graft.Dep[*config.Factory](ctx)
	if err != nil {
		return nil, err
	}

	registry, err := graft.Dep[*fs.Registry](ctx)
	if err != nil {
		return nil, err
	}

	log, err := graft.Dep[ports.Logger](ctx)
	if err != nil {
		return nil, err
	}

	server, err := graft.Dep[*httpserver.Server](ctx)
	if err != nil {
		return nil, err
	}

	ref, err := graft.Dep[*refresher.Refresher](ctx)
	if err != nil {
		return nil, err
	}

	newWatcher, err := graft.Dep[watcher.Factory](ctx)
	if err != nil {
		return nil, err
	}

	return New(manager, factory, registry, log, server, ref, newWatcher), nil
}

func runComponentsNode(ctx context.Context) (*Components, error) {
	app, err := graft.Dep[*App](ctx)
	if err != nil {
		return nil, err
	}

	log, err := graft.Dep[ports.Logger](ctx)
	if err != nil {
		return nil, err
	}

	settings, err := graft.Dep[*config.Settings](ctx)
	if err != nil {
		return nil, err
	}

	provider, err := graft.Dep[*telemetry.Provider](ctx)
	if err != nil {
		return nil, err
	}

	if settings.LogJSON {
		if l, ok := log.(*logger.Logger); ok {
			l.SetJSON(true)
		}
	}

	return &Components{
		App:       app,
		Logger:    log,
		Settings:  settings,
		Telemetry: provider,
	}, nil
}
