package httpserver

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/lesscache/internal/adapters/config"
	"go.trai.ch/lesscache/internal/adapters/fs"
	"go.trai.ch/lesscache/internal/adapters/logger"
	"go.trai.ch/lesscache/internal/adapters/metrics"
	"go.trai.ch/lesscache/internal/core/ports"
	"go.trai.ch/lesscache/internal/engine/cache"
	"go.trai.ch/lesscache/internal/engine/refresher"
)

// NodeID is the unique identifier for the HTTP server Graft node.
const NodeID graft.ID = "adapter.httpserver"

func init() {
	graft.Register(graft.Node[*Server]{
		ID:        NodeID,
		Cacheable: true,
		DependsOn: []graft.ID{
			cache.NodeID,
			refresher.NodeID,
			fs.RegistryNodeID,
			config.NodeID,
			metrics.NodeID,
			logger.NodeID,
		},
		Run: func(ctx context.Context) (*Server, error) {
			manager, err := graft.Dep[*cache.Manager](ctx)
			if err != nil {
				return nil, err
			}
			tracker, err := graft.Dep[*refresher.Refresher](ctx)
			if err != nil {
				return nil, err
			}
			registry, err := graft.Dep[*fs.Registry](ctx)
			if err != nil {
				return nil, err
			}
			settings, err := graft.Dep[*config.Settings](ctx)
			if err != nil {
				return nil, err
			}
			recorder, err := graft.Dep[*metrics.Recorder](ctx)
			if err != nil {
				return nil, err
			}
			log, err := graft.Dep[ports.Logger](ctx)
			if err != nil {
				return nil, err
			}

			opts := Options{
				Root:        settings.Server.Root,
				MetricsPath: settings.Server.MetricsPath,
				Metrics:     recorder.Handler(),
			}
			if l, ok := log.(*logger.Logger); ok {
				opts.RequestLog = l.Slog()
			}
			opts.OnCompiled = tracker.Track
			return New(manager, RegistryOpener(registry), log, opts), nil
		},
	})
}

// RegistryOpener opens sources through registry. Paths missing on disk are
// rejected without being registered.
func RegistryOpener(registry *fs.Registry) Opener {
	return func(path string) (ports.Source, error) {
		src, err := registry.OpenExisting(path)
		if err != nil {
			return nil, err
		}
		return src, nil
	}
}
