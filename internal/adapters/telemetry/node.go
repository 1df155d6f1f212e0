package telemetry

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/lesscache/internal/adapters/config"
	"go.trai.ch/lesscache/internal/adapters/logger"
	"go.trai.ch/lesscache/internal/core/ports"
)

const (
	// ProviderNodeID is the unique identifier for the tracer provider Graft node.
	ProviderNodeID graft.ID = "adapter.telemetry.provider"
	// TracerNodeID is the unique identifier for the Telemetry adapter Graft node.
	TracerNodeID graft.ID = "adapter.telemetry"

	compileSpan = "cache.compile"
)

func init() {
	graft.Register(graft.Node[*Provider]{
		ID:        ProviderNodeID,
		Cacheable: true,
		DependsOn: []graft.ID{logger.NodeID, config.NodeID},
		Run: func(ctx context.Context) (*Provider, error) {
			log, err := graft.Dep[ports.Logger](ctx)
			if err != nil {
				return nil, err
			}
			settings, err := graft.Dep[*config.Settings](ctx)
			if err != nil {
				return nil, err
			}
			return NewProvider(NewLogBridge(log, compileSpan, settings.SlowCompile)), nil
		},
	})

	graft.Register(graft.Node[ports.Tracer]{
		ID:        TracerNodeID,
		Cacheable: true,
		DependsOn: []graft.ID{ProviderNodeID},
		Run: func(ctx context.Context) (ports.Tracer, error) {
			provider, err := graft.Dep[*Provider](ctx)
			if err != nil {
				return nil, err
			}
			return provider.Tracer(InstrumentationName), nil
		},
	})
}
