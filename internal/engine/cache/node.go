package cache

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/lesscache/internal/adapters/compiler"  //nolint:depguard // Wired in engine wiring
	"go.trai.ch/lesscache/internal/adapters/config"    //nolint:depguard // Wired in engine wiring
	"go.trai.ch/lesscache/internal/adapters/logger"    //nolint:depguard // Wired in engine wiring
	"go.trai.ch/lesscache/internal/adapters/metrics"   //nolint:depguard // Wired in engine wiring
	"go.trai.ch/lesscache/internal/adapters/store"     //nolint:depguard // Wired in engine wiring
	"go.trai.ch/lesscache/internal/adapters/telemetry" //nolint:depguard // Wired in engine wiring
	"go.trai.ch/lesscache/internal/core/ports"
)

// NodeID is the unique identifier for the cache manager Graft node.
const NodeID graft.ID = "engine.cache"

func init() {
	graft.Register(graft.Node[*Manager]{
		ID:        NodeID,
		Cacheable: true,
		DependsOn: []graft.ID{
			store.NodeID,
			compiler.NodeID,
			config.FactoryNodeID,
			logger.NodeID,
			telemetry.TracerNodeID,
			metrics.NodeID,
		},
		Run: func(ctx context.Context) (*Manager, error) {
			entries, err := graft.Dep[ports.EntryStore](ctx)
			if err != nil {
				return nil, err
			}

			comp, err := graft.Dep[ports.Compiler](ctx)
			if err != nil {
				return nil, err
			}

			factory, err := graft.Dep[*config.Factory](ctx)
			if err != nil {
				return nil, err
			}

			log, err := graft.Dep[ports.Logger](ctx)
			if err != nil {
				return nil, err
			}

			tracer, err := graft.Dep[ports.Tracer](ctx)
			if err != nil {
				return nil, err
			}

			recorder, err := graft.Dep[*metrics.Recorder](ctx)
			if err != nil {
				return nil, err
			}

			return NewManager(
				entries,
				comp,
				factory,
				log,
				WithTracer(tracer),
				WithMetrics(recorder),
			), nil
		},
	})
}
