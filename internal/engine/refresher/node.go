package refresher

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/lesscache/internal/adapters/logger" //nolint:depguard // Wired in engine wiring
	"go.trai.ch/lesscache/internal/core/ports"
	"go.trai.ch/lesscache/internal/engine/cache"
)

// NodeID is the unique identifier for the refresher Graft node.
const NodeID graft.ID = "engine.refresher"

func init() {
	graft.Register(graft.Node[*Refresher]{
		ID:        NodeID,
		Cacheable: true,
		DependsOn: []graft.ID{cache.NodeID, logger.NodeID},
		Run: func(ctx context.Context) (*Refresher, error) {
			manager, err := graft.Dep[*cache.Manager](ctx)
			if err != nil {
				return nil, err
			}
			log, err := graft.Dep[ports.Logger](ctx)
			if err != nil {
				return nil, err
			}
			return New(manager, log), nil
		},
	})
}
