package config

import (
	"context"
	"os"

	"github.com/grindlemire/graft"
	"go.trai.ch/lesscache/internal/adapters/logger"
	"go.trai.ch/lesscache/internal/core/ports"
	"go.trai.ch/zerr"
)

const (
	// NodeID is the unique identifier for the settings Graft node.
	NodeID graft.ID = "adapter.config"
	// FactoryNodeID is the unique identifier for the configuration factory Graft node.
	FactoryNodeID graft.ID = "adapter.config.factory"
)

func init() {
	graft.Register(graft.Node[*Settings]{
		ID:        NodeID,
		Cacheable: true,
		DependsOn: []graft.ID{logger.NodeID},
		Run: func(ctx context.Context) (*Settings, error) {
			log, err := graft.Dep[ports.Logger](ctx)
			if err != nil {
				return nil, err
			}
			cwd, err := os.Getwd()
			if err != nil {
				return nil, zerr.Wrap(err, "failed to get working directory")
			}
			return NewLoader(log).Load(cwd)
		},
	})

	graft.Register(graft.Node[*Factory]{
		ID:        FactoryNodeID,
		Cacheable: true,
		DependsOn: []graft.ID{NodeID},
		Run: func(ctx context.Context) (*Factory, error) {
			settings, err := graft.Dep[*Settings](ctx)
			if err != nil {
				return nil, err
			}
			return NewFactory(&settings.Compiler), nil
		},
	})
}
