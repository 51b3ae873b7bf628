package resolver

import (
	"context"
	"os"

	"github.com/grindlemire/graft"
	"github.com/thautwarm/pmakefile/internal/adapters/cache"     //nolint:depguard // Wired in engine wiring
	"github.com/thautwarm/pmakefile/internal/adapters/fs"        //nolint:depguard // Wired in engine wiring
	"github.com/thautwarm/pmakefile/internal/adapters/logger"    //nolint:depguard // Wired in engine wiring
	"github.com/thautwarm/pmakefile/internal/adapters/telemetry" //nolint:depguard // Wired in engine wiring
	"github.com/thautwarm/pmakefile/internal/core/ports"
)

// NodeID is the unique identifier for the resolver Graft node.
const NodeID graft.ID = "engine.resolver"

func init() {
	graft.Register(graft.Node[*Resolver]{
		ID:        NodeID,
		Cacheable: true,
		DependsOn: []graft.ID{
			cache.NodeID,
			fs.HasherNodeID,
			logger.NodeID,
			telemetry.TracerNodeID,
		},
		Run: func(ctx context.Context) (*Resolver, error) {
			store, err := graft.Dep[ports.FingerprintStore](ctx)
			if err != nil {
				return nil, err
			}

			hasher, err := graft.Dep[ports.Hasher](ctx)
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

			cwd, err := os.Getwd()
			if err != nil {
				return nil, err
			}

			return New(store, hasher, log, tracer, cwd), nil
		},
	})
}
