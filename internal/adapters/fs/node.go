package fs

import (
	"context"
	"os"

	"github.com/grindlemire/graft"
	"github.com/thautwarm/pmakefile/internal/adapters/cache" //nolint:depguard // Wired in adapter wiring
	"github.com/thautwarm/pmakefile/internal/core/ports"
)

// HasherNodeID is the unique identifier for the fingerprint hasher Graft node.
const HasherNodeID graft.ID = "adapter.fingerprint_hasher"

func init() {
	graft.Register(graft.Node[ports.Hasher]{
		ID:        HasherNodeID,
		Cacheable: true,
		DependsOn: []graft.ID{cache.NodeID},
		Run: func(ctx context.Context) (ports.Hasher, error) {
			store, err := graft.Dep[ports.FingerprintStore](ctx)
			if err != nil {
				return nil, err
			}
			cwd, err := os.Getwd()
			if err != nil {
				return nil, err
			}
			return NewHasher(store, cwd), nil
		},
	})
}
