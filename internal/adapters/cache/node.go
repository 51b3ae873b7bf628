package cache

import (
	"context"
	"os"

	"github.com/grindlemire/graft"
	"github.com/thautwarm/pmakefile/internal/core/ports"
)

// NodeID is the unique identifier for the fingerprint store Graft node.
const NodeID graft.ID = "adapter.fingerprint_store"

func init() {
	graft.Register(graft.Node[ports.FingerprintStore]{
		ID:        NodeID,
		Cacheable: true,
		Run: func(_ context.Context) (ports.FingerprintStore, error) {
			cwd, err := os.Getwd()
			if err != nil {
				return nil, err
			}
			return NewStore(cwd)
		},
	})
}
