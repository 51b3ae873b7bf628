package telemetry

import (
	"context"
	"os"

	"github.com/grindlemire/graft"
	"github.com/thautwarm/pmakefile/internal/adapters/telemetry/progrock" //nolint:depguard // Wired in adapter wiring
	"github.com/thautwarm/pmakefile/internal/core/ports"
)

// EnvProgress enables the progrock tape recorder when set to a non-empty
// value; the default is the no-op tracer.
const EnvProgress = "PMAKE_PROGRESS"

// TracerNodeID is the unique identifier for the telemetry Graft node.
const TracerNodeID graft.ID = "adapter.telemetry"

// FromEnv selects the progrock tape recorder when EnvProgress is set,
// otherwise the no-op tracer.
func FromEnv() ports.Tracer {
	if os.Getenv(EnvProgress) != "" {
		return progrock.New()
	}
	return NewNoOpTracer()
}

func init() {
	graft.Register(graft.Node[ports.Tracer]{
		ID:        TracerNodeID,
		Cacheable: true,
		Run: func(_ context.Context) (ports.Tracer, error) {
			return FromEnv(), nil
		},
	})
}
