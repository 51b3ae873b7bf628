package ports

import "github.com/thautwarm/pmakefile/internal/core/domain"

// Hasher computes the current fingerprint of a target from live
// filesystem state and the persisted fingerprints of its prerequisites.
type Hasher interface {
	// Fingerprint binds, for a non-phony target, the existence and
	// regular-file content of the target's path, plus every
	// prerequisite's persisted fingerprint. For a phony target only the
	// prerequisite fingerprints are bound.
	Fingerprint(name string, deps []string, phony bool) (domain.Fingerprint, error)
}
