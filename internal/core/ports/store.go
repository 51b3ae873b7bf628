// Package ports defines the interfaces between the engine and its
// adapters.
package ports

import "github.com/thautwarm/pmakefile/internal/core/domain"

// FingerprintStore persists the last-known fingerprint per target name.
//
//go:generate go run go.uber.org/mock/mockgen -source=store.go -destination=mocks/mock_store.go -package=mocks
type FingerprintStore interface {
	// Load returns the persisted fingerprint for name, or a zero
	// fingerprint with a nil error if none was recorded. An undecodable
	// entry reads as absent.
	Load(name string) (domain.Fingerprint, error)

	// Save records the fingerprint for name, replacing any previous one.
	Save(name string, fp domain.Fingerprint) error

	// Clean removes the whole store.
	Clean() error

	// Dir returns the store's on-disk location.
	Dir() string
}
