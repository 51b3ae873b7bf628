package ports

import "github.com/thautwarm/pmakefile/internal/core/domain"

// ConfigLoader builds a recipe Registry from a declaration file in the
// given working directory.
//
//go:generate go run go.uber.org/mock/mockgen -source=loader.go -destination=mocks/mock_loader.go -package=mocks
type ConfigLoader interface {
	Load(cwd string) (*domain.Registry, error)
}
