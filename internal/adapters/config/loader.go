// Package config provides the recipe file loader for pmake.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/thautwarm/pmakefile/internal/adapters/shell"
	"github.com/thautwarm/pmakefile/internal/core/domain"
	"github.com/thautwarm/pmakefile/internal/core/ports"
	"go.trai.ch/zerr"
	"gopkg.in/yaml.v3"
)

// DefaultFilename is the recipe file looked up in the working directory.
const DefaultFilename = "pmake.yaml"

var _ ports.ConfigLoader = (*FileConfigLoader)(nil)

// FileConfigLoader implements ports.ConfigLoader using a YAML file.
type FileConfigLoader struct {
	Filename string
	logger   ports.Logger
}

// NewLoader creates a loader for the default recipe filename.
func NewLoader(logger ports.Logger) *FileConfigLoader {
	return &FileConfigLoader{Filename: DefaultFilename, logger: logger}
}

// Load reads the recipe file from the given working directory and builds
// a Registry. Prerequisite names are not validated here: a name without a
// recipe is a legitimate bare filesystem dependency.
func (l *FileConfigLoader) Load(cwd string) (*domain.Registry, error) {
	path := filepath.Join(cwd, l.Filename)

	data, err := os.ReadFile(path) //nolint:gosec // path is the user's recipe file
	if err != nil {
		return nil, zerr.With(zerr.Wrap(err, "failed to read recipe file"), "path", path)
	}

	var mk Makefile
	if err := yaml.Unmarshal(data, &mk); err != nil {
		return nil, zerr.With(zerr.Wrap(err, "failed to parse recipe file"), "path", path)
	}

	// Names are taken exactly as written: renaming them here would break
	// the file's own deps references and the on-disk artifact paths.
	reg := domain.NewRegistry()
	reg.MarkPhony(mk.Phony...)

	for name, dto := range mk.Recipes {
		policy, err := domain.ParsePolicy(dto.Rebuild)
		if err != nil {
			return nil, zerr.With(err, "target", name)
		}

		if dto.Doc != "" && !reg.IsPhony(name) {
			l.logger.Warn(fmt.Sprintf("doc on %q has no effect, only phony recipes are listed", name))
		}

		var action domain.Action
		if len(dto.Run) > 0 {
			action = shell.NewCommand(dto.Run, dto.Env, cwd, l.logger)
		}

		reg.Register(domain.Recipe{
			Name:   name,
			Deps:   dto.Deps,
			Action: action,
			Policy: policy,
			Doc:    dto.Doc,
		})
	}

	return reg, nil
}
