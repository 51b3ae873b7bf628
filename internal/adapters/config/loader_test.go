package config_test

import (
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/thautwarm/pmakefile/internal/adapters/config"
	"github.com/thautwarm/pmakefile/internal/adapters/logger"
	"github.com/thautwarm/pmakefile/internal/core/domain"
)

func loadFrom(t *testing.T, yaml string) (*domain.Registry, error) {
	t.Helper()
	cwd := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(cwd, config.DefaultFilename), []byte(yaml), 0o644))

	log := logger.New()
	log.SetOutput(io.Discard)
	return config.NewLoader(log).Load(cwd)
}

func TestLoad_FullRecipeFile(t *testing.T) {
	reg, err := loadFrom(t, `
phony:
  - all
  - test
recipes:
  all:
    deps: [b.txt]
    doc: build everything
  b.txt:
    deps: [a.txt]
    run: [sh, -c, "cat a.txt > b.txt"]
  test:
    run: [go, test, ./...]
    rebuild: always
    env:
      CGO_ENABLED: "0"
`)
	require.NoError(t, err)

	all, ok := reg.Lookup("all")
	require.True(t, ok)
	assert.Equal(t, []string{"b.txt"}, all.Deps)
	assert.Equal(t, "build everything", all.Doc)
	assert.Nil(t, all.Action, "a recipe without run is a pure aggregation recipe")
	assert.True(t, reg.IsPhony("all"))

	b, ok := reg.Lookup("b.txt")
	require.True(t, ok)
	assert.NotNil(t, b.Action)
	assert.False(t, reg.IsPhony("b.txt"))
	assert.Equal(t, domain.PolicyAuto, b.Policy)

	tst, ok := reg.Lookup("test")
	require.True(t, ok)
	assert.Equal(t, domain.PolicyAlways, tst.Policy)
}

func TestLoad_UnknownRebuildPolicyFails(t *testing.T) {
	_, err := loadFrom(t, `
recipes:
  out:
    rebuild: sometimes
`)
	assert.ErrorIs(t, err, domain.ErrUnknownPolicy)
}

func TestLoad_MissingFileFails(t *testing.T) {
	log := logger.New()
	log.SetOutput(io.Discard)

	_, err := config.NewLoader(log).Load(t.TempDir())
	assert.Error(t, err)
}

func TestLoad_MalformedYAMLFails(t *testing.T) {
	_, err := loadFrom(t, "recipes: [not, a, map")
	assert.Error(t, err)
}

func TestLoad_NamesUsedVerbatim(t *testing.T) {
	reg, err := loadFrom(t, `
phony:
  - all
  - build_all
recipes:
  all:
    deps: [build_all]
  build_all:
    deps: [out_file.txt]
    run: [sh, -c, "true"]
  out_file.txt:
    run: [sh, -c, "printf x > out_file.txt"]
`)
	require.NoError(t, err)

	// A file that is self-consistent as written must stay that way: keys,
	// phony entries and deps references all match verbatim.
	all, ok := reg.Lookup("all")
	require.True(t, ok)
	dep, ok := reg.Lookup(all.Deps[0])
	require.True(t, ok)
	assert.True(t, reg.IsPhony(all.Deps[0]))

	_, ok = reg.Lookup(dep.Deps[0])
	assert.True(t, ok)

	_, ok = reg.Lookup("out_file.txt")
	assert.True(t, ok, "file targets keep their exact on-disk name")
	_, ok = reg.Lookup("build-all")
	assert.False(t, ok, "explicitly written names are never rewritten")
}
