package domain_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/thautwarm/pmakefile/internal/core/domain"
)

func TestRegistry_RegisterAndLookup(t *testing.T) {
	reg := domain.NewRegistry()

	reg.Register(domain.Recipe{Name: "build", Deps: []string{"src"}})

	got, ok := reg.Lookup("build")
	require.True(t, ok)
	assert.Equal(t, "build", got.Name)
	assert.Equal(t, []string{"src"}, got.Deps)

	_, ok = reg.Lookup("missing")
	assert.False(t, ok, "absence is a valid state, not an error")
}

func TestRegistry_RegisterReplaces(t *testing.T) {
	reg := domain.NewRegistry()

	reg.Register(domain.Recipe{Name: "build", Policy: domain.PolicyAuto})
	reg.Register(domain.Recipe{Name: "build", Policy: domain.PolicyAlways})

	got, ok := reg.Lookup("build")
	require.True(t, ok)
	assert.Equal(t, domain.PolicyAlways, got.Policy)
}

func TestRegistry_MarkPhonyUnion(t *testing.T) {
	reg := domain.NewRegistry()

	reg.MarkPhony("all", "clean")
	reg.MarkPhony("clean", "test")

	assert.True(t, reg.IsPhony("all"))
	assert.True(t, reg.IsPhony("clean"))
	assert.True(t, reg.IsPhony("test"))
	assert.False(t, reg.IsPhony("build"))
}

func TestRegistry_PhonyWithoutRecipe(t *testing.T) {
	// A phony name with no recipe is a pure marker target.
	reg := domain.NewRegistry()
	reg.MarkPhony("vendor")

	assert.True(t, reg.IsPhony("vendor"))
	_, ok := reg.Lookup("vendor")
	assert.False(t, ok)
}

func TestRegistry_NamesSorted(t *testing.T) {
	reg := domain.NewRegistry()
	reg.Register(domain.Recipe{Name: "zeta"})
	reg.Register(domain.Recipe{Name: "alpha"})
	reg.Register(domain.Recipe{Name: "mid"})

	assert.Equal(t, []string{"alpha", "mid", "zeta"}, reg.Names())
}

func TestNormalizeName(t *testing.T) {
	assert.Equal(t, "build-all", domain.NormalizeName("build_all"))
	assert.Equal(t, "plain", domain.NormalizeName("plain"))
}

func TestParsePolicy(t *testing.T) {
	for _, valid := range []string{"auto", "no", "always", "autoWithDir"} {
		p, err := domain.ParsePolicy(valid)
		require.NoError(t, err)
		assert.Equal(t, valid, p.String())
	}

	p, err := domain.ParsePolicy("")
	require.NoError(t, err)
	assert.Equal(t, domain.PolicyAuto, p)

	_, err = domain.ParsePolicy("sometimes")
	assert.ErrorIs(t, err, domain.ErrUnknownPolicy)
}
