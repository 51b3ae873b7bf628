package app_test

import (
	"bytes"
	"context"
	"errors"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/thautwarm/pmakefile/internal/adapters/cache"
	"github.com/thautwarm/pmakefile/internal/adapters/fs"
	"github.com/thautwarm/pmakefile/internal/adapters/logger"
	"github.com/thautwarm/pmakefile/internal/adapters/telemetry"
	"github.com/thautwarm/pmakefile/internal/app"
	"github.com/thautwarm/pmakefile/internal/core/domain"
	"github.com/thautwarm/pmakefile/internal/core/ports/mocks"
	"github.com/thautwarm/pmakefile/internal/engine/resolver"
	"go.uber.org/mock/gomock"
)

// harness assembles an App over a temp working directory with a mocked
// recipe loader, so tests control the registry directly.
type harness struct {
	app    *app.App
	loader *mocks.MockConfigLoader
	store  *cache.Store
	out    *bytes.Buffer
}

func newHarness(t *testing.T) *harness {
	t.Helper()
	root := t.TempDir()
	t.Chdir(root)
	t.Setenv(cache.EnvCacheDir, "")

	store, err := cache.NewStore(root)
	require.NoError(t, err)

	log := logger.New()
	log.SetOutput(io.Discard)

	loader := mocks.NewMockConfigLoader(gomock.NewController(t))
	res := resolver.New(store, fs.NewHasher(store, root), log, telemetry.NewNoOpTracer(), root)
	out := &bytes.Buffer{}
	return &harness{
		app:    app.New(loader, res, store, out),
		loader: loader,
		store:  store,
		out:    out,
	}
}

func TestRun_DefaultsToAll(t *testing.T) {
	h := newHarness(t)
	ran := false
	reg := domain.NewRegistry()
	reg.MarkPhony("all")
	reg.Register(domain.Recipe{
		Name:   "all",
		Policy: domain.PolicyAlways,
		Action: domain.ActionFunc(func(context.Context) error {
			ran = true
			return nil
		}),
	})
	h.loader.EXPECT().Load(gomock.Any()).Return(reg, nil)

	require.NoError(t, h.app.Run(context.Background(), nil))
	assert.True(t, ran)
}

func TestRun_HelpAnywhereShortCircuitsToListing(t *testing.T) {
	h := newHarness(t)
	reg := domain.NewRegistry()
	reg.MarkPhony("all")
	reg.Register(domain.Recipe{
		Name: "all",
		Doc:  "build everything",
		Action: domain.ActionFunc(func(context.Context) error {
			t.Fatal("no action may run when help is requested")
			return nil
		}),
	})
	h.loader.EXPECT().Load(gomock.Any()).Return(reg, nil)

	require.NoError(t, h.app.Run(context.Background(), []string{"all", "HELP"}))
	assert.Contains(t, h.out.String(), "build everything")
}

func TestRun_HelpToleratesMissingRecipeFile(t *testing.T) {
	h := newHarness(t)
	h.loader.EXPECT().Load(gomock.Any()).Return(nil, errors.New("no recipe file"))

	require.NoError(t, h.app.Run(context.Background(), []string{"help"}))
	assert.Contains(t, h.out.String(), "Available recipes:")
}

func TestRun_LoaderErrorPropagates(t *testing.T) {
	h := newHarness(t)
	loadErr := errors.New("no recipe file")
	h.loader.EXPECT().Load(gomock.Any()).Return(nil, loadErr)

	err := h.app.Run(context.Background(), []string{"all"})
	assert.ErrorIs(t, err, loadErr)
}

func TestList_ShowsPhonyRecipesOnly(t *testing.T) {
	h := newHarness(t)
	reg := domain.NewRegistry()
	reg.MarkPhony("all", "test")
	reg.Register(domain.Recipe{Name: "all", Doc: "build everything"})
	reg.Register(domain.Recipe{Name: "test"})
	reg.Register(domain.Recipe{Name: "b.txt", Doc: "a file target"})

	require.NoError(t, h.app.List(reg))

	listing := h.out.String()
	assert.Contains(t, listing, "build everything")
	assert.Contains(t, listing, "undocumented recipe")
	assert.NotContains(t, listing, "b.txt", "file targets are not listed")
}

func TestClean_RemovesCacheDirectory(t *testing.T) {
	h := newHarness(t)
	require.NoError(t, h.store.Save("x", domain.Fingerprint([]byte{1})))

	require.NoError(t, h.app.Clean())

	got, err := h.store.Load("x")
	require.NoError(t, err)
	assert.True(t, got.IsZero())
}
