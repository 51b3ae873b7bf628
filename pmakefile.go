// Package pmakefile is an embeddable, Make-style task runner. Users
// declare named recipes with prerequisites, an action and a rebuild
// policy; the runner resolves them in dependency order, skipping targets
// whose persisted content fingerprint is still valid.
//
// Typical embedding:
//
//	reg := pmakefile.NewRegistry()
//	reg.MarkPhony("all", "build")
//	reg.Register(pmakefile.Recipe{
//		Name: "out.txt",
//		Deps: []string{"in.txt"},
//		Action: pmakefile.ActionFunc(func(ctx context.Context) error {
//			// ...
//			return nil
//		}),
//		Policy: pmakefile.PolicyAuto,
//	})
//	runner, err := pmakefile.NewRunner(reg)
//	if err != nil { ... }
//	err = runner.Run(ctx, "out.txt")
package pmakefile

import (
	"context"
	"io"
	"os"

	"github.com/thautwarm/pmakefile/internal/adapters/cache"
	"github.com/thautwarm/pmakefile/internal/adapters/fs"
	"github.com/thautwarm/pmakefile/internal/adapters/logger"
	"github.com/thautwarm/pmakefile/internal/adapters/telemetry"
	"github.com/thautwarm/pmakefile/internal/app"
	"github.com/thautwarm/pmakefile/internal/core/domain"
	"github.com/thautwarm/pmakefile/internal/core/ports"
	"github.com/thautwarm/pmakefile/internal/engine/resolver"
	"go.trai.ch/zerr"
)

// Recipe declares how to produce one target. See domain.Recipe.
type Recipe = domain.Recipe

// Registry is the table of declared recipes and phony names.
type Registry = domain.Registry

// Action is the capability a recipe executes.
type Action = domain.Action

// ActionFunc adapts a plain function to Action.
type ActionFunc = domain.ActionFunc

// Policy controls when a cached result is trusted.
type Policy = domain.Policy

// Rebuild policies.
const (
	PolicyAuto        = domain.PolicyAuto
	PolicyNo          = domain.PolicyNo
	PolicyAlways      = domain.PolicyAlways
	PolicyAutoWithDir = domain.PolicyAutoWithDir
)

// NewRegistry creates an empty Registry. All registration must happen
// before the first Run call.
func NewRegistry() *Registry {
	return domain.NewRegistry()
}

// NormalizeName is the default naming rule for recipes derived from
// identifiers: underscores become hyphens.
func NormalizeName(name string) string {
	return domain.NormalizeName(name)
}

// Deps returns the prerequisite names of the currently executing recipe.
// It may only be called from inside an action; anywhere else it fails
// with an error rather than returning a stale or empty list.
func Deps(ctx context.Context) ([]string, error) {
	return domain.Deps(ctx)
}

// Runner resolves targets against a fixed Registry.
type Runner struct {
	app *app.App
}

type runnerOptions struct {
	workDir string
	out     io.Writer
}

// Option configures a Runner.
type Option func(*runnerOptions)

// WithWorkDir sets the directory against which target paths and the
// default cache location are interpreted. Defaults to the process working
// directory.
func WithWorkDir(dir string) Option {
	return func(o *runnerOptions) { o.workDir = dir }
}

// WithOutput sets the destination of the help listing. Defaults to
// stdout.
func WithOutput(w io.Writer) Option {
	return func(o *runnerOptions) { o.out = w }
}

// NewRunner creates a Runner over the given registry. It locates the
// fingerprint cache ('.pmake_caches' under the working directory, or
// PMAKE_CACHE_DIR); a collision with an existing non-directory entry is
// reported immediately.
func NewRunner(registry *Registry, opts ...Option) (*Runner, error) {
	options := runnerOptions{out: os.Stdout}
	for _, opt := range opts {
		opt(&options)
	}
	if options.workDir == "" {
		cwd, err := os.Getwd()
		if err != nil {
			return nil, zerr.Wrap(err, "failed to determine working directory")
		}
		options.workDir = cwd
	}

	store, err := cache.NewStore(options.workDir)
	if err != nil {
		return nil, err
	}

	log := logger.New()
	res := resolver.New(store, fs.NewHasher(store, options.workDir), log, telemetry.FromEnv(), options.workDir)
	a := app.New(staticLoader{registry: registry}, res, store, options.out)

	return &Runner{app: a}, nil
}

// Run resolves each requested target in order. Zero targets default to
// "all"; a target named "help" (case-insensitive) lists the registered
// phony recipes instead of resolving anything.
func (r *Runner) Run(ctx context.Context, targets ...string) error {
	return r.app.Run(ctx, targets)
}

// Clean removes the fingerprint cache directory.
func (r *Runner) Clean() error {
	return r.app.Clean()
}

// staticLoader satisfies ports.ConfigLoader with an already-built
// registry.
type staticLoader struct {
	registry *domain.Registry
}

func (l staticLoader) Load(string) (*domain.Registry, error) {
	return l.registry, nil
}

var _ ports.ConfigLoader = staticLoader{}
