// Package resolver implements the rebuild-decision engine: a depth-first
// dependency walker combined with a persisted fingerprint cache.
package resolver

import (
	"context"
	"errors"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/thautwarm/pmakefile/internal/core/domain"
	"github.com/thautwarm/pmakefile/internal/core/ports"
	"go.trai.ch/zerr"
)

// maxDepth bounds prerequisite recursion. User-authored graphs are
// shallow; hitting the bound almost always means a dependency cycle that
// slipped past the visited set.
const maxDepth = 10000

// Resolver walks a target's prerequisites depth-first, executing actions
// bottom-up and skipping work whose persisted fingerprint is still valid.
// Resolution is single-threaded and synchronous; a failing target aborts
// the whole invocation.
type Resolver struct {
	store  ports.FingerprintStore
	hasher ports.Hasher
	logger ports.Logger
	tracer ports.Tracer
	root   string
}

// New creates a Resolver. root is the directory against which non-phony
// target names are interpreted as paths.
func New(
	store ports.FingerprintStore,
	hasher ports.Hasher,
	logger ports.Logger,
	tracer ports.Tracer,
	root string,
) *Resolver {
	return &Resolver{
		store:  store,
		hasher: hasher,
		logger: logger,
		tracer: tracer,
		root:   root,
	}
}

// runState is the per-invocation mutable state: the visited set plus the
// recursion depth guard. Only the single control thread touches it.
type runState struct {
	registry *domain.Registry
	visited  map[string]struct{}
	depth    int
}

// Run resolves each requested target in order against the given registry.
func (r *Resolver) Run(ctx context.Context, registry *domain.Registry, targets []string) error {
	state := &runState{
		registry: registry,
		visited:  make(map[string]struct{}),
	}
	for _, target := range targets {
		if err := r.resolve(ctx, state, target); err != nil {
			return err
		}
	}
	return nil
}

// resolve ensures a single target is up to date. Prerequisites are fully
// resolved, in declared order, before the target itself is evaluated; this
// is the only ordering guarantee.
func (r *Resolver) resolve(ctx context.Context, state *runState, name string) error {
	if _, done := state.visited[name]; done {
		return nil
	}
	if state.depth >= maxDepth {
		return zerr.With(domain.ErrDepthExceeded, "target", name)
	}
	state.depth++
	defer func() { state.depth-- }()

	recipe, registered := state.registry.Lookup(name)
	depRan := false
	if registered {
		for _, dep := range recipe.Deps {
			if err := r.resolve(ctx, state, dep); err != nil {
				return err
			}
			if _, ran := state.visited[dep]; ran {
				depRan = true
			}
		}
	}

	phony := state.registry.IsPhony(name)
	path := filepath.Join(r.root, name)

	if phony && !registered {
		// Pure marker: satisfied by an existing filesystem entry.
		if pathExists(path) {
			return nil
		}
		return zerr.With(domain.ErrPhonyUnresolved, "target", name)
	}
	if !phony && !registered && !pathExists(path) {
		return zerr.With(domain.ErrTargetNotFound, "target", name)
	}

	current, err := r.hasher.Fingerprint(name, recipe.Deps, phony)
	if err != nil {
		return err
	}
	previous, err := r.store.Load(name)
	if err != nil {
		return err
	}

	if r.upToDate(recipe, registered, phony, depRan, path, current, previous) {
		if registered {
			_, span := r.tracer.Start(ctx, name)
			span.Cached()
			span.End(nil)
		}
		// The store must reflect "as of the last time this target was
		// examined", so skip paths persist too.
		return r.store.Save(name, current)
	}

	if err := r.execute(ctx, recipe, registered, phony, name, path); err != nil {
		return err
	}
	state.visited[name] = struct{}{}

	// The action may have touched prerequisite-visible state; recompute
	// before persisting.
	current, err = r.hasher.Fingerprint(name, recipe.Deps, phony)
	if err != nil {
		return err
	}
	return r.store.Save(name, current)
}

// upToDate applies the rebuild policy. depRan reports whether any
// prerequisite's action executed earlier in this invocation: an executed
// prerequisite marks its dependents stale even when it restored
// byte-identical output, so invalidation propagates to every transitive
// dependent.
func (r *Resolver) upToDate(
	recipe domain.Recipe,
	registered, phony, depRan bool,
	path string,
	current, previous domain.Fingerprint,
) bool {
	if !registered {
		// Bare filesystem dependency: nothing to run, only to record.
		return current.Equal(previous)
	}
	switch recipe.Policy {
	case domain.PolicyAlways:
		return false
	case domain.PolicyNo:
		// Never rebuild an existing artifact, regardless of upstream
		// changes.
		return !phony && pathExists(path)
	default: // PolicyAuto, PolicyAutoWithDir
		// The existence check guards against an out-of-band deletion that
		// a stale persisted fingerprint would otherwise call "unchanged".
		return !depRan && current.Equal(previous) && (phony || pathExists(path))
	}
}

// execute removes a stale artifact, then runs the recipe's action with
// the prerequisite list exposed through the context for the duration of
// the call.
func (r *Resolver) execute(
	ctx context.Context,
	recipe domain.Recipe,
	registered, phony bool,
	name, path string,
) error {
	if registered && !phony {
		if err := r.removeStaleArtifact(path, recipe.Policy); err != nil {
			return err
		}
	}
	if !registered || recipe.Action == nil {
		return nil
	}

	_, span := r.tracer.Start(ctx, name)
	actionCtx := domain.WithDeps(ctx, recipe.Deps)
	if err := recipe.Action.Run(actionCtx); err != nil {
		span.End(err)
		return zerr.With(zerr.Wrap(err, "recipe action failed"), "target", name)
	}
	span.End(nil)
	return nil
}

// removeStaleArtifact deletes the target's previous output before the
// action runs. A regular file is unconditionally removed; a directory only
// under always and autoWithDir, since auto expects actions to overwrite
// into existing directories.
func (r *Resolver) removeStaleArtifact(path string, policy domain.Policy) error {
	info, err := os.Stat(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		return zerr.With(zerr.Wrap(err, "failed to stat artifact"), "path", path)
	}

	if info.IsDir() {
		if policy != domain.PolicyAlways && policy != domain.PolicyAutoWithDir {
			return nil
		}
		if err := os.RemoveAll(path); err != nil {
			return zerr.With(zerr.Wrap(err, "failed to remove artifact directory"), "path", path)
		}
		return nil
	}

	if err := os.Remove(path); err != nil {
		return zerr.With(zerr.Wrap(err, "failed to remove stale artifact"), "path", path)
	}
	return nil
}

func pathExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}
