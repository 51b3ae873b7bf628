// Package app implements the application layer for pmake.
package app

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/thautwarm/pmakefile/internal/core/domain"
	"github.com/thautwarm/pmakefile/internal/core/ports"
	"github.com/thautwarm/pmakefile/internal/engine/resolver"
	"go.trai.ch/zerr"
)

// DefaultTarget is resolved when no target names are requested.
const DefaultTarget = "all"

// HelpTarget is the reserved pseudo-target that lists recipes instead of
// resolving anything. Matched case-insensitively.
const HelpTarget = "help"

// App wires the recipe loader and the resolver behind the CLI.
type App struct {
	loader   ports.ConfigLoader
	resolver *resolver.Resolver
	store    ports.FingerprintStore
	out      io.Writer
}

// New creates an App. Listings are written to out.
func New(loader ports.ConfigLoader, res *resolver.Resolver, store ports.FingerprintStore, out io.Writer) *App {
	return &App{
		loader:   loader,
		resolver: res,
		store:    store,
		out:      out,
	}
}

// Run loads the recipe file and resolves the requested targets. Zero
// targets default to DefaultTarget; a HelpTarget anywhere in the list
// short-circuits to the listing without touching the cache or filesystem
// state of any target, and tolerates a missing recipe file.
func (a *App) Run(ctx context.Context, targets []string) error {
	cwd, err := os.Getwd()
	if err != nil {
		return zerr.Wrap(err, "failed to determine working directory")
	}

	if len(targets) == 0 {
		targets = []string{DefaultTarget}
	}
	for _, t := range targets {
		if strings.EqualFold(t, HelpTarget) {
			registry, err := a.loader.Load(cwd)
			if err != nil {
				// The listing must work in a directory without a recipe
				// file; an empty registry lists nothing.
				registry = domain.NewRegistry()
			}
			return a.List(registry)
		}
	}

	registry, err := a.loader.Load(cwd)
	if err != nil {
		return zerr.Wrap(err, "failed to load recipe file")
	}

	return a.resolver.Run(ctx, registry, targets)
}

// List prints every phony, registered recipe with its documentation
// string. It performs no resolution.
func (a *App) List(registry *domain.Registry) error {
	if _, err := fmt.Fprintln(a.out, "Available recipes:"); err != nil {
		return err
	}
	for _, name := range registry.Names() {
		if !registry.IsPhony(name) {
			continue
		}
		recipe, _ := registry.Lookup(name)
		doc := recipe.Doc
		if doc == "" {
			doc = "undocumented recipe"
		}
		if _, err := fmt.Fprintf(a.out, "%-15s %s\n", name, doc); err != nil {
			return err
		}
	}
	return nil
}

// Clean removes the fingerprint cache directory.
func (a *App) Clean() error {
	return a.store.Clean()
}
