package domain

import "context"

type depsKey struct{}

// WithDeps returns a context carrying the prerequisite list of the recipe
// whose action is about to run. The resolver installs it for the duration
// of the action only.
func WithDeps(ctx context.Context, deps []string) context.Context {
	// Copy so actions cannot mutate the registered recipe.
	cp := make([]string, len(deps))
	copy(cp, deps)
	return context.WithValue(ctx, depsKey{}, cp)
}

// Deps returns the prerequisite names of the currently executing recipe.
// Calling it outside an active action is a programmer error and fails with
// ErrNoActiveRecipe rather than returning a stale or empty list.
func Deps(ctx context.Context) ([]string, error) {
	deps, ok := ctx.Value(depsKey{}).([]string)
	if !ok {
		return nil, ErrNoActiveRecipe
	}
	cp := make([]string, len(deps))
	copy(cp, deps)
	return cp, nil
}
