package domain

import "sort"

// Registry is the in-memory table of declared recipes plus the set of
// phony target names. It is built once per invocation; registering after
// resolution has started is a caller error and is not supported.
type Registry struct {
	recipes map[string]Recipe
	phony   map[string]struct{}
}

// NewRegistry creates an empty Registry.
func NewRegistry() *Registry {
	return &Registry{
		recipes: make(map[string]Recipe),
		phony:   make(map[string]struct{}),
	}
}

// Register inserts or replaces the recipe for r.Name. Prerequisites are
// not validated here; they may be registered later or be bare filesystem
// paths that never get a recipe.
func (reg *Registry) Register(r Recipe) {
	reg.recipes[r.Name] = r
}

// MarkPhony adds names to the phony set. Idempotent, union semantics.
// A phony name without a recipe is a pure marker: a request for it is
// satisfied by an existing filesystem entry of the same name.
func (reg *Registry) MarkPhony(names ...string) {
	for _, n := range names {
		reg.phony[n] = struct{}{}
	}
}

// Lookup returns the recipe for name. Absence is a valid state meaning
// "this is a raw filesystem path with no declared recipe."
func (reg *Registry) Lookup(name string) (Recipe, bool) {
	r, ok := reg.recipes[name]
	return r, ok
}

// IsPhony reports whether name is in the phony set.
func (reg *Registry) IsPhony(name string) bool {
	_, ok := reg.phony[name]
	return ok
}

// Names returns all registered recipe names in sorted order.
func (reg *Registry) Names() []string {
	names := make([]string, 0, len(reg.recipes))
	for n := range reg.recipes {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}
