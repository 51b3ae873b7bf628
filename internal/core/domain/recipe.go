// Package domain contains the core domain models for the recipe registry
// and the rebuild-decision engine.
package domain

import (
	"context"
	"strings"

	"go.trai.ch/zerr"
)

// Policy controls when a recipe's cached result is trusted.
type Policy string

const (
	// PolicyAuto rebuilds when the fingerprint changed or the target's
	// path disappeared. Existing directories are left in place before the
	// action runs.
	PolicyAuto Policy = "auto"
	// PolicyNo never rebuilds a non-phony target whose path exists.
	PolicyNo Policy = "no"
	// PolicyAlways runs the action on every invocation.
	PolicyAlways Policy = "always"
	// PolicyAutoWithDir behaves like PolicyAuto but removes an existing
	// directory artifact before the action runs.
	PolicyAutoWithDir Policy = "autoWithDir"
)

// ParsePolicy validates a policy selector. The empty string maps to
// PolicyAuto.
func ParsePolicy(s string) (Policy, error) {
	switch Policy(s) {
	case "":
		return PolicyAuto, nil
	case PolicyAuto, PolicyNo, PolicyAlways, PolicyAutoWithDir:
		return Policy(s), nil
	default:
		return "", zerr.With(ErrUnknownPolicy, "policy", s)
	}
}

// String returns the policy selector as written in recipe files.
func (p Policy) String() string {
	return string(p)
}

// Action is the capability a recipe executes when its target is out of
// date. Implementations may run external commands, call back into user
// code, or do nothing at all.
//
//go:generate go run go.uber.org/mock/mockgen -source=recipe.go -destination=../ports/mocks/mock_action.go -package=mocks
type Action interface {
	// Run performs the recipe's side effects. The context carries the
	// current recipe's prerequisite list, retrievable via Deps.
	Run(ctx context.Context) error
}

// ActionFunc adapts a plain function to the Action interface.
type ActionFunc func(ctx context.Context) error

// Run calls f.
func (f ActionFunc) Run(ctx context.Context) error { return f(ctx) }

// Recipe declares how to produce one target: its prerequisites (in
// execution order, duplicates allowed), the action to run, and the rebuild
// policy. A Recipe is immutable once registered.
type Recipe struct {
	Name   string
	Deps   []string
	Action Action
	Policy Policy

	// Doc is shown by the help listing for phony recipes.
	Doc string
}

// NormalizeName is the default naming rule for recipes derived from
// identifiers: underscores become hyphens.
func NormalizeName(name string) string {
	return strings.ReplaceAll(name, "_", "-")
}
