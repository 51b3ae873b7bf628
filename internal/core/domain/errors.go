package domain

import "go.trai.ch/zerr"

var (
	// ErrPhonyUnresolved is returned when a phony name has no recipe and
	// no filesystem entry exists to satisfy it.
	ErrPhonyUnresolved = zerr.New("no recipe for phony target")

	// ErrTargetNotFound is returned when a name is neither a registered
	// recipe, a phony marker, nor an existing filesystem path.
	ErrTargetNotFound = zerr.New("no recipe or file for target")

	// ErrNoActiveRecipe is returned when Deps is called outside of an
	// executing action.
	ErrNoActiveRecipe = zerr.New("Deps may only be called inside a recipe action")

	// ErrUnknownPolicy is returned for an unrecognized rebuild policy
	// selector.
	ErrUnknownPolicy = zerr.New("unknown rebuild policy")

	// ErrCacheCollision is returned when the cache location collides with
	// an existing non-directory entry.
	ErrCacheCollision = zerr.New("cache path is not a directory")

	// ErrDepthExceeded is returned when prerequisite recursion exceeds the
	// defensive depth bound, usually indicating a dependency cycle.
	ErrDepthExceeded = zerr.New("prerequisite recursion too deep (dependency cycle?)")
)
