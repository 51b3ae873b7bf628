package ports

import "context"

// Tracer records the progress of target resolution.
type Tracer interface {
	// Start opens a span for the named target.
	Start(ctx context.Context, name string) (context.Context, Span)

	// Close flushes and closes the recording session.
	Close() error
}

// Span represents one target's evaluation.
type Span interface {
	// Cached marks the span as skipped because the cached result was
	// still valid.
	Cached()

	// End completes the span, recording err if the action failed.
	End(err error)
}
