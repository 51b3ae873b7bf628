package progrock_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	adapter "github.com/thautwarm/pmakefile/internal/adapters/telemetry/progrock"
	"github.com/vito/progrock"
)

func TestRecorder_VertexLifecycle(t *testing.T) {
	tape := progrock.NewTape()
	rec := adapter.NewRecorder(tape)

	_, span := rec.Start(context.Background(), "b.txt")
	span.End(nil)

	_, cached := rec.Start(context.Background(), "a.txt")
	cached.Cached()
	cached.End(nil)

	_, failed := rec.Start(context.Background(), "broken")
	failed.End(errors.New("boom"))

	require.NoError(t, rec.Close())
}

func TestRecorder_SameNameMapsToSameVertex(t *testing.T) {
	tape := progrock.NewTape()
	rec := adapter.NewRecorder(tape)
	defer func() { _ = rec.Close() }()

	ctx := context.Background()
	_, first := rec.Start(ctx, "target")
	_, second := rec.Start(ctx, "target")

	assert.NotNil(t, first)
	assert.NotNil(t, second)
}
