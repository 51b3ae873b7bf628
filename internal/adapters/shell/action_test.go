package shell_test

import (
	"context"
	"io"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/thautwarm/pmakefile/internal/adapters/logger"
	"github.com/thautwarm/pmakefile/internal/adapters/shell"
)

func discardLogger() *logger.Logger {
	log := logger.New()
	log.SetOutput(io.Discard)
	return log
}

func TestCommand_WritesFile(t *testing.T) {
	dir := t.TempDir()
	cmd := shell.NewCommand([]string{"sh", "-c", "printf hello > out.txt"}, nil, dir, discardLogger())

	require.NoError(t, cmd.Run(context.Background()))

	data, err := os.ReadFile(filepath.Join(dir, "out.txt"))
	require.NoError(t, err)
	assert.Equal(t, "hello", string(data))
}

func TestCommand_EmptyArgvIsNoOp(t *testing.T) {
	cmd := shell.NewCommand(nil, nil, t.TempDir(), discardLogger())
	assert.NoError(t, cmd.Run(context.Background()))
}

func TestCommand_NonZeroExitIsError(t *testing.T) {
	cmd := shell.NewCommand([]string{"sh", "-c", "exit 3"}, nil, t.TempDir(), discardLogger())

	err := cmd.Run(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "command failed")

	var exitErr *exec.ExitError
	require.ErrorAs(t, err, &exitErr)
	assert.Equal(t, 3, exitErr.ExitCode())
}

func TestCommand_EnvOverridesInherited(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("PMAKE_TEST_VAR", "inherited")
	cmd := shell.NewCommand(
		[]string{"sh", "-c", `printf "%s" "$PMAKE_TEST_VAR" > env.txt`},
		map[string]string{"PMAKE_TEST_VAR": "override"},
		dir,
		discardLogger(),
	)

	require.NoError(t, cmd.Run(context.Background()))

	data, err := os.ReadFile(filepath.Join(dir, "env.txt"))
	require.NoError(t, err)
	assert.Equal(t, "override", string(data))
}

func TestCommand_OutputReachesLogger(t *testing.T) {
	var buf strings.Builder
	log := logger.New()
	log.SetOutput(&buf)
	cmd := shell.NewCommand([]string{"sh", "-c", "echo from-recipe"}, nil, t.TempDir(), log)

	require.NoError(t, cmd.Run(context.Background()))
	assert.Contains(t, buf.String(), "from-recipe")
}

func TestCommand_CancelledContextAborts(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	cmd := shell.NewCommand([]string{"sleep", "10"}, nil, t.TempDir(), discardLogger())

	assert.Error(t, cmd.Run(ctx))
}
