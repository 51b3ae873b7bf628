// Package shell provides a recipe action that runs an external command.
package shell

import (
	"context"
	"errors"
	"os"
	"os/exec"
	"strings"

	"github.com/thautwarm/pmakefile/internal/core/domain"
	"github.com/thautwarm/pmakefile/internal/core/ports"
	"go.trai.ch/zerr"
)

var _ domain.Action = (*Command)(nil)

// Command is a domain.Action that executes an argv-style command,
// streaming its output into the logger.
type Command struct {
	argv   []string
	env    map[string]string
	dir    string
	logger ports.Logger
}

// NewCommand creates a Command action. env entries override the inherited
// process environment; dir, when non-empty, is the command's working
// directory.
func NewCommand(argv []string, env map[string]string, dir string, logger ports.Logger) *Command {
	return &Command{argv: argv, env: env, dir: dir, logger: logger}
}

// Run executes the command and blocks until it exits. A non-zero exit is
// returned as an error carrying the exit code; the runner treats it as
// fatal to the whole invocation.
func (c *Command) Run(ctx context.Context) error {
	if len(c.argv) == 0 {
		return nil
	}

	c.logger.Info(strings.Join(c.argv, " "))

	cmd := exec.CommandContext(ctx, c.argv[0], c.argv[1:]...) //nolint:gosec // user provided command
	cmd.Dir = c.dir
	cmd.Env = mergeEnvironment(os.Environ(), c.env)
	cmd.Stdout = &logWriter{logger: c.logger, level: "info"}
	cmd.Stderr = &logWriter{logger: c.logger, level: "error"}

	if err := cmd.Run(); err != nil {
		exitCode := -1
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			exitCode = exitErr.ExitCode()
		}
		return zerr.With(
			zerr.With(zerr.Wrap(err, "command failed"), "command", strings.Join(c.argv, " ")),
			"exit_code", exitCode,
		)
	}
	return nil
}

type logWriter struct {
	logger ports.Logger
	level  string
}

// Write splits the chunk into lines for the logger. Partial lines are not
// buffered; recipe output is informational only.
func (w *logWriter) Write(p []byte) (int, error) {
	for _, line := range strings.Split(strings.TrimSuffix(string(p), "\n"), "\n") {
		if w.level == "error" {
			w.logger.Error(zerr.New(line))
		} else {
			w.logger.Info(line)
		}
	}
	return len(p), nil
}

// mergeEnvironment overlays the override map onto the inherited
// environment, later entries winning.
func mergeEnvironment(base []string, overrides map[string]string) []string {
	if len(overrides) == 0 {
		return base
	}

	envMap := make(map[string]string, len(base)+len(overrides))
	order := make([]string, 0, len(base)+len(overrides))
	for _, entry := range base {
		k, v, ok := strings.Cut(entry, "=")
		if !ok {
			continue
		}
		if _, seen := envMap[k]; !seen {
			order = append(order, k)
		}
		envMap[k] = v
	}
	for k, v := range overrides {
		if _, seen := envMap[k]; !seen {
			order = append(order, k)
		}
		envMap[k] = v
	}

	result := make([]string, 0, len(order))
	for _, k := range order {
		result = append(result, k+"="+envMap[k])
	}
	return result
}
