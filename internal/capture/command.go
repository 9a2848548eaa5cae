package capture

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"strings"

	"vtcopy/internal/logging"
)

// CommandSource runs the test command and captures its combined output
type CommandSource struct {
	Command string
	Dir     string
}

// NewCommandSource creates a new CommandSource
func NewCommandSource(command, dir string) *CommandSource {
	return &CommandSource{Command: command, Dir: dir}
}

// Name implements Source.
func (s *CommandSource) Name() string { return s.Command }

// Read implements Source. A non-zero exit is expected when tests fail and is not an
// error; failing to start the command is.
func (s *CommandSource) Read(ctx context.Context) (string, error) {
	fields := strings.Fields(s.Command)
	if len(fields) == 0 {
		return "", fmt.Errorf("empty command")
	}

	cmd := exec.CommandContext(ctx, fields[0], fields[1:]...)
	cmd.Dir = s.Dir
	cmd.Env = append(os.Environ(), "FORCE_COLOR=0", "NO_COLOR=1", "CI=1")

	output, err := cmd.CombinedOutput()

	var exitErr *exec.ExitError
	switch {
	case err == nil:
	case errors.As(err, &exitErr) && ctx.Err() == nil:
		logging.Debug("test command exited", "command", s.Command, "code", exitErr.ExitCode())
	default:
		return "", fmt.Errorf("run %q: %w", s.Command, err)
	}

	return string(output), nil
}
