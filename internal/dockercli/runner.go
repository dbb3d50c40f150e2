package dockercli

import (
	"bytes"
	"context"
	"os/exec"
	"time"

	"github.com/rs/zerolog"
)

// CommandRunner invokes a single container-runtime command and returns its
// stdout. A non-zero exit or timeout is reported as an error with stderr
// captured in the error text.
type CommandRunner interface {
	Run(ctx context.Context, timeout time.Duration, args ...string) (string, error)
}

type ExecRunner struct {
	binary string
	logger zerolog.Logger
}

func NewExecRunner(binary string, logger zerolog.Logger) *ExecRunner {
	return &ExecRunner{binary: binary, logger: logger}
}

func (r *ExecRunner) Run(ctx context.Context, timeout time.Duration, args ...string) (string, error) {
	runCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	cmd := exec.CommandContext(runCtx, r.binary, args...)
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	err := cmd.Run()
	if err != nil {
		if runCtx.Err() == context.DeadlineExceeded {
			r.logger.Debug().Strs("args", args).Dur("timeout", timeout).Msg("Runtime command timed out")
			return "", NewCommandError(args, "command timed out", runCtx.Err())
		}
		r.logger.Debug().Strs("args", args).Err(err).Msg("Runtime command failed")
		return "", NewCommandError(args, stderr.String(), err)
	}
	return stdout.String(), nil
}
