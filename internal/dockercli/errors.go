package dockercli

import (
	"fmt"
	"strings"
)

// CommandError reports a failed or timed-out runtime command invocation.
type CommandError struct {
	Args   []string
	Output string
	Err    error
}

func NewCommandError(args []string, output string, err error) *CommandError {
	return &CommandError{Args: args, Output: strings.TrimSpace(output), Err: err}
}

func (e *CommandError) Error() string {
	if e.Output != "" {
		return fmt.Sprintf("docker %s: %s", strings.Join(e.Args, " "), e.Output)
	}
	return fmt.Sprintf("docker %s: %v", strings.Join(e.Args, " "), e.Err)
}

func (e *CommandError) Unwrap() error {
	return e.Err
}
