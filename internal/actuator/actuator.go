package actuator

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/blueops/fleet-portal/internal/dockercli"
	"github.com/blueops/fleet-portal/internal/domain"
)

type appender interface {
	Append(action, details, actor string, level domain.Level) domain.ChangelogEntry
}

// Result is the synchronous outcome of a control action.
type Result struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

// Actuator issues start/stop/restart commands against single containers. A
// successful command appends exactly one manually-sourced changelog entry;
// failures append nothing and are surfaced to the caller. The running
// monitor reconciles the actual state change on its next poll.
type Actuator struct {
	runner    dockercli.CommandRunner
	changelog appender
	timeout   time.Duration
	logger    zerolog.Logger
}

func New(runner dockercli.CommandRunner, store appender, timeout time.Duration, logger zerolog.Logger) *Actuator {
	return &Actuator{runner: runner, changelog: store, timeout: timeout, logger: logger}
}

func (a *Actuator) Start(ctx context.Context, name string) Result {
	return a.run(ctx, "start", name, domain.ActionContainerStarted, "started")
}

func (a *Actuator) Stop(ctx context.Context, name string) Result {
	return a.run(ctx, "stop", name, domain.ActionContainerStopped, "stopped")
}

func (a *Actuator) Restart(ctx context.Context, name string) Result {
	return a.run(ctx, "restart", name, domain.ActionContainerRestarted, "restarted")
}

func (a *Actuator) run(ctx context.Context, command, name, action, verb string) Result {
	if _, err := a.runner.Run(ctx, a.timeout, command, name); err != nil {
		a.logger.Error().Err(NewActuatorError(command, name, err)).Msg("Container control command failed")
		return Result{Success: false, Message: fmt.Sprintf("Failed to %s container: %v", command, err)}
	}

	a.changelog.Append(action, fmt.Sprintf("Container '%s' %s manually", name, verb), domain.ActorManual, domain.LevelInfo)
	return Result{Success: true, Message: fmt.Sprintf("Container %s %s successfully", name, verb)}
}
