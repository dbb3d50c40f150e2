package probe

import (
	"context"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/blueops/fleet-portal/internal/dockercli"
	"github.com/blueops/fleet-portal/internal/domain"
)

const detailFormat = "{{.Names}}\t{{.Status}}\t{{.Ports}}\t{{.Image}}\t{{.Size}}"

// DockerProbe queries the container runtime's list commands and parses the
// tabular output into fleet views.
type DockerProbe struct {
	runner  dockercli.CommandRunner
	timeout time.Duration
	logger  zerolog.Logger
}

func NewDockerProbe(runner dockercli.CommandRunner, timeout time.Duration, logger zerolog.Logger) *DockerProbe {
	return &DockerProbe{runner: runner, timeout: timeout, logger: logger}
}

// Probe lists all containers, running or not. On failure it returns an empty
// view alongside a ProbeError; the caller logs and keeps its previous view.
func (p *DockerProbe) Probe(ctx context.Context) (domain.FleetView, error) {
	out, err := p.runner.Run(ctx, p.timeout, "ps", "-a", "--format", detailFormat)
	if err != nil {
		return domain.FleetView{}, NewProbeError("listing containers", err)
	}
	return ParseFleet(out, time.Now()), nil
}

// Count returns the number of running containers using the runtime's bare
// name listing. Failures count as zero; the health endpoint reports the
// degradation instead.
func (p *DockerProbe) Count(ctx context.Context) (int, error) {
	out, err := p.runner.Run(ctx, p.timeout, "ps", "--format", "table {{.Names}}")
	if err != nil {
		return 0, NewProbeError("counting containers", err)
	}
	trimmed := strings.TrimSpace(out)
	if trimmed == "" {
		return 0, nil
	}
	// First line is the table header.
	lines := strings.Split(trimmed, "\n")
	if len(lines) <= 1 {
		return 0, nil
	}
	return len(lines) - 1, nil
}
