package probe

import (
	"strings"
	"time"

	"github.com/blueops/fleet-portal/internal/domain"
)

// ParseFleet turns the tab-separated output of the runtime's detail listing
// (name, status text, ports, image, size) into a fleet view. Lines with
// fewer than five columns are skipped; the runtime occasionally emits
// truncated rows and a partial fleet view beats none at all.
func ParseFleet(output string, observedAt time.Time) domain.FleetView {
	view := make(domain.FleetView)
	for _, line := range strings.Split(strings.TrimSpace(output), "\n") {
		if strings.TrimSpace(line) == "" {
			continue
		}
		parts := strings.Split(line, "\t")
		if len(parts) < 5 {
			continue
		}
		name := strings.TrimSpace(parts[0])
		statusText := strings.TrimSpace(parts[1])
		view[name] = domain.ContainerSnapshot{
			Name:       name,
			Status:     ClassifyStatus(statusText),
			StatusText: statusText,
			Ports:      strings.TrimSpace(parts[2]),
			Image:      strings.TrimSpace(parts[3]),
			Size:       strings.TrimSpace(parts[4]),
			ObservedAt: observedAt,
		}
	}
	return view
}

// ClassifyStatus maps the runtime's free-text status to a status enum by
// ordered substring match.
func ClassifyStatus(statusText string) domain.Status {
	switch {
	case strings.Contains(statusText, "Up"):
		return domain.StatusRunning
	case strings.Contains(statusText, "Exited"):
		return domain.StatusStopped
	case strings.Contains(statusText, "Created"):
		return domain.StatusCreated
	default:
		return domain.StatusUnknown
	}
}
