package domain

import "time"

type Status string

const (
	StatusRunning  Status = "running"
	StatusStopped  Status = "stopped"
	StatusCreated  Status = "created"
	StatusUnknown  Status = "unknown"
	StatusNotFound Status = "not_found"
)

func (s Status) IsValid() bool {
	switch s {
	case StatusRunning, StatusStopped, StatusCreated, StatusUnknown, StatusNotFound:
		return true
	}
	return false
}

// ContainerSnapshot is one container's point-in-time status record as
// reported by the container runtime's list output.
type ContainerSnapshot struct {
	Name       string    `json:"name"`
	Status     Status    `json:"status"`
	StatusText string    `json:"status_text"`
	Ports      string    `json:"ports"`
	Image      string    `json:"image"`
	Size       string    `json:"size"`
	ObservedAt time.Time `json:"last_updated"`
}

// FleetView maps container name to its snapshot. A view is built once per
// poll cycle and never mutated afterward, so it can be shared across
// goroutines without copying.
type FleetView map[string]ContainerSnapshot
