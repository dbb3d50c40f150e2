package diff

import (
	"fmt"
	"sort"

	"github.com/blueops/fleet-portal/internal/domain"
)

// Diff compares two fleet views and returns the state transitions between
// them in a deterministic order: arrivals and status changes first, walking
// the current view's names lexicographically, then departures, walking the
// previous view's names lexicographically. Diffing a view against itself
// yields nothing.
func Diff(previous, current domain.FleetView) []domain.ChangeEvent {
	var events []domain.ChangeEvent

	for _, name := range sortedNames(current) {
		snap := current[name]
		prev, seen := previous[name]
		if !seen {
			events = append(events, domain.ChangeEvent{
				Action: domain.ActionContainerStarted,
				Detail: fmt.Sprintf("Container '%s' started with status: %s", name, snap.Status),
				Level:  domain.LevelInfo,
			})
			continue
		}
		if prev.Status != snap.Status {
			events = append(events, domain.ChangeEvent{
				Action: domain.ActionContainerStatusChanged,
				Detail: fmt.Sprintf("Container '%s' status changed from '%s' to '%s'", name, prev.Status, snap.Status),
				Level:  domain.LevelWarning,
			})
		}
	}

	for _, name := range sortedNames(previous) {
		if _, ok := current[name]; !ok {
			events = append(events, domain.ChangeEvent{
				Action: domain.ActionContainerStopped,
				Detail: fmt.Sprintf("Container '%s' stopped", name),
				Level:  domain.LevelWarning,
			})
		}
	}

	return events
}

func sortedNames(view domain.FleetView) []string {
	names := make([]string, 0, len(view))
	for name := range view {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
