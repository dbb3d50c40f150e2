package monitor

import (
	"context"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/blueops/fleet-portal/internal/diff"
	"github.com/blueops/fleet-portal/internal/domain"
	"github.com/blueops/fleet-portal/internal/tools"
)

type prober interface {
	Probe(ctx context.Context) (domain.FleetView, error)
}

type appender interface {
	Append(action, details, actor string, level domain.Level) domain.ChangelogEntry
}

// FleetMonitor owns the poll loop. Each cycle probes the runtime, diffs the
// result against the previous view, appends the transitions to the changelog
// and swaps in the new view wholesale. Readers always see a complete view,
// never a partial update.
type FleetMonitor struct {
	logger    zerolog.Logger
	prober    prober
	changelog appender
	catalog   *tools.Catalog
	interval  time.Duration

	mu   sync.RWMutex
	view domain.FleetView
}

func New(logger zerolog.Logger, p prober, store appender, catalog *tools.Catalog, interval time.Duration) *FleetMonitor {
	return &FleetMonitor{
		logger:    logger,
		prober:    p,
		changelog: store,
		catalog:   catalog,
		interval:  interval,
		view:      domain.FleetView{},
	}
}

// Run polls immediately, then on every tick until ctx is cancelled. Probe
// failures are logged and the cycle skipped; the loop never halts on them.
func (m *FleetMonitor) Run(ctx context.Context) error {
	m.logger.Info().Dur("interval", m.interval).Msg("Container monitoring started")

	m.poll(ctx)

	ticker := time.NewTicker(m.interval)
	defer ticker.Stop()
	for {
		select {
		case <-ticker.C:
			m.poll(ctx)
		case <-ctx.Done():
			m.logger.Info().Msg("Container monitoring stopped")
			return nil
		}
	}
}

func (m *FleetMonitor) poll(ctx context.Context) {
	current, err := m.prober.Probe(ctx)
	if err != nil {
		m.logger.Error().Err(err).Msg("Error polling container status")
		return
	}

	previous := m.CurrentFleetView()
	for _, evt := range diff.Diff(previous, current) {
		m.changelog.Append(evt.Action, evt.Detail, domain.ActorSystem, evt.Level)
	}

	m.mu.Lock()
	m.view = current
	m.mu.Unlock()
}

// CurrentFleetView returns the view from the last successful poll. The
// returned map is never mutated after the swap, so callers may read it
// without copying.
func (m *FleetMonitor) CurrentFleetView() domain.FleetView {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.view
}

// ToolFleetView projects the current view onto the tool catalog, keyed by
// tool id. A tool whose container names are all absent gets a synthetic
// not_found snapshot; that fallback is presentation only and is never
// appended to the changelog.
func (m *FleetMonitor) ToolFleetView() domain.FleetView {
	view := m.CurrentFleetView()
	projected := make(domain.FleetView, len(m.catalog.Tools))
	for _, tool := range m.catalog.Tools {
		found := false
		for _, name := range tool.ContainerNames {
			if snap, ok := view[name]; ok {
				projected[tool.ID] = snap
				found = true
				break
			}
		}
		if !found {
			projected[tool.ID] = domain.ContainerSnapshot{
				Name:       tool.Name,
				Status:     domain.StatusNotFound,
				StatusText: "Container not running",
			}
		}
	}
	return projected
}
