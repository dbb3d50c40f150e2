package server

import (
	"context"
	"encoding/json"
	"net/http"
	"os"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"

	"github.com/blueops/fleet-portal/internal/actuator"
	"github.com/blueops/fleet-portal/internal/changelog"
	"github.com/blueops/fleet-portal/internal/domain"
	"github.com/blueops/fleet-portal/internal/tools"
)

type fleetReader interface {
	CurrentFleetView() domain.FleetView
	ToolFleetView() domain.FleetView
}

type counter interface {
	Count(ctx context.Context) (int, error)
}

type controller interface {
	Start(ctx context.Context, name string) actuator.Result
	Stop(ctx context.Context, name string) actuator.Result
	Restart(ctx context.Context, name string) actuator.Result
}

type changelogReader interface {
	Append(action, details, actor string, level domain.Level) domain.ChangelogEntry
	Entries(limit int, level domain.Level) []domain.ChangelogEntry
	GetStats() changelog.Stats
}

// Handler serves the JSON API consumed by the web dashboard.
type Handler struct {
	monitor   fleetReader
	probe     counter
	control   controller
	changelog changelogReader
	catalog   *tools.Catalog
	port      int
	logger    zerolog.Logger
}

func NewHandler(monitor fleetReader, probe counter, control controller, store changelogReader, catalog *tools.Catalog, port int, logger zerolog.Logger) *Handler {
	return &Handler{
		monitor:   monitor,
		probe:     probe,
		control:   control,
		changelog: store,
		catalog:   catalog,
		port:      port,
		logger:    logger,
	}
}

// RegisterRoutes registers all API routes.
func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Get("/health", h.Health)
	r.Get("/api/server-info", h.ServerInfo)
	r.Route("/api/containers", func(r chi.Router) {
		r.Get("/count", h.ContainerCount)
		r.Get("/status", h.ContainerStatus)
		r.Post("/{name}/start", h.StartContainer)
		r.Post("/{name}/stop", h.StopContainer)
		r.Post("/{name}/restart", h.RestartContainer)
	})
	r.Get("/api/tools", h.Tools)
	r.Get("/api/tools/status", h.ToolStatus)
	r.Get("/api/changelog", h.Changelog)
	r.Get("/api/changelog/stats", h.ChangelogStats)
	r.Get("/api/dashboard/metrics", h.DashboardMetrics)
}

// Health reports whether the runtime is reachable.
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	count, err := h.probe.Count(r.Context())
	if err != nil {
		h.logger.Error().Err(err).Msg("Health check probe failed")
		h.respondJSON(w, http.StatusInternalServerError, map[string]interface{}{
			"status":    "degraded",
			"timestamp": time.Now().Format(time.RFC3339),
			"error":     err.Error(),
			"success":   false,
		})
		return
	}
	h.respondJSON(w, http.StatusOK, map[string]interface{}{
		"status":          "healthy",
		"timestamp":       time.Now().Format(time.RFC3339),
		"container_count": count,
		"success":         true,
	})
}

// ContainerCount returns the number of running containers.
func (h *Handler) ContainerCount(w http.ResponseWriter, r *http.Request) {
	count, err := h.probe.Count(r.Context())
	if err != nil {
		h.logger.Error().Err(err).Msg("Error counting containers")
		h.respondJSON(w, http.StatusInternalServerError, map[string]interface{}{
			"count":   0,
			"error":   err.Error(),
			"success": false,
		})
		return
	}
	h.respondJSON(w, http.StatusOK, map[string]interface{}{"count": count, "success": true})
}

// ContainerStatus returns the monitor's current fleet view. It reads the
// last polled view rather than probing on the request path.
func (h *Handler) ContainerStatus(w http.ResponseWriter, r *http.Request) {
	view := h.monitor.CurrentFleetView()
	h.respondJSON(w, http.StatusOK, map[string]interface{}{
		"containers": view,
		"count":      len(view),
		"success":    true,
	})
}

// Tools returns the static tool catalog.
func (h *Handler) Tools(w http.ResponseWriter, r *http.Request) {
	h.respondJSON(w, http.StatusOK, map[string]interface{}{
		"tools":      h.catalog.Tools,
		"categories": h.catalog.Categories,
		"success":    true,
	})
}

// ToolStatus returns the tool-projected fleet view.
func (h *Handler) ToolStatus(w http.ResponseWriter, r *http.Request) {
	projected := h.monitor.ToolFleetView()
	h.changelog.Append(domain.ActionAPICall, "Tool status requested: "+strconv.Itoa(len(projected))+" tools", domain.ActorSystem, domain.LevelInfo)
	h.respondJSON(w, http.StatusOK, map[string]interface{}{"tools": projected, "success": true})
}

func (h *Handler) StartContainer(w http.ResponseWriter, r *http.Request) {
	h.respondResult(w, h.control.Start(r.Context(), chi.URLParam(r, "name")))
}

func (h *Handler) StopContainer(w http.ResponseWriter, r *http.Request) {
	h.respondResult(w, h.control.Stop(r.Context(), chi.URLParam(r, "name")))
}

func (h *Handler) RestartContainer(w http.ResponseWriter, r *http.Request) {
	h.respondResult(w, h.control.Restart(r.Context(), chi.URLParam(r, "name")))
}

// Changelog returns entries, optionally filtered by level and truncated to
// the most recent limit.
func (h *Handler) Changelog(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	limit, _ := strconv.Atoi(query.Get("limit"))
	level := domain.Level(query.Get("level"))
	entries := h.changelog.Entries(limit, level)
	h.respondJSON(w, http.StatusOK, map[string]interface{}{"entries": entries, "success": true})
}

// ChangelogStats returns the aggregated changelog statistics.
func (h *Handler) ChangelogStats(w http.ResponseWriter, r *http.Request) {
	stats := h.changelog.GetStats()
	h.respondJSON(w, http.StatusOK, map[string]interface{}{
		"total_entries":   stats.TotalEntries,
		"by_level":        stats.ByLevel,
		"by_action":       stats.ByAction,
		"recent_activity": stats.RecentActivity,
		"success":         true,
	})
}

// DashboardMetrics aggregates the current views into dashboard counters.
func (h *Handler) DashboardMetrics(w http.ResponseWriter, r *http.Request) {
	view := h.monitor.CurrentFleetView()
	projected := h.monitor.ToolFleetView()

	running, stopped := 0, 0
	for _, snap := range view {
		switch snap.Status {
		case domain.StatusRunning:
			running++
		case domain.StatusStopped:
			stopped++
		}
	}
	toolsRunning, toolsStopped := 0, 0
	for _, snap := range projected {
		switch snap.Status {
		case domain.StatusRunning:
			toolsRunning++
		case domain.StatusStopped:
			toolsStopped++
		}
	}
	health := 0.0
	if len(view) > 0 {
		health = float64(running) / float64(len(view)) * 100
	}

	h.respondJSON(w, http.StatusOK, map[string]interface{}{
		"timestamp": time.Now().Format(time.RFC3339),
		"containers": map[string]interface{}{
			"total":             len(view),
			"running":           running,
			"stopped":           stopped,
			"health_percentage": health,
		},
		"tools": map[string]interface{}{
			"total":   len(projected),
			"running": toolsRunning,
			"stopped": toolsStopped,
		},
		"success": true,
	})
}

// ServerInfo returns the portal's address details.
func (h *Handler) ServerInfo(w http.ResponseWriter, r *http.Request) {
	hostname, err := os.Hostname()
	if err != nil {
		hostname = "unknown-host"
	}
	h.respondJSON(w, http.StatusOK, map[string]interface{}{
		"hostname":  hostname,
		"port":      h.port,
		"timestamp": time.Now().Format(time.RFC3339),
		"success":   true,
	})
}

func (h *Handler) respondResult(w http.ResponseWriter, result actuator.Result) {
	status := http.StatusOK
	if !result.Success {
		status = http.StatusInternalServerError
	}
	h.respondJSON(w, status, map[string]interface{}{
		"success": result.Success,
		"message": result.Message,
	})
}

func (h *Handler) respondJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		h.logger.Error().Err(err).Msg("Error encoding response")
	}
}
