package server

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/blueops/fleet-portal/internal/actuator"
	"github.com/blueops/fleet-portal/internal/changelog"
	"github.com/blueops/fleet-portal/internal/domain"
	"github.com/blueops/fleet-portal/internal/tools"
)

type fakeMonitor struct {
	view domain.FleetView
	tool domain.FleetView
}

func (f *fakeMonitor) CurrentFleetView() domain.FleetView { return f.view }
func (f *fakeMonitor) ToolFleetView() domain.FleetView    { return f.tool }

type fakeCounter struct {
	count int
	err   error
}

func (f *fakeCounter) Count(ctx context.Context) (int, error) { return f.count, f.err }

type fakeController struct {
	result actuator.Result
	calls  []string
}

func (f *fakeController) Start(ctx context.Context, name string) actuator.Result {
	f.calls = append(f.calls, "start "+name)
	return f.result
}

func (f *fakeController) Stop(ctx context.Context, name string) actuator.Result {
	f.calls = append(f.calls, "stop "+name)
	return f.result
}

func (f *fakeController) Restart(ctx context.Context, name string) actuator.Result {
	f.calls = append(f.calls, "restart "+name)
	return f.result
}

type fakeChangelog struct {
	entries  []domain.ChangelogEntry
	appended []string
	stats    changelog.Stats
}

func (f *fakeChangelog) Append(action, details, actor string, level domain.Level) domain.ChangelogEntry {
	f.appended = append(f.appended, action)
	return domain.ChangelogEntry{ID: len(f.appended), Action: action}
}

func (f *fakeChangelog) Entries(limit int, level domain.Level) []domain.ChangelogEntry {
	entries := f.entries
	if level != "" {
		var filtered []domain.ChangelogEntry
		for _, e := range entries {
			if e.Level == level {
				filtered = append(filtered, e)
			}
		}
		entries = filtered
	}
	if limit > 0 && limit < len(entries) {
		entries = entries[len(entries)-limit:]
	}
	return entries
}

func (f *fakeChangelog) GetStats() changelog.Stats { return f.stats }

type deps struct {
	monitor *fakeMonitor
	counter *fakeCounter
	control *fakeController
	store   *fakeChangelog
}

func newTestRouter(d deps) http.Handler {
	if d.monitor == nil {
		d.monitor = &fakeMonitor{view: domain.FleetView{}, tool: domain.FleetView{}}
	}
	if d.counter == nil {
		d.counter = &fakeCounter{}
	}
	if d.control == nil {
		d.control = &fakeController{}
	}
	if d.store == nil {
		d.store = &fakeChangelog{}
	}
	h := NewHandler(d.monitor, d.counter, d.control, d.store, tools.Default(), 5500, zerolog.Nop())
	r := chi.NewRouter()
	h.RegisterRoutes(r)
	return r
}

func decode(t *testing.T, w *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	return body
}

func TestContainerEndpoints(t *testing.T) {
	t.Run("GET /api/containers/count", func(t *testing.T) {
		router := newTestRouter(deps{counter: &fakeCounter{count: 4}})
		w := httptest.NewRecorder()
		router.ServeHTTP(w, httptest.NewRequest("GET", "/api/containers/count", nil))

		assert.Equal(t, http.StatusOK, w.Code)
		body := decode(t, w)
		assert.Equal(t, float64(4), body["count"])
		assert.Equal(t, true, body["success"])
	})

	t.Run("GET /api/containers/count when probe fails", func(t *testing.T) {
		router := newTestRouter(deps{counter: &fakeCounter{err: errors.New("daemon down")}})
		w := httptest.NewRecorder()
		router.ServeHTTP(w, httptest.NewRequest("GET", "/api/containers/count", nil))

		assert.Equal(t, http.StatusInternalServerError, w.Code)
		body := decode(t, w)
		assert.Equal(t, false, body["success"])
		assert.Contains(t, body["error"], "daemon down")
	})

	t.Run("GET /api/containers/status serves the monitor view", func(t *testing.T) {
		view := domain.FleetView{"web": {Name: "web", Status: domain.StatusRunning}}
		router := newTestRouter(deps{monitor: &fakeMonitor{view: view, tool: domain.FleetView{}}})
		w := httptest.NewRecorder()
		router.ServeHTTP(w, httptest.NewRequest("GET", "/api/containers/status", nil))

		assert.Equal(t, http.StatusOK, w.Code)
		body := decode(t, w)
		assert.Equal(t, float64(1), body["count"])
		containers := body["containers"].(map[string]interface{})
		assert.Contains(t, containers, "web")
	})
}

func TestControlEndpoints(t *testing.T) {
	t.Run("POST start routes to the actuator", func(t *testing.T) {
		control := &fakeController{result: actuator.Result{Success: true, Message: "Container web started successfully"}}
		router := newTestRouter(deps{control: control})
		w := httptest.NewRecorder()
		router.ServeHTTP(w, httptest.NewRequest("POST", "/api/containers/web/start", nil))

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, []string{"start web"}, control.calls)
	})

	t.Run("POST stop failure returns 500 with message", func(t *testing.T) {
		control := &fakeController{result: actuator.Result{Success: false, Message: "Failed to stop container"}}
		router := newTestRouter(deps{control: control})
		w := httptest.NewRecorder()
		router.ServeHTTP(w, httptest.NewRequest("POST", "/api/containers/web/stop", nil))

		assert.Equal(t, http.StatusInternalServerError, w.Code)
		body := decode(t, w)
		assert.Equal(t, false, body["success"])
		assert.Contains(t, body["message"], "Failed to stop")
	})

	t.Run("POST restart routes to the actuator", func(t *testing.T) {
		control := &fakeController{result: actuator.Result{Success: true}}
		router := newTestRouter(deps{control: control})
		w := httptest.NewRecorder()
		router.ServeHTTP(w, httptest.NewRequest("POST", "/api/containers/db/restart", nil))

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, []string{"restart db"}, control.calls)
	})
}

func TestChangelogEndpoints(t *testing.T) {
	store := &fakeChangelog{
		entries: []domain.ChangelogEntry{
			{ID: 1, Action: domain.ActionContainerStarted, Level: domain.LevelInfo},
			{ID: 2, Action: domain.ActionContainerStopped, Level: domain.LevelWarning},
		},
		stats: changelog.Stats{
			TotalEntries: 2,
			ByLevel:      map[string]int{"info": 1, "warning": 1},
			ByAction:     map[string]int{domain.ActionContainerStarted: 1, domain.ActionContainerStopped: 1},
		},
	}

	t.Run("GET /api/changelog honors limit and level", func(t *testing.T) {
		router := newTestRouter(deps{store: store})
		w := httptest.NewRecorder()
		router.ServeHTTP(w, httptest.NewRequest("GET", "/api/changelog?limit=1&level=warning", nil))

		assert.Equal(t, http.StatusOK, w.Code)
		body := decode(t, w)
		entries := body["entries"].([]interface{})
		require.Len(t, entries, 1)
		entry := entries[0].(map[string]interface{})
		assert.Equal(t, float64(2), entry["id"])
	})

	t.Run("GET /api/changelog/stats", func(t *testing.T) {
		router := newTestRouter(deps{store: store})
		w := httptest.NewRecorder()
		router.ServeHTTP(w, httptest.NewRequest("GET", "/api/changelog/stats", nil))

		assert.Equal(t, http.StatusOK, w.Code)
		body := decode(t, w)
		assert.Equal(t, float64(2), body["total_entries"])
		assert.Equal(t, true, body["success"])
	})
}

func TestToolEndpoints(t *testing.T) {
	t.Run("GET /api/tools returns the catalog", func(t *testing.T) {
		router := newTestRouter(deps{})
		w := httptest.NewRecorder()
		router.ServeHTTP(w, httptest.NewRequest("GET", "/api/tools", nil))

		assert.Equal(t, http.StatusOK, w.Code)
		body := decode(t, w)
		assert.Contains(t, body, "tools")
		assert.Contains(t, body, "categories")
	})

	t.Run("GET /api/tools/status appends an api_call entry", func(t *testing.T) {
		store := &fakeChangelog{}
		tool := domain.FleetView{"velociraptor": {Name: "Velociraptor", Status: domain.StatusNotFound}}
		router := newTestRouter(deps{store: store, monitor: &fakeMonitor{view: domain.FleetView{}, tool: tool}})
		w := httptest.NewRecorder()
		router.ServeHTTP(w, httptest.NewRequest("GET", "/api/tools/status", nil))

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, []string{domain.ActionAPICall}, store.appended)
	})
}

func TestHealthEndpoint(t *testing.T) {
	t.Run("healthy when the runtime answers", func(t *testing.T) {
		router := newTestRouter(deps{counter: &fakeCounter{count: 3}})
		w := httptest.NewRecorder()
		router.ServeHTTP(w, httptest.NewRequest("GET", "/health", nil))

		assert.Equal(t, http.StatusOK, w.Code)
		body := decode(t, w)
		assert.Equal(t, "healthy", body["status"])
		assert.Equal(t, float64(3), body["container_count"])
	})

	t.Run("degraded when the probe fails", func(t *testing.T) {
		router := newTestRouter(deps{counter: &fakeCounter{err: errors.New("timeout")}})
		w := httptest.NewRecorder()
		router.ServeHTTP(w, httptest.NewRequest("GET", "/health", nil))

		assert.Equal(t, http.StatusInternalServerError, w.Code)
		body := decode(t, w)
		assert.Equal(t, "degraded", body["status"])
	})
}

func TestDashboardMetrics(t *testing.T) {
	view := domain.FleetView{
		"web": {Name: "web", Status: domain.StatusRunning},
		"db":  {Name: "db", Status: domain.StatusStopped},
	}
	router := newTestRouter(deps{monitor: &fakeMonitor{view: view, tool: domain.FleetView{}}})
	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest("GET", "/api/dashboard/metrics", nil))

	assert.Equal(t, http.StatusOK, w.Code)
	body := decode(t, w)
	containers := body["containers"].(map[string]interface{})
	assert.Equal(t, float64(2), containers["total"])
	assert.Equal(t, float64(1), containers["running"])
	assert.Equal(t, float64(1), containers["stopped"])
	assert.Equal(t, float64(50), containers["health_percentage"])
}
