package domain

type Level string

const (
	LevelInfo    Level = "info"
	LevelWarning Level = "warning"
	LevelError   Level = "error"
)

// Action tags recorded in the changelog. Automatic entries come from the
// monitor's diff, manual entries from the actuator, lifecycle entries from
// the app itself.
const (
	ActionContainerStarted       = "container_started"
	ActionContainerStopped       = "container_stopped"
	ActionContainerRestarted     = "container_restarted"
	ActionContainerStatusChanged = "container_status_changed"
	ActionSystemStartup          = "system_startup"
	ActionSystemShutdown         = "system_shutdown"
	ActionAPICall                = "api_call"
)

// Actors.
const (
	ActorSystem = "system"
	ActorManual = "manual"
)

// ChangelogEntry is an immutable, sequence-numbered record of an observed or
// manually triggered state event. The timestamp is persisted as an RFC3339
// string so that entries from older or hand-edited files stay readable.
type ChangelogEntry struct {
	ID        int    `json:"id"`
	Timestamp string `json:"timestamp"`
	Action    string `json:"action"`
	Details   string `json:"details"`
	Actor     string `json:"user"`
	Level     Level  `json:"level"`
}

// ChangeEvent is a single state transition produced by diffing two fleet
// views. Detail carries the human-readable description appended to the
// changelog.
type ChangeEvent struct {
	Action string
	Detail string
	Level  Level
}
