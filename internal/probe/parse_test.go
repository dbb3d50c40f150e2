package probe

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/blueops/fleet-portal/internal/domain"
)

func TestParseFleet(t *testing.T) {
	now := time.Now()

	t.Run("parses tab-separated rows", func(t *testing.T) {
		output := "velociraptor\tUp 2 hours\t0.0.0.0:8889->8889/tcp\tvelocidex/velociraptor\t120MB\n" +
			"elasticsearch\tExited (0) 3 minutes ago\t\tdocker.elastic.co/elasticsearch\t1.2GB\n"

		view := ParseFleet(output, now)
		require.Len(t, view, 2)

		snap := view["velociraptor"]
		assert.Equal(t, "velociraptor", snap.Name)
		assert.Equal(t, domain.StatusRunning, snap.Status)
		assert.Equal(t, "Up 2 hours", snap.StatusText)
		assert.Equal(t, "0.0.0.0:8889->8889/tcp", snap.Ports)
		assert.Equal(t, "velocidex/velociraptor", snap.Image)
		assert.Equal(t, "120MB", snap.Size)
		assert.Equal(t, now, snap.ObservedAt)

		assert.Equal(t, domain.StatusStopped, view["elasticsearch"].Status)
	})

	t.Run("skips rows with fewer than five columns", func(t *testing.T) {
		output := "good\tUp 1 hour\tports\timage\tsize\n" +
			"truncated\tUp 1 hour\tports\n" +
			"\n"

		view := ParseFleet(output, now)
		require.Len(t, view, 1)
		assert.Contains(t, view, "good")
	})

	t.Run("empty output yields empty view", func(t *testing.T) {
		assert.Empty(t, ParseFleet("", now))
		assert.Empty(t, ParseFleet("\n\n", now))
	})
}

func TestClassifyStatus(t *testing.T) {
	assert.Equal(t, domain.StatusRunning, ClassifyStatus("Up 5 minutes (healthy)"))
	assert.Equal(t, domain.StatusStopped, ClassifyStatus("Exited (137) 2 days ago"))
	assert.Equal(t, domain.StatusCreated, ClassifyStatus("Created"))
	assert.Equal(t, domain.StatusUnknown, ClassifyStatus("Restarting (1) 5 seconds ago"))
	// "Up" wins over later matches.
	assert.Equal(t, domain.StatusRunning, ClassifyStatus("Up 1 second (Created)"))
}
