package config

import (
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestParseOverlay(t *testing.T) {
	t.Run("full overlay", func(t *testing.T) {
		o, err := ParseOverlay([]byte("min_wait: 0.2\nmax_wait: 1\npaused: true\nactions:\n  payroll: 2\n  attendance: 1\n"))
		require.NoError(t, err)
		assert.True(t, o.Paused)
		assert.Equal(t, 2.0, o.Actions["payroll"])

		lo, hi := o.Waits(time.Second, 2*time.Second)
		assert.Equal(t, 200*time.Millisecond, lo)
		assert.Equal(t, time.Second, hi)
	})

	t.Run("unset waits keep current values", func(t *testing.T) {
		o, err := ParseOverlay([]byte("paused: false\n"))
		require.NoError(t, err)
		lo, hi := o.Waits(time.Second, 2*time.Second)
		assert.Equal(t, time.Second, lo)
		assert.Equal(t, 2*time.Second, hi)
	})

	t.Run("invalid values", func(t *testing.T) {
		cases := map[string]string{
			"inverted waits":  "min_wait: 2\nmax_wait: 1\n",
			"negative weight": "actions:\n  payroll: -1\n",
			"all zero":        "actions:\n  payroll: 0\n",
			"not yaml":        "min_wait: [",
		}
		for name, doc := range cases {
			_, err := ParseOverlay([]byte(doc))
			assert.Error(t, err, name)
		}
	})
}

func TestOverlayWatcher_Reload(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "sim.yaml")
	require.NoError(t, os.WriteFile(path, []byte("paused: false\n"), 0o644))

	w, err := NewOverlayWatcher(path, zap.NewNop())
	require.NoError(t, err)
	defer w.Stop()

	var applied atomic.Value
	w.OnChange(func(o *SimulatorOverlay) { applied.Store(o) })
	w.Start()

	require.NoError(t, os.WriteFile(path, []byte("paused: true\n"), 0o644))

	require.Eventually(t, func() bool {
		o, ok := applied.Load().(*SimulatorOverlay)
		return ok && o.Paused
	}, 3*time.Second, 20*time.Millisecond)
	assert.True(t, w.Current().Paused)

	// An invalid file is ignored and the last good overlay stays current
	require.NoError(t, os.WriteFile(path, []byte("min_wait: 3\nmax_wait: 1\n"), 0o644))
	time.Sleep(300 * time.Millisecond)
	assert.True(t, w.Current().Paused)
}

func TestNewOverlayWatcher_MissingFile(t *testing.T) {
	_, err := NewOverlayWatcher(filepath.Join(t.TempDir(), "missing.yaml"), zap.NewNop())
	assert.Error(t, err)
}
