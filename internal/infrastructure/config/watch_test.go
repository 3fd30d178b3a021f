package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWatcher_ReportsYAMLWrites(t *testing.T) {
	dir := t.TempDir()
	w, err := NewWatcher(dir)
	require.NoError(t, err)
	defer w.Close()

	require.NoError(t, os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("x"), 0o644))
	path := filepath.Join(dir, PhysicsFile)
	require.NoError(t, os.WriteFile(path, []byte("simulation: {tickRate: 30}\n"), 0o644))

	var changed []string
	require.Eventually(t, func() bool {
		names, err := w.Poll()
		require.NoError(t, err)
		changed = append(changed, names...)
		return len(changed) > 0
	}, 2*time.Second, 10*time.Millisecond)
	assert.Equal(t, path, changed[0])
	assert.NotContains(t, changed, filepath.Join(dir, "notes.txt"))
}

func TestWatcher_PollEmpty(t *testing.T) {
	w, err := NewWatcher(t.TempDir())
	require.NoError(t, err)
	defer w.Close()

	names, err := w.Poll()
	assert.NoError(t, err)
	assert.Empty(t, names)
}

func TestWatcher_PollKeepsEveryFile(t *testing.T) {
	w := &Watcher{events: make(chan string, 16), errs: make(chan error, 1)}
	w.events <- "configs/physics.yaml"
	w.events <- "configs/stages/demo.yaml"
	w.events <- "configs/physics.yaml"

	names, err := w.Poll()
	require.NoError(t, err)
	assert.Equal(t, []string{"configs/physics.yaml", "configs/stages/demo.yaml"}, names)

	names, _ = w.Poll()
	assert.Empty(t, names)
}

func TestWatcher_PollReportsErrors(t *testing.T) {
	w := &Watcher{events: make(chan string, 16), errs: make(chan error, 1)}
	w.errs <- errors.New("queue overflow")
	w.events <- "configs/physics.yaml"

	names, err := w.Poll()
	assert.EqualError(t, err, "queue overflow")
	assert.Equal(t, []string{"configs/physics.yaml"}, names)

	_, err = w.Poll()
	assert.NoError(t, err)
}

func TestWatcher_CloseTwice(t *testing.T) {
	w, err := NewWatcher(t.TempDir())
	require.NoError(t, err)

	assert.NoError(t, w.Close())
	assert.NoError(t, w.Close())
}

func TestWatcher_MissingDir(t *testing.T) {
	_, err := NewWatcher(filepath.Join(t.TempDir(), "missing"))
	assert.Error(t, err)
}

func TestIsYAMLFile(t *testing.T) {
	assert.True(t, isYAMLFile("a/physics.yaml"))
	assert.True(t, isYAMLFile("demo.YML"))
	assert.False(t, isYAMLFile("notes.txt"))
}
