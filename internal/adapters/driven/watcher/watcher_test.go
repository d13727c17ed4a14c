package watcher

import (
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type changes struct {
	mu    sync.Mutex
	paths []string
}

func (c *changes) add(path string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.paths = append(c.paths, path)
}

func (c *changes) has(path string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	for _, p := range c.paths {
		if p == path {
			return true
		}
	}
	return false
}

func TestWatcher_ReportsCreate(t *testing.T) {
	dir := t.TempDir()
	got := &changes{}

	stop, err := New().Watch([]string{dir}, got.add)
	require.NoError(t, err)
	defer func() { assert.NoError(t, stop()) }()

	file := filepath.Join(dir, "f1")
	require.NoError(t, os.WriteFile(file, []byte("x"), 0o600))

	assert.Eventually(t, func() bool { return got.has(file) }, 5*time.Second, 10*time.Millisecond)
}

func TestWatcher_MissingDirectory(t *testing.T) {
	_, err := New().Watch([]string{filepath.Join(t.TempDir(), "missing")}, func(string) {})

	assert.Error(t, err)
}

func TestWatcher_StopIsIdempotent(t *testing.T) {
	stop, err := New().Watch([]string{t.TempDir()}, func(string) {})
	require.NoError(t, err)

	assert.NoError(t, stop())
	assert.NoError(t, stop())
}
