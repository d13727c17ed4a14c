//go:build !windows

package process

import (
	"context"
	"io"
	"os/exec"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func startAndCollect(t *testing.T, command string) (string, *process) {
	t.Helper()
	p, err := NewRunner().Start(context.Background(), command, "")
	require.NoError(t, err)
	out, err := io.ReadAll(p.Output())
	require.NoError(t, err)
	return string(out), p.(*process)
}

func TestRunner_LookPath(t *testing.T) {
	r := NewRunner()

	path, err := r.LookPath("sh")
	require.NoError(t, err)
	assert.NotEmpty(t, path)

	_, err = r.LookPath("definitely-not-a-dupes-finder")
	assert.ErrorIs(t, err, exec.ErrNotFound)
}

func TestRunner_MergesStderr(t *testing.T) {
	out, p := startAndCollect(t, "echo out; echo err 1>&2")

	status, err := p.Wait()
	require.NoError(t, err)
	assert.True(t, status.Success())
	assert.Contains(t, out, "out\n")
	assert.Contains(t, out, "err\n")
}

func TestRunner_ExitCode(t *testing.T) {
	_, p := startAndCollect(t, "exit 3")

	status, err := p.Wait()
	require.NoError(t, err)
	assert.Equal(t, 3, status.Code)
	assert.Equal(t, "exited abnormally with code 3", status.Description())
	assert.False(t, p.Alive())
}

func TestRunner_Pipeline(t *testing.T) {
	out, p := startAndCollect(t, "printf 'a\\n\\nb\\n' | while IFS= read -r f; do echo \"[$f]\"; done")

	_, err := p.Wait()
	require.NoError(t, err)
	assert.Equal(t, "[a]\n[]\n[b]\n", out)
}

func TestRunner_WorkingDirectory(t *testing.T) {
	dir := t.TempDir()
	p, err := NewRunner().Start(context.Background(), "pwd", dir)
	require.NoError(t, err)

	out, err := io.ReadAll(p.Output())
	require.NoError(t, err)
	_, err = p.Wait()
	require.NoError(t, err)
	assert.True(t, strings.HasSuffix(strings.TrimSpace(string(out)), dir[strings.LastIndex(dir, "/"):]))
}

func TestRunner_WithEnv(t *testing.T) {
	p, err := NewRunner().WithEnv("DUPES_TEST_VALUE=42").Start(context.Background(), "echo $DUPES_TEST_VALUE", "")
	require.NoError(t, err)

	out, err := io.ReadAll(p.Output())
	require.NoError(t, err)
	assert.Equal(t, "42\n", string(out))
	_, _ = p.Wait()
}

func TestRunner_ListingEnvPinsLocale(t *testing.T) {
	t.Setenv("LC_ALL", "de_DE.UTF-8")
	r := NewRunner().WithEnv(ListingEnv...)

	p, err := r.Start(context.Background(), "echo $LC_ALL", "")
	require.NoError(t, err)

	out, err := io.ReadAll(p.Output())
	require.NoError(t, err)
	assert.Equal(t, "C\n", string(out))
	_, _ = p.Wait()
}

func TestRunner_InterruptPipeline(t *testing.T) {
	p, err := NewRunner().Start(context.Background(), "sleep 30 | cat", "")
	require.NoError(t, err)
	require.True(t, p.Alive())

	require.NoError(t, p.Interrupt())

	done := make(chan struct{})
	go func() {
		_, _ = io.ReadAll(p.Output())
		close(done)
	}()
	select {
	case <-done:
	case <-time.After(5 * time.Second):
		t.Fatal("pipeline output not closed after interrupt")
	}
	status, _ := p.Wait()
	assert.False(t, status.Success())
}

func TestRunner_KillExitedIsNoop(t *testing.T) {
	_, p := startAndCollect(t, "true")
	_, _ = p.Wait()

	assert.NoError(t, p.Kill())
	assert.NoError(t, p.Interrupt())
}

func TestRunner_CancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := NewRunner().Start(ctx, "true", "")

	assert.ErrorIs(t, err, context.Canceled)
}
