package logger

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
)

// capture enables verbose logging into a buffer for the duration of t.
func capture(t *testing.T) *bytes.Buffer {
	t.Helper()
	var buf bytes.Buffer
	SetOutput(&buf)
	SetVerbose(true)
	t.Cleanup(func() {
		SetVerbose(false)
		SetOutput(os.Stderr)
	})
	return &buf
}

func TestSetVerbose(t *testing.T) {
	t.Cleanup(func() { SetVerbose(false) })

	SetVerbose(false)
	if IsVerbose() {
		t.Error("expected verbose to be false")
	}

	SetVerbose(true)
	if !IsVerbose() {
		t.Error("expected verbose to be true after SetVerbose(true)")
	}
}

func TestLevels(t *testing.T) {
	tests := []struct {
		name string
		log  func()
		want string
	}{
		{"debug", func() { Debug("spawn %s", "fdupes") }, "[DEBUG] spawn fdupes\n"},
		{"info", func() { Info("exit %d", 2) }, "[INFO] exit 2\n"},
		{"warn", func() { Warn("kill failed") }, "[WARN] kill failed\n"},
		{"section", func() { Section("Search") }, "\n=== Search ===\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			buf := capture(t)
			tt.log()
			if got := buf.String(); got != tt.want {
				t.Errorf("got %q, want %q", got, tt.want)
			}
		})
	}
}

func TestQuietWhenNotVerbose(t *testing.T) {
	buf := capture(t)
	SetVerbose(false)

	Debug("hidden")
	Info("hidden")
	Warn("hidden")
	Section("hidden")

	if buf.Len() > 0 {
		t.Errorf("expected no output, got %q", buf.String())
	}
}

func TestRedirectToFile(t *testing.T) {
	buf := capture(t)
	path := filepath.Join(t.TempDir(), "logs", "dupes.log")

	restore, err := RedirectToFile(path)
	if err != nil {
		t.Fatalf("RedirectToFile: %v", err)
	}
	Info("to file")
	restore()
	Info("to buffer")

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("reading log: %v", err)
	}
	if string(data) != "[INFO] to file\n" {
		t.Errorf("unexpected file content: %q", data)
	}
	if buf.String() != "[INFO] to buffer\n" {
		t.Errorf("unexpected buffer content: %q", buf.String())
	}
}

func TestConcurrentWritesKeepLinesWhole(t *testing.T) {
	buf := capture(t)

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			Debug("line %d", n)
		}(i)
	}
	wg.Wait()

	lines := strings.Split(strings.TrimSuffix(buf.String(), "\n"), "\n")
	if len(lines) != 20 {
		t.Fatalf("expected 20 lines, got %d", len(lines))
	}
	for _, line := range lines {
		if !strings.HasPrefix(line, "[DEBUG] line ") {
			t.Errorf("interleaved line %q", line)
		}
	}
}
