package driven

import (
	"context"
	"io"

	"github.com/custodia-labs/dupes-cli/internal/core/domain"
)

// ProcessRunner starts finder pipelines.
type ProcessRunner interface {
	// LookPath resolves a program on PATH.
	LookPath(program string) (string, error)

	// Start runs command through the platform shell in dir with stderr
	// merged into stdout. An empty dir means the current directory.
	Start(ctx context.Context, command, dir string) (Process, error)
}

// Process is a running pipeline.
type Process interface {
	// Pid returns the operating system process id.
	Pid() int

	// Output returns the merged stdout and stderr stream. It reaches EOF
	// once every process of the pipeline has closed it.
	Output() io.Reader

	// Alive reports whether the process has not exited yet.
	Alive() bool

	// Interrupt asks the pipeline to stop. Interrupting an exited process
	// is not an error.
	Interrupt() error

	// Kill forcibly terminates the pipeline. Killing an exited process is
	// not an error.
	Kill() error

	// Wait blocks until the process exits and returns how it terminated.
	Wait() (domain.ExitStatus, error)
}
