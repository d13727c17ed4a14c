package process

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"

	"github.com/custodia-labs/dupes-cli/internal/core/domain"
	"github.com/custodia-labs/dupes-cli/internal/core/ports/driven"
	"github.com/custodia-labs/dupes-cli/internal/logger"
)

// Ensure Runner implements the interface.
var _ driven.ProcessRunner = (*Runner)(nil)

// ListingEnv pins the locale of listing pipelines so ls prints dates and
// sizes in the layout the formatter pads.
var ListingEnv = []string{"LC_ALL=C"}

// Runner starts shell pipelines with stderr merged into stdout.
type Runner struct {
	shell []string
	env   []string
}

// NewRunner creates a runner using the platform shell.
func NewRunner() *Runner {
	return &Runner{shell: platformShell()}
}

// WithEnv returns a copy of the runner that adds env to the inherited
// environment of every pipeline.
func (r *Runner) WithEnv(env ...string) *Runner {
	c := *r
	c.env = append(append([]string(nil), r.env...), env...)
	return &c
}

// LookPath resolves a program on PATH.
func (r *Runner) LookPath(program string) (string, error) {
	return exec.LookPath(program)
}

// Start runs command in dir. ctx only governs startup; the pipeline lives
// until it exits or is interrupted or killed.
func (r *Runner) Start(ctx context.Context, command, dir string) (driven.Process, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	args := append(append([]string(nil), r.shell[1:]...), command)
	cmd := exec.Command(r.shell[0], args...)
	cmd.Dir = dir
	if len(r.env) > 0 {
		cmd.Env = append(os.Environ(), r.env...)
	}
	setProcessGroup(cmd)

	out, w, err := os.Pipe()
	if err != nil {
		return nil, fmt.Errorf("creating output pipe: %w", err)
	}
	cmd.Stdout = w
	cmd.Stderr = w

	if err := cmd.Start(); err != nil {
		_ = out.Close()
		_ = w.Close()
		return nil, err
	}
	// The children hold the write end now.
	_ = w.Close()

	p := &process{
		cmd:    cmd,
		out:    out,
		exited: make(chan struct{}),
	}
	go p.wait()
	logger.Debug("shell %v started pid %d", r.shell, cmd.Process.Pid)
	return p, nil
}

// process is a running pipeline.
type process struct {
	cmd    *exec.Cmd
	out    *os.File
	exited chan struct{}
	status domain.ExitStatus
	err    error
}

var _ driven.Process = (*process)(nil)

func (p *process) wait() {
	err := p.cmd.Wait()
	p.status = exitStatus(p.cmd.ProcessState)
	var exitErr *exec.ExitError
	if err != nil && !errors.As(err, &exitErr) {
		p.err = err
	}
	close(p.exited)
}

func (p *process) Pid() int {
	return p.cmd.Process.Pid
}

func (p *process) Output() io.Reader {
	return p.out
}

func (p *process) Alive() bool {
	select {
	case <-p.exited:
		return false
	default:
		return true
	}
}

func (p *process) Interrupt() error {
	if !p.Alive() {
		return nil
	}
	return ignoreDone(interruptGroup(p.cmd.Process))
}

func (p *process) Kill() error {
	if !p.Alive() {
		return nil
	}
	return ignoreDone(killGroup(p.cmd.Process))
}

// Wait blocks until the pipeline exits and closes its output.
func (p *process) Wait() (domain.ExitStatus, error) {
	<-p.exited
	_ = p.out.Close()
	return p.status, p.err
}

func ignoreDone(err error) error {
	if errors.Is(err, os.ErrProcessDone) {
		return nil
	}
	return err
}
