package services

import (
	"context"
	"errors"
	"io"
	"os"
	"sync"
	"time"

	"github.com/custodia-labs/dupes-cli/internal/core/domain"
	"github.com/custodia-labs/dupes-cli/internal/core/ports/driven"
	"github.com/custodia-labs/dupes-cli/internal/core/ports/driving"
	"github.com/custodia-labs/dupes-cli/internal/logger"
)

const readBufferSize = 32 * 1024

// RunSpec describes one run of a ProcessSession.
type RunSpec struct {
	// Program is the resolved finder path, named in the summary line.
	Program string

	// Command is the full shell command.
	Command string

	// OnFinish is called from the pump goroutine after the summary line is
	// written. sink only reaches the listing while this run is current;
	// current reports whether a newer run has replaced it since.
	OnFinish func(result domain.RunResult, sink driven.ListingSink, current func() bool)
}

// ProcessSessionConfig configures a ProcessSession.
type ProcessSessionConfig struct {
	// GracePeriod bounds how long an interrupted process may take to exit,
	// and how long its output may take to drain after a kill.
	GracePeriod time.Duration

	// Detailed enables column padding in the formatter.
	Detailed bool

	// Dir is the working directory of spawned pipelines.
	Dir string

	// Now stamps summary lines. Nil uses time.Now.
	Now func() time.Time
}

// ProcessSession owns the single finder process of a listing session.
// Starting a new run terminates the previous one first.
type ProcessSession struct {
	runner     driven.ProcessRunner
	sink       driven.ListingSink
	completion *CompletionHandler
	cfg        ProcessSessionConfig

	// startMu serialises Start and Kill.
	startMu sync.Mutex

	// sinkMu orders generation changes against writes to sink.
	sinkMu sync.Mutex

	mu    sync.Mutex
	gen   uint64
	state domain.SessionState
	run   *processRun
	last  *processRun
}

type processRun struct {
	gen     uint64
	spec    RunSpec
	proc    driven.Process
	started time.Time
	done    chan struct{}
}

// NewProcessSession creates a session writing listings to sink.
func NewProcessSession(runner driven.ProcessRunner, sink driven.ListingSink, cfg ProcessSessionConfig) *ProcessSession {
	if cfg.GracePeriod <= 0 {
		cfg.GracePeriod = domain.DefaultGracePeriod
	}
	if cfg.Now == nil {
		cfg.Now = time.Now
	}
	return &ProcessSession{
		runner:     runner,
		sink:       sink,
		completion: NewCompletionHandler(cfg.Now),
		cfg:        cfg,
	}
}

// Start runs spec. When a previous process is still alive, confirm decides
// whether it is killed; declining returns domain.ErrProcessActive and leaves
// everything untouched.
func (s *ProcessSession) Start(ctx context.Context, spec RunSpec, confirm driving.ConfirmFunc) error {
	s.startMu.Lock()
	defer s.startMu.Unlock()

	if err := ctx.Err(); err != nil {
		return err
	}

	if current := s.current(); current != nil {
		if current.proc.Alive() && (confirm == nil || !confirm()) {
			return domain.ErrProcessActive
		}
		s.terminate(current)
	}

	// The listing of the previous run stays in the sink until the new
	// pipeline is spawned.
	logger.Debug("spawning: %s", spec.Command)
	proc, err := s.runner.Start(ctx, spec.Command, s.cfg.Dir)
	if err != nil {
		return &domain.SpawnError{Command: spec.Command, Cause: err}
	}

	s.sinkMu.Lock()
	s.mu.Lock()
	s.gen++
	gen := s.gen
	s.mu.Unlock()
	s.sink.Reset(spec.Command)
	s.sinkMu.Unlock()

	r := &processRun{
		gen:     gen,
		spec:    spec,
		proc:    proc,
		started: s.cfg.Now(),
		done:    make(chan struct{}),
	}
	s.mu.Lock()
	s.run = r
	s.last = r
	s.state = domain.SessionRunning
	s.mu.Unlock()

	sink := &runSink{session: s, gen: gen}
	sink.SetStatus(domain.StatusRunning)
	logger.Info("started pid %d", proc.Pid())

	go s.pump(r, sink)
	return nil
}

// Kill terminates the running process. It is a no-op when nothing runs.
func (s *ProcessSession) Kill() {
	s.startMu.Lock()
	defer s.startMu.Unlock()

	if r := s.current(); r != nil {
		s.terminate(r)
	}
}

// Wait blocks until the latest run completes or ctx is done.
func (s *ProcessSession) Wait(ctx context.Context) error {
	s.mu.Lock()
	r := s.last
	s.mu.Unlock()
	if r == nil {
		return domain.ErrNoSession
	}
	select {
	case <-r.done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// State returns the lifecycle state.
func (s *ProcessSession) State() domain.SessionState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// Detailed reports whether the formatter pads columns.
func (s *ProcessSession) Detailed() bool {
	return s.cfg.Detailed
}

func (s *ProcessSession) current() *processRun {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.run
}

// terminate interrupts r, kills it if it outlives the grace period and
// waits a bounded time for its output to drain.
func (s *ProcessSession) terminate(r *processRun) {
	s.mu.Lock()
	if s.run == r {
		s.state = domain.SessionTerminating
	}
	s.mu.Unlock()

	pid := r.proc.Pid()
	if err := r.proc.Interrupt(); err != nil {
		logger.Debug("interrupting pid %d: %v", pid, err)
	}
	if waitDone(r.done, s.cfg.GracePeriod) {
		return
	}

	if r.proc.Alive() {
		logger.Info("pid %d still running after %s, killing", pid, s.cfg.GracePeriod)
		if err := r.proc.Kill(); err != nil && !errors.Is(err, os.ErrProcessDone) {
			logger.Debug("killing pid %d: %v", pid, err)
		}
	}
	if !waitDone(r.done, s.cfg.GracePeriod) {
		logger.Warn("output of pid %d did not drain, abandoning it", pid)
		s.release(r)
	}
}

// pump feeds the output of r to a fresh formatter and completes the run.
func (s *ProcessSession) pump(r *processRun, sink driven.ListingSink) {
	defer close(r.done)

	f := NewStreamFormatter(sink, s.cfg.Detailed)
	buf := make([]byte, readBufferSize)
	out := r.proc.Output()
	for {
		n, err := out.Read(buf)
		if n > 0 {
			f.Feed(buf[:n])
		}
		if err != nil {
			if !errors.Is(err, io.EOF) && !errors.Is(err, os.ErrClosed) {
				logger.Debug("reading output of pid %d: %v", r.proc.Pid(), err)
			}
			break
		}
	}

	status, err := r.proc.Wait()
	if err != nil {
		logger.Warn("waiting for pid %d: %v", r.proc.Pid(), err)
		status = domain.ExitStatus{Code: -1}
	}
	s.completion.OnExit(f, sink, status, r.spec.Program)
	s.release(r)
	logger.Info("pid %d %s, %d entries", r.proc.Pid(), status.Description(), f.Files())

	if r.spec.OnFinish != nil {
		r.spec.OnFinish(domain.RunResult{
			Program:    r.spec.Program,
			Command:    r.spec.Command,
			Status:     status,
			Entries:    f.Files(),
			StartedAt:  r.started,
			FinishedAt: s.cfg.Now(),
		}, sink, func() bool { return s.isCurrent(r.gen) })
	}
}

// release forgets r if it is still the current run.
func (s *ProcessSession) release(r *processRun) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.run == r {
		s.run = nil
		s.state = domain.SessionIdle
	}
}

func (s *ProcessSession) isCurrent(gen uint64) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.gen == gen
}

func waitDone(done <-chan struct{}, d time.Duration) bool {
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-done:
		return true
	case <-timer.C:
		return false
	}
}

// runSink forwards writes of one run to the session's sink and drops them
// once a newer run has started.
type runSink struct {
	session *ProcessSession
	gen     uint64
}

var _ driven.ListingSink = (*runSink)(nil)

func (g *runSink) write(fn func(driven.ListingSink)) {
	g.session.sinkMu.Lock()
	defer g.session.sinkMu.Unlock()
	if g.session.isCurrent(g.gen) {
		fn(g.session.sink)
	}
}

func (g *runSink) Reset(command string) {
	g.write(func(sink driven.ListingSink) { sink.Reset(command) })
}

func (g *runSink) Append(entry domain.Entry) {
	g.write(func(sink driven.ListingSink) { sink.Append(entry) })
}

func (g *runSink) SetStatus(status string) {
	g.write(func(sink driven.ListingSink) { sink.SetStatus(status) })
}

func (g *runSink) MarkStale(path string) {
	g.write(func(sink driven.ListingSink) { sink.MarkStale(path) })
}
