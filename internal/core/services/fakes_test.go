package services

import (
	"context"
	"io"
	"sync"

	"github.com/custodia-labs/dupes-cli/internal/core/domain"
	"github.com/custodia-labs/dupes-cli/internal/core/ports/driven"
)

// recordingSink is a ListingSink that keeps everything written to it.
type recordingSink struct {
	mu       sync.Mutex
	entries  []domain.Entry
	statuses []string
	commands []string
	stale    []string
}

var _ driven.ListingSink = (*recordingSink)(nil)

func (s *recordingSink) Reset(command string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries = nil
	s.stale = nil
	s.commands = append(s.commands, command)
}

func (s *recordingSink) Append(entry domain.Entry) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries = append(s.entries, entry)
}

func (s *recordingSink) SetStatus(status string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.statuses = append(s.statuses, status)
}

func (s *recordingSink) MarkStale(path string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.stale = append(s.stale, path)
}

func (s *recordingSink) Entries() []domain.Entry {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]domain.Entry(nil), s.entries...)
}

func (s *recordingSink) Texts() []string {
	entries := s.Entries()
	texts := make([]string, len(entries))
	for i, e := range entries {
		texts[i] = e.Text
	}
	return texts
}

func (s *recordingSink) Status() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.statuses) == 0 {
		return ""
	}
	return s.statuses[len(s.statuses)-1]
}

func (s *recordingSink) Commands() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]string(nil), s.commands...)
}

func (s *recordingSink) Stale() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]string(nil), s.stale...)
}

// fakeProcess is a Process driven by the test.
type fakeProcess struct {
	pid    int
	out    *io.PipeReader
	w      *io.PipeWriter
	exited chan struct{}
	once   sync.Once
	status domain.ExitStatus

	mu              sync.Mutex
	ignoreInterrupt bool
	interrupts      int
	kills           int
}

var _ driven.Process = (*fakeProcess)(nil)

func newFakeProcess(pid int, ignoreInterrupt bool) *fakeProcess {
	r, w := io.Pipe()
	return &fakeProcess{
		pid:             pid,
		out:             r,
		w:               w,
		exited:          make(chan struct{}),
		ignoreInterrupt: ignoreInterrupt,
	}
}

func (p *fakeProcess) Pid() int          { return p.pid }
func (p *fakeProcess) Output() io.Reader { return p.out }

func (p *fakeProcess) Alive() bool {
	select {
	case <-p.exited:
		return false
	default:
		return true
	}
}

func (p *fakeProcess) Interrupt() error {
	p.mu.Lock()
	p.interrupts++
	ignore := p.ignoreInterrupt
	p.mu.Unlock()
	if !ignore {
		p.exit(domain.ExitStatus{Code: -1, Signal: "interrupt"})
	}
	return nil
}

func (p *fakeProcess) Kill() error {
	p.mu.Lock()
	p.kills++
	p.mu.Unlock()
	p.exit(domain.ExitStatus{Code: -1, Signal: "killed"})
	return nil
}

func (p *fakeProcess) Wait() (domain.ExitStatus, error) {
	<-p.exited
	return p.status, nil
}

// Write streams output to the pump. It blocks until the pump reads it.
func (p *fakeProcess) Write(s string) {
	_, _ = p.w.Write([]byte(s))
}

// Finish writes output and exits with code.
func (p *fakeProcess) Finish(output string, code int) {
	if output != "" {
		p.Write(output)
	}
	p.exit(domain.ExitStatus{Code: code})
}

func (p *fakeProcess) Counts() (interrupts, kills int) {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.interrupts, p.kills
}

func (p *fakeProcess) exit(status domain.ExitStatus) {
	p.once.Do(func() {
		p.status = status
		close(p.exited)
		_ = p.w.Close()
	})
}

// fakeRunner hands out fakeProcesses.
type fakeRunner struct {
	mu              sync.Mutex
	procs           []*fakeProcess
	commands        []string
	startErr        error
	lookErr         error
	ignoreInterrupt bool
}

var _ driven.ProcessRunner = (*fakeRunner)(nil)

func (r *fakeRunner) LookPath(program string) (string, error) {
	if r.lookErr != nil {
		return "", r.lookErr
	}
	return "/usr/bin/" + program, nil
}

func (r *fakeRunner) Start(_ context.Context, command, _ string) (driven.Process, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.startErr != nil {
		return nil, r.startErr
	}
	p := newFakeProcess(100+len(r.procs), r.ignoreInterrupt)
	r.procs = append(r.procs, p)
	r.commands = append(r.commands, command)
	return p, nil
}

func (r *fakeRunner) Last() *fakeProcess {
	r.mu.Lock()
	defer r.mu.Unlock()
	if len(r.procs) == 0 {
		return nil
	}
	return r.procs[len(r.procs)-1]
}

func (r *fakeRunner) Count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.procs)
}

func (r *fakeRunner) Commands() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]string(nil), r.commands...)
}

// fakeWatcher records watched directories and lets tests fire changes.
type fakeWatcher struct {
	mu       sync.Mutex
	dirs     [][]string
	onChange func(string)
	stopped  int

	// onWatch runs once inside the next Watch call, before it returns.
	onWatch func()
}

var _ driven.DirWatcher = (*fakeWatcher)(nil)

func (w *fakeWatcher) Watch(dirs []string, onChange func(string)) (func() error, error) {
	w.mu.Lock()
	w.dirs = append(w.dirs, dirs)
	w.onChange = onChange
	hook := w.onWatch
	w.onWatch = nil
	w.mu.Unlock()
	if hook != nil {
		hook()
	}
	return func() error {
		w.mu.Lock()
		defer w.mu.Unlock()
		w.stopped++
		return nil
	}, nil
}

func (w *fakeWatcher) Fire(path string) {
	w.mu.Lock()
	fn := w.onChange
	w.mu.Unlock()
	if fn != nil {
		fn(path)
	}
}

func (w *fakeWatcher) Watched() int {
	w.mu.Lock()
	defer w.mu.Unlock()
	return len(w.dirs)
}

func (w *fakeWatcher) Stopped() int {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.stopped
}
