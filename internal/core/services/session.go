package services

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/custodia-labs/dupes-cli/internal/core/domain"
	"github.com/custodia-labs/dupes-cli/internal/core/ports/driven"
	"github.com/custodia-labs/dupes-cli/internal/core/ports/driving"
	"github.com/custodia-labs/dupes-cli/internal/logger"
)

// Ensure SearchSession implements the interface.
var _ driving.SearchSession = (*SearchSession)(nil)

// SearchSession ties a search state to the process session producing its
// listing. Mutations are applied to a copy and only committed once the
// rerun has started.
type SearchSession struct {
	settings domain.AppSettings
	runner   driven.ProcessRunner
	process  *ProcessSession
	history  driving.HistoryService
	watcher  driven.DirWatcher

	mu         sync.Mutex
	search     *domain.SearchState
	command    string
	lastToggle string
	stopWatch  func() error
	closed     bool
}

// NewSearchSession creates a listing session writing to sink.
// history and watcher may be nil.
func NewSearchSession(
	settings domain.AppSettings,
	runner driven.ProcessRunner,
	sink driven.ListingSink,
	history driving.HistoryService,
	watcher driven.DirWatcher,
) *SearchSession {
	return &SearchSession{
		settings: settings,
		runner:   runner,
		history:  history,
		watcher:  watcher,
		process: NewProcessSession(runner, sink, ProcessSessionConfig{
			GracePeriod: settings.Session.GracePeriod,
			Detailed:    settings.Listing.Format().HasLinkCountAndSizeColumns(),
		}),
	}
}

// Begin replaces the search state and runs it.
func (s *SearchSession) Begin(ctx context.Context, req driving.SearchRequest, confirm driving.ConfirmFunc) error {
	flags := req.Flags
	if flags == nil {
		flags = s.settings.Search.Flags
	}
	size := req.Size
	if size == "" {
		size = s.settings.Search.Size
	}
	state, err := NewSearchState(req.Directories, req.ExtraArgs, size, flags)
	if err != nil {
		return err
	}
	return s.start(ctx, state, confirm)
}

// Rerun runs the current search again.
func (s *SearchSession) Rerun(ctx context.Context, confirm driving.ConfirmFunc) error {
	return s.mutate(ctx, confirm, func(*domain.SearchState) {})
}

// Toggle flips flag and reruns.
func (s *SearchSession) Toggle(ctx context.Context, flag string, confirm driving.ConfirmFunc) error {
	flag = strings.TrimSpace(flag)
	if flag == "" {
		return fmt.Errorf("%w: empty flag", domain.ErrInvalidInput)
	}
	if err := s.mutate(ctx, confirm, func(st *domain.SearchState) { st.Toggle(flag) }); err != nil {
		return err
	}
	s.mu.Lock()
	s.lastToggle = flag
	s.mu.Unlock()
	return nil
}

// SetSize replaces the size filter and reruns.
func (s *SearchSession) SetSize(ctx context.Context, size string, confirm driving.ConfirmFunc) error {
	return s.mutate(ctx, confirm, func(st *domain.SearchState) { st.SetSize(strings.TrimSpace(size)) })
}

// SetExtraArgs replaces the extra finder arguments and reruns.
func (s *SearchSession) SetExtraArgs(ctx context.Context, args string, confirm driving.ConfirmFunc) error {
	return s.mutate(ctx, confirm, func(st *domain.SearchState) { st.ExtraArgs = args })
}

// Kill terminates the running process, if any.
func (s *SearchSession) Kill(_ context.Context) error {
	s.process.Kill()
	return nil
}

// Wait blocks until the current run completes.
func (s *SearchSession) Wait(ctx context.Context) error {
	return s.process.Wait(ctx)
}

// Close kills the running process and stops change detection. No watcher
// is armed once the session is closed.
func (s *SearchSession) Close(ctx context.Context) error {
	s.mu.Lock()
	s.closed = true
	s.mu.Unlock()
	if err := s.Kill(ctx); err != nil {
		return err
	}
	s.mu.Lock()
	stop := s.stopWatch
	s.stopWatch = nil
	s.mu.Unlock()
	if stop != nil {
		return stop()
	}
	return nil
}

// State returns the process lifecycle state.
func (s *SearchSession) State() domain.SessionState {
	return s.process.State()
}

// Search returns a copy of the current search state.
func (s *SearchSession) Search() (domain.SearchState, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.search == nil {
		return domain.SearchState{}, false
	}
	return *s.search.Clone(), true
}

// Command returns the full shell command of the last run.
func (s *SearchSession) Command() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.command
}

// Detailed reports whether listing lines carry ls -l columns.
func (s *SearchSession) Detailed() bool {
	return s.process.Detailed()
}

// LastToggle returns the most recently toggled flag.
func (s *SearchSession) LastToggle() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastToggle
}

func (s *SearchSession) mutate(ctx context.Context, confirm driving.ConfirmFunc, fn func(*domain.SearchState)) error {
	s.mu.Lock()
	if s.search == nil {
		s.mu.Unlock()
		return domain.ErrNoSession
	}
	next := s.search.Clone()
	s.mu.Unlock()

	fn(next)
	return s.start(ctx, next, confirm)
}

func (s *SearchSession) start(ctx context.Context, state *domain.SearchState, confirm driving.ConfirmFunc) error {
	program, err := s.runner.LookPath(s.settings.Program)
	if err != nil {
		return &domain.ProgramNotFoundError{Program: s.settings.Program, Cause: err}
	}
	command := FullCommand(program, state, s.settings.Listing.Format())
	snapshot := *state.Clone()

	spec := RunSpec{
		Program: program,
		Command: command,
		OnFinish: func(result domain.RunResult, sink driven.ListingSink, current func() bool) {
			s.finished(snapshot, result, sink, current)
		},
	}
	if err := s.process.Start(ctx, spec, confirm); err != nil {
		return err
	}

	s.mu.Lock()
	s.search = state
	s.command = command
	stop := s.stopWatch
	s.stopWatch = nil
	s.mu.Unlock()
	if stop != nil {
		if err := stop(); err != nil {
			logger.Debug("stopping watcher: %v", err)
		}
	}
	return nil
}

// finished records a completed run and watches its directories while the
// run is still the latest one.
func (s *SearchSession) finished(search domain.SearchState, result domain.RunResult, sink driven.ListingSink, current func() bool) {
	if s.history != nil && s.history.Enabled() {
		record := domain.RunRecord{
			Search:     search,
			Program:    result.Program,
			Command:    result.Command,
			Status:     result.Status,
			Entries:    result.Entries,
			StartedAt:  result.StartedAt,
			FinishedAt: result.FinishedAt,
		}
		if _, err := s.history.Record(context.Background(), record); err != nil {
			logger.Warn("recording run: %v", err)
		}
	}

	if s.watcher == nil || !current() || s.isClosed() {
		return
	}
	stop, err := s.watcher.Watch(search.Directories, sink.MarkStale)
	if err != nil {
		logger.Warn("watching %v: %v", search.Directories, err)
		return
	}

	// A run started while Watch was setting up clears stopWatch under s.mu
	// after replacing this one, so checking again under s.mu is enough.
	s.mu.Lock()
	if s.closed || !current() {
		s.mu.Unlock()
		if err := stop(); err != nil {
			logger.Debug("stopping watcher: %v", err)
		}
		return
	}
	previous := s.stopWatch
	s.stopWatch = stop
	s.mu.Unlock()
	if previous != nil {
		_ = previous()
	}
}

func (s *SearchSession) isClosed() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.closed
}
