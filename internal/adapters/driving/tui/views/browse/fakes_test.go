package browse

import (
	"context"
	"sync"

	"github.com/custodia-labs/dupes-cli/internal/core/domain"
	"github.com/custodia-labs/dupes-cli/internal/core/ports/driving"
)

// call records one session operation.
type call struct {
	op        string
	value     string
	confirmed bool
}

type fakeSession struct {
	mu         sync.Mutex
	state      domain.SessionState
	search     domain.SearchState
	detailed   bool
	lastToggle string
	err        error
	calls      []call
}

var _ driving.SearchSession = (*fakeSession)(nil)

func (f *fakeSession) record(op, value string, confirm driving.ConfirmFunc) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	c := call{op: op, value: value}
	if f.state != domain.SessionIdle {
		c.confirmed = confirm != nil && confirm()
		if !c.confirmed {
			f.calls = append(f.calls, c)
			return domain.ErrProcessActive
		}
	}
	f.calls = append(f.calls, c)
	return f.err
}

func (f *fakeSession) Begin(_ context.Context, req driving.SearchRequest, confirm driving.ConfirmFunc) error {
	return f.record("begin", "", confirm)
}

func (f *fakeSession) Rerun(_ context.Context, confirm driving.ConfirmFunc) error {
	return f.record("rerun", "", confirm)
}

func (f *fakeSession) Toggle(_ context.Context, flag string, confirm driving.ConfirmFunc) error {
	return f.record("toggle", flag, confirm)
}

func (f *fakeSession) SetSize(_ context.Context, size string, confirm driving.ConfirmFunc) error {
	return f.record("size", size, confirm)
}

func (f *fakeSession) SetExtraArgs(_ context.Context, args string, confirm driving.ConfirmFunc) error {
	return f.record("args", args, confirm)
}

func (f *fakeSession) Kill(context.Context) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, call{op: "kill"})
	return nil
}

func (f *fakeSession) Wait(context.Context) error  { return nil }
func (f *fakeSession) Close(context.Context) error { return nil }

func (f *fakeSession) State() domain.SessionState {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.state
}

func (f *fakeSession) Search() (domain.SearchState, bool) {
	return f.search, true
}

func (f *fakeSession) Command() string    { return "" }
func (f *fakeSession) Detailed() bool     { return f.detailed }
func (f *fakeSession) LastToggle() string { return f.lastToggle }

func (f *fakeSession) Calls() []call {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]call(nil), f.calls...)
}

type fakeActions struct {
	opened []string
	copied []string
	err    error
}

var _ driving.EntryActionService = (*fakeActions)(nil)

func (f *fakeActions) Locate(text string, detailed bool) (domain.EntryLocation, error) {
	loc, ok := domain.ParseEntryPath(text, detailed)
	if !ok {
		return domain.EntryLocation{}, domain.ErrInvalidInput
	}
	return loc, nil
}

func (f *fakeActions) CopyPath(loc domain.EntryLocation) error {
	f.copied = append(f.copied, loc.Path)
	return f.err
}

func (f *fakeActions) Open(loc domain.EntryLocation) error {
	f.opened = append(f.opened, loc.Path)
	return f.err
}
