package mcp

import (
	"context"

	"github.com/custodia-labs/dupes-cli/internal/core/domain"
	"github.com/custodia-labs/dupes-cli/internal/core/ports/driven"
	"github.com/custodia-labs/dupes-cli/internal/core/ports/driving"
)

// mockSession is a mock implementation of driving.SearchSession that writes
// a fixed listing when a search begins.
type mockSession struct {
	sink     driven.ListingSink
	entries  []domain.Entry
	detailed bool
	beginErr error
	waitErr  error
	request  *driving.SearchRequest
	closed   bool
}

func (m *mockSession) factory() SessionFactory {
	return func(sink driven.ListingSink) driving.SearchSession {
		m.sink = sink
		return m
	}
}

func (m *mockSession) Begin(_ context.Context, req driving.SearchRequest, _ driving.ConfirmFunc) error {
	if m.beginErr != nil {
		return m.beginErr
	}
	m.request = &req
	m.sink.Reset("fdupes -r /data/ | ls -ld")
	m.sink.SetStatus(domain.StatusRunning)
	for _, entry := range m.entries {
		m.sink.Append(entry)
	}
	m.sink.SetStatus(domain.StatusExited)
	return nil
}

func (m *mockSession) Rerun(context.Context, driving.ConfirmFunc) error { return nil }

func (m *mockSession) Toggle(context.Context, string, driving.ConfirmFunc) error { return nil }

func (m *mockSession) SetSize(context.Context, string, driving.ConfirmFunc) error { return nil }

func (m *mockSession) SetExtraArgs(context.Context, string, driving.ConfirmFunc) error { return nil }

func (m *mockSession) Kill(context.Context) error { return nil }

func (m *mockSession) Wait(context.Context) error { return m.waitErr }

func (m *mockSession) Close(context.Context) error {
	m.closed = true
	return nil
}

func (m *mockSession) State() domain.SessionState { return domain.SessionIdle }

func (m *mockSession) Search() (domain.SearchState, bool) { return domain.SearchState{}, false }

func (m *mockSession) Command() string { return "" }

func (m *mockSession) Detailed() bool { return m.detailed }

func (m *mockSession) LastToggle() string { return "" }

// mockHistoryService is a mock implementation of driving.HistoryService.
type mockHistoryService struct {
	runs  []domain.RunRecord
	err   error
	limit int
}

func (m *mockHistoryService) Record(_ context.Context, record domain.RunRecord) (string, error) {
	m.runs = append(m.runs, record)
	return record.ID, m.err
}

func (m *mockHistoryService) Recent(_ context.Context, limit int) ([]domain.RunRecord, error) {
	m.limit = limit
	return m.runs, m.err
}

func (m *mockHistoryService) Get(_ context.Context, id string) (*domain.RunRecord, error) {
	if m.err != nil {
		return nil, m.err
	}
	for i := range m.runs {
		if m.runs[i].ID == id {
			return &m.runs[i], nil
		}
	}
	return nil, domain.ErrNotFound
}

func (m *mockHistoryService) Enabled() bool { return true }

func entry(text string, kind domain.EntryKind) domain.Entry {
	return domain.Entry{Text: text, Kind: kind}
}
