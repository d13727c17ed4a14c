package tui

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/custodia-labs/dupes-cli/internal/core/domain"
	"github.com/custodia-labs/dupes-cli/internal/core/ports/driving"
)

// MockSearchSession implements driving.SearchSession for testing.
type MockSearchSession struct {
	RerunFunc func(ctx context.Context, confirm driving.ConfirmFunc) error
	state     domain.SessionState
}

var _ driving.SearchSession = (*MockSearchSession)(nil)

func (m *MockSearchSession) Begin(context.Context, driving.SearchRequest, driving.ConfirmFunc) error {
	return nil
}

func (m *MockSearchSession) Rerun(ctx context.Context, confirm driving.ConfirmFunc) error {
	if m.RerunFunc != nil {
		return m.RerunFunc(ctx, confirm)
	}
	return nil
}

func (m *MockSearchSession) Toggle(context.Context, string, driving.ConfirmFunc) error       { return nil }
func (m *MockSearchSession) SetSize(context.Context, string, driving.ConfirmFunc) error      { return nil }
func (m *MockSearchSession) SetExtraArgs(context.Context, string, driving.ConfirmFunc) error { return nil }
func (m *MockSearchSession) Kill(context.Context) error                                       { return nil }
func (m *MockSearchSession) Wait(context.Context) error                                       { return nil }
func (m *MockSearchSession) Close(context.Context) error                                      { return nil }
func (m *MockSearchSession) State() domain.SessionState                                       { return m.state }
func (m *MockSearchSession) Search() (domain.SearchState, bool)                               { return domain.SearchState{}, false }
func (m *MockSearchSession) Command() string                                                  { return "" }
func (m *MockSearchSession) Detailed() bool                                                   { return false }
func (m *MockSearchSession) LastToggle() string                                               { return "" }

// MockEntryActionService implements driving.EntryActionService for testing.
type MockEntryActionService struct{}

var _ driving.EntryActionService = (*MockEntryActionService)(nil)

func (m *MockEntryActionService) Locate(text string, detailed bool) (domain.EntryLocation, error) {
	loc, ok := domain.ParseEntryPath(text, detailed)
	if !ok {
		return domain.EntryLocation{}, domain.ErrInvalidInput
	}
	return loc, nil
}

func (m *MockEntryActionService) CopyPath(domain.EntryLocation) error { return nil }
func (m *MockEntryActionService) Open(domain.EntryLocation) error     { return nil }

func TestNewPorts(t *testing.T) {
	session := &MockSearchSession{}
	actions := &MockEntryActionService{}

	ports := NewPorts(session, actions)

	assert.Equal(t, session, ports.Session)
	assert.Equal(t, actions, ports.Actions)
	assert.NoError(t, ports.Validate())
}

func TestPorts_Validate(t *testing.T) {
	tests := []struct {
		name  string
		ports *Ports
		want  error
	}{
		{"missing session", &Ports{Actions: &MockEntryActionService{}}, ErrMissingSession},
		{"missing actions", &Ports{Session: &MockSearchSession{}}, ErrMissingActions},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.ErrorIs(t, tt.ports.Validate(), tt.want)
		})
	}
}
