// Package status provides status bar components for the TUI.
package status

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/custodia-labs/dupes-cli/internal/adapters/driving/tui/keymap"
	"github.com/custodia-labs/dupes-cli/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/dupes-cli/internal/core/domain"
)

// ConfirmPrompt is asked before a running finder is killed for a restart.
const ConfirmPrompt = "kill it? (y/n)"

// Mode selects which keybinding hints the bar shows.
type Mode int

const (
	// ModeListing shows the listing keys.
	ModeListing Mode = iota
	// ModeConfirm shows the kill prompt.
	ModeConfirm
	// ModePrompt shows the input prompt keys.
	ModePrompt
)

// Bar displays the finder status and keybinding hints.
type Bar struct {
	styles  *styles.Styles
	keymap  *keymap.KeyMap
	help    help.Model
	mode    Mode
	state   domain.SessionState
	status  string
	files   int
	stale   string
	message string
	isError bool
	width   int
}

// NewBar creates a new status bar component.
func NewBar(s *styles.Styles, km *keymap.KeyMap) *Bar {
	if s == nil {
		s = styles.DefaultStyles()
	}
	if km == nil {
		km = keymap.DefaultKeyMap()
	}

	h := help.New()
	h.Styles.ShortKey = s.Help
	h.Styles.ShortDesc = s.Help
	h.Styles.ShortSeparator = s.Help

	return &Bar{
		styles: s,
		keymap: km,
		help:   h,
		width:  80,
	}
}

// Init initialises the status bar.
func (s *Bar) Init() tea.Cmd {
	return nil
}

// Update handles status bar messages.
func (s *Bar) Update(msg tea.Msg) (*Bar, tea.Cmd) {
	// Bar is passive, updated via Set methods
	return s, nil
}

// View renders the status bar.
func (s *Bar) View() string {
	left := s.renderLeft()
	right := s.renderRight()

	padding := s.width - lipgloss.Width(left) - lipgloss.Width(right) - 2
	if padding < 1 {
		padding = 1
	}

	return s.styles.StatusBar.Width(s.width).Render(
		left + strings.Repeat(" ", padding) + right,
	)
}

// renderLeft renders the status, entry count and message.
func (s *Bar) renderLeft() string {
	parts := []string{s.renderStatus()}
	parts = append(parts, s.styles.Normal.Render(fmt.Sprintf("%d files", s.files)))

	if s.stale != "" {
		parts = append(parts, s.styles.Warning.Render("stale: "+s.stale+" changed"))
	}

	switch {
	case s.mode == ModeConfirm:
		parts = append(parts, s.styles.Warning.Render(ConfirmPrompt))
	case s.message != "" && s.isError:
		parts = append(parts, s.styles.Error.Render(s.message))
	case s.message != "":
		parts = append(parts, s.styles.Muted.Render(s.message))
	}
	return strings.Join(parts, "  ")
}

func (s *Bar) renderStatus() string {
	indicator := s.status
	if indicator == "" {
		indicator = s.state.String()
	}
	if s.state == domain.SessionTerminating {
		indicator += " (terminating)"
	}

	switch s.status {
	case domain.StatusRunning:
		return s.styles.Prompt.Render(indicator)
	case domain.StatusSignaled:
		return s.styles.Error.Render(indicator)
	case domain.StatusExited:
		return s.styles.Success.Render(indicator)
	default:
		return s.styles.Muted.Render(indicator)
	}
}

// renderRight renders keybinding hints.
func (s *Bar) renderRight() string {
	var bindings []key.Binding
	switch s.mode {
	case ModeConfirm:
		bindings = s.keymap.ConfirmHelp()
	case ModePrompt:
		bindings = s.keymap.PromptHelp()
	default:
		bindings = s.keymap.ShortHelp()
	}
	return s.help.ShortHelpView(bindings)
}

// SetMode sets which hints are shown.
func (s *Bar) SetMode(mode Mode) {
	s.mode = mode
}

// Mode returns the current mode.
func (s *Bar) Mode() Mode {
	return s.mode
}

// SetState sets the process lifecycle state.
func (s *Bar) SetState(state domain.SessionState) {
	s.state = state
}

// SetListing copies the status indicator, file count and stale path of
// the listing.
func (s *Bar) SetListing(status string, files int, stale string) {
	s.status = status
	s.files = files
	s.stale = stale
}

// SetMessage sets an informational message.
func (s *Bar) SetMessage(message string) {
	s.message = message
	s.isError = false
}

// SetError sets an error message.
func (s *Bar) SetError(err error) {
	if err == nil {
		s.SetMessage("")
		return
	}
	s.message = err.Error()
	s.isError = true
}

// Message returns the current message.
func (s *Bar) Message() string {
	return s.message
}

// IsError reports whether the message is an error.
func (s *Bar) IsError() bool {
	return s.isError
}

// SetWidth sets the status bar width.
func (s *Bar) SetWidth(width int) {
	s.width = width
	s.help.Width = width / 2
}

// Width returns the current width.
func (s *Bar) Width() int {
	return s.width
}
