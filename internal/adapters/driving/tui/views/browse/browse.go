// Package browse provides the listing view of the TUI: the streamed
// duplicate listing, the prompts that change the search and the status bar.
package browse

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/custodia-labs/dupes-cli/internal/adapters/driving/tui/components/input"
	"github.com/custodia-labs/dupes-cli/internal/adapters/driving/tui/components/listing"
	"github.com/custodia-labs/dupes-cli/internal/adapters/driving/tui/components/status"
	"github.com/custodia-labs/dupes-cli/internal/adapters/driving/tui/keymap"
	"github.com/custodia-labs/dupes-cli/internal/adapters/driving/tui/messages"
	"github.com/custodia-labs/dupes-cli/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/dupes-cli/internal/core/domain"
	"github.com/custodia-labs/dupes-cli/internal/core/ports/driving"
)

// recurseFlag is toggled by the recurse key.
const recurseFlag = "-r"

// errNotAFile is shown when an action needs a file entry.
var errNotAFile = errors.New("not a file entry")

// pendingAction is a restart waiting for the kill prompt.
type pendingAction struct {
	action messages.Action
	value  string
}

// View is the listing screen.
type View struct {
	styles    *styles.Styles
	keymap    *keymap.KeyMap
	list      *listing.List
	statusbar *status.Bar
	help      help.Model

	session driving.SearchSession
	actions driving.EntryActionService
	buffer  *listing.Buffer
	ctx     context.Context

	prompt       *input.Prompt
	promptAction messages.Action
	pending      *pendingAction
	showHelp     bool
	chosenDir    string

	width  int
	height int
}

// NewView creates a listing view reading from buffer.
func NewView(
	s *styles.Styles,
	km *keymap.KeyMap,
	session driving.SearchSession,
	actions driving.EntryActionService,
	buffer *listing.Buffer,
) *View {
	if s == nil {
		s = styles.DefaultStyles()
	}
	if km == nil {
		km = keymap.DefaultKeyMap()
	}

	v := &View{
		styles:    s,
		keymap:    km,
		list:      listing.NewList(s, km),
		statusbar: status.NewBar(s, km),
		help:      help.New(),
		session:   session,
		actions:   actions,
		buffer:    buffer,
		ctx:       context.Background(),
		width:     80,
		height:    24,
	}
	v.layout()
	return v
}

// WithContext sets the context for the view.
func (v *View) WithContext(ctx context.Context) *View {
	v.ctx = ctx
	return v
}

// Init loads the current listing.
func (v *View) Init() tea.Cmd {
	v.Refresh()
	return nil
}

// Update handles messages for the listing view.
func (v *View) Update(msg tea.Msg) (*View, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		v.SetDimensions(msg.Width, msg.Height)
		return v, nil

	case messages.ListingChanged:
		v.Refresh()
		return v, nil

	case messages.ActionCompleted:
		v.handleCompleted(msg)
		return v, nil

	case tea.KeyMsg:
		return v.handleKeyMsg(msg)
	}

	if v.prompt != nil {
		var cmd tea.Cmd
		v.prompt, cmd = v.prompt.Update(msg)
		return v, cmd
	}
	return v, nil
}

// handleKeyMsg processes keyboard input.
//
//nolint:gocyclo // one case per binding
func (v *View) handleKeyMsg(msg tea.KeyMsg) (*View, tea.Cmd) {
	if v.pending != nil {
		return v.handleConfirmKey(msg)
	}
	if v.prompt != nil {
		return v.handlePromptKey(msg)
	}

	switch {
	case key.Matches(msg, v.keymap.Quit):
		return v, quit
	case key.Matches(msg, v.keymap.Help):
		v.showHelp = !v.showHelp
		v.layout()
		return v, nil
	case key.Matches(msg, v.keymap.GoTo):
		return v.goToDirectory()
	case key.Matches(msg, v.keymap.Open):
		return v, v.entryAction(messages.ActionOpen)
	case key.Matches(msg, v.keymap.Copy):
		return v, v.entryAction(messages.ActionCopy)
	case key.Matches(msg, v.keymap.Rerun):
		return v, v.request(messages.ActionRerun, "")
	case key.Matches(msg, v.keymap.Recurse):
		return v, v.request(messages.ActionToggle, recurseFlag)
	case key.Matches(msg, v.keymap.Toggle):
		return v, v.openPrompt(messages.ActionToggle, "toggle flag", v.session.LastToggle())
	case key.Matches(msg, v.keymap.Size):
		search, _ := v.session.Search()
		return v, v.openPrompt(messages.ActionSize, "size", search.SizeFilter)
	case key.Matches(msg, v.keymap.Args):
		search, _ := v.session.Search()
		return v, v.openPrompt(messages.ActionArgs, "extra args", search.ExtraArgs)
	case key.Matches(msg, v.keymap.Kill):
		return v, v.run(messages.ActionKill, "", false)
	}

	v.list, _ = v.list.Update(msg)
	return v, nil
}

func (v *View) handleConfirmKey(msg tea.KeyMsg) (*View, tea.Cmd) {
	switch {
	case key.Matches(msg, v.keymap.Yes):
		p := v.pending
		v.pending = nil
		v.statusbar.SetMode(status.ModeListing)
		return v, v.run(p.action, p.value, true)
	case key.Matches(msg, v.keymap.No):
		v.pending = nil
		v.statusbar.SetMode(status.ModeListing)
		v.statusbar.SetMessage("kept running")
	}
	return v, nil
}

func (v *View) handlePromptKey(msg tea.KeyMsg) (*View, tea.Cmd) {
	switch {
	case key.Matches(msg, v.keymap.Submit):
		action, value := v.promptAction, v.prompt.Value()
		if action != messages.ActionArgs {
			value = strings.TrimSpace(value)
		}
		v.closePrompt()
		if action == messages.ActionToggle && value == "" {
			v.statusbar.SetMessage("no flag given")
			return v, nil
		}
		return v, v.request(action, value)
	case key.Matches(msg, v.keymap.Cancel):
		v.closePrompt()
		return v, nil
	}

	var cmd tea.Cmd
	v.prompt, cmd = v.prompt.Update(msg)
	return v, cmd
}

func (v *View) openPrompt(action messages.Action, label, value string) tea.Cmd {
	v.prompt = input.NewPrompt(v.styles, label, value)
	v.prompt.SetWidth(v.width)
	v.promptAction = action
	v.statusbar.SetMode(status.ModePrompt)
	v.layout()
	return v.prompt.Init()
}

func (v *View) closePrompt() {
	v.prompt = nil
	v.statusbar.SetMode(status.ModeListing)
	v.layout()
}

// request runs a restarting action, asking first when a finder is running.
func (v *View) request(action messages.Action, value string) tea.Cmd {
	if v.session.State() != domain.SessionIdle {
		v.pending = &pendingAction{action: action, value: value}
		v.statusbar.SetMode(status.ModeConfirm)
		return nil
	}
	return v.run(action, value, false)
}

// run performs action off the event loop. confirmed answers the kill
// question should the finder still be running.
func (v *View) run(action messages.Action, value string, confirmed bool) tea.Cmd {
	ctx := v.ctx
	session := v.session
	confirm := func() bool { return confirmed }

	return func() tea.Msg {
		var err error
		var message string
		//nolint:exhaustive // entry actions go through entryAction
		switch action {
		case messages.ActionRerun:
			err = session.Rerun(ctx, confirm)
			message = "rerun"
		case messages.ActionToggle:
			err = session.Toggle(ctx, value, confirm)
			message = "toggled " + value
		case messages.ActionSize:
			err = session.SetSize(ctx, value, confirm)
			message = "size " + value
			if value == "" {
				message = "size filter cleared"
			}
		case messages.ActionArgs:
			err = session.SetExtraArgs(ctx, value, confirm)
			message = "extra args set"
		case messages.ActionKill:
			err = session.Kill(ctx)
			message = "killed"
		}
		return messages.ActionCompleted{Action: action, Message: message, Err: err}
	}
}

// entryAction opens or copies the selected entry.
func (v *View) entryAction(action messages.Action) tea.Cmd {
	loc, err := v.selectedLocation()
	if err != nil {
		v.statusbar.SetError(err)
		return nil
	}
	actions := v.actions

	return func() tea.Msg {
		if action == messages.ActionOpen {
			return messages.ActionCompleted{Action: action, Message: "opened " + loc.Path, Err: actions.Open(loc)}
		}
		return messages.ActionCompleted{Action: action, Message: "copied " + loc.Path, Err: actions.CopyPath(loc)}
	}
}

// goToDirectory quits, leaving the directory of the selected entry to be
// printed by the caller.
func (v *View) goToDirectory() (*View, tea.Cmd) {
	loc, err := v.selectedLocation()
	if err != nil {
		v.statusbar.SetError(err)
		return v, nil
	}
	v.chosenDir = loc.Directory()
	return v, quit
}

func (v *View) selectedLocation() (domain.EntryLocation, error) {
	entry := v.list.SelectedEntry()
	if entry == nil || entry.Kind != domain.EntryFile {
		return domain.EntryLocation{}, errNotAFile
	}
	return v.actions.Locate(entry.Text, v.session.Detailed())
}

func (v *View) handleCompleted(msg messages.ActionCompleted) {
	switch {
	case errors.Is(msg.Err, domain.ErrProcessActive):
		v.statusbar.SetMessage("finder still running")
	case msg.Err != nil:
		v.statusbar.SetError(fmt.Errorf("%s: %w", msg.Action, msg.Err))
	default:
		v.statusbar.SetMessage(msg.Message)
	}
	v.Refresh()
}

// Refresh reloads the listing from the buffer.
func (v *View) Refresh() {
	snap := v.buffer.Snapshot()
	v.list.SetEntries(snap.Command, snap.Entries)
	v.statusbar.SetListing(snap.Status, snap.Files, snap.Stale)
	v.statusbar.SetState(v.session.State())
}

// View renders the listing view.
func (v *View) View() string {
	var b strings.Builder
	b.WriteString(v.list.View())
	b.WriteString("\n")
	if v.showHelp {
		b.WriteString(v.help.FullHelpView(v.keymap.FullHelp()))
		b.WriteString("\n")
	}
	if v.prompt != nil {
		b.WriteString(v.prompt.View())
		b.WriteString("\n")
	}
	b.WriteString(v.statusbar.View())
	return b.String()
}

// layout sizes the list to the space left by the bars.
func (v *View) layout() {
	reserved := 1
	if v.prompt != nil {
		reserved++
	}
	if v.showHelp {
		reserved += len(strings.Split(v.help.FullHelpView(v.keymap.FullHelp()), "\n"))
	}
	height := v.height - reserved
	if height < 2 {
		height = 2
	}
	v.list.SetDimensions(v.width, height)
	v.statusbar.SetWidth(v.width)
	v.help.Width = v.width
}

// SetDimensions sets the terminal dimensions.
func (v *View) SetDimensions(width, height int) {
	v.width = width
	v.height = height
	if v.prompt != nil {
		v.prompt.SetWidth(width)
	}
	v.layout()
}

// ChosenDirectory returns the directory picked with the go-to key.
func (v *View) ChosenDirectory() string {
	return v.chosenDir
}

// Prompting reports whether an input prompt is open.
func (v *View) Prompting() bool {
	return v.prompt != nil
}

// Confirming reports whether the kill prompt is shown.
func (v *View) Confirming() bool {
	return v.pending != nil
}

// ShowingHelp reports whether the full help is shown.
func (v *View) ShowingHelp() bool {
	return v.showHelp
}

// Selected returns the cursor index of the list.
func (v *View) Selected() int {
	return v.list.Selected()
}

// StatusMessage returns the status bar message.
func (v *View) StatusMessage() string {
	return v.statusbar.Message()
}

func quit() tea.Msg {
	return messages.Quit{}
}
