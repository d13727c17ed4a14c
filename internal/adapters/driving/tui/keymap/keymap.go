// Package keymap defines keybindings for the TUI.
package keymap

import (
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
)

// KeyMap defines all keybindings for the TUI.
type KeyMap struct {
	// Up and Down move the cursor one line.
	Up   key.Binding
	Down key.Binding

	// PageUp and PageDown move the cursor one screen.
	PageUp   key.Binding
	PageDown key.Binding

	// Top and Bottom jump to the first and last line.
	Top    key.Binding
	Bottom key.Binding

	// GoTo quits and prints the directory of the selected entry.
	GoTo key.Binding

	// Open opens the selected entry with the system opener.
	Open key.Binding

	// Copy copies the selected path to the clipboard.
	Copy key.Binding

	// Rerun runs the current search again.
	Rerun key.Binding

	// Recurse toggles -r and reruns.
	Recurse key.Binding

	// Toggle prompts for a flag to toggle.
	Toggle key.Binding

	// Size prompts for the size filter.
	Size key.Binding

	// Args prompts for the extra finder arguments.
	Args key.Binding

	// Kill terminates the running finder.
	Kill key.Binding

	// Quit exits the application.
	Quit key.Binding

	// Help toggles the full help.
	Help key.Binding

	// Yes and No answer the kill prompt.
	Yes key.Binding
	No  key.Binding

	// Submit and Cancel close an input prompt.
	Submit key.Binding
	Cancel key.Binding
}

// Ensure KeyMap can drive the bubbles help view.
var _ help.KeyMap = (*KeyMap)(nil)

// DefaultKeyMap returns the default keybindings.
func DefaultKeyMap() *KeyMap {
	return &KeyMap{
		Up: key.NewBinding(
			key.WithKeys("up", "k", "p", "ctrl+p"),
			key.WithHelp("↑/k", "up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j", "n", "ctrl+n"),
			key.WithHelp("↓/j", "down"),
		),
		PageUp: key.NewBinding(
			key.WithKeys("pgup", "b"),
			key.WithHelp("pgup", "page up"),
		),
		PageDown: key.NewBinding(
			key.WithKeys("pgdown", " "),
			key.WithHelp("pgdn", "page down"),
		),
		Top: key.NewBinding(
			key.WithKeys("home", "<"),
			key.WithHelp("home", "top"),
		),
		Bottom: key.NewBinding(
			key.WithKeys("end", ">"),
			key.WithHelp("end", "bottom"),
		),
		GoTo: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "go to dir"),
		),
		Open: key.NewBinding(
			key.WithKeys("o"),
			key.WithHelp("o", "open"),
		),
		Copy: key.NewBinding(
			key.WithKeys("y"),
			key.WithHelp("y", "copy path"),
		),
		Rerun: key.NewBinding(
			key.WithKeys("g"),
			key.WithHelp("g", "rerun"),
		),
		Recurse: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "toggle -r"),
		),
		Toggle: key.NewBinding(
			key.WithKeys("t"),
			key.WithHelp("t", "toggle flag"),
		),
		Size: key.NewBinding(
			key.WithKeys("s"),
			key.WithHelp("s", "size"),
		),
		Args: key.NewBinding(
			key.WithKeys("a"),
			key.WithHelp("a", "args"),
		),
		Kill: key.NewBinding(
			key.WithKeys("x"),
			key.WithHelp("x", "kill"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "help"),
		),
		Yes: key.NewBinding(
			key.WithKeys("y", "Y"),
			key.WithHelp("y", "kill it"),
		),
		No: key.NewBinding(
			key.WithKeys("n", "N", "esc"),
			key.WithHelp("n", "keep running"),
		),
		Submit: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "apply"),
		),
		Cancel: key.NewBinding(
			key.WithKeys("esc", "ctrl+g"),
			key.WithHelp("esc", "cancel"),
		),
	}
}

// ShortHelp returns the bindings shown in the status bar.
func (k *KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.GoTo, k.Rerun, k.Recurse, k.Kill, k.Quit, k.Help}
}

// FullHelp returns the full list of keybindings for the help view.
func (k *KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.PageUp, k.PageDown, k.Top, k.Bottom},
		{k.GoTo, k.Open, k.Copy},
		{k.Rerun, k.Recurse, k.Toggle, k.Size, k.Args},
		{k.Kill, k.Quit, k.Help},
	}
}

// ConfirmHelp returns the bindings of the kill prompt.
func (k *KeyMap) ConfirmHelp() []key.Binding {
	return []key.Binding{k.Yes, k.No}
}

// PromptHelp returns the bindings of an input prompt.
func (k *KeyMap) PromptHelp() []key.Binding {
	return []key.Binding{k.Submit, k.Cancel}
}
