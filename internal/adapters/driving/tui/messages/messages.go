// Package messages defines Bubbletea message types for the TUI.
// Messages represent events and commands that flow through the Elm architecture.
package messages

// ListingChanged is sent when the listing buffer has new content.
type ListingChanged struct{}

// Action identifies a user action on the listing.
type Action int

const (
	// ActionRerun runs the current search again.
	ActionRerun Action = iota
	// ActionToggle flips one finder flag and reruns.
	ActionToggle
	// ActionSize replaces the size filter and reruns.
	ActionSize
	// ActionArgs replaces the extra finder arguments and reruns.
	ActionArgs
	// ActionKill terminates the running finder.
	ActionKill
	// ActionOpen opens the selected entry.
	ActionOpen
	// ActionCopy copies the selected path.
	ActionCopy
)

// String returns the string representation of the action.
func (a Action) String() string {
	switch a {
	case ActionRerun:
		return "rerun"
	case ActionToggle:
		return "toggle"
	case ActionSize:
		return "size"
	case ActionArgs:
		return "args"
	case ActionKill:
		return "kill"
	case ActionOpen:
		return "open"
	case ActionCopy:
		return "copy"
	default:
		return "unknown"
	}
}

// Restarts reports whether the action starts a new finder run.
func (a Action) Restarts() bool {
	switch a {
	case ActionRerun, ActionToggle, ActionSize, ActionArgs:
		return true
	default:
		return false
	}
}

// ActionCompleted carries the outcome of an action back to the model.
type ActionCompleted struct {
	Action  Action
	Message string
	Err     error
}

// Quit signals the application should exit.
type Quit struct{}
