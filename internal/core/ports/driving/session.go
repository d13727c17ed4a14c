package driving

import (
	"context"

	"github.com/custodia-labs/dupes-cli/internal/core/domain"
)

// ConfirmFunc asks whether a running finder process may be killed.
type ConfirmFunc func() bool

// SearchRequest describes a fresh search.
type SearchRequest struct {
	// Directories to search. Relative paths resolve against the working
	// directory.
	Directories []string

	// ExtraArgs are passed to the finder verbatim.
	ExtraArgs string

	// Size is the size filter. Empty uses the configured default.
	Size string

	// Flags are the toggle flags. Nil uses the configured defaults.
	Flags []string
}

// SearchSession is one listing session: a search state plus the single
// finder process that produces its listing.
type SearchSession interface {
	// Begin replaces the search state and runs it.
	Begin(ctx context.Context, req SearchRequest, confirm ConfirmFunc) error

	// Rerun runs the current search again.
	Rerun(ctx context.Context, confirm ConfirmFunc) error

	// Toggle flips one flag of the current search and reruns it.
	Toggle(ctx context.Context, flag string, confirm ConfirmFunc) error

	// SetSize replaces the size filter of the current search and reruns it.
	SetSize(ctx context.Context, size string, confirm ConfirmFunc) error

	// SetExtraArgs replaces the extra finder arguments and reruns.
	SetExtraArgs(ctx context.Context, args string, confirm ConfirmFunc) error

	// Kill terminates the running process, if any.
	Kill(ctx context.Context) error

	// Wait blocks until the current run completes or ctx is done.
	Wait(ctx context.Context) error

	// Close kills the running process and stops change detection.
	Close(ctx context.Context) error

	// State returns the process lifecycle state.
	State() domain.SessionState

	// Search returns a copy of the current search state.
	Search() (domain.SearchState, bool)

	// Command returns the full shell command of the last run.
	Command() string

	// Detailed reports whether listing lines carry ls -l columns.
	Detailed() bool

	// LastToggle returns the most recently toggled flag.
	LastToggle() string
}
