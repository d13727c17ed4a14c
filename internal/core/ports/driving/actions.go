package driving

import "github.com/custodia-labs/dupes-cli/internal/core/domain"

// EntryActionService provides actions on listing entries for external actors.
// This is used by the TUI.
type EntryActionService interface {
	// Locate resolves the file a listing line refers to.
	Locate(text string, detailed bool) (domain.EntryLocation, error)

	// CopyPath copies the entry's path to the system clipboard.
	CopyPath(location domain.EntryLocation) error

	// Open opens the entry in the default application.
	Open(location domain.EntryLocation) error
}
