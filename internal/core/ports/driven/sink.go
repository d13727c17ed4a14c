package driven

import "github.com/custodia-labs/dupes-cli/internal/core/domain"

// ListingSink is the display surface formatted entries are written to.
// Implementations must be safe for a concurrent reader.
type ListingSink interface {
	// Reset clears the listing before a new run of command.
	Reset(command string)

	// Append adds one formatted entry.
	Append(entry domain.Entry)

	// SetStatus updates the process status indicator.
	SetStatus(status string)

	// MarkStale flags the listing as outdated because path changed.
	MarkStale(path string)
}
