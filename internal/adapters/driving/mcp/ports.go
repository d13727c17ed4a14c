package mcp

import (
	"github.com/custodia-labs/dupes-cli/internal/core/ports/driven"
	"github.com/custodia-labs/dupes-cli/internal/core/ports/driving"
)

// SessionFactory creates a search session writing its listing to sink.
type SessionFactory func(sink driven.ListingSink) driving.SearchSession

// Ports aggregates all driving port interfaces required by the MCP server.
// This provides a single injection point for dependency injection.
type Ports struct {
	// NewSession creates one session per find_duplicates call.
	NewSession SessionFactory

	// History lists recorded runs. Optional.
	History driving.HistoryService
}

// Validate ensures all required ports are set.
// Returns an error if any required port is nil.
func (p *Ports) Validate() error {
	if p.NewSession == nil {
		return ErrMissingSessionFactory
	}
	return nil
}
