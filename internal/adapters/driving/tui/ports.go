// Package tui provides the interactive listing interface of dupes.
// It implements a driving adapter following hexagonal architecture principles.
package tui

import (
	"github.com/custodia-labs/dupes-cli/internal/core/ports/driving"
)

// Ports aggregates the driving port interfaces required by the TUI.
type Ports struct {
	// Session runs and reruns the search behind the listing.
	Session driving.SearchSession

	// Actions opens and copies listing entries.
	Actions driving.EntryActionService
}

// NewPorts creates a new Ports aggregate with the given services.
func NewPorts(session driving.SearchSession, actions driving.EntryActionService) *Ports {
	return &Ports{
		Session: session,
		Actions: actions,
	}
}

// Validate ensures all required ports are set.
func (p *Ports) Validate() error {
	if p.Session == nil {
		return ErrMissingSession
	}
	if p.Actions == nil {
		return ErrMissingActions
	}
	return nil
}
