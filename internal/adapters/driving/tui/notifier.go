package tui

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"
	"golang.org/x/time/rate"

	"github.com/custodia-labs/dupes-cli/internal/adapters/driving/tui/messages"
)

// notifier turns buffer changes into ListingChanged messages, coalescing
// bursts so the listing redraws at most perSecond times a second.
type notifier struct {
	changed chan struct{}
	limiter *rate.Limiter
}

func newNotifier(perSecond int) *notifier {
	limit := rate.Inf
	if perSecond > 0 {
		limit = rate.Limit(perSecond)
	}
	return &notifier{
		changed: make(chan struct{}, 1),
		limiter: rate.NewLimiter(limit, 1),
	}
}

// Notify records a change without blocking the writer.
func (n *notifier) Notify() {
	select {
	case n.changed <- struct{}{}:
	default:
	}
}

// Wait returns a command that delivers the next change.
func (n *notifier) Wait(ctx context.Context) tea.Cmd {
	return func() tea.Msg {
		select {
		case <-ctx.Done():
			return nil
		case <-n.changed:
		}
		if err := n.limiter.Wait(ctx); err != nil {
			return nil
		}
		return messages.ListingChanged{}
	}
}
