package cli

import (
	"fmt"
	"os"
	"runtime/debug"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/dupes-cli/internal/adapters/driving/tui"
	"github.com/custodia-labs/dupes-cli/internal/adapters/driving/tui/components/listing"
	"github.com/custodia-labs/dupes-cli/internal/core/domain"
	"github.com/custodia-labs/dupes-cli/internal/core/ports/driving"
	"github.com/custodia-labs/dupes-cli/internal/logger"
)

// runTUI shows the listing of req in the terminal UI. The directory chosen
// with enter is printed on stdout once the UI has closed.
func runTUI(cmd *cobra.Command, req driving.SearchRequest) error {
	// Add panic recovery to get stack traces
	defer func() {
		if r := recover(); r != nil {
			fmt.Fprintf(os.Stderr, "Panic in TUI: %v\n", r)
			fmt.Fprintf(os.Stderr, "Stack trace:\n%s\n", debug.Stack())
		}
	}()

	buffer := listing.NewBuffer()
	session := newSession(buffer)

	app, err := tui.NewApp(tui.NewPorts(session, actionService), buffer, refreshRate())
	if err != nil {
		return fmt.Errorf("failed to create TUI: %w", err)
	}

	if logFile != "" {
		restore, err := logger.RedirectToFile(logFile)
		if err != nil {
			return err
		}
		defer restore()
	}

	ctx := cmd.Context()
	if err := session.Begin(ctx, req, nil); err != nil {
		return fmt.Errorf("starting search: %w", err)
	}
	defer closeSession(session)

	dir, err := app.WithContext(ctx).Run()
	if err != nil {
		return fmt.Errorf("TUI error: %w", err)
	}
	if dir != "" {
		fmt.Fprintln(cmd.OutOrStdout(), dir)
	}
	return nil
}

func refreshRate() int {
	if settingsService == nil {
		return domain.DefaultRefreshPerSecond
	}
	settings, err := settingsService.Get()
	if err != nil {
		logger.Warn("loading settings: %v", err)
		return domain.DefaultRefreshPerSecond
	}
	return settings.UI.RefreshPerSecond
}
