// Package cli provides the cobra command tree of dupes.
//
// The root command runs a search over the given directories and shows the
// listing in the terminal UI, or streams it as plain lines when stdout is not
// a terminal. Subcommands inspect and replay recorded runs and manage
// configuration.
package cli

import (
	"context"
	"errors"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/dupes-cli/internal/core/ports/driven"
	"github.com/custodia-labs/dupes-cli/internal/core/ports/driving"
	"github.com/custodia-labs/dupes-cli/internal/logger"
)

// SessionFactory creates a search session writing its listing to sink.
type SessionFactory func(sink driven.ListingSink) driving.SearchSession

// Services holds the core services used by the commands.
type Services struct {
	Settings driving.SettingsService
	History  driving.HistoryService
	Actions  driving.EntryActionService

	// NewSession creates the session of a search.
	NewSession SessionFactory

	// LogFile receives log output while the terminal UI owns the screen.
	// Empty leaves logging on stderr.
	LogFile string
}

var (
	settingsService driving.SettingsService
	historyService  driving.HistoryService
	actionService   driving.EntryActionService
	newSession      SessionFactory
	logFile         string

	version = "dev"
	verbose bool
)

var errNotConfigured = errors.New("not configured")

var rootCmd = &cobra.Command{
	Use:   "dupes [directories...]",
	Short: "Browse duplicate files found by fdupes or jdupes",
	Long: `Runs fdupes (or jdupes) over the given directories, defaulting to the
current one, and pipes every reported file through ls so the duplicate
groups are shown as an aligned directory listing.

On a terminal the listing is interactive:
  g        - Re-run the search
  r        - Toggle recursion and re-run
  t        - Toggle a finder flag and re-run
  s        - Set the size filter and re-run
  a        - Edit extra finder arguments and re-run
  x        - Kill the running finder
  enter    - Quit printing the directory of the selected file
  o / y    - Open / copy the selected file
  q        - Quit

Otherwise the listing is printed line by line.`,
	Args:         cobra.ArbitraryArgs,
	SilenceUsage: true,
	PersistentPreRun: func(_ *cobra.Command, _ []string) {
		if verbose {
			logger.SetVerbose(true)
		}
	},
	RunE: runSearch,
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")
}

// SetServices sets the services used by the commands.
func SetServices(s Services) {
	settingsService = s.Settings
	historyService = s.History
	actionService = s.Actions
	newSession = s.NewSession
	logFile = s.LogFile
}

// SetVersion sets the version reported by the version command.
func SetVersion(v string) {
	version = v
}

// Execute runs the root command with ctx.
func Execute(ctx context.Context) error {
	return rootCmd.ExecuteContext(ctx)
}
