package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/dupes-cli/internal/core/domain"
	"github.com/custodia-labs/dupes-cli/internal/core/ports/driving"
)

var (
	rerunToggle string
	rerunSize   string
	rerunPlain  bool
)

var rerunCmd = &cobra.Command{
	Use:   "rerun [run-id]",
	Short: "Run a recorded search again",
	Long: `Runs a search from history with the same directories, arguments, size
filter and flags. --toggle flips one flag and --size replaces the size filter
before the search starts.`,
	Args: cobra.ExactArgs(1),
	RunE: runRerun,
}

func init() {
	rerunCmd.Flags().StringVarP(&rerunToggle, "toggle", "t", "", "flag to toggle before running")
	rerunCmd.Flags().StringVarP(&rerunSize, "size", "s", "", "replacement size filter")
	rerunCmd.Flags().BoolVar(&rerunPlain, "plain", false, "print the listing line by line")
	rootCmd.AddCommand(rerunCmd)
}

func runRerun(cmd *cobra.Command, args []string) error {
	if historyService == nil {
		return fmt.Errorf("history service %w", errNotConfigured)
	}

	record, err := historyService.Get(cmd.Context(), args[0])
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return fmt.Errorf("no recorded run matches %q", args[0])
		}
		return fmt.Errorf("failed to get run: %w", err)
	}

	state := record.Search.Clone()
	if rerunToggle != "" {
		state.Toggle(rerunToggle)
	}
	if cmd.Flags().Changed("size") {
		state.SetSize(rerunSize)
	}

	return launch(cmd, rerunRequest(state), rerunPlain)
}

// rerunRequest turns a recorded state into a request that reproduces it.
// The flags are never nil so the configured defaults do not apply.
func rerunRequest(state *domain.SearchState) driving.SearchRequest {
	flags := append([]string{}, state.ToggleFlags...)
	return driving.SearchRequest{
		Directories: append([]string(nil), state.Directories...),
		ExtraArgs:   state.ExtraArgs,
		Size:        state.SizeFilter,
		Flags:       flags,
	}
}
