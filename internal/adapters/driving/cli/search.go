package cli

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/custodia-labs/dupes-cli/internal/core/ports/driving"
	"github.com/custodia-labs/dupes-cli/internal/logger"
)

var (
	searchArgs  string
	searchSize  string
	searchFlags []string
	searchPlain bool
)

// isTerminal reports whether stdout is an interactive terminal.
var isTerminal = func() bool {
	return term.IsTerminal(int(os.Stdout.Fd())) //nolint:gosec // file descriptors fit in int
}

func init() {
	rootCmd.Flags().StringVarP(&searchArgs, "args", "a", "", "extra finder arguments, passed verbatim")
	rootCmd.Flags().StringVarP(&searchSize, "size", "s", "", "size filter, passed as --size")
	rootCmd.Flags().StringArrayVarP(&searchFlags, "flag", "f", nil,
		"finder flag to start with, repeatable (replaces search.flags)")
	rootCmd.Flags().BoolVar(&searchPlain, "plain", false, "print the listing line by line")
}

func runSearch(cmd *cobra.Command, args []string) error {
	dirs := args
	if len(dirs) == 0 {
		wd, err := os.Getwd()
		if err != nil {
			return fmt.Errorf("getting working directory: %w", err)
		}
		dirs = []string{wd}
	}

	req := driving.SearchRequest{
		Directories: dirs,
		ExtraArgs:   searchArgs,
		Size:        searchSize,
	}
	// nil flags select the configured defaults
	if cmd.Flags().Changed("flag") {
		req.Flags = append([]string{}, searchFlags...)
	}

	return launch(cmd, req, searchPlain)
}

// launch runs req interactively, or as plain output when plain is set or
// stdout is not a terminal.
func launch(cmd *cobra.Command, req driving.SearchRequest, plain bool) error {
	if newSession == nil {
		return fmt.Errorf("search session %w", errNotConfigured)
	}
	if plain || !isTerminal() {
		return runPlain(cmd, req)
	}
	return runTUI(cmd, req)
}

// runPlain streams the listing to stdout until the finder exits. The exit
// status of the finder is reported in the summary line only.
func runPlain(cmd *cobra.Command, req driving.SearchRequest) error {
	ctx := cmd.Context()
	session := newSession(newWriterSink(cmd.OutOrStdout()))
	if err := session.Begin(ctx, req, nil); err != nil {
		return fmt.Errorf("starting search: %w", err)
	}
	defer closeSession(session)

	if err := session.Wait(ctx); err != nil && !errors.Is(err, context.Canceled) {
		return fmt.Errorf("waiting for search: %w", err)
	}
	return nil
}

func closeSession(session driving.SearchSession) {
	if err := session.Close(context.Background()); err != nil {
		logger.Warn("closing session: %v", err)
	}
}
