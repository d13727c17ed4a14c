package cli

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/dupes-cli/internal/core/domain"
)

const (
	shortIDLength  = 8
	historyTimeFmt = "2006-01-02 15:04:05"
)

var (
	historyLimit int
	historyJSON  bool
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "List recorded runs",
	Long: `Lists the most recent finished searches, newest first.
Use the run ID (or a unique prefix of it) with 'dupes rerun'.`,
	Args: cobra.NoArgs,
	RunE: runHistory,
}

func init() {
	historyCmd.Flags().IntVarP(&historyLimit, "limit", "n", 0, "maximum number of runs (default history.limit)")
	historyCmd.Flags().BoolVar(&historyJSON, "json", false, "output runs as JSON")
	rootCmd.AddCommand(historyCmd)
}

func runHistory(cmd *cobra.Command, _ []string) error {
	if historyService == nil {
		return fmt.Errorf("history service %w", errNotConfigured)
	}

	runs, err := historyService.Recent(cmd.Context(), historyLimit)
	if err != nil {
		return fmt.Errorf("failed to list runs: %w", err)
	}

	if historyJSON {
		return outputHistoryJSON(cmd, runs)
	}
	return outputHistoryTable(cmd, runs)
}

func outputHistoryJSON(cmd *cobra.Command, runs []domain.RunRecord) error {
	if runs == nil {
		runs = []domain.RunRecord{}
	}
	data, err := json.MarshalIndent(runs, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal runs: %w", err)
	}
	fmt.Fprintln(cmd.OutOrStdout(), string(data))
	return nil
}

func outputHistoryTable(cmd *cobra.Command, runs []domain.RunRecord) error {
	if len(runs) == 0 {
		cmd.Println("No runs recorded.")
		return nil
	}

	cmd.Println("Recent runs:")
	cmd.Println()
	for i := range runs {
		run := &runs[i]
		cmd.Printf("  [%s] %s  %s, %d %s\n",
			shortID(run.ID), run.FinishedAt.Local().Format(historyTimeFmt),
			run.StatusText(), run.Entries, plural(run.Entries, "file", "files"))
		cmd.Printf("      %s\n", run.Command)
	}
	return nil
}

func shortID(id string) string {
	if len(id) > shortIDLength {
		return id[:shortIDLength]
	}
	return id
}

func plural(n int, one, many string) string {
	if n == 1 {
		return one
	}
	return many
}
