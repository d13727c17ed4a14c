package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Show effective settings",
	Long: `Shows every setting with its effective value. Unset keys show their
platform default. Use 'dupes config set' to change one.`,
	Args: cobra.NoArgs,
	RunE: runConfigShow,
}

var configSetCmd = &cobra.Command{
	Use:   "set [key] [value]",
	Short: "Change a setting",
	Long: `Persists one setting to the configuration file.

Lists such as search.flags are given space separated, e.g.
  dupes config set search.flags "-r -S"`,
	Args: cobra.ExactArgs(2),
	RunE: runConfigSet,
}

func init() {
	configCmd.AddCommand(configSetCmd)
	rootCmd.AddCommand(configCmd)
}

func runConfigShow(cmd *cobra.Command, _ []string) error {
	if settingsService == nil {
		return fmt.Errorf("settings service %w", errNotConfigured)
	}

	keys := settingsService.Keys()
	width := 0
	for _, key := range keys {
		width = max(width, len(key))
	}

	for _, key := range keys {
		value, err := settingsService.Value(key)
		if err != nil {
			return fmt.Errorf("failed to get %s: %w", key, err)
		}
		if value == "" {
			value = "(not set)"
		}
		cmd.Printf("%-*s  %s\n", width, key, value)
	}
	return nil
}

func runConfigSet(cmd *cobra.Command, args []string) error {
	if settingsService == nil {
		return fmt.Errorf("settings service %w", errNotConfigured)
	}

	key, value := args[0], args[1]
	if err := settingsService.Set(key, value); err != nil {
		return fmt.Errorf("failed to set %s: %w", key, err)
	}
	cmd.Printf("%s set to %q\n", key, value)
	return nil
}
