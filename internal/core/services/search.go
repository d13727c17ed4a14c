package services

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/custodia-labs/dupes-cli/internal/core/domain"
)

// NewSearchState validates directories and builds the state of a fresh
// search. Every directory is made absolute and given a trailing separator.
func NewSearchState(dirs []string, extraArgs, size string, flags []string) (*domain.SearchState, error) {
	if len(dirs) == 0 {
		return nil, domain.ErrEmptyDirectories
	}

	resolved := make([]string, 0, len(dirs))
	for _, dir := range dirs {
		abs, err := resolveDirectory(dir)
		if err != nil {
			return nil, err
		}
		resolved = append(resolved, abs)
	}

	state := &domain.SearchState{
		Directories: resolved,
		ExtraArgs:   extraArgs,
		SizeFilter:  size,
	}
	for _, f := range flags {
		if f = strings.TrimSpace(f); f != "" && !state.HasFlag(f) {
			state.ToggleFlags = append(state.ToggleFlags, f)
		}
	}
	return state, nil
}

func resolveDirectory(dir string) (string, error) {
	if strings.TrimSpace(dir) == "" {
		return "", fmt.Errorf("%w: empty directory", domain.ErrInvalidInput)
	}
	abs, err := filepath.Abs(dir)
	if err != nil {
		return "", &domain.NotADirectoryError{Path: dir, Cause: err}
	}
	info, err := os.Stat(abs)
	if err != nil {
		return "", &domain.NotADirectoryError{Path: abs, Cause: err}
	}
	if !info.IsDir() {
		return "", &domain.NotADirectoryError{Path: abs}
	}
	if !strings.HasSuffix(abs, string(filepath.Separator)) {
		abs += string(filepath.Separator)
	}
	return abs, nil
}
