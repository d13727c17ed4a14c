package services

import (
	"fmt"
	"os"
	"os/exec"
	"runtime"

	"github.com/atotto/clipboard"

	"github.com/custodia-labs/dupes-cli/internal/core/domain"
	"github.com/custodia-labs/dupes-cli/internal/core/ports/driving"
)

// Operating system identifiers.
const (
	osDarwin  = "darwin"
	osLinux   = "linux"
	osWindows = "windows"
)

// Ensure EntryActionService implements the interface.
var _ driving.EntryActionService = (*EntryActionService)(nil)

// EntryActionService provides actions on listing entries.
type EntryActionService struct {
	goos           string
	writeClipboard func(string) error
	start          func(*exec.Cmd) error
}

// NewEntryActionService creates a new entry action service.
func NewEntryActionService() *EntryActionService {
	return &EntryActionService{
		goos:           runtime.GOOS,
		writeClipboard: clipboard.WriteAll,
		start:          (*exec.Cmd).Start,
	}
}

// Locate resolves the file a listing line refers to. For plain listings the
// filesystem decides whether the path is a directory.
func (s *EntryActionService) Locate(text string, detailed bool) (domain.EntryLocation, error) {
	loc, ok := domain.ParseEntryPath(text, detailed)
	if !ok {
		return domain.EntryLocation{}, fmt.Errorf("%w: not a file entry", domain.ErrInvalidInput)
	}
	if !detailed {
		if info, err := os.Stat(loc.Path); err == nil {
			loc.IsDir = info.IsDir()
		}
	}
	return loc, nil
}

// CopyPath copies the entry's path to the system clipboard.
func (s *EntryActionService) CopyPath(location domain.EntryLocation) error {
	if location.Path == "" {
		return fmt.Errorf("%w: empty path", domain.ErrInvalidInput)
	}
	if err := s.writeClipboard(location.Path); err != nil {
		return fmt.Errorf("copying to clipboard: %w", err)
	}
	return nil
}

// Open opens the entry in the default application.
func (s *EntryActionService) Open(location domain.EntryLocation) error {
	if location.Path == "" {
		return fmt.Errorf("%w: empty path", domain.ErrInvalidInput)
	}

	var cmd *exec.Cmd
	switch s.goos {
	case osDarwin:
		cmd = exec.Command("open", location.Path)
	case osLinux:
		cmd = exec.Command("xdg-open", location.Path)
	case osWindows:
		cmd = exec.Command("rundll32", "url.dll,FileProtocolHandler", location.Path)
	default:
		return fmt.Errorf("unsupported platform: %s", s.goos)
	}
	return s.start(cmd)
}
