package domain

import (
	"fmt"
	"time"
)

const unknownDescription = "Unknown"

// Finder programs.
const (
	ProgramFdupes = "fdupes"
	ProgramJdupes = "jdupes"
)

// Default settings values.
const (
	DefaultListingSwitches  = "-ld"
	DefaultExecTerminator   = `\;`
	DefaultGracePeriod      = time.Second
	DefaultHistoryLimit     = 20
	DefaultHistoryKeep      = 200
	DefaultRefreshPerSecond = 10
)

// defaultClauseFormat pipes each path printed by the finder through ls,
// echoing the blank lines that separate duplicate groups.
const defaultClauseFormat = `| while IFS= read -r f; do if [ -n "$f" ]; then ls %s -- "$f"; else echo; fi; done`

// ListingSettings configures the listing clause.
type ListingSettings struct {
	// Clause is the shell text appended after the directories.
	Clause string

	// Switches are the ls switches used by the default clause.
	Switches string

	// ExecTerminator replaces the terminator of exec-style clauses.
	ExecTerminator string
}

// Format returns the listing format used by the command builder and formatter.
func (l ListingSettings) Format() ListingFormat {
	return ListingFormat{
		Clause:         l.Clause,
		Switches:       l.Switches,
		ExecTerminator: l.ExecTerminator,
	}
}

// SearchDefaults holds the parameters of a fresh search.
type SearchDefaults struct {
	// Flags are the toggle flags a new search starts with.
	Flags []string

	// Size is the initial size filter.
	Size string
}

// SessionSettings configures process lifecycle handling.
type SessionSettings struct {
	// GracePeriod is how long an interrupted process may take to exit
	// before it is killed.
	GracePeriod time.Duration
}

// HistorySettings configures run history.
type HistorySettings struct {
	Enabled bool

	// Limit is the number of runs listed by default.
	Limit int

	// Keep is the number of runs retained; older runs are pruned.
	Keep int
}

// UISettings configures the terminal interface.
type UISettings struct {
	// RefreshPerSecond caps listing redraws while output streams in.
	RefreshPerSecond int
}

// AppSettings is the effective application configuration.
type AppSettings struct {
	// Program is the finder program, looked up on PATH.
	Program string

	Listing ListingSettings
	Search  SearchDefaults
	Session SessionSettings
	History HistorySettings
	UI      UISettings

	// Verbose enables debug logging.
	Verbose bool
}

// DefaultProgram returns the finder program shipped on the given platform.
func DefaultProgram(goos string) string {
	switch goos {
	case "darwin", "windows":
		return ProgramJdupes
	default:
		return ProgramFdupes
	}
}

// DefaultListingClause returns the pipeline that lists every path with the
// given ls switches. Windows has no POSIX shell, so the listing is the
// finder's raw output there.
func DefaultListingClause(goos, switches string) string {
	if goos == "windows" {
		return ""
	}
	return fmt.Sprintf(defaultClauseFormat, switches)
}

// DefaultAppSettings returns the default settings for the given platform.
func DefaultAppSettings(goos string) AppSettings {
	switches := DefaultListingSwitches
	if goos == "windows" {
		switches = ""
	}
	return AppSettings{
		Program: DefaultProgram(goos),
		Listing: ListingSettings{
			Clause:         DefaultListingClause(goos, switches),
			Switches:       switches,
			ExecTerminator: DefaultExecTerminator,
		},
		Search: SearchDefaults{
			Flags: []string{"-r"},
		},
		Session: SessionSettings{
			GracePeriod: DefaultGracePeriod,
		},
		History: HistorySettings{
			Enabled: true,
			Limit:   DefaultHistoryLimit,
			Keep:    DefaultHistoryKeep,
		},
		UI: UISettings{
			RefreshPerSecond: DefaultRefreshPerSecond,
		},
	}
}
