package domain

import (
	"path/filepath"
	"strings"
)

// detailedNameField is the number of whitespace separated fields that
// precede the file name in an ls -l style line.
const detailedNameField = 8

// Range marks the bytes an entry occupies in the formatted output stream.
// End is exclusive and excludes the line terminator.
type Range struct {
	Start int64 `json:"start"`
	End   int64 `json:"end"`
}

// Len returns the number of bytes covered.
func (r Range) Len() int64 {
	return r.End - r.Start
}

// EntryKind classifies a formatted line.
type EntryKind int

// Entry kinds.
const (
	// EntryFile is a listing line for one duplicate file.
	EntryFile EntryKind = iota

	// EntrySeparator is the blank line between duplicate groups.
	EntrySeparator

	// EntrySummary is the completion line appended when the finder exits.
	EntrySummary
)

// Entry is one formatted line of the listing.
type Entry struct {
	Text  string    `json:"text"`
	Range Range     `json:"range"`
	Kind  EntryKind `json:"kind"`
}

// ListingFormat describes the secondary listing clause the finder output is
// piped through.
type ListingFormat struct {
	// Clause is the shell text appended after the directories, such as a
	// pipe into ls or an exec-style clause ending in {} \; or {} +.
	Clause string

	// Switches are the listing switches used by the clause, such as -ld.
	Switches string

	// ExecTerminator replaces the terminator of an exec-style clause.
	ExecTerminator string
}

// HasLinkCountAndSizeColumns reports whether listing lines carry link count
// and size columns that should be re-padded.
func (f ListingFormat) HasLinkCountAndSizeColumns() bool {
	return strings.Contains(f.Switches, "l")
}

// EntryLocation is the file a listing line refers to.
type EntryLocation struct {
	Path  string
	IsDir bool
}

// Directory returns the directory to navigate to for this entry: the entry
// itself when it is a directory, its parent otherwise.
func (l EntryLocation) Directory() string {
	if l.IsDir {
		return l.Path
	}
	return filepath.Dir(l.Path)
}

// ParseEntryPath extracts the file a listing line refers to. Detailed lines
// skip the permission, link, owner, group, size and date fields and drop a
// symlink target. Plain lines are the path itself.
func ParseEntryPath(text string, detailed bool) (EntryLocation, bool) {
	line := strings.TrimLeft(text, " \t")
	if line == "" {
		return EntryLocation{}, false
	}
	if !detailed {
		return EntryLocation{Path: line}, true
	}

	perms, rest := nextField(line)
	if !isPermissionField(perms) {
		return EntryLocation{}, false
	}
	for i := 1; i < detailedNameField; i++ {
		var field string
		field, rest = nextField(rest)
		if field == "" {
			return EntryLocation{}, false
		}
	}
	name := strings.TrimLeft(rest, " \t")
	if name == "" {
		return EntryLocation{}, false
	}
	if perms[0] == 'l' {
		if i := strings.Index(name, " -> "); i >= 0 {
			name = name[:i]
		}
	}
	return EntryLocation{Path: name, IsDir: perms[0] == 'd'}, true
}

func nextField(s string) (field, rest string) {
	s = strings.TrimLeft(s, " \t")
	end := strings.IndexAny(s, " \t")
	if end < 0 {
		return s, ""
	}
	return s[:end], s[end:]
}

func isPermissionField(s string) bool {
	if len(s) < 10 {
		return false
	}
	return strings.ContainsRune("-dlcbps", rune(s[0]))
}
