package services

import (
	"regexp"
	"strings"

	"github.com/custodia-labs/dupes-cli/internal/core/domain"
)

// execClausePattern matches exec-style listing clauses such as
// "-exec ls -ld {} \;" or "-exec ls -ld {} +".
var execClausePattern = regexp.MustCompile(`^(.*) \{\} (\\;|\+)$`)

// FullCommand renders the shell command for one run: the quoted program,
// the extra arguments, the built flags, the quoted directories and the
// listing clause, joined by single spaces.
func FullCommand(program string, state *domain.SearchState, listing domain.ListingFormat) string {
	return ShellQuote(program) + " " +
		state.ExtraArgs + " " +
		state.Build() + " " +
		joinQuoted(state.Directories) + " " +
		PipeClause(listing)
}

// PipeClause returns the listing clause appended to the command. Exec-style
// clauses get a quoted {} placeholder and the configured terminator.
func PipeClause(listing domain.ListingFormat) string {
	m := execClausePattern.FindStringSubmatch(listing.Clause)
	if m == nil {
		return listing.Clause
	}
	terminator := listing.ExecTerminator
	if terminator == "" {
		terminator = m[2]
	}
	return m[1] + " " + ShellQuote("{}") + " " + terminator
}

// ShellQuote quotes s for a POSIX shell. Words made only of characters the
// shell never interprets are returned unchanged.
func ShellQuote(s string) string {
	if s == "" {
		return "''"
	}
	if isShellSafe(s) {
		return s
	}
	return "'" + strings.ReplaceAll(s, "'", `'\''`) + "'"
}

func joinQuoted(words []string) string {
	quoted := make([]string, len(words))
	for i, w := range words {
		quoted[i] = ShellQuote(w)
	}
	return strings.Join(quoted, " ")
}

func isShellSafe(s string) bool {
	for _, r := range s {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
		case strings.ContainsRune("@%+=:,./_-", r):
		default:
			return false
		}
	}
	return true
}
