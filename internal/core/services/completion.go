package services

import (
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/custodia-labs/dupes-cli/internal/core/domain"
	"github.com/custodia-labs/dupes-cli/internal/core/ports/driven"
)

// summaryTimeLayout renders completion times such as "Wed Oct 14 12:00:00".
const summaryTimeLayout = "Mon Jan _2 15:04:05"

// CompletionHandler finishes the listing of a run once its process exits.
type CompletionHandler struct {
	now func() time.Time
}

// NewCompletionHandler creates a completion handler stamping summaries
// with now. A nil now uses time.Now.
func NewCompletionHandler(now func() time.Time) *CompletionHandler {
	if now == nil {
		now = time.Now
	}
	return &CompletionHandler{now: now}
}

// OnExit flushes the formatter's tail, appends the summary line and updates
// the status indicator of sink.
func (h *CompletionHandler) OnExit(f *StreamFormatter, sink driven.ListingSink, status domain.ExitStatus, program string) domain.Entry {
	f.Flush()
	entry := f.Emit(SummaryLine(program, status, h.now()), domain.EntrySummary)
	sink.SetStatus(status.Indicator())
	return entry
}

// SummaryLine renders the line appended when a run completes.
func SummaryLine(program string, status domain.ExitStatus, at time.Time) string {
	return fmt.Sprintf("  %s %s at %s", ProgramName(program), status.Description(), at.Format(summaryTimeLayout))
}

// ProgramName returns the short name of a program path.
func ProgramName(program string) string {
	name := filepath.Base(program)
	return strings.TrimSuffix(name, ".exe")
}
