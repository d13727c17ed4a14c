package cli

import (
	"fmt"
	"io"
	"sync"

	"github.com/custodia-labs/dupes-cli/internal/core/domain"
	"github.com/custodia-labs/dupes-cli/internal/core/ports/driven"
	"github.com/custodia-labs/dupes-cli/internal/logger"
)

// writerSink prints each entry as one line.
type writerSink struct {
	mu sync.Mutex
	w  io.Writer
}

var _ driven.ListingSink = (*writerSink)(nil)

func newWriterSink(w io.Writer) *writerSink {
	return &writerSink{w: w}
}

func (s *writerSink) Reset(command string) {
	logger.Debug("listing: %s", command)
}

func (s *writerSink) Append(entry domain.Entry) {
	s.mu.Lock()
	defer s.mu.Unlock()
	fmt.Fprintln(s.w, entry.Text)
}

func (s *writerSink) SetStatus(status string) {
	logger.Debug("status %s", status)
}

func (s *writerSink) MarkStale(path string) {
	logger.Debug("changed: %s", path)
}
