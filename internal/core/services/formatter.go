package services

import (
	"bytes"
	"fmt"
	"regexp"
	"strings"

	"github.com/custodia-labs/dupes-cli/internal/core/domain"
	"github.com/custodia-labs/dupes-cli/internal/core/ports/driven"
)

// Column widths of re-padded detailed listing fields.
const (
	linkCountWidth = 4
	sizeWidth      = 9
)

var (
	// listingErrorPattern matches ls complaints about paths that vanished
	// between the finder printing them and ls listing them.
	listingErrorPattern = regexp.MustCompile(`^\s*ls: cannot access`)

	// detailedLinePattern captures the link count and size fields of an
	// ls -l style line: perms LINKS owner group SIZE.
	detailedLinePattern = regexp.MustCompile(`^(\s+\S+)(\s+\S+)(\s+\S+\s+\S+)(\s+\S+)`)
)

// StreamFormatter turns the raw byte stream of a finder pipeline into
// formatted listing entries. Only complete lines are processed, so the
// emitted entries do not depend on how the stream is chunked.
//
// A StreamFormatter is owned by a single goroutine.
type StreamFormatter struct {
	sink     driven.ListingSink
	detailed bool

	pending       []byte
	processedUpTo int64
	files         int
}

// NewStreamFormatter creates a formatter writing to sink. When detailed is
// set, link count and size columns are re-padded.
func NewStreamFormatter(sink driven.ListingSink, detailed bool) *StreamFormatter {
	return &StreamFormatter{sink: sink, detailed: detailed}
}

// Feed buffers chunk and emits every line it completes. Trailing content
// without a newline stays buffered until more input or Flush.
func (f *StreamFormatter) Feed(chunk []byte) {
	if len(chunk) == 0 {
		return
	}
	f.pending = append(f.pending, chunk...)

	last := bytes.LastIndexByte(f.pending, '\n')
	if last < 0 {
		return
	}
	complete := f.pending[:last+1]
	for len(complete) > 0 {
		i := bytes.IndexByte(complete, '\n')
		f.processLine(string(complete[:i]))
		complete = complete[i+1:]
	}
	n := copy(f.pending, f.pending[last+1:])
	f.pending = f.pending[:n]
}

// Flush emits the buffered tail as a final line. Listing errors are not
// stripped from the tail. It reports whether a line was emitted.
func (f *StreamFormatter) Flush() bool {
	if len(f.pending) == 0 {
		return false
	}
	line := string(f.pending)
	f.pending = f.pending[:0]
	f.emit(f.format(line), kindOf(line))
	return true
}

// Emit appends a pre-formatted line, such as the completion summary.
func (f *StreamFormatter) Emit(text string, kind domain.EntryKind) domain.Entry {
	return f.emit(text, kind)
}

// ProcessedUpTo returns the offset just past the last emitted line.
func (f *StreamFormatter) ProcessedUpTo() int64 {
	return f.processedUpTo
}

// Pending returns a copy of the unprocessed tail.
func (f *StreamFormatter) Pending() []byte {
	return append([]byte(nil), f.pending...)
}

// Files returns the number of file entries emitted so far.
func (f *StreamFormatter) Files() int {
	return f.files
}

// Detailed reports whether columns are re-padded.
func (f *StreamFormatter) Detailed() bool {
	return f.detailed
}

func (f *StreamFormatter) processLine(line string) {
	if listingErrorPattern.MatchString(line) {
		return
	}
	f.emit(f.format(line), kindOf(line))
}

// format applies indentation, the " ./" rewrite and column padding.
// Blank lines separate duplicate groups and pass through unchanged.
func (f *StreamFormatter) format(line string) string {
	if line == "" {
		return line
	}
	line = "  " + line
	line = strings.ReplaceAll(line, " ./", " ")
	if f.detailed {
		line = padColumns(line)
	}
	return line
}

func (f *StreamFormatter) emit(text string, kind domain.EntryKind) domain.Entry {
	start := f.processedUpTo
	end := start + int64(len(text))
	entry := domain.Entry{
		Text:  text,
		Range: domain.Range{Start: start, End: end},
		Kind:  kind,
	}
	f.processedUpTo = end + 1
	if kind == domain.EntryFile {
		f.files++
	}
	f.sink.Append(entry)
	return entry
}

func kindOf(line string) domain.EntryKind {
	if line == "" {
		return domain.EntrySeparator
	}
	return domain.EntryFile
}

// padColumns right-justifies the link count and size fields of a detailed
// line. Lines that do not look like ls -l output are returned unchanged.
func padColumns(line string) string {
	m := detailedLinePattern.FindStringSubmatchIndex(line)
	if m == nil {
		return line
	}
	var b strings.Builder
	b.Grow(len(line) + linkCountWidth + sizeWidth + 2)
	b.WriteString(line[m[2]:m[3]])
	b.WriteString(padField(line[m[4]:m[5]], linkCountWidth))
	b.WriteString(line[m[6]:m[7]])
	b.WriteString(padField(line[m[8]:m[9]], sizeWidth))
	b.WriteString(line[m[1]:])
	return b.String()
}

// padField collapses the leading whitespace of field to one separating space
// and right-justifies the value to width.
func padField(field string, width int) string {
	return " " + fmt.Sprintf("%*s", width, strings.TrimLeft(field, " \t"))
}
