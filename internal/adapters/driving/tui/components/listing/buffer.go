// Package listing provides the listing buffer and its list view.
package listing

import (
	"sync"

	"github.com/custodia-labs/dupes-cli/internal/core/domain"
	"github.com/custodia-labs/dupes-cli/internal/core/ports/driven"
)

// Ensure Buffer implements the interface.
var _ driven.ListingSink = (*Buffer)(nil)

// Buffer is a thread-safe listing sink. The finder pump writes to it while
// the TUI reads snapshots.
type Buffer struct {
	mu       sync.RWMutex
	command  string
	entries  []domain.Entry
	files    int
	status   string
	stale    string
	onChange func()
}

// Snapshot is a consistent view of the buffer.
type Snapshot struct {
	Command string
	Entries []domain.Entry
	Files   int
	Status  string
	Stale   string
}

// NewBuffer creates an empty listing buffer.
func NewBuffer() *Buffer {
	return &Buffer{}
}

// OnChange registers fn to be called after every change. fn runs on the
// writer's goroutine and must not block.
func (b *Buffer) OnChange(fn func()) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.onChange = fn
}

// Reset clears the listing before a new run of command.
func (b *Buffer) Reset(command string) {
	b.update(func() {
		b.command = command
		b.entries = nil
		b.files = 0
		b.status = ""
		b.stale = ""
	})
}

// Append adds one formatted entry.
func (b *Buffer) Append(entry domain.Entry) {
	b.update(func() {
		b.entries = append(b.entries, entry)
		if entry.Kind == domain.EntryFile {
			b.files++
		}
	})
}

// SetStatus updates the process status indicator.
func (b *Buffer) SetStatus(status string) {
	b.update(func() { b.status = status })
}

// MarkStale flags the listing as outdated.
func (b *Buffer) MarkStale(path string) {
	b.update(func() { b.stale = path })
}

// Snapshot returns the current content. Entries are only ever appended or
// replaced wholesale, so the returned slice stays valid.
func (b *Buffer) Snapshot() Snapshot {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return Snapshot{
		Command: b.command,
		Entries: b.entries[:len(b.entries):len(b.entries)],
		Files:   b.files,
		Status:  b.status,
		Stale:   b.stale,
	}
}

// Len returns the number of entries.
func (b *Buffer) Len() int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return len(b.entries)
}

func (b *Buffer) update(fn func()) {
	b.mu.Lock()
	fn()
	notify := b.onChange
	b.mu.Unlock()
	if notify != nil {
		notify()
	}
}
