package mcp

import (
	"strings"
	"sync"

	"github.com/custodia-labs/dupes-cli/internal/core/domain"
	"github.com/custodia-labs/dupes-cli/internal/core/ports/driven"
)

// collector keeps the listing of one headless search.
type collector struct {
	mu      sync.Mutex
	command string
	status  string
	entries []domain.Entry
}

var _ driven.ListingSink = (*collector)(nil)

func (c *collector) Reset(command string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.command = command
	c.status = ""
	c.entries = nil
}

func (c *collector) Append(entry domain.Entry) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries = append(c.entries, entry)
}

func (c *collector) SetStatus(status string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.status = status
}

func (c *collector) MarkStale(string) {}

// output groups the collected file lines. Blank separator lines end a group.
func (c *collector) output(detailed bool) FindOutput {
	c.mu.Lock()
	defer c.mu.Unlock()

	out := FindOutput{
		Command: c.command,
		Status:  c.status,
		Groups:  [][]string{},
	}
	var group []string
	closeGroup := func() {
		if len(group) > 0 {
			out.Groups = append(out.Groups, group)
			group = nil
		}
	}

	for _, entry := range c.entries {
		switch entry.Kind {
		case domain.EntryFile:
			path := strings.TrimSpace(entry.Text)
			if loc, ok := domain.ParseEntryPath(entry.Text, detailed); ok {
				path = loc.Path
			}
			group = append(group, path)
			out.Files++
		case domain.EntrySeparator:
			closeGroup()
		case domain.EntrySummary:
			out.Summary = strings.TrimSpace(entry.Text)
		}
	}
	closeGroup()
	return out
}
