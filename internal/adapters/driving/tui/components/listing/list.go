package listing

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/mattn/go-runewidth"

	"github.com/custodia-labs/dupes-cli/internal/adapters/driving/tui/keymap"
	"github.com/custodia-labs/dupes-cli/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/dupes-cli/internal/core/domain"
)

// ellipsis marks a line cut at the terminal width.
const ellipsis = "…"

// List displays listing entries with a movable cursor.
type List struct {
	styles   *styles.Styles
	keymap   *keymap.KeyMap
	command  string
	entries  []domain.Entry
	selected int
	offset   int
	width    int
	height   int
}

// NewList creates a new list component.
func NewList(s *styles.Styles, km *keymap.KeyMap) *List {
	if s == nil {
		s = styles.DefaultStyles()
	}
	if km == nil {
		km = keymap.DefaultKeyMap()
	}

	return &List{
		styles: s,
		keymap: km,
		width:  80,
		height: 20,
	}
}

// Init initialises the list.
func (l *List) Init() tea.Cmd {
	return nil
}

// Update handles cursor movement keys.
func (l *List) Update(msg tea.Msg) (*List, tea.Cmd) {
	km, ok := msg.(tea.KeyMsg)
	if !ok {
		return l, nil
	}

	switch {
	case key.Matches(km, l.keymap.Up):
		l.Move(-1)
	case key.Matches(km, l.keymap.Down):
		l.Move(1)
	case key.Matches(km, l.keymap.PageUp):
		l.Move(-l.visible())
	case key.Matches(km, l.keymap.PageDown):
		l.Move(l.visible())
	case key.Matches(km, l.keymap.Top):
		l.Move(-len(l.entries))
	case key.Matches(km, l.keymap.Bottom):
		l.Move(len(l.entries))
	}
	return l, nil
}

// View renders the command header and the visible entries.
func (l *List) View() string {
	lines := make([]string, 0, l.height)
	lines = append(lines, l.styles.Header.Render(l.truncate(l.command)))

	if len(l.entries) == 0 {
		lines = append(lines, l.styles.Muted.Render("  (no output yet)"))
		return strings.Join(lines, "\n")
	}

	end := l.offset + l.visible()
	if end > len(l.entries) {
		end = len(l.entries)
	}
	for i := l.offset; i < end; i++ {
		lines = append(lines, l.renderEntry(i))
	}
	return strings.Join(lines, "\n")
}

func (l *List) renderEntry(i int) string {
	entry := l.entries[i]
	text := l.truncate(entry.Text)

	if i == l.selected {
		// pad so the highlight spans the whole row
		if pad := l.width - runewidth.StringWidth(text); pad > 0 {
			text += strings.Repeat(" ", pad)
		}
		return l.styles.Selected.Render(text)
	}
	if entry.Kind == domain.EntrySummary {
		return l.styles.Summary.Render(text)
	}
	return l.styles.Normal.Render(text)
}

func (l *List) truncate(s string) string {
	if l.width <= 0 || runewidth.StringWidth(s) <= l.width {
		return s
	}
	return runewidth.Truncate(s, l.width, ellipsis)
}

// visible returns how many entries fit below the header.
func (l *List) visible() int {
	if l.height <= 1 {
		return 1
	}
	return l.height - 1
}

// SetEntries replaces the displayed entries. The cursor keeps its position
// while the listing grows and returns to the top when it is reset.
func (l *List) SetEntries(command string, entries []domain.Entry) {
	if command != l.command || len(entries) < len(l.entries) {
		l.selected = 0
		l.offset = 0
	}
	l.command = command
	l.entries = entries
	l.clamp()
}

// Move shifts the cursor by delta lines.
func (l *List) Move(delta int) {
	l.selected += delta
	l.clamp()
}

func (l *List) clamp() {
	if l.selected >= len(l.entries) {
		l.selected = len(l.entries) - 1
	}
	if l.selected < 0 {
		l.selected = 0
	}
	if l.selected < l.offset {
		l.offset = l.selected
	}
	if l.selected >= l.offset+l.visible() {
		l.offset = l.selected - l.visible() + 1
	}
}

// Selected returns the cursor index.
func (l *List) Selected() int {
	return l.selected
}

// SelectedEntry returns the entry under the cursor, or nil if none.
func (l *List) SelectedEntry() *domain.Entry {
	if l.selected < 0 || l.selected >= len(l.entries) {
		return nil
	}
	return &l.entries[l.selected]
}

// Offset returns the index of the first visible entry.
func (l *List) Offset() int {
	return l.offset
}

// Count returns the number of entries.
func (l *List) Count() int {
	return len(l.entries)
}

// SetDimensions sets the component dimensions, header included.
func (l *List) SetDimensions(width, height int) {
	l.width = width
	l.height = height
	l.clamp()
}
