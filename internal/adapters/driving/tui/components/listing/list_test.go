package listing

import (
	"fmt"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/dupes-cli/internal/core/domain"
)

func entries(n int) []domain.Entry {
	result := make([]domain.Entry, n)
	for i := range result {
		result[i] = fileEntry(fmt.Sprintf("  /tmp/file%02d", i))
	}
	return result
}

func TestNewList(t *testing.T) {
	l := NewList(nil, nil)

	require.NotNil(t, l)
	assert.NotNil(t, l.styles)
	assert.NotNil(t, l.keymap)
	assert.Nil(t, l.Init())
	assert.Nil(t, l.SelectedEntry())
	assert.Zero(t, l.Count())
}

func TestList_ViewEmpty(t *testing.T) {
	l := NewList(nil, nil)
	l.SetEntries("fdupes -r /tmp/", nil)

	view := l.View()
	assert.Contains(t, view, "fdupes -r /tmp/")
	assert.Contains(t, view, "no output yet")
}

func TestList_Navigation(t *testing.T) {
	l := NewList(nil, nil)
	l.SetEntries("cmd", entries(5))

	l.Update(tea.KeyMsg{Type: tea.KeyDown})
	l.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'j'}})
	assert.Equal(t, 2, l.Selected())
	assert.Equal(t, "  /tmp/file02", l.SelectedEntry().Text)

	l.Update(tea.KeyMsg{Type: tea.KeyUp})
	assert.Equal(t, 1, l.Selected())

	l.Update(tea.KeyMsg{Type: tea.KeyEnd})
	assert.Equal(t, 4, l.Selected())

	l.Update(tea.KeyMsg{Type: tea.KeyDown})
	assert.Equal(t, 4, l.Selected(), "cursor stops at the last entry")

	l.Update(tea.KeyMsg{Type: tea.KeyHome})
	assert.Equal(t, 0, l.Selected())

	l.Update(tea.KeyMsg{Type: tea.KeyUp})
	assert.Equal(t, 0, l.Selected(), "cursor stops at the first entry")
}

func TestList_ScrollsToKeepCursorVisible(t *testing.T) {
	l := NewList(nil, nil)
	l.SetDimensions(80, 4) // header + 3 entries
	l.SetEntries("cmd", entries(10))

	l.Move(5)
	assert.Equal(t, 5, l.Selected())
	assert.Equal(t, 3, l.Offset())

	view := l.View()
	assert.Contains(t, view, "file05")
	assert.Contains(t, view, "file03")
	assert.NotContains(t, view, "file02")
	assert.NotContains(t, view, "file06")

	l.Update(tea.KeyMsg{Type: tea.KeyPgUp})
	assert.Equal(t, 2, l.Selected())
	assert.Equal(t, 2, l.Offset())
}

func TestList_SetEntriesKeepsCursorWhileGrowing(t *testing.T) {
	l := NewList(nil, nil)
	l.SetEntries("cmd", entries(3))
	l.Move(2)

	l.SetEntries("cmd", entries(6))
	assert.Equal(t, 2, l.Selected())

	l.SetEntries("other cmd", entries(6))
	assert.Equal(t, 0, l.Selected(), "new run resets the cursor")

	l.Move(4)
	l.SetEntries("other cmd", entries(1))
	assert.Equal(t, 0, l.Selected(), "reset listing resets the cursor")
}

func TestList_TruncatesToWidth(t *testing.T) {
	l := NewList(nil, nil)
	l.SetDimensions(12, 5)
	long := "  " + strings.Repeat("x", 40)
	l.SetEntries("cmd", []domain.Entry{fileEntry("  short"), fileEntry(long)})

	view := l.View()
	assert.NotContains(t, view, long)
	assert.Contains(t, view, ellipsis)
}

func TestList_TruncatesWideRunes(t *testing.T) {
	l := NewList(nil, nil)
	l.SetDimensions(10, 5)

	assert.Equal(t, "  日本語…", l.truncate("  日本語テキスト"))
}

func TestList_IgnoresNonKeyMessages(t *testing.T) {
	l := NewList(nil, nil)
	l.SetEntries("cmd", entries(3))

	updated, cmd := l.Update(tea.WindowSizeMsg{Width: 10, Height: 10})

	assert.Equal(t, l, updated)
	assert.Nil(t, cmd)
	assert.Equal(t, 0, l.Selected())
}
