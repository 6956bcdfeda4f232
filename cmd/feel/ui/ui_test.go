package ui

import (
	"strings"
	"testing"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
	"github.com/stretchr/testify/assert"
)

func stubBackground(t *testing.T, dark bool) {
	t.Helper()
	old := hasDarkBackground
	hasDarkBackground = func() bool { return dark }
	t.Cleanup(func() { hasDarkBackground = old })
}

func TestDetectTheme(t *testing.T) {
	stubBackground(t, false)

	t.Setenv("WHATFEELING_DARK_MODE", "1")
	if !DetectTheme().IsDark {
		t.Fatalf("expected dark theme when WHATFEELING_DARK_MODE=1")
	}

	t.Setenv("WHATFEELING_DARK_MODE", "")
	if DetectTheme().IsDark {
		t.Fatalf("expected light theme on a light terminal")
	}
}

func TestDetectTheme_AsksTerminal(t *testing.T) {
	t.Setenv("WHATFEELING_DARK_MODE", "")
	stubBackground(t, true)
	assert.True(t, DetectTheme().IsDark)

	t.Setenv("WHATFEELING_DARK_MODE", "false")
	assert.False(t, DetectTheme().IsDark, "explicit setting beats the terminal")
}

func TestThemeFor(t *testing.T) {
	stubBackground(t, true)
	t.Setenv("WHATFEELING_DARK_MODE", "")
	assert.False(t, ThemeFor("light").IsDark)
	assert.True(t, ThemeFor("dark").IsDark)
	assert.True(t, ThemeFor("auto").IsDark)
}

func TestChip(t *testing.T) {
	s := NewStyles(LightTheme())

	plain := ansi.Strip(s.Chip("Joy", "#fef08a", ChipState{}))
	assert.Contains(t, plain, "Joy")
	assert.NotContains(t, plain, "✓")

	selected := ansi.Strip(s.Chip("Joy", "#fef08a", ChipState{Selected: true}))
	assert.Contains(t, selected, "✓ Joy")
	assert.Contains(t, selected, "╭")

	// Every state keeps the same height so rows don't jump.
	assert.Equal(t, lipgloss.Height(plain), lipgloss.Height(selected))
}

func TestShade(t *testing.T) {
	assert.Equal(t, "#ffffff", Shade("#ffffff", 0))
	assert.Equal(t, "#000000", Shade("#ffffff", 1))
	assert.Equal(t, "nope", Shade("nope", 0.5))

	darker := Shade("#fef08a", 0.35)
	assert.NotEqual(t, "#fef08a", darker)
	assert.True(t, strings.HasPrefix(darker, "#"))
}

func TestFlow(t *testing.T) {
	blocks := []string{"aaaa", "bbbb", "cccc"}

	assert.Equal(t, "aaaa bbbb cccc", Flow(blocks, 80))

	wrapped := strings.Split(Flow(blocks, 9), "\n")
	assert.Len(t, wrapped, 2)
	assert.Equal(t, "aaaa bbbb", strings.TrimRight(wrapped[0], " "))
	assert.Equal(t, "cccc", strings.TrimRight(wrapped[1], " "))

	assert.Equal(t, "", Flow(nil, 10))
}

func TestLayoutConfig(t *testing.T) {
	l := NewLayoutConfig(0, 0)
	assert.Equal(t, DefaultWidth, l.TerminalWidth)
	assert.Equal(t, DefaultWidth-ViewportHorizontalPadding, l.ContentWidth())
	assert.False(t, l.IsCompact)

	narrow := NewLayoutConfig(20, 10)
	assert.True(t, narrow.IsCompact)
	assert.Equal(t, MinContentWidth, narrow.ContentWidth())
	assert.Equal(t, MinContentWidth, narrow.ModalWidth())

	wide := NewLayoutConfig(200, 50)
	assert.Equal(t, ModalMaxWidth, wide.ModalWidth())
}

func TestSimpleTable(t *testing.T) {
	table := NewSimpleTable("Journal", []string{"When", "Feelings"})
	table.AddRow("2026-05-01", "Peaceful")

	view := ansi.Strip(table.View(NewStyles(LightTheme())))

	if !strings.Contains(view, "Journal") {
		t.Error("View missing title")
	}
	if !strings.Contains(view, "Peaceful") {
		t.Error("View missing cell content")
	}
	assert.Equal(t, "", NewSimpleTable("Empty", []string{"A"}).View(NewStyles(DarkTheme())))
}
