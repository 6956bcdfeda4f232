// Package ui layout constants for consistent spacing and dimensions
package ui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Layout constants for viewport and panel sizing
const (
	ViewportHorizontalPadding = 4
	ViewportVerticalPadding   = 8

	PanelBorderWidth = 1
	PanelPaddingH    = 1
	ChipGap          = 1

	// Responsive breakpoints
	MinimumTerminalWidth = 40
	CompactModeWidth     = 80
	DefaultWidth         = 80

	// Content widths
	ModalMaxWidth   = 72
	MinContentWidth = 30
)

// LayoutConfig provides computed layout dimensions based on terminal size
type LayoutConfig struct {
	TerminalWidth  int
	TerminalHeight int
	IsCompact      bool
}

// NewLayoutConfig creates a layout configuration for the given terminal size
func NewLayoutConfig(width, height int) LayoutConfig {
	if width <= 0 {
		width = DefaultWidth
	}
	return LayoutConfig{
		TerminalWidth:  width,
		TerminalHeight: height,
		IsCompact:      width < CompactModeWidth,
	}
}

// ContentWidth returns the usable content width for a viewport
func (l LayoutConfig) ContentWidth() int {
	w := l.TerminalWidth - ViewportHorizontalPadding
	if w < MinContentWidth {
		return MinContentWidth
	}
	return w
}

// ContentHeight returns the usable content height for a viewport
func (l LayoutConfig) ContentHeight() int {
	h := l.TerminalHeight - ViewportVerticalPadding
	if h < 1 {
		return 1
	}
	return h
}

// ModalWidth is the text width inside the suggestion modal.
func (l LayoutConfig) ModalWidth() int {
	w := l.ContentWidth() - 6 // border + padding
	if w > ModalMaxWidth {
		w = ModalMaxWidth
	}
	if w < MinContentWidth {
		w = MinContentWidth
	}
	return w
}

// PanelContentWidth returns the content width inside a bordered panel
func PanelContentWidth(panelWidth int) int {
	return panelWidth - (PanelBorderWidth * 2) - (PanelPaddingH * 2)
}

// Flow lays rendered blocks left to right, wrapping to a new row when the
// next block would exceed width. Blocks may be multi-line.
func Flow(blocks []string, width int) string {
	if len(blocks) == 0 {
		return ""
	}
	gap := strings.Repeat(" ", ChipGap)

	var rows []string
	var row []string
	rowWidth := 0
	flush := func() {
		if len(row) > 0 {
			rows = append(rows, lipgloss.JoinHorizontal(lipgloss.Top, row...))
		}
		row, rowWidth = nil, 0
	}
	for _, b := range blocks {
		w := lipgloss.Width(b)
		if len(row) > 0 && rowWidth+ChipGap+w > width {
			flush()
		}
		if len(row) > 0 {
			row = append(row, gap)
			rowWidth += ChipGap
		}
		row = append(row, b)
		rowWidth += w
	}
	flush()
	return lipgloss.JoinVertical(lipgloss.Left, rows...)
}
