package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
)

// Layout manages screen geometry: top bar, rule, two content columns,
// rule, message strip, rule, bottom bar, with optional overlay rows above
// the bottom rules.
type Layout struct {
	width     int
	height    int
	leftWidth int
}

const minPaneWidth = 20

// SetSize updates the layout dimensions.
func (l *Layout) SetSize(width, height int) {
	l.width = width
	l.height = height
	if l.leftWidth == 0 {
		l.leftWidth = width / 3
		if l.leftWidth < 24 {
			l.leftWidth = 24
		}
	}
}

// SetLeftWidth sets the file list column width.
func (l *Layout) SetLeftWidth(w int) {
	if w > 0 {
		l.leftWidth = w
	}
}

// Width returns the total width.
func (l *Layout) Width() int { return l.width }

// Height returns the total height.
func (l *Layout) Height() int { return l.height }

// LeftWidth returns the clamped file list column width.
func (l *Layout) LeftWidth() int {
	if l.leftWidth < minPaneWidth {
		return minPaneWidth
	}
	return l.leftWidth
}

// RightWidth returns the diff column width.
func (l *Layout) RightWidth() int {
	w := l.width - l.LeftWidth() - 1 // vertical divider column
	if w < 1 {
		w = 1
	}
	return w
}

// ContentHeight returns the rows available for the two columns.
func (l *Layout) ContentHeight(overlayHeight int) int {
	// top bar + rule + rule + message strip + rule + bottom bar
	h := l.height - 6 - overlayHeight
	if h < 1 {
		h = 1
	}
	return h
}

// AdjustLeftWidth widens or narrows the file list column.
func (l *Layout) AdjustLeftWidth(delta int) {
	w := l.LeftWidth() + delta
	if w < minPaneWidth {
		w = minPaneWidth
	}
	maxLeft := l.width - minPaneWidth
	if maxLeft < minPaneWidth {
		maxLeft = minPaneWidth
	}
	if w > maxLeft {
		w = maxLeft
	}
	l.leftWidth = w
}

// Frame assembles the full screen from its parts.
func (l *Layout) Frame(theme Theme, topBar string, leftLines, rightLines, overlay []string, messageStrip, bottomBar string) string {
	var b strings.Builder
	hr := theme.DividerText(strings.Repeat("─", l.width))
	sep := theme.DividerText("│")
	leftW, rightW := l.LeftWidth(), l.RightWidth()
	rows := l.ContentHeight(len(overlay))

	b.WriteString(padToWidth(topBar, l.width))
	b.WriteByte('\n')
	b.WriteString(hr)
	b.WriteByte('\n')
	for i := 0; i < rows; i++ {
		var left, right string
		if i < len(leftLines) {
			left = leftLines[i]
		}
		if i < len(rightLines) {
			right = rightLines[i]
		}
		b.WriteString(padToWidth(left, leftW))
		b.WriteString(sep)
		b.WriteString(padToWidth(right, rightW))
		b.WriteByte('\n')
	}
	for _, line := range overlay {
		b.WriteString(padToWidth(line, l.width))
		b.WriteByte('\n')
	}
	b.WriteString(hr)
	b.WriteByte('\n')
	b.WriteString(padToWidth(messageStrip, l.width))
	b.WriteByte('\n')
	b.WriteString(hr)
	b.WriteByte('\n')
	b.WriteString(padToWidth(bottomBar, l.width))
	return b.String()
}

func padToWidth(s string, w int) string {
	width := lipgloss.Width(s)
	if width == w {
		return s
	}
	if width < w {
		return s + strings.Repeat(" ", w-width)
	}
	return ansi.Truncate(s, w, "…")
}
