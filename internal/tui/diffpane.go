package tui

import (
	"strings"

	"github.com/charmbracelet/bubbles/viewport"
	"github.com/muesli/reflow/wordwrap"

	"github.com/interpretive-systems/stagium/internal/diffview"
)

// DiffPane manages the right pane: a scrollable viewport holding either a
// single file's diff (side-by-side or inline) or plain preformatted text
// such as the staged manifest.
type DiffPane struct {
	vp         viewport.Model
	rows       []diffview.Row
	text       string
	isDiff     bool
	sideBySide bool
	wrap       bool
	theme      Theme
}

// NewDiffPane creates a diff pane.
func NewDiffPane(theme Theme, sideBySide, wrap bool) *DiffPane {
	return &DiffPane{theme: theme, sideBySide: sideBySide, wrap: wrap}
}

// SetSize updates the viewport dimensions and re-renders.
func (d *DiffPane) SetSize(width, height int) {
	d.vp.Width = width
	d.vp.Height = height
	d.render()
}

// SetDiff loads a unified diff and scrolls to the top.
func (d *DiffPane) SetDiff(unified string) {
	d.rows = diffview.BuildRows(unified)
	d.text = unified
	d.isDiff = len(d.rows) > 0
	d.vp.GotoTop()
	d.render()
}

// SetText loads preformatted text (manifest, placeholder) and scrolls to
// the top. Diff-looking lines still get +/- colors.
func (d *DiffPane) SetText(text string) {
	d.rows = nil
	d.text = text
	d.isDiff = false
	d.vp.GotoTop()
	d.render()
}

// SideBySide reports the current render mode.
func (d *DiffPane) SideBySide() bool { return d.sideBySide }

// ToggleSideBySide flips between side-by-side and inline rendering.
func (d *DiffPane) ToggleSideBySide() bool {
	d.sideBySide = !d.sideBySide
	d.render()
	return d.sideBySide
}

// Wrap reports whether long lines wrap.
func (d *DiffPane) Wrap() bool { return d.wrap }

// ToggleWrap flips line wrapping.
func (d *DiffPane) ToggleWrap() bool {
	d.wrap = !d.wrap
	d.render()
	return d.wrap
}

// Scrolling, forwarded to the viewport.
func (d *DiffPane) PageDown()     { d.vp.PageDown() }
func (d *DiffPane) PageUp()       { d.vp.PageUp() }
func (d *DiffPane) HalfPageDown() { d.vp.HalfPageDown() }
func (d *DiffPane) HalfPageUp()   { d.vp.HalfPageUp() }
func (d *DiffPane) LineDown()     { d.vp.LineDown(1) }
func (d *DiffPane) LineUp()       { d.vp.LineUp(1) }

// View renders the viewport.
func (d *DiffPane) View() string { return d.vp.View() }

func (d *DiffPane) render() {
	if d.vp.Width <= 0 {
		return
	}
	var lines []string
	if d.isDiff && d.sideBySide {
		lines = d.sideBySideLines()
	} else if d.isDiff {
		lines = d.inlineLines()
	} else {
		lines = d.textLines()
	}
	d.vp.SetContent(strings.Join(lines, "\n"))
}

func (d *DiffPane) sideBySideLines() []string {
	width := d.vp.Width
	colW := (width - 1) / 2
	if colW < 10 {
		colW = 10
	}
	mid := d.theme.DividerText("│")
	lines := make([]string, 0, len(d.rows))
	for _, r := range d.rows {
		switch r.Kind {
		case diffview.RowHunk:
			lines = append(lines, d.theme.DividerText(strings.Repeat("·", width)))
		case diffview.RowMeta:
			// skip
		default:
			lines = append(lines, d.sideCell(r, false, colW)+mid+d.sideCell(r, true, colW))
		}
	}
	return lines
}

// sideCell renders one half of a side-by-side row: a colored marker column
// plus the padded cell body.
func (d *DiffPane) sideCell(r diffview.Row, right bool, width int) string {
	marker := " "
	var content string
	if right {
		content = r.Right
		switch r.Kind {
		case diffview.RowAdd, diffview.RowReplace:
			marker = d.theme.AddText("+")
			content = d.theme.AddText(content)
		case diffview.RowDel:
			content = ""
		}
	} else {
		content = r.Left
		switch r.Kind {
		case diffview.RowDel, diffview.RowReplace:
			marker = d.theme.DelText("-")
			content = d.theme.DelText(content)
		case diffview.RowAdd:
			content = ""
		}
	}
	if width <= 2 {
		return padToWidth(marker+" ", width)
	}
	return marker + " " + padToWidth(content, width-2)
}

func (d *DiffPane) inlineLines() []string {
	lines := make([]string, 0, len(d.rows))
	emit := func(s string) {
		if d.wrap {
			lines = append(lines, strings.Split(wordwrap.String(s, d.vp.Width), "\n")...)
		} else {
			lines = append(lines, s)
		}
	}
	for _, r := range d.rows {
		switch r.Kind {
		case diffview.RowHunk:
			lines = append(lines, d.theme.DividerText(strings.Repeat("·", d.vp.Width)))
		case diffview.RowMeta:
			// skip
		case diffview.RowContext:
			emit("  " + r.Left)
		case diffview.RowAdd:
			emit(d.theme.AddText("+ " + r.Right))
		case diffview.RowDel:
			emit(d.theme.DelText("- " + r.Left))
		case diffview.RowReplace:
			emit(d.theme.DelText("- " + r.Left))
			emit(d.theme.AddText("+ " + r.Right))
		}
	}
	return lines
}

func (d *DiffPane) textLines() []string {
	raw := strings.Split(d.text, "\n")
	lines := make([]string, 0, len(raw))
	for _, l := range raw {
		switch {
		case strings.HasPrefix(l, "+"):
			l = d.theme.AddText(l)
		case strings.HasPrefix(l, "-"):
			l = d.theme.DelText(l)
		case strings.HasPrefix(l, "@@"):
			l = d.theme.MetaText(l)
		case strings.HasPrefix(l, "─"):
			l = d.theme.DividerText(l)
		}
		if d.wrap {
			lines = append(lines, strings.Split(wordwrap.String(l, d.vp.Width), "\n")...)
		} else {
			lines = append(lines, l)
		}
	}
	return lines
}
