package tui

import (
	"fmt"

	"github.com/interpretive-systems/stagium/internal/gitx"
)

// FileList renders the left pane. It owns the ordered mapping from visible
// line to file identity: handlers address files through its cursor index,
// never by arithmetic on raw line numbers. The mapping is rebuilt whenever
// the rendered list changes.
type FileList struct {
	files    []gitx.File
	cursor   int
	offset   int
	selectUI bool // render [x] inclusion marks
}

// NewFileList creates a file list; selectUI enables the inclusion marks of
// the per-file selection workflow.
func NewFileList(selectUI bool) *FileList {
	return &FileList{selectUI: selectUI}
}

// SetFiles replaces the list, clamping the cursor and preserving it by
// position (identity across refreshes is by path and handled by callers
// that care).
func (f *FileList) SetFiles(files []gitx.File) {
	f.files = files
	if f.cursor >= len(files) {
		f.cursor = len(files) - 1
	}
	if f.cursor < 0 {
		f.cursor = 0
	}
}

// Files returns the current list.
func (f *FileList) Files() []gitx.File { return f.files }

// Cursor returns the cursor index.
func (f *FileList) Cursor() int { return f.cursor }

// CursorFile returns the file under the cursor, or nil when empty.
func (f *FileList) CursorFile() *gitx.File {
	if f.cursor < 0 || f.cursor >= len(f.files) {
		return nil
	}
	return &f.files[f.cursor]
}

// Move moves the cursor by delta, clamped. Reports whether it moved.
func (f *FileList) Move(delta int) bool {
	if len(f.files) == 0 {
		return false
	}
	next := f.cursor + delta
	if next < 0 {
		next = 0
	}
	if next >= len(f.files) {
		next = len(f.files) - 1
	}
	moved := next != f.cursor
	f.cursor = next
	return moved
}

// GoToTop moves the cursor to the first file.
func (f *FileList) GoToTop() bool {
	if len(f.files) == 0 || f.cursor == 0 {
		return false
	}
	f.cursor = 0
	return true
}

// GoToBottom moves the cursor to the last file.
func (f *FileList) GoToBottom() bool {
	if len(f.files) == 0 || f.cursor == len(f.files)-1 {
		return false
	}
	f.cursor = len(f.files) - 1
	return true
}

// Lines renders the visible window. previewed is the index shown in the
// diff panel (-1 for none); focused styles the cursor marker.
func (f *FileList) Lines(height int, previewed int, focused bool) []string {
	if len(f.files) == 0 {
		return []string{"No changes detected"}
	}
	f.scrollIntoView(height)

	lines := make([]string, 0, height)
	for i := f.offset; i < len(f.files) && len(lines) < height; i++ {
		file := f.files[i]
		marker := "  "
		if i == f.cursor {
			marker = "> "
			if !focused {
				marker = "- "
			}
		}
		mark := ""
		if f.selectUI {
			mark = "[ ] "
			if file.Selected {
				mark = "[x] "
			}
		}
		pin := " "
		if i == previewed {
			pin = "*"
		}
		lines = append(lines, fmt.Sprintf("%s%s%-3s%s %s", marker, mark, file.Label(), pin, file.Path))
	}
	return lines
}

func (f *FileList) scrollIntoView(height int) {
	if height <= 0 {
		return
	}
	if f.cursor < f.offset {
		f.offset = f.cursor
	}
	if f.cursor >= f.offset+height {
		f.offset = f.cursor - height + 1
	}
	maxStart := len(f.files) - height
	if maxStart < 0 {
		maxStart = 0
	}
	if f.offset > maxStart {
		f.offset = maxStart
	}
	if f.offset < 0 {
		f.offset = 0
	}
}
