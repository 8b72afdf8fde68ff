package diffview

import (
	"bufio"
	"strings"
)

// RowKind is the semantic type of a rendered diff row.
type RowKind int

const (
	RowContext RowKind = iota
	RowAdd
	RowDel
	RowReplace
	RowHunk
	RowMeta
)

// Row is a single visual row for side-by-side or inline rendering.
type Row struct {
	Left  string
	Right string
	Kind  RowKind
	Meta  string // hunk header or metadata line text
}

// BuildRows parses a unified diff into rows. Within each hunk, deletions
// are paired with subsequent additions as replacements; leftovers stay
// left-only (deletions) or right-only (additions).
func BuildRows(unified string) []Row {
	s := bufio.NewScanner(strings.NewReader(unified))
	s.Buffer(make([]byte, 0, 64*1024), 10*1024*1024) // allow large lines

	rows := make([]Row, 0, 256)
	pending := make([]string, 0)

	flush := func() {
		for _, dl := range pending {
			rows = append(rows, Row{Left: stripMarker(dl), Kind: RowDel})
		}
		pending = pending[:0]
	}

	inHunk := false
	for s.Scan() {
		line := s.Text()
		if isMetaLine(line) {
			flush()
			rows = append(rows, Row{Kind: RowMeta, Meta: line})
			continue
		}
		if strings.HasPrefix(line, "@@ ") {
			flush()
			rows = append(rows, Row{Kind: RowHunk, Meta: line})
			inHunk = true
			continue
		}
		if !inHunk {
			// No line-level meaning outside hunks.
			continue
		}
		if line == "" {
			// Blank line inside a hunk counts as context.
			flush()
			rows = append(rows, Row{Kind: RowContext})
			continue
		}
		switch line[0] {
		case ' ':
			flush()
			t := stripMarker(line)
			rows = append(rows, Row{Left: t, Right: t, Kind: RowContext})
		case '-':
			pending = append(pending, line)
		case '+':
			if len(pending) > 0 {
				dl := pending[0]
				pending = pending[1:]
				rows = append(rows, Row{Left: stripMarker(dl), Right: stripMarker(line), Kind: RowReplace})
			} else {
				rows = append(rows, Row{Right: stripMarker(line), Kind: RowAdd})
			}
		}
	}
	flush()
	return rows
}

func isMetaLine(line string) bool {
	return strings.HasPrefix(line, "diff --git ") ||
		strings.HasPrefix(line, "index ") ||
		strings.HasPrefix(line, "new file mode ") ||
		strings.HasPrefix(line, "deleted file mode ") ||
		strings.HasPrefix(line, "--- ") ||
		strings.HasPrefix(line, "+++ ")
}

func stripMarker(s string) string {
	if s == "" {
		return s
	}
	if s[0] == ' ' || s[0] == '+' || s[0] == '-' {
		return s[1:]
	}
	return s
}
