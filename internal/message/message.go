// Package message derives a conventional-commit style subject line from a
// set of changed files. The result is a heuristic, not a guarantee of
// semantic accuracy, but it is deterministic for a given file set.
package message

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/interpretive-systems/stagium/internal/gitx"
)

var docExts = map[string]bool{
	".md":  true,
	".txt": true,
	".rst": true,
}

var codeExts = map[string]bool{
	".c":    true,
	".cpp":  true,
	".go":   true,
	".h":    true,
	".java": true,
	".js":   true,
	".lua":  true,
	".py":   true,
	".rb":   true,
	".rs":   true,
	".sh":   true,
	".ts":   true,
}

// Generate produces a one-line commit message for the files intended for
// commit. First matching rule wins: all additions, all deletions, all
// modifications, then a mixed-kind summary listing the non-zero counts.
func Generate(files []gitx.File) string {
	if len(files) == 0 {
		return "chore: update files"
	}

	var added, modified, deleted []gitx.File
	for _, f := range files {
		switch f.Kind() {
		case gitx.KindAdded:
			added = append(added, f)
		case gitx.KindDeleted:
			deleted = append(deleted, f)
		default:
			modified = append(modified, f)
		}
	}

	switch {
	case len(added) == len(files):
		if len(added) == 1 {
			return "feat: add " + filepath.Base(added[0].Path)
		}
		return fmt.Sprintf("feat: add %d new files", len(added))
	case len(deleted) == len(files):
		if len(deleted) == 1 {
			return "remove: delete " + filepath.Base(deleted[0].Path)
		}
		return fmt.Sprintf("remove: delete %d files", len(deleted))
	case len(modified) == len(files):
		if len(modified) == 1 {
			return updateMessage(modified[0].Path)
		}
		return fmt.Sprintf("chore: update %d files", len(modified))
	}

	// Mixed kinds: summarize the non-zero counts.
	var parts []string
	if len(added) > 0 {
		parts = append(parts, fmt.Sprintf("add %d files", len(added)))
	}
	if len(modified) > 0 {
		parts = append(parts, fmt.Sprintf("update %d files", len(modified)))
	}
	if len(deleted) > 0 {
		parts = append(parts, fmt.Sprintf("remove %d files", len(deleted)))
	}
	return "chore: " + strings.Join(parts, ", ")
}

func updateMessage(path string) string {
	base := filepath.Base(path)
	ext := strings.ToLower(filepath.Ext(base))
	switch {
	case docExts[ext]:
		return "docs: update " + base
	case codeExts[ext]:
		return "fix: update " + base
	default:
		return "chore: update " + base
	}
}
