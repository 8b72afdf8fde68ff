// Package diffview fetches and formats diff text for the preview panel.
package diffview

import (
	"fmt"
	"strings"

	"github.com/interpretive-systems/stagium/internal/gitx"
)

// Renderer produces the text shown in the diff panel: a single file's
// diff with status-aware placeholders, or the full staged manifest.
type Renderer struct {
	git *gitx.Service
}

// NewRenderer wraps a git service.
func NewRenderer(git *gitx.Service) *Renderer {
	return &Renderer{git: git}
}

// FileDiff returns the diff text for one file. With stagedOnly the staged
// comparison is requested first, falling back to the working tree diff when
// the index holds nothing but the working tree does; without it the
// preference is reversed. Empty results become placeholders.
func (r *Renderer) FileDiff(f gitx.File, stagedOnly bool) (string, error) {
	var out string
	var err error
	switch {
	case f.Index == gitx.Untracked:
		out, err = r.git.DiffUntracked(f.Path)
	case stagedOnly:
		out, err = r.git.Diff(f.Path, true)
		if err == nil && strings.TrimSpace(out) == "" && f.Worktree != gitx.Unmodified {
			out, err = r.git.Diff(f.Path, false)
		}
	default:
		out, err = r.git.Diff(f.Path, false)
		if err == nil && strings.TrimSpace(out) == "" && f.Staged() {
			out, err = r.git.Diff(f.Path, true)
		}
	}
	if err != nil {
		return "", err
	}
	if strings.TrimSpace(out) == "" {
		return placeholder(f), nil
	}
	return out, nil
}

func placeholder(f gitx.File) string {
	switch {
	case f.Index == gitx.Deleted || f.Worktree == gitx.Deleted:
		return "(file deleted; no diff)"
	case f.Kind() == gitx.KindAdded:
		return "(new file; content not shown)"
	default:
		return "(no diff available; binary or unchanged)"
	}
}

// StagedManifest concatenates a header listing the staged files with one
// diff section per file. Default diff-panel content when no single file
// is focused.
func (r *Renderer) StagedManifest(files []gitx.File) (string, error) {
	var staged []gitx.File
	for _, f := range files {
		if f.Staged() {
			staged = append(staged, f)
		}
	}
	if len(staged) == 0 {
		return "(no staged files; stage a file with 's' to build a commit)", nil
	}

	var b strings.Builder
	fmt.Fprintf(&b, "%d staged file(s):\n", len(staged))
	for _, f := range staged {
		fmt.Fprintf(&b, "  %s %s\n", f.Label(), f.Path)
	}
	for i, f := range staged {
		b.WriteString("\n")
		b.WriteString(strings.Repeat("─", 40))
		b.WriteString("\n")
		fmt.Fprintf(&b, "[%d/%d] %s (%s)\n\n", i+1, len(staged), f.Path, f.Label())
		d, err := r.FileDiff(f, true)
		if err != nil {
			return "", err
		}
		b.WriteString(d)
		b.WriteString("\n")
	}
	return strings.TrimRight(b.String(), "\n"), nil
}
