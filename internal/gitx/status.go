package gitx

import "strings"

// Code classifies one side (index or working tree) of a status entry.
type Code int

const (
	Unmodified Code = iota
	Modified
	Added
	Deleted
	Renamed
	Copied
	Untracked
)

func codeFrom(b byte) Code {
	switch b {
	case ' ':
		return Unmodified
	case 'M':
		return Modified
	case 'A':
		return Added
	case 'D':
		return Deleted
	case 'R':
		return Renamed
	case 'C':
		return Copied
	case '?':
		return Untracked
	default:
		// Unknown codes degrade to modified.
		return Modified
	}
}

func (c Code) String() string {
	switch c {
	case Unmodified:
		return "unmodified"
	case Modified:
		return "modified"
	case Added:
		return "added"
	case Deleted:
		return "deleted"
	case Renamed:
		return "renamed"
	case Copied:
		return "copied"
	case Untracked:
		return "untracked"
	}
	return "unknown"
}

// Kind is the collapsed change classification used for commit messages.
// Renames and copies count as modifications; untracked files as additions.
type Kind int

const (
	KindModified Kind = iota
	KindAdded
	KindDeleted
)

// File is one tracked or untracked path in the working tree. The full set
// is rebuilt from scratch on every status refresh; identity is by path.
type File struct {
	Path     string
	Index    Code
	Worktree Code
	Selected bool
}

// Staged reports whether the index holds a change for this file.
func (f File) Staged() bool {
	return f.Index != Unmodified && f.Index != Untracked
}

// Kind collapses the two status codes into the change classification.
func (f File) Kind() Kind {
	switch {
	case f.Index == Untracked || f.Index == Added || f.Worktree == Added:
		return KindAdded
	case f.Index == Deleted || f.Worktree == Deleted:
		return KindDeleted
	default:
		return KindModified
	}
}

// Label is the compact status tag shown next to a path in the file list.
func (f File) Label() string {
	if f.Index == Untracked {
		return "U"
	}
	var tags []string
	if f.Staged() {
		tags = append(tags, "S")
	}
	switch {
	case f.Index == Deleted || f.Worktree == Deleted:
		tags = append(tags, "D")
	case f.Index == Renamed:
		tags = append(tags, "R")
	case f.Index == Copied:
		tags = append(tags, "C")
	case f.Index == Added:
		tags = append(tags, "A")
	}
	if f.Worktree == Modified {
		tags = append(tags, "M")
	}
	if len(tags) == 0 {
		return "-"
	}
	return strings.Join(tags, "")
}

// ParseStatus converts `git status --porcelain` output into files, one per
// non-empty line, preserving input order. Lines shorter than the
// two-character status, separator, and at least one path byte are skipped
// as noise. Pure function, no I/O.
func ParseStatus(raw string) []File {
	var files []File
	for _, line := range strings.Split(raw, "\n") {
		if len(line) < 4 {
			continue
		}
		path := line[3:]
		// Rename/copy entries carry "old -> new"; keep the new name.
		if i := strings.Index(path, " -> "); i >= 0 {
			path = path[i+4:]
		}
		files = append(files, File{
			Path:     path,
			Index:    codeFrom(line[0]),
			Worktree: codeFrom(line[1]),
		})
	}
	return files
}
