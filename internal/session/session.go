// Package session implements the staging workflow state machine that sits
// behind the TUI: the file list, the commit message, panel focus, and the
// stage/unstage/commit actions. It has no rendering dependencies so it can
// be driven by tests with a canned git runner.
package session

import (
	"errors"
	"strings"

	"github.com/interpretive-systems/stagium/internal/diffview"
	"github.com/interpretive-systems/stagium/internal/gitx"
	"github.com/interpretive-systems/stagium/internal/message"
)

// Validation and lifecycle errors surfaced to the user as notifications.
var (
	ErrNoChanges       = errors.New("no changes to commit")
	ErrEmptyMessage    = errors.New("commit message is empty")
	ErrNoStagedFiles   = errors.New("no staged files")
	ErrNoFilesSelected = errors.New("no files selected")
)

// Focus identifies which panel currently has input focus.
type Focus int

const (
	FocusFiles Focus = iota
	FocusMessage
	FocusDiff
)

// Notification severities.
const (
	SeverityInfo  = "info"
	SeverityWarn  = "warning"
	SeverityError = "error"
)

// NotifyFn receives transient user notifications.
type NotifyFn func(severity, msg string)

// Session is one open instance of the staging workflow. All methods run to
// completion before the next user input is dispatched; every mutating
// action refreshes the file list before returning, so derived state is
// never older than the last successful mutation.
type Session struct {
	git        *gitx.Service
	diff       *diffview.Renderer
	notify     NotifyFn
	selectMode bool

	open    bool
	files   []gitx.File
	message string
	focus   Focus
	focused int // index shown in the diff panel, -1 = staged manifest
}

// New creates a closed session. selectMode enables explicit per-file
// selection for the commit set; otherwise the commit operates on whatever
// is already staged.
func New(git *gitx.Service, notify NotifyFn, selectMode bool) *Session {
	if notify == nil {
		notify = func(string, string) {}
	}
	return &Session{
		git:        git,
		diff:       diffview.NewRenderer(git),
		notify:     notify,
		selectMode: selectMode,
		focused:    -1,
	}
}

// Open refreshes the file list and computes the initial commit message.
// Returns ErrNoChanges (and stays closed) when the tree is clean.
func (s *Session) Open() error {
	s.files = nil
	if err := s.refresh(); err != nil {
		return err
	}
	if len(s.files) == 0 {
		return ErrNoChanges
	}
	s.open = true
	s.focus = FocusFiles
	s.focused = -1
	s.Regenerate()
	return nil
}

// refresh rebuilds the file set from scratch. Selection marks survive by
// path; files first seen in select mode default to included.
func (s *Session) refresh() error {
	files, err := s.git.Status()
	if err != nil {
		return err
	}
	if s.selectMode {
		known := make(map[string]bool, len(s.files))
		for _, f := range s.files {
			known[f.Path] = f.Selected
		}
		for i := range files {
			if sel, ok := known[files[i].Path]; ok {
				files[i].Selected = sel
			} else {
				files[i].Selected = true
			}
		}
	}
	s.files = files
	if s.focused >= len(files) {
		s.focused = -1
	}
	return nil
}

// Refresh re-derives the file list from the repository.
func (s *Session) Refresh() error {
	if err := s.refresh(); err != nil {
		s.notify(SeverityError, err.Error())
		return err
	}
	return nil
}

// IsOpen reports whether the session holds live panel state.
func (s *Session) IsOpen() bool { return s.open }

// SelectMode reports whether explicit per-file selection is enabled.
func (s *Session) SelectMode() bool { return s.selectMode }

// Files returns the current snapshot in status order.
func (s *Session) Files() []gitx.File { return s.files }

// Staged returns the staged subset, always recomputed from the most
// recent refresh.
func (s *Session) Staged() []gitx.File {
	var out []gitx.File
	for _, f := range s.files {
		if f.Staged() {
			out = append(out, f)
		}
	}
	return out
}

// CommitSet is the set of files the next commit will cover: the selected
// subset in select mode, the staged subset otherwise.
func (s *Session) CommitSet() []gitx.File {
	if !s.selectMode {
		return s.Staged()
	}
	var out []gitx.File
	for _, f := range s.files {
		if f.Selected {
			out = append(out, f)
		}
	}
	return out
}

// Message returns the current commit message text.
func (s *Session) Message() string { return s.message }

// SetMessage adopts edited text from the message panel.
func (s *Session) SetMessage(m string) { s.message = m }

// Regenerate recomputes the commit message from the current commit set.
func (s *Session) Regenerate() {
	s.message = message.Generate(s.CommitSet())
}

// Focus returns the focused panel.
func (s *Session) Focus() Focus { return s.focus }

// FocusNext cycles focus files -> message -> diff.
func (s *Session) FocusNext() {
	s.focus = (s.focus + 1) % 3
}

// FocusPrev cycles focus in the other direction.
func (s *Session) FocusPrev() {
	s.focus = (s.focus + 2) % 3
}

// FocusedIndex is the file index shown in the diff panel, -1 when the
// staged manifest is shown instead.
func (s *Session) FocusedIndex() int { return s.focused }

// PreviewFile sets which file the diff panel shows. Out-of-range indices
// (including -1) fall back to the staged manifest.
func (s *Session) PreviewFile(i int) {
	if i < 0 || i >= len(s.files) {
		s.focused = -1
		return
	}
	s.focused = i
}

// DiffText returns the diff panel content for the current preview state.
func (s *Session) DiffText() (string, error) {
	if s.focused < 0 || s.focused >= len(s.files) {
		return s.diff.StagedManifest(s.files)
	}
	return s.diff.FileDiff(s.files[s.focused], false)
}

// ToggleSelect flips the inclusion mark for the file at index.
func (s *Session) ToggleSelect(i int) {
	if !s.selectMode || i < 0 || i >= len(s.files) {
		return
	}
	s.files[i].Selected = !s.files[i].Selected
}

// StageToggle stages the file at index if unstaged, unstages it otherwise,
// then refreshes the whole snapshot. On failure the state is unchanged and
// the error is reported through the notifier.
func (s *Session) StageToggle(i int) error {
	if i < 0 || i >= len(s.files) {
		return nil
	}
	f := s.files[i]
	var err error
	if f.Staged() {
		err = s.git.Unstage(f.Path)
	} else {
		err = s.git.Stage(f.Path)
	}
	if err != nil {
		s.notify(SeverityError, err.Error())
		return err
	}
	return s.Refresh()
}

// Commit validates the message and the commit set, stages any
// selected-but-unstaged files in select mode, and creates the commit.
// On success the session closes; on failure it stays open.
func (s *Session) Commit() error {
	if strings.TrimSpace(s.message) == "" {
		s.notify(SeverityError, ErrEmptyMessage.Error())
		return ErrEmptyMessage
	}
	if s.selectMode {
		set := s.CommitSet()
		if len(set) == 0 {
			s.notify(SeverityError, ErrNoFilesSelected.Error())
			return ErrNoFilesSelected
		}
		for _, f := range set {
			if f.Staged() {
				continue
			}
			if err := s.git.Stage(f.Path); err != nil {
				s.notify(SeverityError, err.Error())
				return err
			}
		}
		if err := s.Refresh(); err != nil {
			return err
		}
	}
	if len(s.Staged()) == 0 {
		s.notify(SeverityError, ErrNoStagedFiles.Error())
		return ErrNoStagedFiles
	}
	msg := s.message
	if err := s.git.Commit(msg); err != nil {
		s.notify(SeverityError, err.Error())
		return err
	}
	s.notify(SeverityInfo, "committed: "+strings.SplitN(msg, "\n", 2)[0])
	s.close()
	return nil
}

// Quit discards all session state unconditionally.
func (s *Session) Quit() {
	s.close()
}

// close releases derived state all at once; reopening starts from scratch.
func (s *Session) close() {
	s.open = false
	s.files = nil
	s.message = ""
	s.focus = FocusFiles
	s.focused = -1
}
