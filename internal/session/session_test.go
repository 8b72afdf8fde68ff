package session

import (
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/interpretive-systems/stagium/internal/gitx"
)

// repoFake emulates the git commands the session issues against a small
// in-memory index/worktree so state transitions can be asserted without a
// real repository.
type repoFake struct {
	entries []*entry
	calls   []string
	failCmd string
}

type entry struct {
	path        string
	index, work byte
}

func newRepoFake(lines ...string) *repoFake {
	f := &repoFake{}
	for _, l := range lines {
		f.entries = append(f.entries, &entry{path: l[3:], index: l[0], work: l[1]})
	}
	return f
}

func (r *repoFake) Run(args ...string) (string, error) {
	r.calls = append(r.calls, strings.Join(args, " "))
	if r.failCmd != "" && args[0] == r.failCmd {
		return "boom", fmt.Errorf("git %s: boom", args[0])
	}
	switch args[0] {
	case "status":
		var b strings.Builder
		for _, e := range r.entries {
			fmt.Fprintf(&b, "%c%c %s\n", e.index, e.work, e.path)
		}
		return strings.TrimRight(b.String(), "\n"), nil
	case "add":
		r.withEntry(args[len(args)-1], func(e *entry) {
			if e.index == '?' {
				e.index, e.work = 'A', ' '
			} else if e.work != ' ' {
				e.index, e.work = e.work, ' '
			}
		})
	case "restore":
		r.withEntry(args[len(args)-1], func(e *entry) {
			switch e.index {
			case 'A':
				e.index, e.work = '?', '?'
			case ' ':
			default:
				e.index, e.work = ' ', e.index
			}
		})
	case "commit":
		var rest []*entry
		committed := false
		for _, e := range r.entries {
			if e.index != ' ' && e.index != '?' {
				committed = true
				if e.work != ' ' {
					rest = append(rest, &entry{path: e.path, index: ' ', work: e.work})
				}
			} else {
				rest = append(rest, e)
			}
		}
		if !committed {
			return "nothing to commit", errors.New("git commit: nothing to commit")
		}
		r.entries = rest
	case "diff":
		return "", nil
	}
	return "", nil
}

func (r *repoFake) withEntry(path string, fn func(*entry)) {
	for _, e := range r.entries {
		if e.path == path {
			fn(e)
		}
	}
}

func (r *repoFake) countCalls(cmd string) int {
	n := 0
	for _, c := range r.calls {
		if strings.HasPrefix(c, cmd) {
			n++
		}
	}
	return n
}

type recorder struct {
	notices []string
}

func (n *recorder) notify(severity, msg string) {
	n.notices = append(n.notices, severity+": "+msg)
}

func newSession(fake *repoFake, selectMode bool) (*Session, *recorder) {
	rec := &recorder{}
	return New(gitx.NewService(fake), rec.notify, selectMode), rec
}

func TestOpen_NoChanges(t *testing.T) {
	s, _ := newSession(newRepoFake(), false)
	err := s.Open()
	assert.ErrorIs(t, err, ErrNoChanges)
	assert.False(t, s.IsOpen())
}

func TestOpen_GeneratesInitialMessage(t *testing.T) {
	s, _ := newSession(newRepoFake("M  app.py"), false)
	require.NoError(t, s.Open())
	assert.True(t, s.IsOpen())
	assert.Equal(t, "fix: update app.py", s.Message())
	assert.Equal(t, FocusFiles, s.Focus())
	assert.Equal(t, -1, s.FocusedIndex())
}

func TestStageToggle_RoundTrip(t *testing.T) {
	fake := newRepoFake(" M readme.md")
	s, _ := newSession(fake, false)
	require.NoError(t, s.Open())
	require.Empty(t, s.Staged())

	require.NoError(t, s.StageToggle(0))
	require.Len(t, s.Staged(), 1)
	assert.True(t, s.Files()[0].Staged())

	require.NoError(t, s.StageToggle(0))
	assert.Empty(t, s.Staged())
	assert.Equal(t, gitx.Modified, s.Files()[0].Worktree)
	assert.Equal(t, byte(' '), fake.entries[0].index)
	assert.Equal(t, byte('M'), fake.entries[0].work)
}

func TestStageToggle_RefreshesBeforeReturning(t *testing.T) {
	fake := newRepoFake("?? new.txt")
	s, _ := newSession(fake, false)
	require.NoError(t, s.Open())
	statusCalls := fake.countCalls("status")

	require.NoError(t, s.StageToggle(0))
	assert.Equal(t, statusCalls+1, fake.countCalls("status"))
	assert.Equal(t, gitx.Added, s.Files()[0].Index)
}

func TestStageToggle_FailureLeavesStateUnchanged(t *testing.T) {
	fake := newRepoFake(" M readme.md")
	s, rec := newSession(fake, false)
	require.NoError(t, s.Open())
	fake.failCmd = "add"

	err := s.StageToggle(0)
	require.Error(t, err)
	assert.Empty(t, s.Staged())
	require.Len(t, rec.notices, 1)
	assert.Contains(t, rec.notices[0], "error")
}

func TestRegenerate_Idempotent(t *testing.T) {
	s, _ := newSession(newRepoFake("M  a.go", "A  b.go"), false)
	require.NoError(t, s.Open())
	s.Regenerate()
	first := s.Message()
	s.Regenerate()
	assert.Equal(t, first, s.Message())
}

func TestCommit_EmptyMessage(t *testing.T) {
	fake := newRepoFake("M  a.go")
	s, rec := newSession(fake, false)
	require.NoError(t, s.Open())
	s.SetMessage("   ")

	err := s.Commit()
	assert.ErrorIs(t, err, ErrEmptyMessage)
	assert.True(t, s.IsOpen())
	assert.Zero(t, fake.countCalls("commit"))
	assert.Zero(t, fake.countCalls("add"))
	assert.NotEmpty(t, rec.notices)
}

func TestCommit_NoStagedFiles(t *testing.T) {
	fake := newRepoFake(" M a.go", "?? b.txt")
	s, _ := newSession(fake, false)
	require.NoError(t, s.Open())
	s.SetMessage("some message")

	err := s.Commit()
	assert.ErrorIs(t, err, ErrNoStagedFiles)
	assert.True(t, s.IsOpen())
	assert.Zero(t, fake.countCalls("commit"))
}

func TestCommit_SuccessClosesAndReopenReflectsTree(t *testing.T) {
	fake := newRepoFake("M  a.go", " M b.go")
	s, rec := newSession(fake, false)
	require.NoError(t, s.Open())

	require.NoError(t, s.Commit())
	assert.False(t, s.IsOpen())
	assert.Empty(t, s.Files())
	assert.Empty(t, s.Message())
	assert.Contains(t, rec.notices[len(rec.notices)-1], "committed")

	// Reopen: only the un-committed worktree change remains.
	require.NoError(t, s.Open())
	require.Len(t, s.Files(), 1)
	assert.Equal(t, "b.go", s.Files()[0].Path)
}

func TestCommit_FailureStaysOpen(t *testing.T) {
	fake := newRepoFake("M  a.go")
	s, rec := newSession(fake, false)
	require.NoError(t, s.Open())
	fake.failCmd = "commit"

	err := s.Commit()
	require.Error(t, err)
	assert.True(t, s.IsOpen())
	assert.Contains(t, rec.notices[len(rec.notices)-1], "boom")
}

func TestSelectMode_CommitStagesSelection(t *testing.T) {
	fake := newRepoFake("?? new.txt", " M readme.md")
	s, _ := newSession(fake, true)
	require.NoError(t, s.Open())
	// Files default to included in select mode.
	require.Len(t, s.CommitSet(), 2)

	require.NoError(t, s.Commit())
	assert.False(t, s.IsOpen())
	assert.Equal(t, 2, fake.countCalls("add"))
	assert.Equal(t, 1, fake.countCalls("commit"))
	assert.Empty(t, fake.entries)
}

func TestSelectMode_ToggleSelectAndValidation(t *testing.T) {
	fake := newRepoFake("?? new.txt", " M readme.md")
	s, _ := newSession(fake, true)
	require.NoError(t, s.Open())

	s.ToggleSelect(0)
	s.ToggleSelect(1)
	require.Empty(t, s.CommitSet())
	s.SetMessage("x")

	err := s.Commit()
	assert.ErrorIs(t, err, ErrNoFilesSelected)
	assert.Zero(t, fake.countCalls("commit"))

	// Selection marks survive a refresh by path.
	require.NoError(t, s.Refresh())
	assert.Empty(t, s.CommitSet())
}

func TestMixedScenario_UntrackedPlusModified(t *testing.T) {
	fake := newRepoFake("?? new.txt", " M readme.md")
	s, _ := newSession(fake, false)
	require.NoError(t, s.Open())

	files := s.Files()
	require.Len(t, files, 2)
	assert.False(t, files[0].Staged())
	assert.False(t, files[1].Staged())

	require.NoError(t, s.StageToggle(0))
	require.NoError(t, s.StageToggle(1))
	require.Len(t, s.Staged(), 2)

	s.Regenerate()
	assert.Equal(t, "chore: add 1 files, update 1 files", s.Message())
}

func TestPreviewAndFocus(t *testing.T) {
	s, _ := newSession(newRepoFake(" M a.go", " M b.go"), false)
	require.NoError(t, s.Open())

	s.PreviewFile(1)
	assert.Equal(t, 1, s.FocusedIndex())
	s.PreviewFile(99)
	assert.Equal(t, -1, s.FocusedIndex())

	s.FocusNext()
	assert.Equal(t, FocusMessage, s.Focus())
	s.FocusNext()
	assert.Equal(t, FocusDiff, s.Focus())
	s.FocusNext()
	assert.Equal(t, FocusFiles, s.Focus())
	s.FocusPrev()
	assert.Equal(t, FocusDiff, s.Focus())
}

func TestQuit_DiscardsState(t *testing.T) {
	s, _ := newSession(newRepoFake(" M a.go"), false)
	require.NoError(t, s.Open())
	s.SetMessage("draft")
	s.Quit()
	assert.False(t, s.IsOpen())
	assert.Empty(t, s.Files())
	assert.Empty(t, s.Message())
}
