package gitx

import (
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"testing"
)

func TestService_StatusStageUnstageCommit(t *testing.T) {
	dir := t.TempDir()

	mustRun(t, dir, "git", "init", "-q")
	mustRun(t, dir, "git", "config", "user.email", "test@example.com")
	mustRun(t, dir, "git", "config", "user.name", "Test User")

	write(t, filepath.Join(dir, "f1.txt"), "one\nline\n")
	write(t, filepath.Join(dir, "del.txt"), "to delete\n")
	mustRun(t, dir, "git", "add", ".")
	mustRun(t, dir, "git", "commit", "-q", "-m", "init")

	// modify f1 (unstaged), create new (untracked), delete del.txt (unstaged)
	write(t, filepath.Join(dir, "f1.txt"), "one\nline changed\n")
	write(t, filepath.Join(dir, "new.txt"), "brand new\n")
	if err := os.Remove(filepath.Join(dir, "del.txt")); err != nil {
		t.Fatal(err)
	}

	svc := NewService(ExecRunner{Dir: dir})
	files, err := svc.Status()
	if err != nil {
		t.Fatalf("Status error: %v", err)
	}
	m := map[string]File{}
	for _, f := range files {
		m[f.Path] = f
	}
	if f := m["f1.txt"]; f.Staged() || f.Worktree != Modified {
		t.Fatalf("expected f1.txt unstaged modified, got %+v", f)
	}
	if f := m["new.txt"]; f.Index != Untracked {
		t.Fatalf("expected new.txt untracked, got %+v", f)
	}
	if f := m["del.txt"]; f.Staged() || f.Worktree != Deleted {
		t.Fatalf("expected del.txt unstaged deleted, got %+v", f)
	}

	// Diff for the modified file should show the change.
	d, err := svc.Diff("f1.txt", false)
	if err != nil {
		t.Fatalf("Diff error: %v", err)
	}
	if !strings.Contains(d, "-line") || !strings.Contains(d, "+line changed") {
		t.Fatalf("unexpected diff: %s", d)
	}

	// Untracked files diff against /dev/null.
	ud, err := svc.DiffUntracked("new.txt")
	if err != nil {
		t.Fatalf("DiffUntracked error: %v", err)
	}
	if !strings.Contains(ud, "+brand new") {
		t.Fatalf("unexpected untracked diff: %s", ud)
	}

	// Stage then unstage: the index returns to its pre-toggle state.
	if err := svc.Stage("f1.txt"); err != nil {
		t.Fatalf("Stage error: %v", err)
	}
	files, _ = svc.Status()
	if !statusOf(files, "f1.txt").Staged() {
		t.Fatalf("expected f1.txt staged after Stage")
	}
	if err := svc.Unstage("f1.txt"); err != nil {
		t.Fatalf("Unstage error: %v", err)
	}
	files, _ = svc.Status()
	if f := statusOf(files, "f1.txt"); f.Staged() || f.Worktree != Modified {
		t.Fatalf("expected f1.txt back to unstaged modified, got %+v", f)
	}

	// Stage everything and commit; the tree should come back clean.
	for _, p := range []string{"f1.txt", "new.txt", "del.txt"} {
		if err := svc.Stage(p); err != nil {
			t.Fatalf("Stage %s error: %v", p, err)
		}
	}
	if err := svc.Commit("test commit"); err != nil {
		t.Fatalf("Commit error: %v", err)
	}
	files, err = svc.Status()
	if err != nil {
		t.Fatalf("Status after commit error: %v", err)
	}
	if len(files) != 0 {
		t.Fatalf("expected no changes after commit, got %v", files)
	}

	if sum, err := svc.LastCommitSummary(); err != nil || !strings.Contains(sum, "test commit") {
		t.Fatalf("unexpected last commit summary %q (err %v)", sum, err)
	}
}

func TestRepoRoot_NotARepository(t *testing.T) {
	dir := t.TempDir()
	if _, err := RepoRoot(dir); err == nil {
		t.Fatal("expected error outside a repository")
	}
}

func TestCommit_EmptyMessageRejectedLocally(t *testing.T) {
	svc := NewService(ExecRunner{Dir: t.TempDir()})
	if err := svc.Commit("   "); err == nil {
		t.Fatal("expected error for empty message")
	}
}

func statusOf(files []File, path string) File {
	for _, f := range files {
		if f.Path == path {
			return f
		}
	}
	return File{}
}

func mustRun(t *testing.T, dir string, name string, args ...string) {
	t.Helper()
	cmd := exec.Command(name, args...)
	cmd.Dir = dir
	if out, err := cmd.CombinedOutput(); err != nil {
		t.Fatalf("command %s %v failed: %v\n%s", name, args, err, out)
	}
}

func write(t *testing.T, path, content string) {
	t.Helper()
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
}
