package gitx

import (
	"fmt"
	"os/exec"
	"strings"
)

// Runner executes one git invocation and returns its combined output.
// It is an interface so the parser, message heuristic, and diff renderer
// can be exercised against canned fixtures instead of a live repository.
type Runner interface {
	Run(args ...string) (string, error)
}

// ExecRunner invokes the git executable as a subprocess rooted at Dir.
// Calls block until the process exits; operations are local and expected
// to be fast, so no timeout is enforced.
type ExecRunner struct {
	Dir string
}

// Run executes `git -C <dir> <args...>` and captures combined stdout and
// stderr with trailing whitespace stripped. On a non-zero exit the error
// carries the captured output as diagnostic text. Arguments are passed as
// an argv vector, so paths and messages need no shell escaping.
func (r ExecRunner) Run(args ...string) (string, error) {
	argv := append([]string{"-C", r.Dir}, args...)
	cmd := exec.Command("git", argv...)
	b, err := cmd.CombinedOutput()
	out := strings.TrimRight(string(b), " \t\r\n")
	if err != nil {
		if out != "" {
			return out, fmt.Errorf("git %s: %s", args[0], out)
		}
		return out, fmt.Errorf("git %s: %w", args[0], err)
	}
	return out, nil
}
