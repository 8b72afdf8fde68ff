package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/interpretive-systems/stagium/internal/gitx"
	"github.com/interpretive-systems/stagium/internal/message"
)

// newMessageCmd reports the generated commit message without staging or
// committing anything.
func newMessageCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "message",
		Short: "Print the generated commit message (dry run)",
		RunE: func(cmd *cobra.Command, args []string) error {
			repoPath, err := repoFlag(cmd)
			if err != nil {
				return err
			}
			root, err := gitx.RepoRoot(repoPath)
			if err != nil {
				return fmt.Errorf("not a git repo: %w", err)
			}
			git := gitx.NewService(gitx.ExecRunner{Dir: root})
			files, err := git.Status()
			if err != nil {
				return err
			}
			// Generate from the staged subset when one exists, from all
			// changes otherwise.
			var staged []gitx.File
			for _, f := range files {
				if f.Staged() {
					staged = append(staged, f)
				}
			}
			if len(staged) == 0 {
				staged = files
			}
			fmt.Fprintln(cmd.OutOrStdout(), message.Generate(staged))
			return nil
		},
	}
}
