package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/interpretive-systems/stagium/internal/gitx"
	"github.com/interpretive-systems/stagium/internal/tui"
)

func newOpenCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "open",
		Short: "Open the interactive staging workflow",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runOpen(cmd)
		},
	}
}

// newCommitCmd is a plain alias for opening the workflow.
func newCommitCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "commit",
		Short: "Alias for open",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runOpen(cmd)
		},
	}
}

func runOpen(cmd *cobra.Command) error {
	repoPath, err := repoFlag(cmd)
	if err != nil {
		return err
	}
	root, err := gitx.RepoRoot(repoPath)
	if err != nil {
		return fmt.Errorf("not a git repo: %w", err)
	}
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	return tui.Run(root, cfg)
}
