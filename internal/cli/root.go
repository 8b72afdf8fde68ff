// Package cli wires the stagium commands.
package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/interpretive-systems/stagium/internal/config"
)

// Execute runs the root command.
func Execute() error {
	root := &cobra.Command{
		Use:   "stagium",
		Short: "Stage-first TUI for composing git commits",
		Long:  "Stagium: review working-tree changes, stage files, and commit with a generated message.",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runOpen(cmd)
		},
	}

	root.PersistentFlags().StringP("repo", "r", ".", "Path to repository root (default: current dir)")
	root.PersistentFlags().Bool("select", false, "Enable explicit per-file commit selection")

	root.AddCommand(newOpenCmd())
	root.AddCommand(newCommitCmd())
	root.AddCommand(newMessageCmd())

	if err := root.Execute(); err != nil {
		return fmt.Errorf("execute: %w", err)
	}
	return nil
}

// loadConfig merges the app config with command-line overrides.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}
	if cmd.Flags().Changed("select") {
		v, err := cmd.Flags().GetBool("select")
		if err != nil {
			return nil, err
		}
		cfg.SelectMode = v
	}
	return cfg, nil
}

func repoFlag(cmd *cobra.Command) (string, error) {
	return cmd.Flags().GetString("repo")
}
