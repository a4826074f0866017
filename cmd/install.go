package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/cstobie/commit-synth/internal/git"
)

// installCmd symlinks the running binary into .git/hooks/prepare-commit-msg.
// Hook symlink management is out of scope for the core per spec.md — this
// is the thin pass-through spec.md §1 names as an external collaborator.
var installCmd = &cobra.Command{
	Use:   "install",
	Short: "Install the prepare-commit-msg hook in the current repository",
	RunE: func(cmd *cobra.Command, args []string) error {
		repoRoot, err := git.GetRepoRoot(".")
		if err != nil {
			return err
		}
		exe, err := os.Executable()
		if err != nil {
			return fmt.Errorf("install: locate running binary: %w", err)
		}
		hookPath := filepath.Join(repoRoot, ".git", "hooks", "prepare-commit-msg")
		os.Remove(hookPath)
		if err := os.Symlink(exe, hookPath); err != nil {
			return fmt.Errorf("install: symlink hook: %w", err)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "installed prepare-commit-msg hook at %s\n", hookPath)
		return nil
	},
}

var uninstallCmd = &cobra.Command{
	Use:   "uninstall",
	Short: "Remove the prepare-commit-msg hook from the current repository",
	RunE: func(cmd *cobra.Command, args []string) error {
		repoRoot, err := git.GetRepoRoot(".")
		if err != nil {
			return err
		}
		hookPath := filepath.Join(repoRoot, ".git", "hooks", "prepare-commit-msg")
		if err := os.Remove(hookPath); err != nil && !os.IsNotExist(err) {
			return fmt.Errorf("uninstall: %w", err)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "removed prepare-commit-msg hook at %s\n", hookPath)
		return nil
	},
}
