// Package cmd implements the commit-synth CLI: a thin cobra surface over
// the hook driver, matching the teacher's own root/subcommand layout.
package cmd

import (
	"fmt"
	"os"

	charmlog "github.com/charmbracelet/log"
	"github.com/spf13/cobra"
)

const version = "0.1.0"

var verbose bool

var rootCmd = &cobra.Command{
	Use:   "commit-synth",
	Short: "Synthesizes git commit messages via an LLM-backed prepare-commit-msg hook",
	Long: `commit-synth installs as a git prepare-commit-msg hook. When a commit is made
without a user-supplied message, it analyzes the staged diff and synthesizes one.`,
	Run: func(cmd *cobra.Command, args []string) {
		versionFlag, _ := cmd.Flags().GetBool("version")
		if versionFlag {
			fmt.Printf("commit-synth version %s\n", version)
			os.Exit(0)
		}
		cmd.Help()
	},
}

// Execute runs the root command, exiting the process on any cobra-level
// error (argument parsing, unknown subcommand, etc).
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		logger().Fatal("command failed", "err", err)
	}
}

func logger() *charmlog.Logger {
	l := charmlog.New(os.Stderr)
	if verbose {
		l.SetLevel(charmlog.DebugLevel)
	} else {
		l.SetLevel(charmlog.WarnLevel)
	}
	return l
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose logging")
	rootCmd.Flags().BoolP("version", "V", false, "print version information and exit")

	rootCmd.AddCommand(hookCmd)
	rootCmd.AddCommand(installCmd)
	rootCmd.AddCommand(uninstallCmd)
	rootCmd.AddCommand(configCmd)
}
