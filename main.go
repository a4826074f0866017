// Command commit-synth is a git prepare-commit-msg hook that synthesizes a
// commit message from the staged diff when the user hasn't supplied one.
package main

import (
	"os"
	"path/filepath"

	"github.com/cstobie/commit-synth/cmd"
)

func main() {
	// git invokes hooks directly (`prepare-commit-msg <file> [source] [sha]`),
	// with no room for a subcommand argument. When this binary is running
	// under that symlinked name, dispatch straight to the hook subcommand.
	if filepath.Base(os.Args[0]) == "prepare-commit-msg" {
		os.Args = append([]string{os.Args[0], "hook"}, os.Args[1:]...)
	}
	cmd.Execute()
}
