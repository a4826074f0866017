// Package git is the thin, opaque collaborator between the hook driver and
// the local git repository: it knows how to find the repo root and fetch
// the staged diff as raw bytes. It does not parse diffs — that is
// internal/diffparser's job — and it never writes anything.
package git

import (
	"fmt"
	"os/exec"
	"strings"
)

// GetRepoRoot resolves the top-level directory of the git repository
// containing dir.
func GetRepoRoot(dir string) (string, error) {
	cmd := exec.Command("git", "-C", dir, "rev-parse", "--show-toplevel")
	out, err := cmd.CombinedOutput()
	if err != nil {
		if _, lookErr := exec.LookPath("git"); lookErr != nil {
			return "", fmt.Errorf("git command not found: %w", lookErr)
		}
		return "", fmt.Errorf("not a git repository or git error: %w", err)
	}
	return strings.TrimSpace(string(out)), nil
}

// GetStagedDiff returns the raw unified-diff bytes of everything currently
// staged. An empty result is valid: it means there is nothing staged.
func GetStagedDiff(repoRoot string) ([]byte, error) {
	cmd := exec.Command("git", "-C", repoRoot, "diff", "--staged", "--patch", "--no-color", "--no-ext-diff")
	out, err := cmd.CombinedOutput()
	if err != nil {
		return nil, fmt.Errorf("error getting staged diff: %w", err)
	}
	return out, nil
}
