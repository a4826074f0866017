// Package hook implements the Hook Driver: the prepare-commit-msg entry
// point that decides whether synthesis is needed at all, and if so wires
// the git collaborator, the orchestrator, and the commit-message file
// writer together.
package hook

import (
	"context"
	"fmt"

	"github.com/charmbracelet/log"

	"github.com/cstobie/commit-synth/internal/commitfile"
	"github.com/cstobie/commit-synth/internal/config"
	"github.com/cstobie/commit-synth/internal/git"
	"github.com/cstobie/commit-synth/internal/llm"
	"github.com/cstobie/commit-synth/internal/orchestrator"
	"github.com/cstobie/commit-synth/internal/tokenizer"
	"github.com/cstobie/commit-synth/internal/workerpool"
)

// Args mirrors git's prepare-commit-msg invocation: the file to write, the
// source of any existing message, and (for amends) the parent SHA.
type Args struct {
	CommitMsgFile string
	Source        string
	SHA1          string
}

// skipSources are the source kinds that mean a message already exists or
// will come from elsewhere; synthesis must not touch the file.
var skipSources = map[string]bool{
	"message":  true,
	"template": true,
	"merge":    true,
	"squash":   true,
	"commit":   true,
}

// Run executes the hook: skip synthesis for a user-provided source, else
// fetch the staged diff, run the orchestrator, and atomically write the
// result. Returns a non-nil error only on fatal failure (the repo root or
// staged diff could not be read, all strategies exhausted, or the file write
// itself failed); the commit-message file is left untouched in that case.
func Run(ctx context.Context, args Args, cfg config.Snapshot, client llm.Client, tok *tokenizer.Tokenizer, logger *log.Logger) error {
	if skipSources[args.Source] {
		logger.Debug("skipping synthesis", "source", args.Source)
		return nil
	}

	repoRoot, err := git.GetRepoRoot(".")
	if err != nil {
		return fmt.Errorf("hook: %w", err)
	}

	diff, err := git.GetStagedDiff(repoRoot)
	if err != nil {
		return fmt.Errorf("hook: %w", err)
	}
	if len(diff) == 0 {
		logger.Debug("no staged changes, skipping synthesis")
		return nil
	}

	orchCfg := orchestrator.Config{
		Model:           cfg.Model,
		MaxTokens:       cfg.MaxTokens,
		MaxCommitLength: cfg.MaxCommitLength,
		Pool:            workerpool.New(),
	}

	msg, err := orchestrator.Generate(ctx, diff, orchCfg, client, tok)
	if err != nil {
		logger.Error("commit message synthesis failed", "kind", lastErrorKind(err), "err", err)
		return fmt.Errorf("hook: %w", err)
	}

	if err := commitfile.Write(args.CommitMsgFile, msg); err != nil {
		return fmt.Errorf("hook: %w", err)
	}
	logger.Debug("wrote commit message", "length", len(msg))
	return nil
}

func lastErrorKind(err error) orchestrator.ErrorKind {
	var se *orchestrator.StrategyError
	if ok := asStrategyError(err, &se); ok {
		return se.Kind
	}
	return orchestrator.ProviderError
}

func asStrategyError(err error, target **orchestrator.StrategyError) bool {
	se, ok := err.(*orchestrator.StrategyError)
	if !ok {
		return false
	}
	*target = se
	return true
}
