package cmd

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/cstobie/commit-synth/internal/config"
	"github.com/cstobie/commit-synth/internal/hook"
	"github.com/cstobie/commit-synth/internal/llm"
	"github.com/cstobie/commit-synth/internal/tokenizer"
)

// hookCmd is the actual prepare-commit-msg entry point: git invokes it as
// `commit-synth hook <commit_msg_file> [source] [sha1]`.
var hookCmd = &cobra.Command{
	Use:    "hook <commit_msg_file> [source] [sha1]",
	Short:  "Run as a git prepare-commit-msg hook",
	Args:   cobra.RangeArgs(1, 3),
	Hidden: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		hookArgs := hook.Args{CommitMsgFile: args[0]}
		if len(args) > 1 {
			hookArgs.Source = args[1]
		}
		if len(args) > 2 {
			hookArgs.SHA1 = args[2]
		}

		cfg, err := config.Load()
		if err != nil {
			return err
		}

		tok := tokenizer.New(cfg.Model)
		client := llm.NewOpenRouterClient(cfg.OpenAIAPIKey)

		return hook.Run(context.Background(), hookArgs, cfg, client, tok, logger())
	},
}
