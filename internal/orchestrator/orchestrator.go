// Package orchestrator implements the Fallback Orchestrator: it sequences
// three independent generation strategies (API-multi-step, Local-multi-step,
// API-single-step), stopping at the first success and distinguishing
// authentication failures — which short-circuit straight to the local
// strategy — from every other failure class, which simply advances to the
// next strategy.
package orchestrator

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/cstobie/commit-synth/internal/analyzer"
	"github.com/cstobie/commit-synth/internal/budget"
	"github.com/cstobie/commit-synth/internal/diffparser"
	"github.com/cstobie/commit-synth/internal/generator"
	"github.com/cstobie/commit-synth/internal/llm"
	"github.com/cstobie/commit-synth/internal/scorer"
	"github.com/cstobie/commit-synth/internal/template"
	"github.com/cstobie/commit-synth/internal/tokenizer"
	"github.com/cstobie/commit-synth/internal/workerpool"
)

// defaultDeadline is the orchestrator-level timeout that bounds all three
// strategies cumulatively, per spec.md §4.8.
const defaultDeadline = 60 * time.Second

// templateCostSkeleton approximates the fixed prompt overhead the Budget
// Engine reserves before allocating per-file hunk tokens: the system
// prompt plus per-file prompt scaffolding the analyzer sends, independent
// of any particular diff's content.
const templateCostSkeleton = "You classify a single file change from a git diff. Respond only via the analyze_file tool.\npath: \noperation: \ndiff:\n"

var singleMessageSchema = llm.Schema{
	Name:        "single_message",
	Description: "Propose one git commit message for the whole diff.",
	Parameters: map[string]any{
		"type": "object",
		"properties": map[string]any{
			"message": map[string]any{"type": "string"},
		},
		"required": []string{"message"},
	},
}

// Config bundles everything a Generate call needs beyond the diff itself.
// Pool is the process-wide worker pool for the CPU-bound scoring and local-
// analysis phases; a nil Pool is constructed once per Generate call.
type Config struct {
	Model           string
	MaxTokens       int
	MaxCommitLength int
	Deadline        time.Duration
	Pool            *workerpool.Pool
}

// Generate runs the three-strategy state machine over diff and returns the
// final CommitMessage text, or the last *StrategyError (with its Chain of
// prior failures) if every strategy failed.
func Generate(ctx context.Context, diff []byte, cfg Config, client llm.Client, tok *tokenizer.Tokenizer) (string, error) {
	deadline := cfg.Deadline
	if deadline <= 0 {
		deadline = defaultDeadline
	}
	ctx, cancel := context.WithTimeout(ctx, deadline)
	defer cancel()

	pool := cfg.Pool
	if pool == nil {
		pool = workerpool.New()
	}

	templateCost := tok.CountTokens(templateCostSkeleton)

	msg, err1 := tryAPIMulti(ctx, diff, cfg, client, tok, templateCost, pool)
	if err1 == nil {
		return msg, nil
	}
	authShortCircuit := err1.Kind == Authentication

	msg, err2 := tryLocal(diff, cfg.MaxCommitLength, pool)
	if err2 == nil {
		return msg, nil
	}
	err2 = err2.WithPrior(err1)

	if authShortCircuit {
		return "", &StrategyError{Kind: Authentication, Err: err2, Chain: append(append([]*StrategyError{}, err2.Chain...), err2)}
	}

	msg, err3 := tryAPISingle(ctx, diff, cfg, client, tok, templateCost)
	if err3 == nil {
		return msg, nil
	}
	return "", err3.WithPrior(err2)
}

func tryAPIMulti(ctx context.Context, diff []byte, cfg Config, client llm.Client, tok *tokenizer.Tokenizer, templateCost int, pool *workerpool.Pool) (string, *StrategyError) {
	files, err := diffparser.Parse(diff)
	if err != nil {
		return "", &StrategyError{Kind: MalformedDiff, Err: err}
	}
	if len(files) == 0 {
		return "", &StrategyError{Kind: MalformedDiff, Err: fmt.Errorf("no files in diff")}
	}

	b, budgeted := budget.Allocate(files, templateCost, cfg.MaxTokens, tok)
	if b.Exhausted() {
		return "", &StrategyError{Kind: BudgetExhausted, Err: fmt.Errorf("global budget %d <= template cost %d", cfg.MaxTokens, templateCost)}
	}

	res, err := analyzer.Analyze(ctx, budgeted, client, cfg.Model)
	if err != nil {
		return "", asStrategyError(err)
	}
	if res.AuthPropagated {
		return "", &StrategyError{Kind: Authentication, Err: fmt.Errorf("more than half of analyzer tasks failed authentication")}
	}

	scored := scorer.ScoreAll(res.Analyses, pool)

	candidates, err := generator.Generate(ctx, scored, client, cfg.Model, cfg.MaxCommitLength)
	if err != nil {
		return "", asStrategyError(err)
	}

	return generator.Select(candidates, scored, cfg.MaxCommitLength), nil
}

func tryLocal(diff []byte, maxCommitLength int, pool *workerpool.Pool) (string, *StrategyError) {
	files, err := diffparser.Parse(diff)
	if err != nil {
		return "", &StrategyError{Kind: MalformedDiff, Err: err}
	}
	if len(files) == 0 {
		return "", &StrategyError{Kind: MalformedDiff, Err: fmt.Errorf("no files in diff")}
	}

	analyses := analyzer.AnalyzeAllLocal(files, pool)
	scored := scorer.ScoreAll(analyses, pool)
	candidates := generator.LocalCandidates(scored)
	return generator.Select(candidates, scored, maxCommitLength), nil
}

type singleMessageResult struct {
	Message string `json:"message"`
}

func tryAPISingle(ctx context.Context, diff []byte, cfg Config, client llm.Client, tok *tokenizer.Tokenizer, templateCost int) (string, *StrategyError) {
	remaining := cfg.MaxTokens - templateCost
	if remaining < 0 {
		remaining = 0
	}
	truncated := tok.Truncate(string(diff), remaining)

	prompt, err := template.RenderSingleStep(truncated, cfg.MaxCommitLength)
	if err != nil {
		return "", &StrategyError{Kind: ProviderError, Err: err}
	}

	req := llm.Request{
		Model:        cfg.Model,
		SystemPrompt: "You write one concise git commit message. Respond only via the single_message tool.",
		UserPrompt:   prompt,
		Schema:       singleMessageSchema,
		MaxTokens:    128,
	}
	raw, err := client.Call(ctx, req)
	if err != nil {
		return "", asStrategyError(err)
	}

	var parsed singleMessageResult
	if err := json.Unmarshal(raw, &parsed); err != nil {
		return "", &StrategyError{Kind: SchemaViolation, Err: fmt.Errorf("decode single message: %w", err)}
	}

	msg := generator.EnforceLength(parsed.Message, cfg.MaxCommitLength)
	if generator.ContainsForbiddenPhrase(msg) {
		return "", &StrategyError{Kind: SchemaViolation, Err: fmt.Errorf("single-step message contained a forbidden phrase")}
	}
	return msg, nil
}
