// Package analyzer turns parsed FileChanges into FileAnalyses, either by
// querying an LLM (one call per file, in parallel) or, when that isn't
// available or a given file needs no call at all, by falling back to a
// purely local heuristic (see local.go).
package analyzer

import (
	"context"
	"encoding/json"
	"fmt"

	"golang.org/x/sync/errgroup"

	"github.com/cstobie/commit-synth/internal/llm"
	"github.com/cstobie/commit-synth/internal/pipeline"
)

var analyzeSchema = llm.Schema{
	Name:        "analyze_file",
	Description: "Classify a single file change and summarize it in one short phrase.",
	Parameters: map[string]any{
		"type": "object",
		"properties": map[string]any{
			"category": map[string]any{
				"type": "string",
				"enum": []string{"Source", "Test", "Config", "Docs", "Build", "Binary"},
			},
			"summary": map[string]any{
				"type":        "string",
				"description": "a short human-readable phrase, at most 100 characters",
			},
		},
		"required": []string{"category", "summary"},
	},
}

type apiResult struct {
	Category string `json:"category"`
	Summary  string `json:"summary"`
}

// Result is the outcome of an Analyze call: the per-file analyses in input
// order, plus whether the Authentication short-circuit rule fired.
type Result struct {
	Analyses       []pipeline.FileAnalysis
	AuthPropagated bool
}

// Analyze issues one concurrent "analyze this file" call per FileChange via
// client, using errgroup.WithContext so the whole analyzer is cancelled if
// the caller's context is. A single-file input is handled inline without
// spawning a goroutine. Per-task failures never abort the group: each
// failing task is replaced with a local fallback analysis and recorded into
// its own index of a per-task slice (never a variable shared across
// goroutines); if more than half the tasks fell back and at least one of
// those failures was Authentication, Result.AuthPropagated is set so the
// caller can short-circuit immediately per the fallback orchestrator's
// rules.
func Analyze(ctx context.Context, files []pipeline.FileChange, client llm.Client, model string) (Result, error) {
	n := len(files)
	if n == 0 {
		return Result{}, nil
	}

	analyses := make([]pipeline.FileAnalysis, n)
	fellBack := make([]bool, n)
	authFell := make([]bool, n)

	analyzeOne := func(i int) {
		fc := files[i]
		if fc.Operation == pipeline.Binary || fc.HunkText == "" {
			analyses[i] = localAnalyzeEmpty(fc)
			return
		}

		req := llm.Request{
			Model:        model,
			SystemPrompt: "You classify a single file change from a git diff. Respond only via the analyze_file tool.",
			UserPrompt:   fmt.Sprintf("path: %s\noperation: %s\ndiff:\n%s", fc.Path, fc.Operation, fc.HunkText),
			Schema:       analyzeSchema,
			MaxTokens:    256,
		}
		raw, err := client.Call(ctx, req)
		if err != nil {
			fellBack[i] = true
			if le, ok := err.(*llm.Error); ok && le.Kind == llm.Authentication {
				authFell[i] = true
			}
			analyses[i] = LocalAnalyze(fc)
			return
		}

		var parsed apiResult
		if err := json.Unmarshal(raw, &parsed); err != nil {
			fellBack[i] = true
			analyses[i] = LocalAnalyze(fc)
			return
		}
		analyses[i] = pipeline.FileAnalysis{
			Path:         fc.Path,
			Operation:    fc.Operation,
			Category:     categoryFromString(parsed.Category),
			Summary:      parsed.Summary,
			LinesAdded:   fc.LinesAdded,
			LinesRemoved: fc.LinesRemoved,
		}
	}

	if n == 1 {
		analyzeOne(0)
	} else {
		g, gctx := errgroup.WithContext(ctx)
		_ = gctx
		for i := 0; i < n; i++ {
			i := i
			g.Go(func() error {
				analyzeOne(i)
				return nil
			})
		}
		_ = g.Wait()
	}

	fallenBack := 0
	lastAuthFallback := false
	for i, f := range fellBack {
		if f {
			fallenBack++
		}
		if authFell[i] {
			lastAuthFallback = true
		}
	}
	authPropagated := fallenBack*2 > n && lastAuthFallback

	return Result{Analyses: analyses, AuthPropagated: authPropagated}, nil
}

func categoryFromString(s string) pipeline.Category {
	switch s {
	case "Test":
		return pipeline.Test
	case "Config":
		return pipeline.Config
	case "Docs":
		return pipeline.Docs
	case "Build":
		return pipeline.Build
	case "Binary":
		return pipeline.CategoryBinary
	default:
		return pipeline.Source
	}
}
