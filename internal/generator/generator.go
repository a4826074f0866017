// Package generator implements the Candidate Generator and Selector: one
// LLM call that proposes several differently-styled commit messages, and a
// deterministic local choice among them (or among locally-composed
// fallbacks) that becomes the final CommitMessage.
package generator

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"

	"github.com/cstobie/commit-synth/internal/llm"
	"github.com/cstobie/commit-synth/internal/pipeline"
	"github.com/cstobie/commit-synth/internal/template"
)

const (
	minCandidates = 2
	maxCandidates = 5
)

var candidateSchema = llm.Schema{
	Name:        "generate_candidates",
	Description: "Propose 2 to 5 candidate commit messages in distinct styles.",
	Parameters: map[string]any{
		"type": "object",
		"properties": map[string]any{
			"candidates": map[string]any{
				"type": "array",
				"items": map[string]any{
					"type": "object",
					"properties": map[string]any{
						"style": map[string]any{"type": "string", "enum": []string{"Action", "Component", "Impact"}},
						"text":  map[string]any{"type": "string"},
					},
					"required": []string{"style", "text"},
				},
			},
		},
		"required": []string{"candidates"},
	},
}

type apiCandidate struct {
	Style string `json:"style"`
	Text  string `json:"text"`
}

type apiCandidates struct {
	Candidates []apiCandidate `json:"candidates"`
}

func styleFromString(s string) pipeline.Style {
	switch s {
	case "Component":
		return pipeline.StyleComponent
	case "Impact":
		return pipeline.StyleImpact
	default:
		return pipeline.StyleAction
	}
}

// Generate issues the Candidate Generator's single LLM call over every
// scored file and returns 2-5 distinctly-styled candidates. If the
// transport returns fewer than two distinct styles, the missing ones are
// composed locally from the top-scored file, per spec.
func Generate(ctx context.Context, scored []pipeline.ScoredFile, client llm.Client, model string, maxCommitLength int) (pipeline.CandidateSet, error) {
	if len(scored) == 0 {
		return nil, fmt.Errorf("generator: no scored files")
	}

	prompt, err := template.RenderCandidates(sortedByImpact(scored), maxCandidates, maxCommitLength)
	if err != nil {
		return nil, fmt.Errorf("generator: render prompt: %w", err)
	}

	req := llm.Request{
		Model:        model,
		SystemPrompt: "You write concise git commit message candidates. Respond only via the generate_candidates tool.",
		UserPrompt:   prompt,
		Schema:       candidateSchema,
		MaxTokens:    512,
	}
	raw, err := client.Call(ctx, req)
	if err != nil {
		return nil, err
	}

	var parsed apiCandidates
	if err := json.Unmarshal(raw, &parsed); err != nil {
		return nil, &llm.Error{Kind: llm.SchemaViolation, Err: fmt.Errorf("generator: decode candidates: %w", err)}
	}

	set := make(pipeline.CandidateSet, 0, len(parsed.Candidates))
	seen := map[pipeline.Style]bool{}
	for _, c := range parsed.Candidates {
		if c.Text == "" {
			continue
		}
		style := styleFromString(c.Style)
		set = append(set, pipeline.Candidate{Style: style, Text: c.Text})
		seen[style] = true
	}

	// Backfill whatever styles are missing until at least two distinct
	// styles exist, independent of how many candidates the transport
	// already returned: a transport that answers with five candidates all
	// in one style still needs a second style, not just a length check.
	top := topScoredFile(scored)
	var backfilled []pipeline.Candidate
	for _, style := range []pipeline.Style{pipeline.StyleAction, pipeline.StyleComponent, pipeline.StyleImpact} {
		if len(seen) >= 2 {
			break
		}
		if !seen[style] {
			backfilled = append(backfilled, localCandidate(style, top, scored))
			seen[style] = true
		}
	}

	// Make room for the backfilled styles by trimming the transport's own
	// candidates first, never by dropping a backfilled style that was just
	// added to satisfy the distinct-style requirement.
	for len(set)+len(backfilled) > maxCandidates && len(set) > 0 {
		set = set[:len(set)-1]
	}
	set = append(set, backfilled...)

	if len(set) < minCandidates {
		set = append(set, localCandidate(pipeline.StyleComponent, top, scored))
	}
	if len(set) > maxCandidates {
		set = set[:maxCandidates]
	}
	return set, nil
}

func topScoredFile(scored []pipeline.ScoredFile) pipeline.ScoredFile {
	best := scored[0]
	for _, s := range scored[1:] {
		if s.ImpactScore > best.ImpactScore || (s.ImpactScore == best.ImpactScore && s.Path < best.Path) {
			best = s
		}
	}
	return best
}

// sortedByImpact returns scored sorted by descending impact score, ties
// broken by path, without mutating the input.
func sortedByImpact(scored []pipeline.ScoredFile) []pipeline.ScoredFile {
	out := make([]pipeline.ScoredFile, len(scored))
	copy(out, scored)
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].ImpactScore != out[j].ImpactScore {
			return out[i].ImpactScore > out[j].ImpactScore
		}
		return out[i].Path < out[j].Path
	})
	return out
}
