// Package template renders the prompt bodies sent to the LLM transport from
// embedded text/template files, the way the teacher's own template package
// loaded its single commit-message prompt.
package template

import (
	"embed"
	"fmt"
	"strings"
	"text/template"

	"github.com/cstobie/commit-synth/internal/pipeline"
)

//go:embed templates
var templateFS embed.FS

func render(name string, data any) (string, error) {
	templatePath := fmt.Sprintf("templates/%s.tmpl", name)
	content, err := templateFS.ReadFile(templatePath)
	if err != nil {
		return "", fmt.Errorf("failed to load template %q: %w", name, err)
	}
	tmpl, err := template.New(name).Parse(string(content))
	if err != nil {
		return "", fmt.Errorf("failed to parse template %q: %w", name, err)
	}
	var b strings.Builder
	if err := tmpl.Execute(&b, data); err != nil {
		return "", fmt.Errorf("failed to execute template %q: %w", name, err)
	}
	return b.String(), nil
}

// CandidatesPrompt is the data bound into templates/candidates.tmpl.
type CandidatesPrompt struct {
	MaxCandidates   int
	MaxCommitLength int
	Files           []pipeline.ScoredFile
}

// RenderCandidates builds the prompt for the Candidate Generator's one LLM
// call, listing every scored file highest-impact first.
func RenderCandidates(files []pipeline.ScoredFile, maxCandidates, maxCommitLength int) (string, error) {
	return render("candidates", CandidatesPrompt{
		MaxCandidates:   maxCandidates,
		MaxCommitLength: maxCommitLength,
		Files:           files,
	})
}

// SingleStepPrompt is the data bound into templates/single_step.tmpl.
type SingleStepPrompt struct {
	MaxCommitLength int
	Diff            string
}

// RenderSingleStep builds the prompt for the API-single-step strategy's one
// LLM call, which receives the whole budget-truncated diff directly.
func RenderSingleStep(diff string, maxCommitLength int) (string, error) {
	return render("single_step", SingleStepPrompt{MaxCommitLength: maxCommitLength, Diff: diff})
}
