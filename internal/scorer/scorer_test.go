package scorer

import (
	"testing"

	"github.com/cstobie/commit-synth/internal/pipeline"
)

func TestScorePure(t *testing.T) {
	fa := pipeline.FileAnalysis{Path: "a.go", Operation: pipeline.Added, Category: pipeline.Source, LinesAdded: 10, LinesRemoved: 5}
	s1 := Score(fa)
	s2 := Score(fa)
	if s1 != s2 {
		t.Fatalf("scorer not deterministic: %v != %v", s1, s2)
	}
}

func TestScoreFormula(t *testing.T) {
	fa := pipeline.FileAnalysis{Operation: pipeline.Added, Category: pipeline.Source, LinesAdded: 10, LinesRemoved: 10}
	got := Score(fa)
	// Summed in float32, in the same order Score adds its terms, so the
	// comparison is against what the formula yields at that precision.
	base, cat, size := float32(0.30), float32(0.40), float32(0.20)
	want := base + cat + size
	if got != want {
		t.Fatalf("got %v, want %v", got, want)
	}
}

func TestScoreSizeClampedAt30(t *testing.T) {
	fa := pipeline.FileAnalysis{Operation: pipeline.Renamed, Category: pipeline.Docs, LinesAdded: 10000, LinesRemoved: 0}
	got := Score(fa)
	want := float32(0.10 + 0.10 + 0.30)
	if got != want {
		t.Fatalf("got %v, want %v", got, want)
	}
}

func TestScoreNeverExceedsOne(t *testing.T) {
	fa := pipeline.FileAnalysis{Operation: pipeline.Added, Category: pipeline.Source, LinesAdded: 100000, LinesRemoved: 100000}
	if got := Score(fa); got > 1.0 {
		t.Fatalf("score exceeded 1.0: %v", got)
	}
}

func TestScoreAllPreservesOrder(t *testing.T) {
	analyses := []pipeline.FileAnalysis{
		{Path: "a.go", Operation: pipeline.Added, Category: pipeline.Source},
		{Path: "b.go", Operation: pipeline.Deleted, Category: pipeline.Test},
	}
	scored := ScoreAll(analyses, nil)
	if len(scored) != 2 || scored[0].Path != "a.go" || scored[1].Path != "b.go" {
		t.Fatalf("unexpected order: %+v", scored)
	}
}
