// Package scorer computes the deterministic impact score used to rank files
// for inclusion in the synthesized commit message. The weight tables are
// data, not behavior attached to a file "object" — Score is a free function
// over a single pipeline.FileAnalysis so tests can pin the table directly.
package scorer

import (
	"github.com/cstobie/commit-synth/internal/pipeline"
	"github.com/cstobie/commit-synth/internal/workerpool"
)

var operationWeights = map[pipeline.Operation]float32{
	pipeline.Added:    0.30,
	pipeline.Modified: 0.20,
	pipeline.Deleted:  0.25,
	pipeline.Renamed:  0.10,
	pipeline.Binary:   0.05,
}

var categoryWeights = map[pipeline.Category]float32{
	pipeline.Source:         0.40,
	pipeline.Test:           0.20,
	pipeline.Config:         0.25,
	pipeline.Build:          0.30,
	pipeline.Docs:           0.10,
	pipeline.CategoryBinary: 0.05,
}

const maxSizeContribution = 0.30

// sizeContribution returns the clamped, linear size term:
// min((added+removed)/100, 0.30).
func sizeContribution(added, removed int) float32 {
	v := float32(added+removed) / 100
	if v > maxSizeContribution {
		return maxSizeContribution
	}
	return v
}

// Score computes the impact score for a file: deterministic and pure —
// identical inputs always yield a bit-identical result.
func Score(fa pipeline.FileAnalysis) float32 {
	s := operationWeights[fa.Operation] + categoryWeights[fa.Category] + sizeContribution(fa.LinesAdded, fa.LinesRemoved)
	if s > 1.0 {
		return 1.0
	}
	return s
}

// ScoreAll scores every analysis and returns the ScoredFile list in the same
// order (§4.4's ordering guarantee is preserved, not re-derived). Scoring is
// CPU-bound and embarrassingly parallel, so it runs over pool rather than a
// dedicated goroutine per call. A nil pool runs inline.
func ScoreAll(analyses []pipeline.FileAnalysis, pool *workerpool.Pool) []pipeline.ScoredFile {
	out := make([]pipeline.ScoredFile, len(analyses))
	run := func(i int) {
		out[i] = pipeline.ScoredFile{FileAnalysis: analyses[i], ImpactScore: Score(analyses[i])}
	}
	if pool == nil {
		for i := range analyses {
			run(i)
		}
		return out
	}
	pool.Run(len(analyses), run)
	return out
}
