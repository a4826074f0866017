package generator

import (
	"fmt"
	"path"
	"strings"

	"github.com/cstobie/commit-synth/internal/pipeline"
)

// localCandidate composes one style's message from a single top-scored
// file's summary (the Component style also prefixes the dominant top-level
// directory across all scored files), used both to backfill styles the transport omitted and
// as the full local-multi-step generator (§4.7).
func localCandidate(style pipeline.Style, top pipeline.ScoredFile, scored []pipeline.ScoredFile) pipeline.Candidate {
	base := path.Base(top.Path)
	switch style {
	case pipeline.StyleComponent:
		dir := componentGroup(scored)
		return pipeline.Candidate{Style: style, Text: fmt.Sprintf("%s: %s", dir, top.Summary)}
	case pipeline.StyleImpact:
		return pipeline.Candidate{Style: style, Text: fmt.Sprintf("%s, affecting %s", top.Summary, base)}
	default:
		return pipeline.Candidate{Style: style, Text: top.Summary}
	}
}

// componentGroup names the dominant top-level directory across scored
// files, folding the teacher's directory-grouping summary into the
// Component-focused style.
func componentGroup(scored []pipeline.ScoredFile) string {
	counts := map[string]int{}
	for _, s := range scored {
		dir := strings.SplitN(s.Path, "/", 2)[0]
		if dir == s.Path {
			dir = "root"
		}
		counts[dir]++
	}
	best, bestCount := "root", 0
	for dir, n := range counts {
		if n > bestCount || (n == bestCount && dir < best) {
			best, bestCount = dir, n
		}
	}
	return best
}

// LocalCandidates is the full §4.7 generator phase: three fixed-style
// candidates built from the top-scored file's summary (plus the dominant
// directory for the Component style), no LLM call.
func LocalCandidates(scored []pipeline.ScoredFile) pipeline.CandidateSet {
	top := topScoredFile(scored)
	return pipeline.CandidateSet{
		localCandidate(pipeline.StyleAction, top, scored),
		localCandidate(pipeline.StyleComponent, top, scored),
		localCandidate(pipeline.StyleImpact, top, scored),
	}
}
