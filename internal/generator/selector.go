package generator

import (
	"strings"

	"github.com/cstobie/commit-synth/internal/pipeline"
)

var forbiddenPhrases = []string{
	"i'm sorry",
	"i am sorry",
	"i apologize",
	"as an ai",
	"unable to process",
	"api error",
	"rate limit",
	"internal server error",
}

var styleOrder = map[pipeline.Style]int{
	pipeline.StyleAction:    0,
	pipeline.StyleComponent: 1,
	pipeline.StyleImpact:    2,
}

// Select picks the candidate with the greatest word-overlap against the
// summaries of the top-k = min(3, len(files)) scored files, ties broken by
// style order (Action, Component, Impact). It then enforces the length cap
// and the forbidden-phrase hard filter, falling back to a locally
// synthesized summary of the top-scored file when either check fails to
// produce a compliant message.
func Select(candidates pipeline.CandidateSet, scored []pipeline.ScoredFile, maxCommitLength int) string {
	overlapWords := topKOverlapWords(scored)

	best := candidates[0]
	bestScore := wordOverlapScore(best.Text, overlapWords)
	for _, c := range candidates[1:] {
		s := wordOverlapScore(c.Text, overlapWords)
		if s > bestScore || (s == bestScore && styleOrder[c.Style] < styleOrder[best.Style]) {
			best, bestScore = c, s
		}
	}

	msg := EnforceLength(best.Text, maxCommitLength)
	if ContainsForbiddenPhrase(msg) {
		msg = EnforceLength(topScoredFile(scored).Summary, maxCommitLength)
	}
	return msg
}

func topKOverlapWords(scored []pipeline.ScoredFile) map[string]bool {
	ranked := sortedByImpact(scored)
	k := 3
	if len(ranked) < k {
		k = len(ranked)
	}
	words := map[string]bool{}
	for _, s := range ranked[:k] {
		for _, w := range strings.Fields(strings.ToLower(s.Summary)) {
			words[strings.Trim(w, ".,:;!?")] = true
		}
	}
	return words
}

func wordOverlapScore(text string, target map[string]bool) int {
	score := 0
	for _, w := range strings.Fields(strings.ToLower(text)) {
		if target[strings.Trim(w, ".,:;!?")] {
			score++
		}
	}
	return score
}

// EnforceLength applies §4.6's length cap: accept the first line verbatim
// if short enough, else truncate at the nearest word boundary at or before
// the cap and strip trailing punctuation. The cap counts runes, not bytes,
// so a multibyte character is never split.
func EnforceLength(text string, maxCommitLength int) string {
	firstLine := text
	if idx := strings.IndexByte(text, '\n'); idx >= 0 {
		firstLine = text[:idx]
	}
	firstLine = strings.TrimSpace(firstLine)

	runes := []rune(firstLine)
	if len(runes) <= maxCommitLength {
		return firstLine
	}

	truncated := string(runes[:maxCommitLength])
	if idx := strings.LastIndexByte(truncated, ' '); idx > 0 {
		truncated = truncated[:idx]
	}
	truncated = strings.TrimRight(truncated, ",:;- ")
	return truncated
}

// ContainsForbiddenPhrase reports whether msg contains an apology or
// transport-error phrase that must never reach the user.
func ContainsForbiddenPhrase(msg string) bool {
	lower := strings.ToLower(msg)
	for _, phrase := range forbiddenPhrases {
		if strings.Contains(lower, phrase) {
			return true
		}
	}
	return false
}
