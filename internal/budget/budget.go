// Package budget implements the token-budget engine: given parsed files, a
// prompt-template token cost, and a global token budget, it produces a
// per-file token allotment and truncated hunk texts so the total never
// exceeds the budget.
package budget

import (
	"sort"

	"github.com/cstobie/commit-synth/internal/pipeline"
	"github.com/cstobie/commit-synth/internal/tokenizer"
)

// floorTokens is the minimum per-file allotment guaranteed by the
// proportional distribution step, unless the file's own raw token count is
// smaller.
const floorTokens = 32

// smallFileSetSize and mediumFileSetSize gate the tiered fast paths: at or
// below smallFileSetSize (with ample global headroom) byte/4 estimates replace
// exact tokenization outright; at or below mediumFileSetSize, estimates drive
// allocation decisions but truncation still consults the exact tokenizer.
const (
	smallFileSetSize  = 5
	mediumFileSetSize = 50
)

func approxTokens(s string) int {
	return len(s) / 4
}

func operationPriority(op pipeline.Operation) int {
	switch op {
	case pipeline.Added:
		return 0
	case pipeline.Modified:
		return 1
	case pipeline.Deleted:
		return 2
	case pipeline.Renamed:
		return 3
	default: // Binary
		return 4
	}
}

// Allocate computes a Budget and returns a copy of files with HunkText
// truncated wherever the computed allotment is below the file's raw token
// count. The returned slice preserves the input order; priority ordering is
// used only internally to decide allocation and residual distribution.
//
// When globalMax <= templateCost, Allocate returns a Budget with an empty
// PerFile map (Budget.Exhausted() reports true) and the files unchanged; the
// caller (the orchestrator) must fall back to summary-only mode.
func Allocate(files []pipeline.FileChange, templateCost, globalMax int, tok *tokenizer.Tokenizer) (pipeline.Budget, []pipeline.FileChange) {
	b := pipeline.Budget{GlobalMax: globalMax, TemplateCost: templateCost, PerFile: map[string]int{}}
	if b.Exhausted() {
		return b, files
	}
	remaining := b.Remaining()
	if len(files) == 0 {
		return b, files
	}

	order := priorityOrder(files)

	raw := make([]int, len(files))
	useApprox := len(files) <= mediumFileSetSize
	if len(files) <= smallFileSetSize {
		approxSum := 0
		for _, f := range files {
			approxSum += approxTokens(f.HunkText)
		}
		if globalMax >= 2*approxSum {
			for i, f := range files {
				raw[i] = approxTokens(f.HunkText)
			}
			return allocateFromRaw(b, files, raw, order, remaining, nil)
		}
	}
	for i, f := range files {
		if useApprox {
			raw[i] = approxTokens(f.HunkText)
		} else {
			raw[i] = tok.CountTokens(f.HunkText)
		}
	}
	return allocateFromRaw(b, files, raw, order, remaining, tok)
}

// priorityOrder returns indices into files sorted by
// (operation priority asc, total lines changed desc, path asc), stable.
func priorityOrder(files []pipeline.FileChange) []int {
	order := make([]int, len(files))
	for i := range order {
		order[i] = i
	}
	sort.SliceStable(order, func(a, b int) bool {
		fa, fb := files[order[a]], files[order[b]]
		pa, pb := operationPriority(fa.Operation), operationPriority(fb.Operation)
		if pa != pb {
			return pa < pb
		}
		if fa.TotalLines() != fb.TotalLines() {
			return fa.TotalLines() > fb.TotalLines()
		}
		return fa.Path < fb.Path
	})
	return order
}

// allocateFromRaw distributes `remaining` tokens across files given their
// raw (possibly approximate) token counts and priority order, then, if tok
// is non-nil, truncates any file whose allotment is below its raw count,
// using the exact tokenizer to cut the hunk to the allotment. Pass tok = nil for the full-approximation fast path, where no
// truncation is attempted (the caller has already established ample
// headroom).
func allocateFromRaw(b pipeline.Budget, files []pipeline.FileChange, raw []int, order []int, remaining int, tok *tokenizer.Tokenizer) (pipeline.Budget, []pipeline.FileChange) {
	sum := 0
	for _, r := range raw {
		sum += r
	}

	alloc := make([]int, len(files))
	if sum <= remaining {
		copy(alloc, raw)
	} else {
		lower := make([]int, len(files))
		sumLower := 0
		for i, r := range raw {
			lower[i] = min(floorTokens, r)
			sumLower += lower[i]
		}
		if sumLower >= remaining {
			// Extreme case: even the floor allotments don't fit. Hand out
			// what's left in priority order.
			left := remaining
			for _, i := range order {
				give := lower[i]
				if give > left {
					give = left
				}
				alloc[i] = give
				left -= give
			}
		} else {
			extra := remaining - sumLower
			weightSum := sum - sumLower
			given := 0
			for i := range files {
				weight := raw[i] - lower[i]
				share := 0
				if weightSum > 0 {
					share = extra * weight / weightSum
				}
				alloc[i] = lower[i] + share
				given += share
			}
			residual := extra - given
			for _, i := range order {
				if residual <= 0 {
					break
				}
				if alloc[i] < raw[i] {
					alloc[i]++
					residual--
				}
			}
		}
	}

	result := make([]pipeline.FileChange, len(files))
	copy(result, files)
	for i, f := range files {
		b.PerFile[f.Path] = alloc[i]
		if alloc[i] < raw[i] && tok != nil {
			result[i].HunkText = tok.Truncate(f.HunkText, alloc[i])
		}
	}
	return b, result
}
