// Package tokenizer wraps github.com/pkoukk/tiktoken-go behind the pure
// count_tokens/truncate contract the rest of the pipeline depends on. The
// encoding is selected once, at startup, from the configured model string.
package tokenizer

import (
	"sort"

	"github.com/pkoukk/tiktoken-go"
)

// fallbackEncoding is used whenever the configured model string is not
// recognized by tiktoken-go. Unknown/invalid model strings are accepted
// upstream (per the config contract) and silently downgraded here rather
// than failing the whole pipeline.
const fallbackEncoding = "cl100k_base"

// Tokenizer counts and truncates text against a fixed BPE encoding.
// Safe for concurrent use: tiktoken's *Tiktoken has no mutable state once
// constructed, and New never mutates shared state after startup.
type Tokenizer struct {
	enc *tiktoken.Tiktoken
}

// New selects the encoding for model once. A model string tiktoken-go
// doesn't recognize falls back to cl100k_base rather than erroring, since
// the core treats model names as opaque transport configuration.
func New(model string) *Tokenizer {
	enc, err := tiktoken.EncodingForModel(model)
	if err != nil {
		enc, err = tiktoken.GetEncoding(fallbackEncoding)
		if err != nil {
			// tiktoken-go ships cl100k_base's ranks embedded; this should be
			// unreachable, but fall back to a nil-safe zero value rather than
			// panicking out of a hook.
			return &Tokenizer{}
		}
	}
	return &Tokenizer{enc: enc}
}

// CountTokens returns the number of BPE tokens text encodes to. Pure and
// deterministic for a fixed model.
func (t *Tokenizer) CountTokens(text string) int {
	if t == nil || t.enc == nil || text == "" {
		return 0
	}
	return len(t.enc.Encode(text, nil, nil))
}

// Truncate returns the longest prefix of s (on a rune boundary) whose token
// count is <= max, found by binary search over rune indices. Ties prefer the
// longer admissible prefix, which binary search naturally converges on.
func (t *Tokenizer) Truncate(s string, max int) string {
	if max <= 0 {
		return ""
	}
	if t.CountTokens(s) <= max {
		return s
	}
	runes := []rune(s)
	// sort.Search finds the smallest i for which the predicate is true; we
	// want the largest admissible prefix length, so search over
	// "token count exceeds max" and back off by one.
	firstTooLong := sort.Search(len(runes)+1, func(k int) bool {
		return t.CountTokens(string(runes[:k])) > max
	})
	if firstTooLong == 0 {
		return ""
	}
	return string(runes[:firstTooLong-1])
}
