// Package jsonextract recovers a JSON value from free-form LLM text output.
// It exists because some providers answer a function-calling request in
// prose (a markdown-fenced blob, or plain narration around a JSON object)
// instead of returning a clean tool-call payload; the core still needs a
// structured value out of it.
package jsonextract

import (
	"encoding/json"
	"fmt"
	"regexp"
	"strings"
)

var reCodeFence = regexp.MustCompile("(?s)```(?:json)?[ \\t]*\n(.*?)\n```")

// Extract returns the first valid top-level JSON object or array found in
// text, preferring a markdown code-fenced block over bare brace matching.
func Extract(text string) (json.RawMessage, error) {
	text = strings.TrimPrefix(text, "\xef\xbb\xbf")

	if m := reCodeFence.FindStringSubmatch(text); m != nil {
		inner := strings.TrimSpace(m[1])
		if inner != "" && json.Valid([]byte(inner)) {
			return json.RawMessage(inner), nil
		}
	}

	n := len(text)
	for i := 0; i < n; i++ {
		ch := text[i]
		if ch != '{' && ch != '[' {
			continue
		}
		end := matchingDelimiter(text, i)
		if end < 0 {
			continue
		}
		candidate := text[i : end+1]
		if json.Valid([]byte(candidate)) {
			return json.RawMessage(candidate), nil
		}
	}
	return nil, fmt.Errorf("jsonextract: no valid JSON found in text")
}

// into extracts the first JSON value from text and unmarshals it into target.
func into(text string, target any) error {
	raw, err := Extract(text)
	if err != nil {
		return err
	}
	if err := json.Unmarshal(raw, target); err != nil {
		return fmt.Errorf("jsonextract: unmarshal: %w", err)
	}
	return nil
}

// matchingDelimiter returns the index of the closing delimiter that matches
// the opening delimiter ('{'→'}', '['→']') at position start, skipping over
// quoted strings and their escape sequences. Returns -1 if unmatched.
func matchingDelimiter(text string, start int) int {
	openCh := text[start]
	var closeCh byte
	switch openCh {
	case '{':
		closeCh = '}'
	case '[':
		closeCh = ']'
	default:
		return -1
	}

	depth := 0
	inString := false
	n := len(text)
	for i := start; i < n; i++ {
		ch := text[i]
		if inString {
			switch ch {
			case '\\':
				i++
			case '"':
				inString = false
			}
			continue
		}
		switch ch {
		case '"':
			inString = true
		case openCh:
			depth++
		case closeCh:
			depth--
			if depth == 0 {
				return i
			}
		}
	}
	return -1
}
