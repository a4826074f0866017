// Package diffparser turns a unified-diff byte stream into an ordered list
// of pipeline.FileChange records. It never round-trips through the git
// CLI itself; the byte stream is supplied by the caller (the git
// collaborator, internal/git, in production; raw fixtures in tests).
package diffparser

import (
	"errors"
	"strings"

	"github.com/cstobie/commit-synth/internal/pipeline"
)

// ErrMalformedDiff is returned when a non-empty input contains no
// recognizable "diff --git" file header.
var ErrMalformedDiff = errors.New("diffparser: no recognizable file header")

const headerPrefix = "diff --git "

var pathMarkers = []string{"a/", "b/", "c/", "i/", "w/"}

// Parse converts a unified-diff byte stream into an ordered list of
// FileChange records. An empty input yields an empty, non-nil slice. A
// non-empty input with no recognizable header returns ErrMalformedDiff.
func Parse(diff []byte) ([]pipeline.FileChange, error) {
	if len(diff) == 0 {
		return []pipeline.FileChange{}, nil
	}
	// Replace invalid UTF-8 byte sequences with U+FFFD rather than decoding
	// them as raw bytes further down the pipeline; this is a superset of the
	// "non-UTF-8 bytes inside hunks" requirement but never changes already
	// valid text.
	text := strings.ToValidUTF8(string(diff), "�")
	lines := strings.Split(text, "\n")

	var blocks [][]string
	var cur []string
	for _, line := range lines {
		if strings.HasPrefix(line, headerPrefix) {
			if cur != nil {
				blocks = append(blocks, cur)
			}
			cur = []string{line}
			continue
		}
		if cur != nil {
			cur = append(cur, line)
		}
	}
	if cur != nil {
		blocks = append(blocks, cur)
	}
	if len(blocks) == 0 {
		return nil, ErrMalformedDiff
	}

	files := make([]pipeline.FileChange, 0, len(blocks))
	for _, block := range blocks {
		fc, ok := parseBlock(block)
		if ok {
			files = append(files, fc)
		}
	}
	if len(files) == 0 {
		return nil, ErrMalformedDiff
	}
	return files, nil
}

func parseBlock(lines []string) (pipeline.FileChange, bool) {
	header := lines[0]
	rest := strings.TrimPrefix(header, headerPrefix)
	pathA, pathB := splitHeaderPaths(rest)
	if pathA == "" && pathB == "" {
		return pipeline.FileChange{}, false
	}

	var (
		hasNewFile    bool
		hasDeleted    bool
		renameFrom    string
		renameTo      string
		hasBinaryMark bool
	)

	for _, line := range lines[1:] {
		switch {
		case strings.HasPrefix(line, "new file mode"):
			hasNewFile = true
		case strings.HasPrefix(line, "deleted file mode"):
			hasDeleted = true
		case strings.HasPrefix(line, "rename from "):
			renameFrom = strings.TrimPrefix(line, "rename from ")
		case strings.HasPrefix(line, "rename to "):
			renameTo = strings.TrimPrefix(line, "rename to ")
		case strings.HasPrefix(line, "Binary files") && strings.HasSuffix(line, "differ"):
			hasBinaryMark = true
		case strings.HasPrefix(line, "GIT binary patch"):
			hasBinaryMark = true
		}
	}

	var op pipeline.Operation
	path := pathB
	switch {
	case hasNewFile:
		op = pipeline.Added
	case hasDeleted:
		op = pipeline.Deleted
	case renameFrom != "" && renameTo != "":
		op = pipeline.Renamed
		path = renameTo
	case hasBinaryMark:
		op = pipeline.Binary
	default:
		op = pipeline.Modified
	}
	if path == "" {
		path = pathA
	}

	added, removed := 0, 0
	for _, line := range lines[1:] {
		if len(line) >= 1 && line[0] == '+' && !strings.HasPrefix(line, "+++") {
			added++
		} else if len(line) >= 1 && line[0] == '-' && !strings.HasPrefix(line, "---") {
			removed++
		}
	}

	var hunkText string
	if !hasBinaryMark {
		body := lines[1:]
		for len(body) > 0 && body[len(body)-1] == "" {
			body = body[:len(body)-1]
		}
		hunkText = header + "\n" + strings.Join(body, "\n")
	}

	return pipeline.FileChange{
		Path:         path,
		Operation:    op,
		HunkText:     hunkText,
		LinesAdded:   added,
		LinesRemoved: removed,
	}, true
}

// splitHeaderPaths splits the "<A> <B>" remainder of a diff --git header
// into its two paths, stripping any recognized a/ b/ c/ i/ w/ prefix. It
// scans from the right for a recognized " <prefix>" marker (paths may
// contain spaces), falling back to a symmetric split (common when both
// sides are prefix-free and identical) and finally a naive first-space
// split.
func splitHeaderPaths(rest string) (string, string) {
	for _, marker := range pathMarkers {
		needle := " " + marker
		if idx := strings.LastIndex(rest, needle); idx >= 0 {
			left := stripKnownPrefix(rest[:idx])
			right := stripKnownPrefix(rest[idx+1:])
			return left, right
		}
	}
	// No-prefix case (core.diffPrefix=false / diff.noprefix=true): if the
	// remainder splits evenly into two identical halves around a single
	// space, use that; otherwise split at the first space.
	if n := len(rest); n >= 3 && n%2 == 1 {
		mid := n / 2
		if rest[mid] == ' ' && rest[:mid] == rest[mid+1:] {
			return rest[:mid], rest[mid+1:]
		}
	}
	if idx := strings.IndexByte(rest, ' '); idx >= 0 {
		return rest[:idx], rest[idx+1:]
	}
	return rest, rest
}

func stripKnownPrefix(p string) string {
	for _, marker := range pathMarkers {
		if strings.HasPrefix(p, marker) {
			return p[len(marker):]
		}
	}
	return p
}
