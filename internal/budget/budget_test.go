package budget

import (
	"strings"
	"testing"

	"github.com/cstobie/commit-synth/internal/pipeline"
	"github.com/cstobie/commit-synth/internal/tokenizer"
)

func fc(path string, op pipeline.Operation, hunk string) pipeline.FileChange {
	return pipeline.FileChange{Path: path, Operation: op, HunkText: hunk}
}

func TestAllocateExhaustedBudget(t *testing.T) {
	tok := tokenizer.New("gpt-4.1")
	files := []pipeline.FileChange{fc("a.go", pipeline.Modified, "+hello")}
	b, out := Allocate(files, 200, 100, tok)
	if !b.Exhausted() {
		t.Fatalf("expected exhausted budget")
	}
	if len(b.PerFile) != 0 {
		t.Fatalf("expected empty per-file map, got %v", b.PerFile)
	}
	if out[0].HunkText != files[0].HunkText {
		t.Fatalf("files must be unchanged when budget is exhausted")
	}
}

func TestAllocateFitsWithinBudget(t *testing.T) {
	tok := tokenizer.New("gpt-4.1")
	files := []pipeline.FileChange{
		fc("a.go", pipeline.Modified, "+hello world"),
		fc("b.go", pipeline.Added, "+another small change"),
	}
	b, out := Allocate(files, 50, 2048, tok)
	total := b.TemplateCost
	for _, f := range files {
		total += b.PerFile[f.Path]
	}
	if total > b.GlobalMax {
		t.Fatalf("invariant violated: %d > %d", total, b.GlobalMax)
	}
	for i, f := range out {
		if f.HunkText != files[i].HunkText {
			t.Fatalf("expected no truncation when budget is ample")
		}
	}
}

func TestAllocateUnderPressureRespectsInvariant(t *testing.T) {
	tok := tokenizer.New("gpt-4.1")
	var files []pipeline.FileChange
	for i := 0; i < 20; i++ {
		files = append(files, fc(
			string(rune('a'+i))+".go",
			pipeline.Modified,
			"+"+strings.Repeat("word ", 200),
		))
	}
	b, out := Allocate(files, 200, 2048, tok)
	if b.Exhausted() {
		t.Fatalf("budget should not be exhausted")
	}
	total := b.TemplateCost
	for _, f := range files {
		total += b.PerFile[f.Path]
	}
	if total > b.GlobalMax {
		t.Fatalf("invariant violated: used %d > max %d", total, b.GlobalMax)
	}
	truncated := 0
	for i, f := range out {
		if tok.CountTokens(f.HunkText) < tok.CountTokens(files[i].HunkText) {
			truncated++
		}
	}
	if truncated == 0 {
		t.Fatalf("expected at least one file to be truncated under pressure")
	}
	for _, alloc := range b.PerFile {
		if alloc < floorTokens {
			t.Fatalf("expected floor of %d tokens, got %d", floorTokens, alloc)
		}
	}
}

func TestAllocatePreservesInputOrder(t *testing.T) {
	tok := tokenizer.New("gpt-4.1")
	files := []pipeline.FileChange{
		fc("z.go", pipeline.Binary, ""),
		fc("a.go", pipeline.Added, "+x"),
		fc("m.go", pipeline.Modified, "+y"),
	}
	_, out := Allocate(files, 10, 1000, tok)
	for i := range files {
		if out[i].Path != files[i].Path {
			t.Fatalf("order changed at index %d: got %s, want %s", i, out[i].Path, files[i].Path)
		}
	}
}

func TestAllocateFloorBelowRawCount(t *testing.T) {
	tok := tokenizer.New("gpt-4.1")
	// A handful of huge files plus one tiny file: the tiny file's raw count
	// is below the 32-token floor, so it should get exactly its raw count,
	// not the 32-token floor, and there's enough headroom for the floor
	// allotments themselves to fit comfortably. With six files (at most
	// mediumFileSetSize) raw counts are the bytes/4 estimates.
	files := []pipeline.FileChange{
		fc("tiny.go", pipeline.Modified, "+x"),
	}
	for i := 0; i < 5; i++ {
		files = append(files, fc(
			string(rune('b'+i))+".go",
			pipeline.Modified,
			"+"+strings.Repeat("big change content here ", 2000),
		))
	}
	b, _ := Allocate(files, 10, 1000, tok)
	tinyRaw := approxTokens("+x")
	if b.PerFile["tiny.go"] != tinyRaw {
		t.Fatalf("expected tiny file to get its raw count %d, got %d", tinyRaw, b.PerFile["tiny.go"])
	}
}
