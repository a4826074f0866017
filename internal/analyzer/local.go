package analyzer

import (
	"path"
	"strings"

	"github.com/bmatcuk/doublestar/v4"

	"github.com/cstobie/commit-synth/internal/pipeline"
	"github.com/cstobie/commit-synth/internal/workerpool"
)

// category glob rules, evaluated in this fixed order: first match wins.
var (
	testGlobs   = []string{"tests/**", "**/*_test.*", "**/*.test.*"}
	buildGlobs  = []string{"Makefile", "justfile", "Cargo.toml", "package.json", "go.mod", "go.sum"}
	configGlobs = []string{"**/*.toml", "**/*.yaml", "**/*.yml", "**/*.ini", "**/*.json"}
	docsGlobs   = []string{"**/*.md", "docs/**"}
	sourceGlobs = []string{"**/*.rs", "**/*.go", "**/*.py", "src/**"}

	binaryExtensions = map[string]bool{
		".png": true, ".jpg": true, ".jpeg": true, ".gif": true, ".ico": true,
		".pdf": true, ".zip": true, ".tar": true, ".gz": true, ".exe": true,
		".bin": true, ".woff": true, ".woff2": true, ".ttf": true,
	}
)

func matchesAny(globs []string, p string) bool {
	for _, g := range globs {
		if ok, _ := doublestar.Match(g, p); ok {
			return true
		}
	}
	return false
}

// categoryFromPath applies the rule table in the fixed order
// Test, Build, Config, Docs, Binary, Source.
func categoryFromPath(p string, isBinaryOp bool) pipeline.Category {
	switch {
	case matchesAny(testGlobs, p):
		return pipeline.Test
	case matchesAny(buildGlobs, p):
		return pipeline.Build
	case matchesAny(configGlobs, p):
		return pipeline.Config
	case matchesAny(docsGlobs, p):
		return pipeline.Docs
	case isBinaryOp || binaryExtensions[strings.ToLower(path.Ext(p))]:
		return pipeline.CategoryBinary
	case matchesAny(sourceGlobs, p):
		return pipeline.Source
	default:
		return pipeline.Source
	}
}

func verbFor(op pipeline.Operation) string {
	switch op {
	case pipeline.Added:
		return "Add"
	case pipeline.Deleted:
		return "Remove"
	case pipeline.Renamed:
		return "Rename"
	default:
		return "Update"
	}
}

// LocalAnalyze produces a FileAnalysis using only path heuristics, no LLM
// call — the analyzer's per-task failure path and the full local-fallback
// strategy both route through this.
func LocalAnalyze(fc pipeline.FileChange) pipeline.FileAnalysis {
	category := categoryFromPath(fc.Path, fc.Operation == pipeline.Binary)
	summary := verbFor(fc.Operation) + " " + path.Base(fc.Path)
	return pipeline.FileAnalysis{
		Path:         fc.Path,
		Operation:    fc.Operation,
		Category:     category,
		Summary:      summary,
		LinesAdded:   fc.LinesAdded,
		LinesRemoved: fc.LinesRemoved,
	}
}

// localAnalyzeEmpty handles a binary file or a zero-budget allotment: no
// call is made at all, and the summary takes the "Add/Modify/Delete binary
// file <name>" shape spec.md §4.4 names explicitly.
func localAnalyzeEmpty(fc pipeline.FileChange) pipeline.FileAnalysis {
	verb := verbFor(fc.Operation)
	switch fc.Operation {
	case pipeline.Modified, pipeline.Binary:
		verb = "Modify"
	case pipeline.Deleted:
		verb = "Delete"
	}
	return pipeline.FileAnalysis{
		Path:         fc.Path,
		Operation:    fc.Operation,
		Category:     categoryFromPath(fc.Path, true),
		Summary:      verb + " binary file " + path.Base(fc.Path),
		LinesAdded:   fc.LinesAdded,
		LinesRemoved: fc.LinesRemoved,
	}
}

// AnalyzeAllLocal is the full §4.7 analyzer phase: every file through
// LocalAnalyze (or localAnalyzeEmpty for a binary or empty-hunk file), no
// network calls, used by the orchestrator's local-multi-step
// strategy. Path classification is CPU-bound and embarrassingly parallel, so
// it runs over pool. A nil pool runs inline.
func AnalyzeAllLocal(files []pipeline.FileChange, pool *workerpool.Pool) []pipeline.FileAnalysis {
	out := make([]pipeline.FileAnalysis, len(files))
	run := func(i int) {
		fc := files[i]
		if fc.Operation == pipeline.Binary || fc.HunkText == "" {
			out[i] = localAnalyzeEmpty(fc)
			return
		}
		out[i] = LocalAnalyze(fc)
	}
	if pool == nil {
		for i := range files {
			run(i)
		}
		return out
	}
	pool.Run(len(files), run)
	return out
}
