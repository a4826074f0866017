package analyzer

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/cstobie/commit-synth/internal/llm"
	"github.com/cstobie/commit-synth/internal/pipeline"
)

type stubClient struct {
	raw []byte
	err error
}

func (s stubClient) Call(ctx context.Context, req llm.Request) ([]byte, error) {
	return s.raw, s.err
}

func TestAnalyzeSingleFileInline(t *testing.T) {
	raw, _ := json.Marshal(apiResult{Category: "Source", Summary: "adds retry loop"})
	files := []pipeline.FileChange{{Path: "a.go", Operation: pipeline.Modified, HunkText: "+x"}}
	res, err := Analyze(context.Background(), files, stubClient{raw: raw}, "gpt-4.1")
	require.NoError(t, err)
	require.Len(t, res.Analyses, 1)
	require.Equal(t, pipeline.Source, res.Analyses[0].Category)
	require.Equal(t, "adds retry loop", res.Analyses[0].Summary)
	require.False(t, res.AuthPropagated)
}

func TestAnalyzePreservesOrder(t *testing.T) {
	raw, _ := json.Marshal(apiResult{Category: "Test", Summary: "s"})
	files := []pipeline.FileChange{
		{Path: "a.go", Operation: pipeline.Modified, HunkText: "+x"},
		{Path: "b.go", Operation: pipeline.Added, HunkText: "+y"},
		{Path: "c.go", Operation: pipeline.Deleted, HunkText: "-z"},
	}
	res, err := Analyze(context.Background(), files, stubClient{raw: raw}, "gpt-4.1")
	require.NoError(t, err)
	require.Len(t, res.Analyses, 3)
	for i, f := range files {
		require.Equal(t, f.Path, res.Analyses[i].Path)
	}
}

func TestAnalyzeBinaryFileSkipsCall(t *testing.T) {
	files := []pipeline.FileChange{{Path: "logo.png", Operation: pipeline.Added, HunkText: ""}}
	res, err := Analyze(context.Background(), files, stubClient{err: errAlwaysFails{}}, "gpt-4.1")
	require.NoError(t, err)
	require.Equal(t, pipeline.CategoryBinary, res.Analyses[0].Category)
	require.Contains(t, res.Analyses[0].Summary, "logo.png")
}

type errAlwaysFails struct{ error }

func (errAlwaysFails) Error() string { return "should not be called" }

func TestAnalyzePropagatesAuthenticationOverHalfFallback(t *testing.T) {
	var files []pipeline.FileChange
	for i := 0; i < 4; i++ {
		files = append(files, pipeline.FileChange{Path: string(rune('a'+i)) + ".go", Operation: pipeline.Modified, HunkText: "+x"})
	}
	res, err := Analyze(context.Background(), files, stubClient{err: &llm.Error{Kind: llm.Authentication}}, "gpt-4.1")
	require.NoError(t, err)
	require.True(t, res.AuthPropagated)
	require.Len(t, res.Analyses, 4)
}

func TestAnalyzeMalformedResponseFallsBackLocally(t *testing.T) {
	files := []pipeline.FileChange{{Path: "a.go", Operation: pipeline.Modified, HunkText: "+x"}}
	res, err := Analyze(context.Background(), files, stubClient{raw: []byte("not json")}, "gpt-4.1")
	require.NoError(t, err)
	require.Equal(t, "Update a.go", res.Analyses[0].Summary)
}

func TestLocalAnalyzeCategoryRules(t *testing.T) {
	cases := []struct {
		path string
		op   pipeline.Operation
		want pipeline.Category
	}{
		{"internal/foo_test.go", pipeline.Modified, pipeline.Test},
		{"go.mod", pipeline.Modified, pipeline.Build},
		{"config/app.yaml", pipeline.Modified, pipeline.Config},
		{"docs/guide.md", pipeline.Modified, pipeline.Docs},
		{"assets/logo.png", pipeline.Added, pipeline.CategoryBinary},
		{"src/main.go", pipeline.Modified, pipeline.Source},
	}
	for _, c := range cases {
		got := LocalAnalyze(pipeline.FileChange{Path: c.path, Operation: c.op}).Category
		require.Equal(t, c.want, got, c.path)
	}
}

func TestAnalyzeAllLocalEveryFileCovered(t *testing.T) {
	files := []pipeline.FileChange{
		{Path: "a.go", Operation: pipeline.Added, HunkText: "+x"},
		{Path: "logo.png", Operation: pipeline.Added, HunkText: ""},
	}
	out := AnalyzeAllLocal(files, nil)
	require.Len(t, out, 2)
	require.Equal(t, "a.go", out[0].Path)
	require.Equal(t, "logo.png", out[1].Path)
}
