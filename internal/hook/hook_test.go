package hook

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"testing"

	charmlog "github.com/charmbracelet/log"
	"github.com/stretchr/testify/require"

	"github.com/cstobie/commit-synth/internal/config"
	"github.com/cstobie/commit-synth/internal/llm"
	"github.com/cstobie/commit-synth/internal/tokenizer"
)

func discardLogger() *charmlog.Logger {
	return charmlog.New(io.Discard)
}

type stubClient struct {
	raws [][]byte
	i    int
}

func (s *stubClient) Call(ctx context.Context, req llm.Request) ([]byte, error) {
	r := s.raws[s.i%len(s.raws)]
	s.i++
	return r, nil
}

func TestRunSkipsSynthesisForUserProvidedSource(t *testing.T) {
	dir := t.TempDir()
	msgFile := filepath.Join(dir, "COMMIT_EDITMSG")
	require.NoError(t, os.WriteFile(msgFile, []byte("existing message"), 0o644))

	args := Args{CommitMsgFile: msgFile, Source: "message"}
	err := Run(context.Background(), args, config.Snapshot{}, &stubClient{}, tokenizer.New("gpt-4.1"), discardLogger())
	require.NoError(t, err)

	got, _ := os.ReadFile(msgFile)
	require.Equal(t, "existing message", string(got))
}

func TestRunSkipsForEveryUserSource(t *testing.T) {
	for _, src := range []string{"message", "template", "merge", "squash", "commit"} {
		dir := t.TempDir()
		msgFile := filepath.Join(dir, "COMMIT_EDITMSG")
		require.NoError(t, os.WriteFile(msgFile, []byte("x"), 0o644))

		args := Args{CommitMsgFile: msgFile, Source: src}
		err := Run(context.Background(), args, config.Snapshot{}, &stubClient{}, tokenizer.New("gpt-4.1"), discardLogger())
		require.NoError(t, err, src)

		got, _ := os.ReadFile(msgFile)
		require.Equal(t, "x", string(got), src)
	}
}

func TestLastErrorKindDefaultsWhenNotStrategyError(t *testing.T) {
	kind := lastErrorKind(errPlain{})
	require.Equal(t, "provider_error", string(kind))
}

type errPlain struct{}

func (errPlain) Error() string { return "boom" }
