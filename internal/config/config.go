// Package config loads the flat configuration key/value map spec.md §6
// describes into an immutable Snapshot, using viper the way the teacher's
// own config package does: env-prefixed, bound keys, defaults up front.
package config

import (
	"os"
	"strings"

	"github.com/spf13/viper"
)

const envPrefix = "COMMITSYNTH"

// Snapshot is the immutable configuration passed explicitly into the
// orchestrator; nothing downstream ever reads viper or any other
// package-level singleton directly.
type Snapshot struct {
	OpenAIAPIKey    string
	Model           string
	MaxTokens       int
	MaxCommitLength int
	TimeoutSeconds  int
}

const (
	defaultModel           = "gpt-4.1"
	defaultMaxTokens       = 512
	defaultMaxCommitLength = 72
	defaultTimeoutSeconds  = 30
)

// Load reads the configuration keys from spec.md §6 via viper, falling
// back to OPENAI_API_KEY when openai-api-key is unset, and substituting
// defaults for an empty model string (an unknown model string is still
// accepted verbatim — validity is the transport's problem at call time).
func Load() (Snapshot, error) {
	v := viper.New()
	v.SetEnvPrefix(envPrefix)
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))

	v.BindEnv("openai-api-key")
	v.BindEnv("model")
	v.BindEnv("max-tokens")
	v.BindEnv("max-commit-length")
	v.BindEnv("timeout")

	v.SetDefault("model", defaultModel)
	v.SetDefault("max-tokens", defaultMaxTokens)
	v.SetDefault("max-commit-length", defaultMaxCommitLength)
	v.SetDefault("timeout", defaultTimeoutSeconds)

	apiKey := v.GetString("openai-api-key")
	if apiKey == "" {
		apiKey = os.Getenv("OPENAI_API_KEY")
	}

	model := v.GetString("model")
	if model == "" {
		model = defaultModel
	}

	snap := Snapshot{
		OpenAIAPIKey:    apiKey,
		Model:           model,
		MaxTokens:       v.GetInt("max-tokens"),
		MaxCommitLength: v.GetInt("max-commit-length"),
		TimeoutSeconds:  v.GetInt("timeout"),
	}
	if snap.MaxTokens <= 0 {
		snap.MaxTokens = defaultMaxTokens
	}
	if snap.MaxCommitLength <= 0 {
		snap.MaxCommitLength = defaultMaxCommitLength
	}
	if snap.TimeoutSeconds <= 0 {
		snap.TimeoutSeconds = defaultTimeoutSeconds
	}
	return snap, nil
}
