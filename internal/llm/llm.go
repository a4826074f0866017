// Package llm defines the transport contract the pipeline uses to talk to a
// language model: a schema-in, value-out function call that never leaks
// provider-specific detail past a closed set of error kinds.
package llm

import "context"

// ErrorKind is the closed set of ways a Client call can fail. Strategies
// upstream dispatch on this value rather than inspecting provider errors.
type ErrorKind string

const (
	Authentication  ErrorKind = "authentication"
	RateLimit       ErrorKind = "rate_limit"
	Network         ErrorKind = "network"
	Timeout         ErrorKind = "timeout"
	SchemaViolation ErrorKind = "schema_violation"
	ProviderError   ErrorKind = "provider_error"
)

// Error wraps a transport failure with its kind and the underlying cause.
type Error struct {
	Kind ErrorKind
	Err  error
}

func (e *Error) Error() string {
	if e.Err == nil {
		return string(e.Kind)
	}
	return string(e.Kind) + ": " + e.Err.Error()
}

func (e *Error) Unwrap() error { return e.Err }

// Schema describes the shape of the structured value a Call must return, in
// the same vocabulary the provider's function-calling / tools field expects:
// a name, a human-readable description, and a JSON schema for the arguments.
type Schema struct {
	Name        string
	Description string
	Parameters  map[string]any // JSON-schema document
}

// Request is one LLM call: a system/user prompt pair plus the schema the
// response must conform to.
type Request struct {
	Model        string
	SystemPrompt string
	UserPrompt   string
	Schema       Schema
	MaxTokens    int
	Temperature  float64
}

// Client is the one seam between the pipeline and any concrete provider.
// Call returns the raw JSON payload conforming to Request.Schema, or an
// *Error whose Kind is one of the constants above.
type Client interface {
	Call(ctx context.Context, req Request) ([]byte, error)
}
