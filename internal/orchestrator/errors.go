package orchestrator

import "strings"

// ErrorKind is the closed taxonomy of ways a generation strategy can fail.
// It is a separate type that repeats llm.ErrorKind's values and adds three
// pipeline-local kinds (MalformedDiff, BudgetExhausted, IOWriteFailed) that
// never originate at the transport boundary.
type ErrorKind string

const (
	Authentication  ErrorKind = "authentication"
	RateLimit       ErrorKind = "rate_limit"
	Network         ErrorKind = "network"
	Timeout         ErrorKind = "timeout"
	SchemaViolation ErrorKind = "schema_violation"
	ProviderError   ErrorKind = "provider_error"
	MalformedDiff   ErrorKind = "malformed_diff"
	BudgetExhausted ErrorKind = "budget_exhausted"
	IOWriteFailed   ErrorKind = "io_write_failed"
)

// StrategyError wraps one strategy's failure with its kind, the underlying
// cause, and the chain of strategies that failed before it, so the final
// surfaced error can name every attempt.
type StrategyError struct {
	Kind  ErrorKind
	Err   error
	Chain []*StrategyError
}

func (e *StrategyError) Error() string {
	var b strings.Builder
	b.WriteString(string(e.Kind))
	if e.Err != nil {
		b.WriteString(": ")
		b.WriteString(e.Err.Error())
	}
	return b.String()
}

func (e *StrategyError) Unwrap() error { return e.Err }

// WithPrior returns a copy of e with prior appended to its chain, used as
// each strategy failure is folded into the next attempt's error.
func (e *StrategyError) WithPrior(prior *StrategyError) *StrategyError {
	if prior == nil {
		return e
	}
	chain := make([]*StrategyError, 0, len(prior.Chain)+1)
	chain = append(chain, prior.Chain...)
	chain = append(chain, prior)
	e.Chain = chain
	return e
}
