package orchestrator

import "github.com/cstobie/commit-synth/internal/llm"

// fromLLMKind maps the transport's ErrorKind into the orchestrator's
// (wider) taxonomy; the transport's constants are a strict subset.
func fromLLMKind(k llm.ErrorKind) ErrorKind {
	switch k {
	case llm.Authentication:
		return Authentication
	case llm.RateLimit:
		return RateLimit
	case llm.Network:
		return Network
	case llm.Timeout:
		return Timeout
	case llm.SchemaViolation:
		return SchemaViolation
	default:
		return ProviderError
	}
}

// asStrategyError normalizes any error into a *StrategyError, classifying
// *llm.Error by its Kind and defaulting anything else to ProviderError.
func asStrategyError(err error) *StrategyError {
	if err == nil {
		return nil
	}
	if se, ok := err.(*StrategyError); ok {
		return se
	}
	if le, ok := err.(*llm.Error); ok {
		return &StrategyError{Kind: fromLLMKind(le.Kind), Err: le}
	}
	return &StrategyError{Kind: ProviderError, Err: err}
}
