// Package llm defines a provider-agnostic interface for large language
// models. Implementations live in the llm/providers subpackages.
package llm

import "context"

// LLM is implemented by model providers.
type LLM interface {
	// Name of the provider, e.g. "anthropic".
	Name() string

	// Generate a response from the LLM by passing messages.
	Generate(ctx context.Context, messages []*Message, opts ...Option) (*Response, error)
}
