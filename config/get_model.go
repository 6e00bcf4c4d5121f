package config

import (
	"fmt"

	"github.com/deepnoodle-ai/trellokeep/llm"
	"github.com/deepnoodle-ai/trellokeep/llm/providers/anthropic"
	"github.com/deepnoodle-ai/trellokeep/llm/providers/google"
	"github.com/deepnoodle-ai/trellokeep/llm/providers/openai"
)

var DefaultProvider = "anthropic"

// GetModel returns an LLM for the given provider and model names. An empty
// provider selects the default; an empty model selects the provider's
// default model.
func GetModel(providerName, modelName string) (llm.LLM, error) {
	if providerName == "" {
		providerName = DefaultProvider
	}

	switch providerName {
	case "anthropic":
		opts := []anthropic.Option{}
		if modelName != "" {
			opts = append(opts, anthropic.WithModel(modelName))
		}
		return anthropic.New(opts...), nil

	case "openai":
		opts := []openai.Option{}
		if modelName != "" {
			opts = append(opts, openai.WithModel(modelName))
		}
		return openai.New(opts...), nil

	case "google":
		opts := []google.Option{}
		if modelName != "" {
			opts = append(opts, google.WithModel(modelName))
		}
		return google.New(opts...), nil

	default:
		return nil, fmt.Errorf("unsupported provider: %q", providerName)
	}
}
