package anthropic

import "github.com/deepnoodle-ai/trellokeep/llm"

// Request is the Anthropic Messages API request body.
type Request struct {
	Model       string         `json:"model"`
	Messages    []*llm.Message `json:"messages"`
	MaxTokens   *int           `json:"max_tokens,omitempty"`
	System      string         `json:"system,omitempty"`
	Temperature *float64       `json:"temperature,omitempty"`
}

// Response is the Anthropic Messages API response body.
type Response struct {
	ID         string         `json:"id"`
	Type       string         `json:"type"`
	Role       llm.Role       `json:"role"`
	Model      string         `json:"model"`
	Content    []*llm.Content `json:"content"`
	StopReason string         `json:"stop_reason"`
	Usage      Usage          `json:"usage"`
}

// Usage contains token usage counts reported by the API.
type Usage struct {
	InputTokens  int `json:"input_tokens"`
	OutputTokens int `json:"output_tokens"`
}
