// Package google implements the llm.LLM interface using the Google GenAI
// SDK (Gemini models).
package google

import (
	"context"
	"fmt"
	"os"
	"sync"
	"time"

	"github.com/deepnoodle-ai/trellokeep/llm"
	"github.com/deepnoodle-ai/trellokeep/retry"
	"google.golang.org/genai"
)

const ProviderName = "google"

var (
	DefaultModel         = "gemini-2.5-flash"
	DefaultMaxTokens     = 4096
	DefaultMaxRetries    = 3
	DefaultRetryBaseWait = 1 * time.Second
)

var _ llm.LLM = &Provider{}

type Provider struct {
	client        *genai.Client
	projectID     string
	location      string
	apiKey        string
	model         string
	maxTokens     int
	maxRetries    int
	retryBaseWait time.Duration
	mutex         sync.Mutex
}

func New(opts ...Option) *Provider {
	var apiKey string
	if value := os.Getenv("GEMINI_API_KEY"); value != "" {
		apiKey = value
	} else if value := os.Getenv("GOOGLE_API_KEY"); value != "" {
		apiKey = value
	}
	p := &Provider{
		apiKey:        apiKey,
		model:         DefaultModel,
		maxTokens:     DefaultMaxTokens,
		maxRetries:    DefaultMaxRetries,
		retryBaseWait: DefaultRetryBaseWait,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

func (p *Provider) initClient(ctx context.Context) (*genai.Client, error) {
	p.mutex.Lock()
	defer p.mutex.Unlock()

	if p.client != nil {
		return p.client, nil
	}
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:   p.apiKey,
		Project:  p.projectID,
		Location: p.location,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create google genai client: %v", err)
	}
	p.client = client
	return p.client, nil
}

func (p *Provider) Name() string {
	return ProviderName
}

func (p *Provider) ModelName() string {
	return p.model
}

func (p *Provider) Generate(ctx context.Context, messages []*llm.Message, opts ...llm.Option) (*llm.Response, error) {
	if _, err := p.initClient(ctx); err != nil {
		return nil, err
	}

	config := &llm.Config{}
	config.Apply(opts...)

	model := config.Model
	if model == "" {
		model = p.model
	}

	contents, err := messagesToContents(messages)
	if err != nil {
		return nil, err
	}
	genConfig := p.buildGenerateConfig(config)

	var result *llm.Response
	err = retry.Do(ctx, func() error {
		resp, err := p.client.Models.GenerateContent(ctx, model, contents, genConfig)
		if err != nil {
			return fmt.Errorf("error generating content: %w", err)
		}
		var convErr error
		result, convErr = convertResponse(resp, model)
		if convErr != nil {
			return fmt.Errorf("error converting response: %w", convErr)
		}
		return nil
	}, retry.WithMaxRetries(p.maxRetries), retry.WithBaseWait(p.retryBaseWait))
	if err != nil {
		return nil, err
	}
	return result, nil
}

func (p *Provider) buildGenerateConfig(config *llm.Config) *genai.GenerateContentConfig {
	genConfig := &genai.GenerateContentConfig{}
	if config.Temperature != nil {
		temp := float32(*config.Temperature)
		genConfig.Temperature = &temp
	}
	if config.MaxTokens != nil && *config.MaxTokens > 0 {
		genConfig.MaxOutputTokens = int32(*config.MaxTokens)
	} else if p.maxTokens > 0 {
		genConfig.MaxOutputTokens = int32(p.maxTokens)
	}
	if config.SystemPrompt != "" {
		genConfig.SystemInstruction = &genai.Content{
			Parts: []*genai.Part{genai.NewPartFromText(config.SystemPrompt)},
		}
	}
	return genConfig
}

func messagesToContents(messages []*llm.Message) ([]*genai.Content, error) {
	if len(messages) == 0 {
		return nil, fmt.Errorf("no messages provided")
	}
	contents := make([]*genai.Content, 0, len(messages))
	for i, message := range messages {
		if len(message.Content) == 0 {
			return nil, fmt.Errorf("empty message detected (index %d)", i)
		}
		role := string(message.Role)
		if message.Role == llm.Assistant {
			role = "model"
		}
		content := &genai.Content{Role: role}
		for _, c := range message.Content {
			switch c.Type {
			case llm.ContentTypeText:
				content.Parts = append(content.Parts, genai.NewPartFromText(c.Text))
			default:
				return nil, fmt.Errorf("unsupported content type: %s", c.Type)
			}
		}
		contents = append(contents, content)
	}
	return contents, nil
}

func convertResponse(resp *genai.GenerateContentResponse, model string) (*llm.Response, error) {
	if resp == nil || len(resp.Candidates) == 0 {
		return nil, fmt.Errorf("empty response from google genai")
	}
	candidate := resp.Candidates[0]
	if candidate.Content == nil {
		return nil, fmt.Errorf("no content in response")
	}

	var content []*llm.Content
	for _, part := range candidate.Content.Parts {
		if part.Text != "" {
			content = append(content, &llm.Content{
				Type: llm.ContentTypeText,
				Text: part.Text,
			})
		}
	}
	if len(content) == 0 {
		return nil, fmt.Errorf("no text content in response")
	}

	var usage llm.Usage
	if resp.UsageMetadata != nil {
		usage = llm.Usage{
			InputTokens:  int(resp.UsageMetadata.PromptTokenCount),
			OutputTokens: int(resp.UsageMetadata.CandidatesTokenCount),
		}
	}

	var stopReason string
	switch candidate.FinishReason {
	case genai.FinishReasonStop:
		stopReason = "stop"
	case genai.FinishReasonMaxTokens:
		stopReason = "max_tokens"
	default:
		stopReason = "other"
	}

	return llm.NewResponse(llm.ResponseOptions{
		ID:         resp.ResponseID,
		Model:      model,
		StopReason: stopReason,
		Message: &llm.Message{
			Role:    llm.Assistant,
			Content: content,
		},
		Usage: usage,
	}), nil
}
