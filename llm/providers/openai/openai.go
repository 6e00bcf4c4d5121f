// Package openai implements the llm.LLM interface using the official
// openai-go SDK and the Responses API.
package openai

import (
	"context"
	"fmt"

	"github.com/deepnoodle-ai/trellokeep/llm"
	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"
	"github.com/openai/openai-go/responses"
)

var (
	DefaultModel     = openai.ChatModelGPT4o
	DefaultMaxTokens = 4096
)

var _ llm.LLM = &Provider{}

type Provider struct {
	client    openai.Client
	model     openai.ChatModel
	maxTokens int
	options   []option.RequestOption
}

func New(opts ...Option) *Provider {
	p := &Provider{
		model:     DefaultModel,
		maxTokens: DefaultMaxTokens,
	}
	for _, opt := range opts {
		opt(p)
	}
	p.client = openai.NewClient(p.options...)
	return p
}

func (p *Provider) Name() string {
	return "openai"
}

func (p *Provider) ModelName() string {
	return string(p.model)
}

func (p *Provider) Generate(ctx context.Context, messages []*llm.Message, opts ...llm.Option) (*llm.Response, error) {
	config := &llm.Config{}
	config.Apply(opts...)

	params, err := p.buildRequestParams(messages, config)
	if err != nil {
		return nil, err
	}

	response, err := p.client.Responses.New(ctx, params)
	if err != nil {
		return nil, fmt.Errorf("error making request: %w", err)
	}
	return p.convertResponse(response)
}

// buildRequestParams converts messages and config to responses.ResponseNewParams
func (p *Provider) buildRequestParams(messages []*llm.Message, config *llm.Config) (responses.ResponseNewParams, error) {
	if len(messages) == 0 {
		return responses.ResponseNewParams{}, fmt.Errorf("no messages provided")
	}

	input, err := convertMessagesToInput(messages)
	if err != nil {
		return responses.ResponseNewParams{}, err
	}

	model := p.model
	if config.Model != "" {
		model = openai.ChatModel(config.Model)
	}

	params := responses.ResponseNewParams{
		Model: model,
		Input: responses.ResponseNewParamsInputUnion{
			OfInputItemList: input,
		},
	}
	if config.SystemPrompt != "" {
		params.Instructions = openai.String(config.SystemPrompt)
	}
	if config.MaxTokens != nil && *config.MaxTokens > 0 {
		params.MaxOutputTokens = openai.Int(int64(*config.MaxTokens))
	} else if p.maxTokens > 0 {
		params.MaxOutputTokens = openai.Int(int64(p.maxTokens))
	}
	if config.Temperature != nil {
		params.Temperature = openai.Float(*config.Temperature)
	}
	return params, nil
}

// convertMessagesToInput converts llm.Message slice to SDK input format
func convertMessagesToInput(messages []*llm.Message) ([]responses.ResponseInputItemUnionParam, error) {
	var inputItems []responses.ResponseInputItemUnionParam
	for _, msg := range messages {
		var contentItems []responses.ResponseInputContentUnionParam
		for _, content := range msg.Content {
			switch content.Type {
			case llm.ContentTypeText:
				contentItems = append(contentItems, responses.ResponseInputContentUnionParam{
					OfInputText: &responses.ResponseInputTextParam{
						Text: content.Text,
					},
				})
			default:
				return nil, fmt.Errorf("unsupported content type: %s", content.Type)
			}
		}
		inputItems = append(inputItems, responses.ResponseInputItemUnionParam{
			OfMessage: &responses.EasyInputMessageParam{
				Role: responses.EasyInputMessageRole(msg.Role),
				Content: responses.EasyInputMessageContentUnionParam{
					OfInputItemContentList: contentItems,
				},
			},
		})
	}
	return inputItems, nil
}

// convertResponse converts SDK response to llm.Response
func (p *Provider) convertResponse(response *responses.Response) (*llm.Response, error) {
	var contentBlocks []*llm.Content
	for _, item := range response.Output {
		if item.Type != "message" {
			continue
		}
		outputMsg := item.AsMessage()
		for _, content := range outputMsg.Content {
			if content.Type == "output_text" {
				contentBlocks = append(contentBlocks, &llm.Content{
					Type: llm.ContentTypeText,
					Text: content.AsOutputText().Text,
				})
			}
		}
	}
	if len(contentBlocks) == 0 {
		return nil, fmt.Errorf("empty response from openai api")
	}

	return llm.NewResponse(llm.ResponseOptions{
		ID:         response.ID,
		Model:      string(response.Model),
		StopReason: string(response.Status),
		Message: &llm.Message{
			Role:    llm.Assistant,
			Content: contentBlocks,
		},
		Usage: llm.Usage{
			InputTokens:  int(response.Usage.InputTokens),
			OutputTokens: int(response.Usage.OutputTokens),
		},
	}), nil
}
