package trellokeep

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/deepnoodle-ai/trellokeep/llm"
	"github.com/deepnoodle-ai/trellokeep/slogger"
)

const transformSystemPrompt = `You reorganize shopping and task lists. You are given the current lists as JSON together with instructions describing how to filter, regroup, or reorder the items.

Apply the instructions and respond with JSON only, no prose, matching exactly this schema:

{"lists": [{"name": "...", "items": ["...", "..."]}, ...]}

Rules:
1. Keep item texts verbatim unless the instructions say otherwise
2. You may drop items or lists the instructions say to exclude
3. You may introduce new lists to group items if the instructions ask for that
4. The order of lists and items in your response is the order that will appear in the final note`

var (
	DefaultTransformMaxTokens = 4096
)

// Transformer is the optional filter/reorder stage of the pipeline. It hands
// a snapshot plus user instructions to an LLM and accepts a replacement
// snapshot back, after strict schema validation. A validation failure is
// surfaced as a *ValidationError rather than silently falling back to the
// input snapshot.
type Transformer struct {
	model       llm.LLM
	maxTokens   int
	temperature *float64
	logger      slogger.Logger
}

// TransformerOption configures a Transformer.
type TransformerOption func(*Transformer)

// WithTransformMaxTokens sets the max tokens for the model call.
func WithTransformMaxTokens(maxTokens int) TransformerOption {
	return func(t *Transformer) {
		t.maxTokens = maxTokens
	}
}

// WithTransformTemperature sets the temperature for the model call.
func WithTransformTemperature(temperature float64) TransformerOption {
	return func(t *Transformer) {
		t.temperature = &temperature
	}
}

// WithTransformLogger sets the logger.
func WithTransformLogger(logger slogger.Logger) TransformerOption {
	return func(t *Transformer) {
		t.logger = logger
	}
}

// NewTransformer returns a Transformer backed by the given model.
func NewTransformer(model llm.LLM, opts ...TransformerOption) *Transformer {
	t := &Transformer{
		model:     model,
		maxTokens: DefaultTransformMaxTokens,
		logger:    slogger.DefaultLogger,
	}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

// Transform serializes the snapshot, sends it to the model along with the
// instructions, and parses the model's response into a new snapshot. Lists
// and items come back in exactly the order the model chose; nothing is
// re-sorted and no provenance check is made against the input, so the model
// may drop items or invent grouping lists as the instructions direct.
func (t *Transformer) Transform(ctx context.Context, snapshot *Snapshot, instructions string) (*Snapshot, error) {
	serialized, err := json.MarshalIndent(snapshot, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("error serializing snapshot: %w", err)
	}

	prompt := fmt.Sprintf("Instructions:\n%s\n\nCurrent lists:\n%s", instructions, serialized)

	opts := []llm.Option{
		llm.WithSystemPrompt(transformSystemPrompt),
		llm.WithMaxTokens(t.maxTokens),
		llm.WithLogger(t.logger),
	}
	if t.temperature != nil {
		opts = append(opts, llm.WithTemperature(*t.temperature))
	}

	response, err := t.model.Generate(ctx, []*llm.Message{llm.NewUserMessage(prompt)}, opts...)
	if err != nil {
		return nil, fmt.Errorf("transform model call failed: %w", err)
	}

	text := response.Message().Text()
	t.logger.Debug("transform response received",
		"provider", t.model.Name(),
		"input_tokens", response.Usage().InputTokens,
		"output_tokens", response.Usage().OutputTokens)

	transformed, err := parseSnapshot(extractJSON(text))
	if err != nil {
		return nil, err
	}
	return transformed, nil
}

// parseSnapshot validates a model response against the snapshot schema:
// an object with a "lists" array whose entries each have a string "name" and
// a string array "items". Pointer fields distinguish missing keys from empty
// values.
func parseSnapshot(data string) (*Snapshot, error) {
	var payload struct {
		Lists *[]struct {
			Name  *string   `json:"name"`
			Items *[]string `json:"items"`
		} `json:"lists"`
	}
	if err := json.Unmarshal([]byte(data), &payload); err != nil {
		return nil, &ValidationError{Reason: "response does not match the list schema", Err: err}
	}
	if payload.Lists == nil {
		return nil, &ValidationError{Reason: `missing "lists" key`}
	}

	snapshot := &Snapshot{Lists: make([]NamedList, 0, len(*payload.Lists))}
	for i, list := range *payload.Lists {
		if list.Name == nil {
			return nil, &ValidationError{Reason: fmt.Sprintf(`list %d is missing a "name"`, i)}
		}
		if list.Items == nil {
			return nil, &ValidationError{Reason: fmt.Sprintf(`list %d (%q) is missing an "items" array`, i, *list.Name)}
		}
		items := make([]string, 0, len(*list.Items))
		items = append(items, *list.Items...)
		snapshot.Lists = append(snapshot.Lists, NamedList{
			Name:  *list.Name,
			Items: items,
		})
	}
	return snapshot, nil
}

// extractJSON finds the first balanced JSON object or array in a model
// response. Models sometimes wrap their JSON in prose or code fences.
func extractJSON(response string) string {
	start := -1
	for i, char := range response {
		if char == '{' || char == '[' {
			start = i
			break
		}
	}
	if start == -1 {
		return response // No JSON found, return original
	}

	braceCount := 0
	bracketCount := 0
	end := -1
	for i := start; i < len(response); i++ {
		switch response[i] {
		case '{':
			braceCount++
		case '}':
			braceCount--
		case '[':
			bracketCount++
		case ']':
			bracketCount--
		}
		if braceCount == 0 && bracketCount == 0 {
			end = i + 1
			break
		}
	}
	if end == -1 {
		return response // No complete JSON found
	}
	return response[start:end]
}
