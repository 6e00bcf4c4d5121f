package trellokeep

import (
	"context"
	"errors"
	"testing"

	"github.com/deepnoodle-ai/trellokeep/llm"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeModel implements llm.LLM and returns a canned response.
type fakeModel struct {
	response     string
	err          error
	calls        int
	lastMessages []*llm.Message
	lastConfig   llm.Config
}

func (m *fakeModel) Name() string { return "fake" }

func (m *fakeModel) Generate(ctx context.Context, messages []*llm.Message, opts ...llm.Option) (*llm.Response, error) {
	m.calls++
	m.lastMessages = messages
	config := llm.Config{}
	config.Apply(opts...)
	m.lastConfig = config
	if m.err != nil {
		return nil, m.err
	}
	return llm.NewResponse(llm.ResponseOptions{
		Message: llm.NewAssistantMessage(m.response),
	}), nil
}

func TestTransformAcceptsValidResponse(t *testing.T) {
	model := &fakeModel{
		response: `{"lists": [{"name": "Lidl", "items": ["Eggs", "Milk"]}]}`,
	}
	transformer := NewTransformer(model)

	snapshot := &Snapshot{Lists: []NamedList{
		{Name: "Lidl", Items: []string{"Milk", "Eggs", "Oats"}},
	}}
	transformed, err := transformer.Transform(context.Background(), snapshot, "drop oats, eggs first")
	require.NoError(t, err)

	// The model's order and filtering are taken verbatim
	require.Len(t, transformed.Lists, 1)
	assert.Equal(t, []string{"Eggs", "Milk"}, transformed.Lists[0].Items)

	// The prompt carries both the instructions and the serialized snapshot
	require.Len(t, model.lastMessages, 1)
	prompt := model.lastMessages[0].Text()
	assert.Contains(t, prompt, "drop oats, eggs first")
	assert.Contains(t, prompt, `"Oats"`)
	assert.NotEmpty(t, model.lastConfig.SystemPrompt)
}

func TestTransformExtractsJSONFromProse(t *testing.T) {
	model := &fakeModel{
		response: "Here you go:\n```json\n{\"lists\": [{\"name\": \"Lidl\", \"items\": [\"Milk\"]}]}\n```\nEnjoy!",
	}
	transformer := NewTransformer(model)

	snapshot := &Snapshot{Lists: []NamedList{{Name: "Lidl", Items: []string{"Milk"}}}}
	transformed, err := transformer.Transform(context.Background(), snapshot, "keep as is")
	require.NoError(t, err)
	require.Len(t, transformed.Lists, 1)
	assert.Equal(t, []string{"Milk"}, transformed.Lists[0].Items)
}

func TestTransformAcceptsModelInventedLists(t *testing.T) {
	// The transform does not cross-check provenance: the model may split
	// one list into new groupings.
	model := &fakeModel{
		response: `{"lists": [
			{"name": "Fridge", "items": ["Milk"]},
			{"name": "Pantry", "items": ["Oats"]}
		]}`,
	}
	transformer := NewTransformer(model)

	snapshot := &Snapshot{Lists: []NamedList{{Name: "Lidl", Items: []string{"Milk", "Oats"}}}}
	transformed, err := transformer.Transform(context.Background(), snapshot, "group by storage location")
	require.NoError(t, err)
	require.Len(t, transformed.Lists, 2)
	assert.Equal(t, "Fridge", transformed.Lists[0].Name)
	assert.Equal(t, "Pantry", transformed.Lists[1].Name)
}

func TestTransformValidation(t *testing.T) {
	tests := []struct {
		name     string
		response string
	}{
		{"not json", "sorry, I cannot help with that"},
		{"missing lists key", `{"groups": []}`},
		{"lists not an array", `{"lists": 42}`},
		{"list missing name", `{"lists": [{"items": ["Milk"]}]}`},
		{"list missing items", `{"lists": [{"name": "Lidl"}]}`},
		{"items not an array", `{"lists": [{"name": "Lidl", "items": "Milk"}]}`},
		{"items not strings", `{"lists": [{"name": "Lidl", "items": [1, 2]}]}`},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			model := &fakeModel{response: tc.response}
			transformer := NewTransformer(model)
			snapshot := &Snapshot{Lists: []NamedList{{Name: "Lidl", Items: []string{"Milk"}}}}

			_, err := transformer.Transform(context.Background(), snapshot, "reorder")
			require.Error(t, err)
			var validation *ValidationError
			require.ErrorAs(t, err, &validation)
		})
	}
}

func TestTransformPropagatesModelErrors(t *testing.T) {
	model := &fakeModel{err: errors.New("quota exceeded")}
	transformer := NewTransformer(model)
	snapshot := &Snapshot{Lists: []NamedList{{Name: "Lidl", Items: []string{"Milk"}}}}

	_, err := transformer.Transform(context.Background(), snapshot, "reorder")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "quota exceeded")

	var validation *ValidationError
	assert.False(t, errors.As(err, &validation))
}

func TestExtractJSON(t *testing.T) {
	tests := []struct {
		name     string
		response string
		expected string
	}{
		{"bare object", `{"lists": []}`, `{"lists": []}`},
		{"wrapped in prose", `Sure! {"lists": []} Done.`, `{"lists": []}`},
		{"nested braces", `{"a": {"b": [1, 2]}}`, `{"a": {"b": [1, 2]}}`},
		{"no json", "no structured data here", "no structured data here"},
		{"unterminated", `{"lists": [`, `{"lists": [`},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expected, extractJSON(tc.response))
		})
	}
}
