package anthropic

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/deepnoodle-ai/trellokeep/llm"
	"github.com/stretchr/testify/require"
)

func TestGenerate(t *testing.T) {
	var gotRequest Request
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "test-key", r.Header.Get("x-api-key"))
		require.Equal(t, DefaultVersion, r.Header.Get("anthropic-version"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotRequest))

		json.NewEncoder(w).Encode(Response{
			ID:         "msg_123",
			Role:       llm.Assistant,
			Model:      gotRequest.Model,
			Content:    []*llm.Content{{Type: llm.ContentTypeText, Text: "hello"}},
			StopReason: "end_turn",
			Usage:      Usage{InputTokens: 10, OutputTokens: 2},
		})
	}))
	defer server.Close()

	provider := New(
		WithAPIKey("test-key"),
		WithEndpoint(server.URL),
		WithModel("claude-test"),
	)
	response, err := provider.Generate(context.Background(),
		[]*llm.Message{llm.NewUserMessage("say hello")},
		llm.WithSystemPrompt("be brief"),
		llm.WithMaxTokens(128),
	)
	require.NoError(t, err)
	require.Equal(t, "hello", response.Message().Text())
	require.Equal(t, "msg_123", response.ID())
	require.Equal(t, "end_turn", response.StopReason())
	require.Equal(t, 10, response.Usage().InputTokens)

	require.Equal(t, "claude-test", gotRequest.Model)
	require.Equal(t, "be brief", gotRequest.System)
	require.NotNil(t, gotRequest.MaxTokens)
	require.Equal(t, 128, *gotRequest.MaxTokens)
	require.Len(t, gotRequest.Messages, 1)
	require.Equal(t, llm.User, gotRequest.Messages[0].Role)
}

func TestGenerateAPIError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		w.Write([]byte(`{"error":{"type":"invalid_request_error"}}`))
	}))
	defer server.Close()

	provider := New(WithAPIKey("test-key"), WithEndpoint(server.URL))
	_, err := provider.Generate(context.Background(),
		[]*llm.Message{llm.NewUserMessage("hi")})
	require.Error(t, err)
	require.Contains(t, err.Error(), "status 400")
}

func TestGenerateRetriesServerErrors(t *testing.T) {
	var calls int
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		if calls < 3 {
			w.WriteHeader(http.StatusServiceUnavailable)
			return
		}
		json.NewEncoder(w).Encode(Response{
			ID:      "msg_retry",
			Content: []*llm.Content{{Type: llm.ContentTypeText, Text: "ok"}},
		})
	}))
	defer server.Close()

	provider := New(
		WithAPIKey("test-key"),
		WithEndpoint(server.URL),
		WithRetryBaseWait(time.Millisecond),
	)
	response, err := provider.Generate(context.Background(),
		[]*llm.Message{llm.NewUserMessage("hi")})
	require.NoError(t, err)
	require.Equal(t, "ok", response.Message().Text())
	require.Equal(t, 3, calls)
}

func TestGenerateRequiresMessages(t *testing.T) {
	provider := New(WithAPIKey("test-key"))
	_, err := provider.Generate(context.Background(), nil)
	require.Error(t, err)
	require.Contains(t, err.Error(), "no messages")
}
