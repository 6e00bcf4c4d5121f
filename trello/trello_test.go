package trello

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()
	mux := http.NewServeMux()
	mux.HandleFunc("/members/me/boards", func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "test-key", r.URL.Query().Get("key"))
		assert.Equal(t, "test-token", r.URL.Query().Get("token"))
		json.NewEncoder(w).Encode([]map[string]string{
			{"id": "board1", "name": "Groceries"},
			{"id": "board2", "name": "Work"},
		})
	})
	mux.HandleFunc("/boards/board1", func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "open", r.URL.Query().Get("lists"))
		assert.Equal(t, "open", r.URL.Query().Get("cards"))
		json.NewEncoder(w).Encode(map[string]any{
			"id":   "board1",
			"name": "Groceries",
			"lists": []map[string]string{
				{"id": "l1", "name": "Lidl"},
				{"id": "l2", "name": "Carrefour"},
			},
			"cards": []map[string]string{
				{"name": "Milk", "idList": "l1"},
				{"name": "Bread", "idList": "l2"},
				{"name": "Eggs", "idList": "l1"},
			},
		})
	})
	return httptest.NewServer(mux)
}

func newTestClient(t *testing.T, endpoint string) *Client {
	t.Helper()
	client, err := New(
		WithAPIKey("test-key"),
		WithToken("test-token"),
		WithEndpoint(endpoint),
		WithRetryBaseWait(time.Millisecond),
	)
	require.NoError(t, err)
	return client
}

func TestBoard(t *testing.T) {
	server := newTestServer(t)
	defer server.Close()

	client := newTestClient(t, server.URL)
	board, err := client.Board(context.Background(), "Groceries")
	require.NoError(t, err)

	assert.Equal(t, "Groceries", board.Name)
	require.Len(t, board.Lists, 2)

	// Lists come back in board order, cards grouped per list in card order
	assert.Equal(t, "Lidl", board.Lists[0].Name)
	assert.Equal(t, []string{"Milk", "Eggs"}, board.Lists[0].Cards)
	assert.Equal(t, "Carrefour", board.Lists[1].Name)
	assert.Equal(t, []string{"Bread"}, board.Lists[1].Cards)
}

func TestBoardNotFound(t *testing.T) {
	server := newTestServer(t)
	defer server.Close()

	client := newTestClient(t, server.URL)
	_, err := client.Board(context.Background(), "Vacation")
	require.Error(t, err)
	assert.Contains(t, err.Error(), `board "Vacation" not found`)
}

func TestBoardAPIError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		w.Write([]byte("invalid token"))
	}))
	defer server.Close()

	client := newTestClient(t, server.URL)
	_, err := client.Board(context.Background(), "Groceries")
	require.Error(t, err)

	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusUnauthorized, apiErr.StatusCode())
}

func TestBoardRetriesServerErrors(t *testing.T) {
	var calls int
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		if calls < 2 {
			w.WriteHeader(http.StatusServiceUnavailable)
			return
		}
		json.NewEncoder(w).Encode([]map[string]string{
			{"id": "board1", "name": "Groceries"},
		})
	}))
	defer server.Close()

	client := newTestClient(t, server.URL)
	_, err := client.boardIDByName(context.Background(), "Groceries")
	require.NoError(t, err)
	assert.Equal(t, 2, calls)
}

func TestNewRequiresCredentials(t *testing.T) {
	_, err := New(WithToken("test-token"))
	require.Error(t, err)

	_, err = New(WithAPIKey("test-key"))
	require.Error(t, err)
}
