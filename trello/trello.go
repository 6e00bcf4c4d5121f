// Package trello implements a client for the Trello REST API, scoped to
// fetching the lists and cards of a board. It implements the
// trellokeep.BoardSource interface.
package trello

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/deepnoodle-ai/trellokeep"
	"github.com/deepnoodle-ai/trellokeep/retry"
	"github.com/deepnoodle-ai/trellokeep/slogger"
)

var (
	DefaultEndpoint      = "https://api.trello.com/1"
	DefaultClient        = &http.Client{Timeout: 30 * time.Second}
	DefaultMaxRetries    = 3
	DefaultRetryBaseWait = 1 * time.Second
)

var _ trellokeep.BoardSource = &Client{}

// Client talks to the Trello API using key/token authentication.
type Client struct {
	apiKey        string
	token         string
	endpoint      string
	client        *http.Client
	maxRetries    int
	retryBaseWait time.Duration
	logger        slogger.Logger
}

// New returns a Trello client. The API key and token are required.
func New(opts ...Option) (*Client, error) {
	c := &Client{
		endpoint:      DefaultEndpoint,
		client:        DefaultClient,
		maxRetries:    DefaultMaxRetries,
		retryBaseWait: DefaultRetryBaseWait,
		logger:        slogger.DefaultLogger,
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.apiKey == "" {
		return nil, fmt.Errorf("trello api key is required")
	}
	if c.token == "" {
		return nil, fmt.Errorf("trello token is required")
	}
	return c, nil
}

// boardSummary is one entry of GET /1/members/me/boards.
type boardSummary struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// boardPayload is the response of GET /1/boards/{id} with lists and cards.
type boardPayload struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Lists []struct {
		ID   string `json:"id"`
		Name string `json:"name"`
	} `json:"lists"`
	Cards []struct {
		Name   string `json:"name"`
		IDList string `json:"idList"`
	} `json:"cards"`
}

// Board fetches a board by its display name and assembles the raw board
// structure: lists in board order, each with its open cards in card order.
func (c *Client) Board(ctx context.Context, name string) (*trellokeep.Board, error) {
	boardID, err := c.boardIDByName(ctx, name)
	if err != nil {
		return nil, err
	}

	query := url.Values{
		"lists":       {"open"},
		"cards":       {"open"},
		"card_fields": {"name,idList"},
	}
	var payload boardPayload
	if err := c.get(ctx, fmt.Sprintf("/boards/%s", boardID), query, &payload); err != nil {
		return nil, err
	}

	board := &trellokeep.Board{
		Name:  payload.Name,
		Lists: make([]trellokeep.SourceList, 0, len(payload.Lists)),
	}
	cardsByList := make(map[string][]string, len(payload.Lists))
	for _, card := range payload.Cards {
		cardsByList[card.IDList] = append(cardsByList[card.IDList], card.Name)
	}
	for _, list := range payload.Lists {
		board.Lists = append(board.Lists, trellokeep.SourceList{
			Name:  list.Name,
			Cards: cardsByList[list.ID],
		})
	}
	c.logger.Debug("board fetched",
		"board", payload.Name,
		"lists", len(payload.Lists),
		"cards", len(payload.Cards))
	return board, nil
}

func (c *Client) boardIDByName(ctx context.Context, name string) (string, error) {
	var boards []boardSummary
	query := url.Values{"fields": {"name"}}
	if err := c.get(ctx, "/members/me/boards", query, &boards); err != nil {
		return "", err
	}
	for _, board := range boards {
		if board.Name == name {
			return board.ID, nil
		}
	}
	return "", fmt.Errorf("board %q not found", name)
}

func (c *Client) get(ctx context.Context, path string, query url.Values, result any) error {
	query.Set("key", c.apiKey)
	query.Set("token", c.token)
	requestURL := fmt.Sprintf("%s%s?%s", c.endpoint, path, query.Encode())

	return retry.Do(ctx, func() error {
		req, err := http.NewRequestWithContext(ctx, "GET", requestURL, nil)
		if err != nil {
			return fmt.Errorf("error creating request: %w", err)
		}
		resp, err := c.client.Do(req)
		if err != nil {
			return fmt.Errorf("error making request: %w", err)
		}
		defer resp.Body.Close()

		if resp.StatusCode != http.StatusOK {
			body, _ := io.ReadAll(resp.Body)
			return newAPIError(resp.StatusCode, string(body))
		}
		if err := json.NewDecoder(resp.Body).Decode(result); err != nil {
			return fmt.Errorf("error decoding response: %w", err)
		}
		return nil
	}, retry.WithMaxRetries(c.maxRetries), retry.WithBaseWait(c.retryBaseWait))
}
