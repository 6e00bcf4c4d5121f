// Package keep implements a client for the Google Keep API using service
// account credentials with domain-wide delegation. It implements the
// trellokeep.NoteCreator interface.
package keep

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/deepnoodle-ai/trellokeep"
	"github.com/deepnoodle-ai/trellokeep/retry"
	"github.com/deepnoodle-ai/trellokeep/slogger"
)

var (
	DefaultEndpoint      = "https://keep.googleapis.com/v1"
	DefaultTokenURL      = "https://oauth2.googleapis.com/token"
	DefaultScope         = "https://www.googleapis.com/auth/keep"
	DefaultClient        = &http.Client{Timeout: 30 * time.Second}
	DefaultMaxRetries    = 3
	DefaultRetryBaseWait = 1 * time.Second
)

var _ trellokeep.NoteCreator = &Client{}

// Client talks to the Google Keep API. Authentication uses a service account
// JWT bearer grant; when Subject is set the service account impersonates that
// user via domain-wide delegation (Keep has no service-account-owned notes,
// so impersonation is effectively required in practice).
type Client struct {
	clientEmail   string
	privateKey    string
	subject       string
	scope         string
	endpoint      string
	tokenURL      string
	client        *http.Client
	maxRetries    int
	retryBaseWait time.Duration
	logger        slogger.Logger

	tokens *tokenSource
}

// New returns a Keep client. The service account client email and private
// key are required.
func New(opts ...Option) (*Client, error) {
	c := &Client{
		scope:         DefaultScope,
		endpoint:      DefaultEndpoint,
		tokenURL:      DefaultTokenURL,
		client:        DefaultClient,
		maxRetries:    DefaultMaxRetries,
		retryBaseWait: DefaultRetryBaseWait,
		logger:        slogger.DefaultLogger,
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.clientEmail == "" {
		return nil, fmt.Errorf("service account client email is required")
	}
	if c.privateKey == "" {
		return nil, fmt.Errorf("service account private key is required")
	}
	source, err := newTokenSource(tokenSourceOptions{
		ClientEmail: c.clientEmail,
		PrivateKey:  c.privateKey,
		Subject:     c.subject,
		Scope:       c.scope,
		TokenURL:    c.tokenURL,
		Client:      c.client,
	})
	if err != nil {
		return nil, err
	}
	c.tokens = source
	return c, nil
}

// CreateNote creates a Keep note with the given title and rendered body.
func (c *Client) CreateNote(ctx context.Context, title string, body trellokeep.NoteBody) (*trellokeep.Note, error) {
	request, err := newNoteRequest(title, body)
	if err != nil {
		return nil, err
	}
	payload, err := json.Marshal(request)
	if err != nil {
		return nil, fmt.Errorf("error marshaling note: %w", err)
	}

	var created noteResponse
	err = retry.Do(ctx, func() error {
		token, err := c.tokens.Token(ctx)
		if err != nil {
			return err
		}
		req, err := http.NewRequestWithContext(ctx, "POST", c.endpoint+"/notes", bytes.NewBuffer(payload))
		if err != nil {
			return fmt.Errorf("error creating request: %w", err)
		}
		req.Header.Set("Authorization", "Bearer "+token)
		req.Header.Set("Content-Type", "application/json")

		resp, err := c.client.Do(req)
		if err != nil {
			return fmt.Errorf("error making request: %w", err)
		}
		defer resp.Body.Close()

		if resp.StatusCode != http.StatusOK {
			body, _ := io.ReadAll(resp.Body)
			return newAPIError(resp.StatusCode, string(body))
		}
		if err := json.NewDecoder(resp.Body).Decode(&created); err != nil {
			return fmt.Errorf("error decoding response: %w", err)
		}
		return nil
	}, retry.WithMaxRetries(c.maxRetries), retry.WithBaseWait(c.retryBaseWait))
	if err != nil {
		return nil, err
	}

	c.logger.Debug("keep note created", "name", created.Name, "title", created.Title)
	return &trellokeep.Note{Name: created.Name, Title: created.Title}, nil
}
