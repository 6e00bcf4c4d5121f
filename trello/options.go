package trello

import (
	"net/http"
	"time"

	"github.com/deepnoodle-ai/trellokeep/slogger"
)

type Option func(*Client)

func WithAPIKey(apiKey string) Option {
	return func(c *Client) {
		c.apiKey = apiKey
	}
}

func WithToken(token string) Option {
	return func(c *Client) {
		c.token = token
	}
}

func WithEndpoint(endpoint string) Option {
	return func(c *Client) {
		c.endpoint = endpoint
	}
}

func WithClient(client *http.Client) Option {
	return func(c *Client) {
		c.client = client
	}
}

func WithMaxRetries(maxRetries int) Option {
	return func(c *Client) {
		c.maxRetries = maxRetries
	}
}

func WithRetryBaseWait(retryBaseWait time.Duration) Option {
	return func(c *Client) {
		c.retryBaseWait = retryBaseWait
	}
}

func WithLogger(logger slogger.Logger) Option {
	return func(c *Client) {
		c.logger = logger
	}
}
