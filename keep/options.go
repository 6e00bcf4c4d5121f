package keep

import (
	"net/http"
	"time"

	"github.com/deepnoodle-ai/trellokeep/slogger"
)

type Option func(*Client)

// WithClientEmail sets the service account client email.
func WithClientEmail(clientEmail string) Option {
	return func(c *Client) {
		c.clientEmail = clientEmail
	}
}

// WithPrivateKey sets the service account private key in PEM form.
func WithPrivateKey(privateKey string) Option {
	return func(c *Client) {
		c.privateKey = privateKey
	}
}

// WithSubject sets the user to impersonate via domain-wide delegation.
func WithSubject(subject string) Option {
	return func(c *Client) {
		c.subject = subject
	}
}

func WithScope(scope string) Option {
	return func(c *Client) {
		c.scope = scope
	}
}

func WithEndpoint(endpoint string) Option {
	return func(c *Client) {
		c.endpoint = endpoint
	}
}

func WithTokenURL(tokenURL string) Option {
	return func(c *Client) {
		c.tokenURL = tokenURL
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
