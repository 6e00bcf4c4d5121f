package keep

import (
	"fmt"
	"net/http"

	"github.com/deepnoodle-ai/trellokeep/retry"
)

// APIError represents an error returned by the Google Keep API.
type APIError struct {
	statusCode int
	body       string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("keep api error (status %d): %s", e.statusCode, e.body)
}

func (e *APIError) StatusCode() int {
	return e.statusCode
}

// newAPIError creates an APIError, marked recoverable for retryable status
// codes.
func newAPIError(statusCode int, body string) error {
	err := &APIError{statusCode: statusCode, body: body}
	if shouldRetry(statusCode) {
		return retry.NewRecoverableError(err)
	}
	return err
}

func shouldRetry(statusCode int) bool {
	return statusCode == http.StatusTooManyRequests ||
		statusCode == http.StatusInternalServerError ||
		statusCode == http.StatusServiceUnavailable ||
		statusCode == http.StatusGatewayTimeout
}
