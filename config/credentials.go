// Package config loads credentials and settings and selects the LLM
// provider used by the transform stage.
package config

import (
	"encoding/json"
	"fmt"
	"os"
)

// DefaultCredentialsPath is where credentials are read from when no path is
// given on the command line.
const DefaultCredentialsPath = "credentials.json"

// Credentials is the content of the credentials file: a Google service
// account key file extended with a "trello" key holding the Trello API
// credentials.
type Credentials struct {
	Type                  string            `json:"type"`
	ProjectID             string            `json:"project_id"`
	PrivateKeyID          string            `json:"private_key_id"`
	PrivateKey            string            `json:"private_key"`
	ClientEmail           string            `json:"client_email"`
	TokenURI              string            `json:"token_uri"`
	Trello                TrelloCredentials `json:"trello"`
	ImpersonatedUserEmail string            `json:"impersonated_user_email"`
}

// TrelloCredentials holds the Trello API key and token.
type TrelloCredentials struct {
	APIKey string `json:"api_key"`
	Token  string `json:"token"`
}

// LoadCredentials reads and validates a credentials file.
func LoadCredentials(path string) (*Credentials, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("error reading credentials file: %w", err)
	}
	var creds Credentials
	if err := json.Unmarshal(data, &creds); err != nil {
		return nil, fmt.Errorf("error parsing credentials file %s: %w", path, err)
	}
	if creds.Trello.APIKey == "" || creds.Trello.Token == "" {
		return nil, fmt.Errorf("credentials file %s is missing trello api_key or token", path)
	}
	if creds.ClientEmail == "" || creds.PrivateKey == "" {
		return nil, fmt.Errorf("credentials file %s is missing service account client_email or private_key", path)
	}
	return &creds, nil
}
