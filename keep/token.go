package keep

import (
	"context"
	"crypto/rsa"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/golang-jwt/jwt/v4"
)

// expirySkew refreshes tokens slightly before they expire.
const expirySkew = 30 * time.Second

// tokenSource exchanges a signed service account assertion for an access
// token and caches it until expiry. Safe for concurrent use.
type tokenSource struct {
	clientEmail string
	key         *rsa.PrivateKey
	subject     string
	scope       string
	tokenURL    string
	client      *http.Client

	mutex  sync.Mutex
	token  string
	expiry time.Time
	now    func() time.Time
}

type tokenSourceOptions struct {
	ClientEmail string
	PrivateKey  string
	Subject     string
	Scope       string
	TokenURL    string
	Client      *http.Client
}

func newTokenSource(opts tokenSourceOptions) (*tokenSource, error) {
	key, err := jwt.ParseRSAPrivateKeyFromPEM([]byte(opts.PrivateKey))
	if err != nil {
		return nil, fmt.Errorf("error parsing service account private key: %w", err)
	}
	return &tokenSource{
		clientEmail: opts.ClientEmail,
		key:         key,
		subject:     opts.Subject,
		scope:       opts.Scope,
		tokenURL:    opts.TokenURL,
		client:      opts.Client,
		now:         time.Now,
	}, nil
}

// Token returns a valid access token, refreshing it when expired.
func (s *tokenSource) Token(ctx context.Context) (string, error) {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	if s.token != "" && s.now().Add(expirySkew).Before(s.expiry) {
		return s.token, nil
	}

	assertion, err := s.signAssertion()
	if err != nil {
		return "", err
	}

	form := url.Values{
		"grant_type": {"urn:ietf:params:oauth:grant-type:jwt-bearer"},
		"assertion":  {assertion},
	}
	req, err := http.NewRequestWithContext(ctx, "POST", s.tokenURL,
		strings.NewReader(form.Encode()))
	if err != nil {
		return "", fmt.Errorf("error creating token request: %w", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := s.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("error requesting access token: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return "", fmt.Errorf("token exchange failed (status %d): %s",
			resp.StatusCode, string(body))
	}

	var payload struct {
		AccessToken string `json:"access_token"`
		ExpiresIn   int    `json:"expires_in"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return "", fmt.Errorf("error decoding token response: %w", err)
	}
	if payload.AccessToken == "" {
		return "", fmt.Errorf("token exchange returned an empty access token")
	}

	s.token = payload.AccessToken
	s.expiry = s.now().Add(time.Duration(payload.ExpiresIn) * time.Second)
	return s.token, nil
}

// signAssertion builds the RS256 JWT the OAuth endpoint exchanges for an
// access token. The sub claim enables domain-wide delegation.
func (s *tokenSource) signAssertion() (string, error) {
	now := s.now()
	claims := jwt.MapClaims{
		"iss":   s.clientEmail,
		"scope": s.scope,
		"aud":   s.tokenURL,
		"iat":   now.Unix(),
		"exp":   now.Add(time.Hour).Unix(),
	}
	if s.subject != "" {
		claims["sub"] = s.subject
	}
	token := jwt.NewWithClaims(jwt.SigningMethodRS256, claims)
	signed, err := token.SignedString(s.key)
	if err != nil {
		return "", fmt.Errorf("error signing assertion: %w", err)
	}
	return signed, nil
}
