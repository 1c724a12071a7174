// Package github is the identity-provider client for the sign-in flow. It
// speaks the two endpoints the authorization-code exchange needs: the token
// endpoint on the web host and the authenticated-user endpoint on the API
// host. Neither call is retried; callers decide what a failure means.
package github

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

const (
	// apiVersion is the GitHub REST API version this client targets.
	apiVersion = "2022-11-28"
	// userAgent identifies this app to GitHub, which rejects agent-less requests.
	userAgent = "Caveman Learn App"
	// scope requested on the authorize redirect.
	scope = "user:email"
)

// Transport and decode failures are distinct kinds so the flow controller can
// answer with distinguishable messages.
var (
	ErrExchangeTransport = errors.New("token exchange request failed")
	ErrExchangeDecode    = errors.New("token exchange response malformed")
	ErrUserTransport     = errors.New("user fetch request failed")
	ErrUserDecode        = errors.New("user response malformed")
)

// TokenResponse is the structured token-endpoint reply GitHub sends when the
// request carries Accept: application/json.
type TokenResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
	Scope       string `json:"scope"`
}

// Config carries the OAuth app registration plus the two base URLs, which
// tests override to point at stub servers.
type Config struct {
	ClientID     string
	ClientSecret string
	RedirectURI  string
	AuthBaseURL  string // defaults to https://github.com
	APIBaseURL   string // defaults to https://api.github.com
}

// Client calls GitHub. The zero timeout falls back to 10 seconds; there is no
// code path with an unbounded outbound call.
type Client struct {
	cfg  Config
	http *http.Client
}

// NewClient creates a GitHub client with a bounded-timeout HTTP client.
func NewClient(cfg Config, timeout time.Duration) *Client {
	if cfg.AuthBaseURL == "" {
		cfg.AuthBaseURL = "https://github.com"
	}
	if cfg.APIBaseURL == "" {
		cfg.APIBaseURL = "https://api.github.com"
	}
	if timeout == 0 {
		timeout = 10 * time.Second
	}
	return &Client{
		cfg:  cfg,
		http: &http.Client{Timeout: timeout},
	}
}

// AuthorizeURL builds the authorization redirect target embedding the client
// id, fixed scope, redirect URI, and the caller's CSRF state token.
func (c *Client) AuthorizeURL(state string) string {
	q := url.Values{}
	q.Set("scope", scope)
	q.Set("client_id", c.cfg.ClientID)
	q.Set("redirect_uri", c.cfg.RedirectURI)
	q.Set("state", state)
	return c.cfg.AuthBaseURL + "/login/oauth/authorize?" + q.Encode()
}

// ExchangeCode swaps a single-use authorization code for an access token.
func (c *Client) ExchangeCode(ctx context.Context, code string) (*TokenResponse, error) {
	form := url.Values{}
	form.Set("code", code)
	form.Set("client_id", c.cfg.ClientID)
	form.Set("client_secret", c.cfg.ClientSecret)
	form.Set("redirect_uri", c.cfg.RedirectURI)

	endpoint := c.cfg.AuthBaseURL + "/login/oauth/access_token"
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, strings.NewReader(form.Encode()))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrExchangeTransport, err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrExchangeTransport, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return nil, fmt.Errorf("%w: status %d: %s", ErrExchangeTransport, resp.StatusCode, body)
	}

	var token TokenResponse
	if err := json.NewDecoder(resp.Body).Decode(&token); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrExchangeDecode, err)
	}
	if token.AccessToken == "" {
		// GitHub reports errors as 200s with an error field; an empty
		// access_token is the reliable signal.
		return nil, fmt.Errorf("%w: no access_token in response", ErrExchangeDecode)
	}
	return &token, nil
}

// FetchUser loads the authenticated user's profile with the access token as a
// bearer credential.
func (c *Client) FetchUser(ctx context.Context, accessToken string) (*User, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.cfg.APIBaseURL+"/user", nil)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUserTransport, err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-GitHub-Api-Version", apiVersion)
	req.Header.Set("User-Agent", userAgent)
	req.Header.Set("Authorization", "Bearer "+accessToken)

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUserTransport, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return nil, fmt.Errorf("%w: status %d: %s", ErrUserTransport, resp.StatusCode, body)
	}

	var user User
	if err := json.NewDecoder(resp.Body).Decode(&user); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUserDecode, err)
	}
	return &user, nil
}
