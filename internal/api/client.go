// Package api is the typed client for the store-chain backend. It builds
// query strings from filter structs and normalizes every success or failure
// into the {success, data, message, errors} envelope contract.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// TokenSource supplies the bearer token for authenticated calls. An empty
// token means the request goes out unauthenticated (guest browsing).
type TokenSource interface {
	AccessToken() string
}

// Config holds the client configuration.
type Config struct {
	// BaseURL is the versioned REST base, e.g. http://localhost:8000/api/v1
	BaseURL string

	// AuthBaseURL hosts the auth endpoints, e.g. http://localhost:8000/api/users
	AuthBaseURL string

	// Timeout bounds each request. Zero falls back to 30s.
	Timeout time.Duration

	// Tokens is optional; nil means guest.
	Tokens TokenSource

	Logger zerolog.Logger
}

// Validate checks if the configuration is valid.
func (c *Config) Validate() error {
	if c.BaseURL == "" {
		return fmt.Errorf("%w: base URL required", ErrInvalidRequest)
	}
	if c.AuthBaseURL == "" {
		return fmt.Errorf("%w: auth base URL required", ErrInvalidRequest)
	}
	return nil
}

// Client is the backend REST client.
type Client struct {
	config     Config
	httpClient *http.Client
}

// NewClient creates a client with the given configuration.
func NewClient(config Config) (*Client, error) {
	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	timeout := config.Timeout
	if timeout <= 0 {
		timeout = 30 * time.Second
	}

	return &Client{
		config:     config,
		httpClient: &http.Client{Timeout: timeout},
	}, nil
}

// envelope is the wrapper every backend response is normalized into. Some
// endpoints return it explicitly, others return a bare body; Success being
// present tells the two apart.
type envelope struct {
	Success *bool               `json:"success"`
	Data    json.RawMessage     `json:"data"`
	Message string              `json:"message"`
	Errors  map[string][]string `json:"errors"`
}

func (c *Client) get(ctx context.Context, path string, query url.Values, out interface{}) error {
	return c.do(ctx, http.MethodGet, c.config.BaseURL+path, query, nil, out)
}

func (c *Client) post(ctx context.Context, path string, payload, out interface{}) error {
	return c.do(ctx, http.MethodPost, c.config.BaseURL+path, nil, payload, out)
}

func (c *Client) put(ctx context.Context, path string, payload, out interface{}) error {
	return c.do(ctx, http.MethodPut, c.config.BaseURL+path, nil, payload, out)
}

func (c *Client) delete(ctx context.Context, path string) error {
	return c.do(ctx, http.MethodDelete, c.config.BaseURL+path, nil, nil, nil)
}

// do performs one request and decodes the normalized data into out.
// Every failure comes back as *Error wrapping a sentinel; a fetch that
// throws never propagates raw.
func (c *Client) do(ctx context.Context, method, rawURL string, query url.Values, payload, out interface{}) error {
	requestID := uuid.NewString()

	var body io.Reader
	if payload != nil {
		encoded, err := json.Marshal(payload)
		if err != nil {
			return &Error{Message: "failed to encode request body", cause: ErrInvalidRequest}
		}
		body = bytes.NewReader(encoded)
	}

	if len(query) > 0 {
		rawURL = rawURL + "?" + query.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, method, rawURL, body)
	if err != nil {
		return &Error{Message: "failed to create request", cause: ErrInvalidRequest}
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Request-ID", requestID)
	if c.config.Tokens != nil {
		if token := c.config.Tokens.AccessToken(); token != "" {
			req.Header.Set("Authorization", "Bearer "+token)
		}
	}

	c.config.Logger.Debug().
		Str("request_id", requestID).
		Str("method", method).
		Str("url", rawURL).
		Msg("api request")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.config.Logger.Warn().
			Str("request_id", requestID).
			Err(err).
			Msg("api transport failure")
		msg := "Network error occurred"
		if strings.Contains(err.Error(), "context deadline exceeded") {
			msg = "Request timed out"
		}
		return &Error{Message: msg, cause: ErrNetwork}
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return &Error{Message: "failed to read response", cause: ErrNetwork}
	}

	var env envelope
	// A non-JSON body is tolerated; env stays zero and the status decides.
	_ = json.Unmarshal(raw, &env)

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		message := env.Message
		if message == "" {
			message = "An error occurred"
		}
		c.config.Logger.Warn().
			Str("request_id", requestID).
			Int("status", resp.StatusCode).
			Str("message", message).
			Msg("api request failed")
		return &Error{
			Status:  resp.StatusCode,
			Message: message,
			Fields:  env.Errors,
			cause:   sentinelForStatus(resp.StatusCode),
		}
	}

	if out == nil {
		return nil
	}

	data := raw
	if env.Success != nil && len(env.Data) > 0 {
		data = env.Data
	}
	if len(data) == 0 || string(data) == "null" {
		return nil
	}
	if err := json.Unmarshal(data, out); err != nil {
		return &Error{
			Status:  resp.StatusCode,
			Message: "failed to decode response",
			cause:   ErrRequestFailed,
		}
	}
	return nil
}
