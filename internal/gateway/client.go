package gateway

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jonathan/resume-editor/internal/types"
)

// DefaultTimeout is the HTTP request timeout for gateway calls.
const DefaultTimeout = 30 * time.Second

// TokenSource supplies the bearer token for authenticated requests. An
// empty token means no session.
type TokenSource interface {
	Token() string
}

// Client is the HTTP implementation of Gateway, speaking to the profile
// API under /profiles.
type Client struct {
	baseURL string
	tokens  TokenSource
	http    *http.Client
}

// NewClient creates a gateway client for the given API base URL.
func NewClient(baseURL string, tokens TokenSource) *Client {
	return &Client{
		baseURL: strings.TrimSuffix(baseURL, "/"),
		tokens:  tokens,
		http:    &http.Client{Timeout: DefaultTimeout},
	}
}

// List returns all profiles owned by the authenticated user.
func (c *Client) List(ctx context.Context) ([]types.Profile, error) {
	var out struct {
		Profiles []types.Profile `json:"profiles"`
	}
	if err := c.do(ctx, http.MethodGet, "/profiles", nil, &out); err != nil {
		return nil, err
	}
	return out.Profiles, nil
}

// Create stores a new named profile wrapping the given document.
func (c *Client) Create(ctx context.Context, name string, resume types.Resume) (*types.Profile, error) {
	body := struct {
		Name   string       `json:"name"`
		Resume types.Resume `json:"resume"`
	}{Name: name, Resume: resume}

	var out types.Profile
	if err := c.do(ctx, http.MethodPost, "/profiles", body, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Update applies a partial update and returns the stored profile.
func (c *Client) Update(ctx context.Context, id uuid.UUID, update ProfileUpdate) (*types.Profile, error) {
	var out types.Profile
	if err := c.do(ctx, http.MethodPut, "/profiles/"+id.String(), update, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Delete removes a profile.
func (c *Client) Delete(ctx context.Context, id uuid.UUID) error {
	return c.do(ctx, http.MethodDelete, "/profiles/"+id.String(), nil, nil)
}

// do issues one request and maps the response onto the gateway error
// taxonomy.
func (c *Client) do(ctx context.Context, method, path string, body, out any) error {
	token := ""
	if c.tokens != nil {
		token = c.tokens.Token()
	}
	if token == "" {
		return ErrNotAuthenticated
	}

	url := c.baseURL + path

	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to marshal request body: %w", err)
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, url, reader)
	if err != nil {
		return fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+token)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return &TransportError{URL: url, Cause: err}
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusUnauthorized:
		return ErrNotAuthenticated
	case resp.StatusCode == http.StatusNotFound:
		return ErrNotFound
	case resp.StatusCode >= 400:
		return &TransportError{URL: url, Status: resp.StatusCode}
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return &TransportError{URL: url, Cause: fmt.Errorf("failed to decode response: %w", err)}
	}
	return nil
}
