// Package client is a typed caller for the admin API. Every request passes
// through one RoundTripper that attaches the bearer token and, on a 401,
// re-authenticates once and retries.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"sync"
	"time"

	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	"golang.org/x/sync/singleflight"

	"github.com/sandeepkv93/storefront-admin-api/internal/http/response"
)

const loginPath = "/api/v1/auth/login"

// ReauthFunc obtains a fresh token after the current one was rejected.
type ReauthFunc func(ctx context.Context, c *Client) (string, error)

type Option func(*Client)

func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.base = hc }
}

func WithToken(token string) Option {
	return func(c *Client) { c.token = token }
}

func WithReauthenticate(fn ReauthFunc) Option {
	return func(c *Client) { c.reauth = fn }
}

// WithCredentials re-authenticates by logging in again with email and password.
func WithCredentials(email, password string) Option {
	return WithReauthenticate(func(ctx context.Context, c *Client) (string, error) {
		res, err := c.Login(ctx, email, password)
		if err != nil {
			return "", err
		}
		return res.Token, nil
	})
}

// WithTracing wraps the transport with otelhttp client spans.
func WithTracing() Option {
	return func(c *Client) { c.tracing = true }
}

type Client struct {
	baseURL string
	base    *http.Client
	http    *http.Client
	reauth  ReauthFunc
	tracing bool
	refresh singleflight.Group

	mu    sync.RWMutex
	token string
}

func New(baseURL string, opts ...Option) *Client {
	c := &Client{baseURL: strings.TrimRight(baseURL, "/")}
	for _, opt := range opts {
		opt(c)
	}
	if c.base == nil {
		c.base = &http.Client{Timeout: 10 * time.Second}
	}
	next := c.base.Transport
	if next == nil {
		next = http.DefaultTransport
	}
	if c.tracing {
		next = otelhttp.NewTransport(next)
	}
	hc := *c.base
	hc.Transport = &authTransport{client: c, next: next}
	c.http = &hc
	return c
}

func (c *Client) Token() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.token
}

func (c *Client) SetToken(token string) {
	c.mu.Lock()
	c.token = token
	c.mu.Unlock()
}

// Error is a failure envelope returned by the API.
type Error struct {
	Status  int
	Code    string
	Message string
}

func (e *Error) Error() string {
	return fmt.Sprintf("api error %d %s: %s", e.Status, e.Code, e.Message)
}

func IsUnauthorized(err error) bool {
	var apiErr *Error
	return errors.As(err, &apiErr) && apiErr.Status == http.StatusUnauthorized
}

type LoginResult struct {
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expires_at"`
}

// Login exchanges credentials for a token and stores it on the client.
func (c *Client) Login(ctx context.Context, email, password string) (*LoginResult, error) {
	var out LoginResult
	body := map[string]string{"email": email, "password": password}
	if _, err := c.Do(withoutAuth(ctx), http.MethodPost, loginPath, body, &out); err != nil {
		return nil, err
	}
	c.SetToken(out.Token)
	return &out, nil
}

// Do sends body as JSON and decodes the envelope's data into out. The
// pagination block, when present, is returned.
func (c *Client) Do(ctx context.Context, method, path string, body, out any) (*response.Pagination, error) {
	var reader io.Reader
	var raw []byte
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("encode request: %w", err)
		}
		raw = b
		reader = bytes.NewReader(raw)
	}
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return nil, err
	}
	if raw != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	var env struct {
		Success    bool                 `json:"success"`
		Data       json.RawMessage      `json:"data"`
		Pagination *response.Pagination `json:"pagination"`
		Error      *response.ErrorBody  `json:"error"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&env); err != nil {
		return nil, fmt.Errorf("decode %s %s response (status %d): %w", method, path, resp.StatusCode, err)
	}
	if !env.Success || resp.StatusCode >= http.StatusBadRequest {
		apiErr := &Error{Status: resp.StatusCode}
		if env.Error != nil {
			apiErr.Code = env.Error.Code
			apiErr.Message = env.Error.Message
		}
		return nil, apiErr
	}
	if out != nil && len(env.Data) > 0 {
		if err := json.Unmarshal(env.Data, out); err != nil {
			return nil, fmt.Errorf("decode %s %s data: %w", method, path, err)
		}
	}
	return env.Pagination, nil
}

func (c *Client) Get(ctx context.Context, path string, out any) (*response.Pagination, error) {
	return c.Do(ctx, http.MethodGet, path, nil, out)
}
