// Package api is the HTTP client for the library-management server. It owns
// the request conventions every screen relies on: Bearer auth from the stored
// session, JSON bodies, request IDs, and a normalized result for every
// response, including the ones that never made it onto the wire.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"shelfctl/internal/session"
)

// ErrNoSession is returned when a request requires auth and no access token
// is stored. The network is never touched in that case; callers route this to
// the session guard rather than the status area.
var ErrNoSession = errors.New("no active session")

const (
	defaultErrorMessage   = "Request failed."
	transportErrorMessage = "Could not reach the server. Please try again later."

	requestIDHeader = "X-Request-Id"
)

// Descriptor describes one call. It is built per request and never reused.
type Descriptor struct {
	Method       string
	Path         string
	Query        url.Values
	Body         any
	RequiresAuth bool

	// ErrorFallback is shown when a failed response carries no error field.
	ErrorFallback string
}

// Result is the normalized outcome of one call. OK mirrors a 2xx status;
// Status 0 means the request never produced a response (transport failure).
type Result struct {
	OK           bool
	Status       int
	Body         []byte
	ErrorMessage string
}

// Decode unmarshals the response body into v. Bodies that failed to parse as
// JSON were already normalized to an empty object.
func (r Result) Decode(v any) error {
	if err := json.Unmarshal(r.Body, v); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

type Client struct {
	baseURL        string
	httpClient     *http.Client
	store          session.Store
	onUnauthorized func()
	logger         zerolog.Logger
}

// NewClient builds a client for the given server address. The scheme defaults
// to http:// when the address is a bare host:port.
func NewClient(serverURL string, timeout time.Duration, store session.Store, logger zerolog.Logger) *Client {
	if !strings.Contains(serverURL, "://") {
		serverURL = "http://" + serverURL
	}

	return &Client{
		baseURL:    strings.TrimRight(serverURL, "/"),
		httpClient: &http.Client{Timeout: timeout},
		store:      store,
		logger:     logger,
	}
}

// SetUnauthorizedHandler registers the hook invoked on any 401 response.
// The guard installs itself here so no screen has to handle expiry on its own.
func (c *Client) SetUnauthorizedHandler(fn func()) {
	c.onUnauthorized = fn
}

// Do performs exactly one HTTP call for the descriptor. Every outcome other
// than a missing session is reported through the Result, never as an error.
func (c *Client) Do(ctx context.Context, d Descriptor) (Result, error) {
	sess, err := c.store.Load()
	if err != nil {
		return Result{}, fmt.Errorf("load session: %w", err)
	}
	if d.RequiresAuth && sess.AccessToken == "" {
		return Result{}, ErrNoSession
	}

	target := c.baseURL + d.Path
	if len(d.Query) > 0 {
		target += "?" + d.Query.Encode()
	}

	var body io.Reader
	if d.Body != nil {
		data, err := json.Marshal(d.Body)
		if err != nil {
			return Result{}, fmt.Errorf("encode request body: %w", err)
		}
		body = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, d.Method, target, body)
	if err != nil {
		return Result{}, fmt.Errorf("build request: %w", err)
	}

	req.Header.Set("Accept", "application/json")
	req.Header.Set(requestIDHeader, uuid.NewString())
	if d.Body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if d.RequiresAuth {
		req.Header.Set("Authorization", "Bearer "+sess.AccessToken)
	}

	c.logger.Debug().
		Str("method", d.Method).
		Str("url", target).
		Str("request_id", req.Header.Get(requestIDHeader)).
		Msg("api request")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.Debug().Err(err).Str("url", target).Msg("api transport failure")
		return Result{
			OK:           false,
			Status:       0,
			Body:         []byte("{}"),
			ErrorMessage: transportErrorMessage,
		}, nil
	}
	defer resp.Body.Close()

	return c.classify(resp, d), nil
}

func (c *Client) classify(resp *http.Response, d Descriptor) Result {
	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		raw = nil
	}

	// Empty or malformed bodies act like an empty object; several endpoints
	// legitimately return nothing on success.
	if !json.Valid(raw) || len(bytes.TrimSpace(raw)) == 0 {
		raw = []byte("{}")
	}

	result := Result{
		Status: resp.StatusCode,
		Body:   raw,
		OK:     resp.StatusCode >= 200 && resp.StatusCode < 300,
	}

	// Only authenticated calls can mean an expired session. A 401 from login
	// itself is a credential rejection and is rendered like any other error.
	if resp.StatusCode == http.StatusUnauthorized && d.RequiresAuth && c.onUnauthorized != nil {
		c.onUnauthorized()
	}

	if !result.OK {
		result.ErrorMessage = errorMessage(raw, d.ErrorFallback)
	}

	c.logger.Debug().
		Int("status", resp.StatusCode).
		Bool("ok", result.OK).
		Str("path", d.Path).
		Msg("api response")

	return result
}

func errorMessage(body []byte, fallback string) string {
	var payload struct {
		Error string `json:"error"`
	}
	if err := json.Unmarshal(body, &payload); err == nil && payload.Error != "" {
		return payload.Error
	}
	if fallback != "" {
		return fallback
	}
	return defaultErrorMessage
}
