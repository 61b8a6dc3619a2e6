// ABOUTME: HTTP client for the remote feed collaborator with cookie sessions
// ABOUTME: Maps transport failures and non-2xx responses onto the error taxonomy

package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net"
	"net/http"
	"net/http/cookiejar"
	"strings"
	"time"

	"github.com/2389/feedsync/internal/feed"
)

const (
	defaultTimeout        = 15 * time.Second
	defaultConnectTimeout = 5 * time.Second
	defaultTLSTimeout     = 5 * time.Second

	// fallbackMessage is used when a failure body carries no parsable
	// {message}.
	fallbackMessage = "request failed"
)

// Client talks to the remote collaborator's HTTP API. The session cookie
// set by login is kept in an in-memory jar, so credentialed endpoints work
// for the lifetime of the client.
type Client struct {
	baseURL string
	hc      *http.Client
	logger  *slog.Logger
}

// New creates a Client for the collaborator at baseURL. A zero timeout
// selects the default. Pass nil logger for default.
func New(baseURL string, timeout time.Duration, logger *slog.Logger) (*Client, error) {
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	if logger == nil {
		logger = slog.Default()
	}

	jar, err := cookiejar.New(nil)
	if err != nil {
		return nil, fmt.Errorf("creating cookie jar: %w", err)
	}

	dialer := &net.Dialer{Timeout: defaultConnectTimeout}
	transport := &http.Transport{
		DialContext:         dialer.DialContext,
		TLSHandshakeTimeout: defaultTLSTimeout,
	}

	return &Client{
		baseURL: strings.TrimSuffix(baseURL, "/"),
		hc: &http.Client{
			Transport: transport,
			Jar:       jar,
			Timeout:   timeout,
		},
		logger: logger.With("component", "api"),
	}, nil
}

// doJSON issues a request with an optional JSON body and decodes a JSON
// response into out (skipped when out is nil). 401/403 map to AuthError,
// other non-2xx statuses to FetchError carrying the body's {message}.
func (c *Client) doJSON(ctx context.Context, op, method, path string, body, out any) error {
	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return &feed.FetchError{Op: op, Err: err}
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return &feed.FetchError{Op: op, Err: err}
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	return c.send(req, op, out)
}

// send executes a prepared request and maps the response onto the error
// taxonomy.
func (c *Client) send(req *http.Request, op string, out any) error {
	resp, err := c.hc.Do(req)
	if err != nil {
		c.logger.Debug("request failed", "op", op, "error", err)
		return &feed.FetchError{Op: op, Err: err}
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden:
		io.Copy(io.Discard, resp.Body)
		return &feed.AuthError{Op: op, Status: resp.StatusCode}
	case resp.StatusCode < 200 || resp.StatusCode >= 300:
		msg := parseFailureMessage(resp.Body)
		c.logger.Debug("non-success response", "op", op, "status", resp.StatusCode, "message", msg)
		return &feed.FetchError{Op: op, Status: resp.StatusCode, Message: msg}
	}

	if out == nil {
		io.Copy(io.Discard, resp.Body)
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return &feed.FetchError{Op: op, Err: fmt.Errorf("decoding response: %w", err)}
	}
	return nil
}

// parseFailureMessage extracts {message} from a failure body. An unparsable
// or empty body yields the fixed fallback.
func parseFailureMessage(r io.Reader) string {
	var body struct {
		Message string `json:"message"`
	}
	if err := json.NewDecoder(io.LimitReader(r, 64<<10)).Decode(&body); err != nil || body.Message == "" {
		return fallbackMessage
	}
	return body.Message
}
