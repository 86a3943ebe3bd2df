package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"go.uber.org/zap"
)

// Result is the uniform outcome of every gateway call. Transport failures and
// non-2xx responses are folded into it; Call never returns an error.
type Result struct {
	Status int
	Data   json.RawMessage
}

// OK reports whether the call succeeded with a 2xx status.
func (r Result) OK() bool {
	return r.Status >= 200 && r.Status < 300
}

// Decode unmarshals the payload into v.
func (r Result) Decode(v any) error {
	if len(r.Data) == 0 {
		return fmt.Errorf("empty response payload")
	}
	return json.Unmarshal(r.Data, v)
}

// ErrorMessage extracts the server error message, falling back to the generic
// one when the payload carries none.
func (r Result) ErrorMessage() string {
	var payload struct {
		Error string `json:"error"`
	}
	if err := json.Unmarshal(r.Data, &payload); err == nil && payload.Error != "" {
		return payload.Error
	}
	return "Request failed"
}

// Outcome is what the response observer sees after every call, success or
// failure. Status is zero when the transport failed before any response
// arrived; Login marks the login operation itself so credential policy can
// exempt it.
type Outcome struct {
	Status    int
	Transport bool
	Login     bool
}

// ResponseObserver is notified after every gateway call. The auth lifecycle
// manager implements it to drive credential revocation without the call sites
// knowing about auth plumbing.
type ResponseObserver interface {
	OnResponse(Outcome)
}

// TokenSource supplies the bearer credential attached to outgoing requests.
// An empty token means none is held.
type TokenSource interface {
	Token(ctx context.Context) string
}

var fallbackPayload = json.RawMessage(`{"error":"Request failed"}`)

// Client is the single HTTP gateway to the quiz backend.
type Client struct {
	baseURL  string
	http     *http.Client
	tokens   TokenSource
	observer ResponseObserver
	log      *zap.Logger
}

type Option func(*Client)

func WithHTTPClient(h *http.Client) Option {
	return func(c *Client) { c.http = h }
}

func WithTimeout(d time.Duration) Option {
	return func(c *Client) { c.http.Timeout = d }
}

func WithTokenSource(ts TokenSource) Option {
	return func(c *Client) { c.tokens = ts }
}

func WithObserver(o ResponseObserver) Option {
	return func(c *Client) { c.observer = o }
}

func WithLogger(log *zap.Logger) Option {
	return func(c *Client) { c.log = log }
}

func New(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL: baseURL,
		http:    &http.Client{Timeout: 15 * time.Second},
		log:     zap.NewNop(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Call performs one request against the backend and normalizes whatever
// happens into a Result. Bodies are JSON-encoded; the held credential is
// attached as a bearer header when one exists.
func (c *Client) Call(ctx context.Context, method, resource string, body any) Result {
	return c.do(ctx, method, resource, body, false)
}

func (c *Client) do(ctx context.Context, method, resource string, body any, login bool) Result {
	var reader io.Reader
	contentType := ""
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			c.log.Warn("encode request body", zap.String("resource", resource), zap.Error(err))
			return Result{Status: http.StatusInternalServerError, Data: fallbackPayload}
		}
		reader = bytes.NewReader(raw)
		contentType = "application/json"
	}
	return c.doRaw(ctx, method, resource, reader, contentType, login)
}

func (c *Client) doRaw(ctx context.Context, method, resource string, body io.Reader, contentType string, login bool) Result {
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+resource, body)
	if err != nil {
		c.log.Warn("build request", zap.String("resource", resource), zap.Error(err))
		return Result{Status: http.StatusInternalServerError, Data: fallbackPayload}
	}
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	if c.tokens != nil && !login {
		if token := c.tokens.Token(ctx); token != "" {
			req.Header.Set("Authorization", "Bearer "+token)
		}
	}

	resp, err := c.http.Do(req)
	if err != nil {
		c.log.Debug("request failed", zap.String("method", method), zap.String("resource", resource), zap.Error(err))
		c.notify(Outcome{Transport: true, Login: login})
		return Result{Status: http.StatusInternalServerError, Data: fallbackPayload}
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		c.notify(Outcome{Transport: true, Login: login})
		return Result{Status: http.StatusInternalServerError, Data: fallbackPayload}
	}

	c.notify(Outcome{Status: resp.StatusCode, Login: login})

	data := json.RawMessage(raw)
	if !json.Valid(raw) {
		if resp.StatusCode >= 200 && resp.StatusCode < 300 {
			data = nil
		} else {
			data = fallbackPayload
		}
	}
	return Result{Status: resp.StatusCode, Data: data}
}

func (c *Client) notify(outcome Outcome) {
	if c.observer != nil {
		c.observer.OnResponse(outcome)
	}
}
